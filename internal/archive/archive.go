package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	indexMember     = "index.html"
	styleMember     = "style.css"
	styleDirMember  = "css/style.css"
	nestedZipSuffix = ".zip"
)

// Inspection is the outcome of opening one submission archive. Issues holds
// student-facing messages in the order the checks run; IndexHTML is nil when
// the member is absent or not decompressible.
type Inspection struct {
	Readable     bool
	HasIndexHTML bool
	HasStyleCSS  bool
	IndexHTML    []byte
	Issues       []string
}

// Inspect checks archive membership without extracting anything to disk.
// Member names are tested verbatim as stored in the central directory.
func Inspect(ra io.ReaderAt, size int64) Inspection {
	var insp Inspection
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		insp.Issues = append(insp.Issues, "Could not open zip file (corrupted or invalid).")
		return insp
	}
	insp.Readable = true

	var index *zip.File
	for _, f := range zr.File {
		switch f.Name {
		case indexMember:
			insp.HasIndexHTML = true
			if index == nil {
				index = f
			}
		case styleMember, styleDirMember:
			insp.HasStyleCSS = true
		}
	}
	if !insp.HasIndexHTML {
		insp.Issues = append(insp.Issues, "No index.html found at zip root.")
	}
	if !insp.HasStyleCSS {
		insp.Issues = append(insp.Issues, "No style.css found. Expected style.css at root or css/style.css.")
	}
	for _, f := range zr.File {
		if strings.HasSuffix(strings.ToLower(f.Name), nestedZipSuffix) {
			insp.Issues = append(insp.Issues, fmt.Sprintf("Nested zip found: %s", f.Name))
		}
	}
	if index != nil {
		content, err := readMember(index)
		if err != nil {
			insp.Issues = append(insp.Issues, "Could not read index.html from the zip archive.")
		} else {
			insp.IndexHTML = content
		}
	}
	return insp
}

// InspectFile opens path and inspects it. The returned error covers
// filesystem failures only; a corrupt archive is reported through Issues.
func InspectFile(path string) (Inspection, error) {
	f, err := os.Open(path)
	if err != nil {
		return Inspection{}, fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return Inspection{}, fmt.Errorf("stat archive: %w", err)
	}
	return Inspect(f, info.Size()), nil
}

func readMember(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
