package runner

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewRunID returns a ULID so batch runs sort lexicographically by start
// time in the index.
func NewRunID(now time.Time) (string, error) {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	id, err := ulid.New(ulid.Timestamp(now.UTC()), entropy)
	if err != nil {
		if err == io.EOF {
			return "", fmt.Errorf("generate run id: insufficient entropy")
		}
		return "", fmt.Errorf("generate run id: %w", err)
	}
	return id.String(), nil
}
