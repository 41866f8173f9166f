package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gradekit/hwcheck/internal/client"
	"github.com/gradekit/hwcheck/internal/output"
)

const defaultServerURL = "http://127.0.0.1:9410"

func newSubmitCmd() *cobra.Command {
	var (
		serverURL   string
		assignment  string
		studentID   string
		outputMode  string
		failNonzero bool
	)

	cmd := &cobra.Command{
		Use:   "submit <archive.zip>",
		Short: "Submit one archive to a running hwcheckd",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.ParseFormat(outputMode)
			if err != nil {
				return err
			}
			api, err := client.New(serverURL)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open archive: %w", err)
			}
			defer f.Close()

			rep, err := api.CheckArchive(cmd.Context(), filepath.Base(args[0]), f, assignment, studentID)
			if err != nil {
				return err
			}

			if format != output.FormatTable {
				if err := output.WriteStructured(cmd.OutOrStdout(), format, rep); err != nil {
					return err
				}
			} else if rep.FormatOK {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: format ok\n", rep.Filename)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d issue(s)\n", rep.Filename, len(rep.FormatIssues))
				for _, issue := range rep.FormatIssues {
					fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", issue)
				}
			}

			if failNonzero && !rep.FormatOK {
				return exitCodeError(ExitIssues, fmt.Errorf("%s has format issues", rep.Filename))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", defaultServerURL, "Base URL of the hwcheckd API")
	cmd.Flags().StringVar(&assignment, "assignment", "", "Assignment name (defaults to the daemon's default)")
	cmd.Flags().StringVar(&studentID, "student", "", "Student identifier to record on the report")
	cmd.Flags().StringVarP(&outputMode, "output", "o", "table", "Output format (table|json|yaml)")
	cmd.Flags().BoolVar(&failNonzero, "fail-nonzero", false, "Exit with code 3 when the submission has format issues")

	return cmd
}
