package cli

import (
	"github.com/spf13/cobra"

	"github.com/gradekit/hwcheck/internal/config"
)

// NewRootCmd builds the hwcheck root command tree.
func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hwcheck",
		Short: "Check homework zip submissions for required structure",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().String("config", "", "Path to the hwcheck config file")

	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newSubmitCmd())
	cmd.AddCommand(newResultsCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd(version))

	return cmd
}

// commandRuntime carries the loaded config and the path it came from.
// ConfigPath is empty when built-in defaults apply.
type commandRuntime struct {
	Config     config.Config
	ConfigPath string
}

func runtimeFromCommand(cmd *cobra.Command) (commandRuntime, error) {
	explicit, err := cmd.Flags().GetString("config")
	if err != nil {
		return commandRuntime{}, err
	}
	cfg, path, err := config.Load(explicit)
	if err != nil {
		return commandRuntime{}, err
	}
	return commandRuntime{Config: cfg, ConfigPath: path}, nil
}

func (rt commandRuntime) savePath() (string, error) {
	if rt.ConfigPath != "" {
		return rt.ConfigPath, nil
	}
	return config.ResolvePath("")
}
