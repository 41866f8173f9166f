package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gradekit/hwcheck/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage hwcheck assignments",
	}

	cmd.AddCommand(newConfigViewCmd())
	cmd.AddCommand(newConfigCurrentAssignmentCmd())
	cmd.AddCommand(newConfigUseAssignmentCmd())

	return cmd
}

func newConfigViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Print the loaded config",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFromCommand(cmd)
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(&rt.Config)
			if err != nil {
				return fmt.Errorf("marshal config output: %w", err)
			}
			if len(out) == 0 || out[len(out)-1] != '\n' {
				out = append(out, '\n')
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func newConfigCurrentAssignmentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current-assignment",
		Short: "Print the active assignment name",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFromCommand(cmd)
			if err != nil {
				return err
			}
			info, err := config.ResolveAssignment(rt.Config, "")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), info.Name)
			return nil
		},
	}
}

func newConfigUseAssignmentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use-assignment <name>",
		Short: "Switch current-assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFromCommand(cmd)
			if err != nil {
				return err
			}

			info, err := config.ResolveAssignment(rt.Config, args[0])
			if err != nil {
				return err
			}

			rt.Config.CurrentAssignment = info.Name
			path, err := rt.savePath()
			if err != nil {
				return err
			}
			if err := config.Save(path, rt.Config); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Switched to assignment %q\n", info.Name)
			return nil
		},
	}
}
