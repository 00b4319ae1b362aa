package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ringlet/pkg/diagram"
	"github.com/matzehuels/ringlet/pkg/errors"
)

// defaultConfigFile is where init writes when no path is given.
const defaultConfigFile = "diagram_config.json"

// initCommand creates the init command for writing a starter config.
func (c *CLI) initCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write a starter diagram config",
		Long:  `Init writes the built-in default diagram (the two-tier cycle of empirical inquiry) as a JSON config file, ready for editing and rendering.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultConfigFile
			if len(args) == 1 {
				path = args[0]
			}

			if !force {
				if _, err := os.Stat(path); err == nil {
					return errors.New(errors.ErrCodeInvalidInput,
						"%s already exists (use --force to overwrite)", path)
				}
			}

			if err := diagram.WriteFile(diagram.Default(), path); err != nil {
				return err
			}

			printSuccess("Wrote %s", path)
			printNextStep("Render it", appName+" render "+path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}
