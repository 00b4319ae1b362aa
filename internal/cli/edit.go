package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ringlet/pkg/diagram"
)

// editCommand creates the edit command for terminal-based config editing.
func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [file]",
		Short: "Edit a diagram config in the terminal",
		Long: `Edit opens a terminal editor for a diagram config file. Node orders,
labels, cross-links, and display options can be changed; invalid edits are
rejected without touching the config. Changes are written back on save.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			cfg, err := diagram.ReadFile(path)
			if err != nil {
				return err
			}

			model := newEditorModel(path, cfg)
			final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}

			m := final.(editorModel)
			if m.saved {
				printSuccess("Saved %s", path)
			} else if m.dirty {
				printWarning("Discarded unsaved changes")
			}
			return nil
		},
	}
}
