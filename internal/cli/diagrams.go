package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/ringlet/pkg/diagram"
	"github.com/matzehuels/ringlet/pkg/store"
)

// diagramsCommand creates the diagrams command for managing the local
// collection of saved diagrams (the same one `serve` uses with the file
// backend).
func (c *CLI) diagramsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diagrams",
		Short: "Manage locally saved diagrams",
	}

	cmd.AddCommand(c.diagramsListCommand())
	cmd.AddCommand(c.diagramsSaveCommand())
	cmd.AddCommand(c.diagramsExportCommand())
	cmd.AddCommand(c.diagramsDeleteCommand())

	return cmd
}

func (c *CLI) diagramsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved diagrams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.NewFileStore("")
			if err != nil {
				return err
			}
			defer s.Close()

			entries, err := s.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				printInfo("No saved diagrams")
				return nil
			}
			for _, e := range entries {
				printDetail("%-30s %s", e.Name, e.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func (c *CLI) diagramsSaveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "save [name] [file]",
		Short: "Save a config file under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, path := args[0], args[1]

			cfg, err := diagram.ReadFile(path)
			if err != nil {
				return err
			}

			s, err := store.NewFileStore("")
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Save(cmd.Context(), name, cfg); err != nil {
				return err
			}
			printSuccess("Saved %s as %q", path, name)
			return nil
		},
	}
}

func (c *CLI) diagramsExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export [name] [file]",
		Short: "Write a saved diagram to a config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, path := args[0], args[1]

			s, err := store.NewFileStore("")
			if err != nil {
				return err
			}
			defer s.Close()

			cfg, err := s.Load(cmd.Context(), name)
			if err != nil {
				return err
			}
			if err := diagram.WriteFile(cfg, path); err != nil {
				return err
			}
			printSuccess("Wrote %s", path)
			return nil
		},
	}
}

func (c *CLI) diagramsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a saved diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.NewFileStore("")
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Deleted %q", args[0])
			return nil
		},
	}
}
