package commands

import (
	"github.com/spf13/cobra"

	"github.com/brickyard/brickyard-cli/internal/cli"
	"github.com/brickyard/brickyard-cli/pkg/panels"
	"github.com/brickyard/brickyard-cli/pkg/store"
)

// NewPanelsCommand creates the panels command
func NewPanelsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "panels",
		Short: "Show or change which builder panes are visible",
		Long: `The builder remembers which of its panes (sidebar, properties, code)
are shown. This command reads and changes that layout outside the builder.

Examples:
  brickyard panels
  brickyard panels toggle code
  brickyard panels reset`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.NewCommandContext().ValidateProject()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(kv store.KV) error {
				state, err := panels.Load(cmd.Context(), kv)
				if err != nil {
					return err
				}
				return printPanels(cmd, state)
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:       "toggle <sidebar|properties|code>",
		Short:     "Show a hidden pane or hide a visible one",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(panels.Sidebar), string(panels.Properties), string(panels.Code)},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := panels.Parse(args[0])
			if err != nil {
				return err
			}
			return withStore(func(kv store.KV) error {
				state, err := panels.Toggle(cmd.Context(), kv, p)
				if err != nil {
					return err
				}
				if state.Visible(p) {
					cli.PrintSuccess("%s panel shown", p)
				} else {
					cli.PrintSuccess("%s panel hidden", p)
				}
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Show every pane",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(kv store.KV) error {
				if _, err := panels.Reset(cmd.Context(), kv); err != nil {
					return err
				}
				cli.PrintSuccess("Panels reset")
				return nil
			})
		},
	})

	return cmd
}

func withStore(fn func(store.KV) error) error {
	s, err := cli.NewCommandContext().OpenStore()
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

func printPanels(cmd *cobra.Command, state panels.State) error {
	outputFormat, _ := cmd.Flags().GetString("output")
	if outputFormat == "json" || outputFormat == "yaml" {
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, state)
	}
	table := cli.NewTableFormatter(cmd.OutOrStdout())
	table.Header("PANEL", "STATE")
	for _, p := range panels.All() {
		shown := "hidden"
		if state.Visible(p) {
			shown = "visible"
		}
		table.Row(string(p), shown)
	}
	table.Flush()
	return nil
}

