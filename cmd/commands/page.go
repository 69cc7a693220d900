package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/brickyard/brickyard-cli/internal/cli"
	"github.com/brickyard/brickyard-cli/pkg/canvas"
	"github.com/brickyard/brickyard-cli/pkg/files"
	"github.com/brickyard/brickyard-cli/pkg/models"
)

// PageListItem is one row of 'page list'
type PageListItem struct {
	Name       string `json:"name" yaml:"name"`
	Theme      string `json:"theme" yaml:"theme"`
	Components int    `json:"components" yaml:"components"`
	Modified   string `json:"modified" yaml:"modified"`
}

var (
	pageNewTheme string
)

// NewPageCommand creates the page command and its sub-commands
func NewPageCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Create, inspect and edit pages",
		Long: `Manage the pages stored under .brickyard/pages.

The placement sub-commands (add, nest, move, rm) run the same rules as
the interactive builder: incompatible components are refused and ids are
allocated from the page's counter.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.NewCommandContext().ValidateProject()
		},
	}

	cmd.AddCommand(newPageNewCommand())
	cmd.AddCommand(newPageListCommand())
	cmd.AddCommand(newPageShowCommand())
	cmd.AddCommand(newPageRenameCommand())
	cmd.AddCommand(newPageThemeCommand())
	cmd.AddCommand(newPageDeleteCommand())
	cmd.AddCommand(newPageEditCommand())
	cmd.AddCommand(newPageAddCommand())
	cmd.AddCommand(newPageNestCommand())
	cmd.AddCommand(newPageMoveCommand())
	cmd.AddCommand(newPageRemoveCommand())

	return cmd
}

func newPageNewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create an empty page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cli.NewCommandContext()
			theme := pageNewTheme
			if theme == "" {
				theme = ctx.LoadSettings().Export.Theme
			}
			if err := cli.ValidateTheme(theme); err != nil {
				return err
			}

			name := files.PageFile(args[0])
			if err := cli.ValidatePageName(name); err != nil {
				return err
			}
			if files.PageExists(name) {
				return fmt.Errorf("page %s already exists", name)
			}

			page := files.NewPage(name, theme)
			if err := files.WritePage(page); err != nil {
				return err
			}
			cli.PrintSuccess("Created page %s (%s)", page.Name, page.Theme)
			return nil
		},
	}
	cmd.Flags().StringVar(&pageNewTheme, "theme", "", "Bootswatch theme (default from settings)")
	return cmd
}

func newPageListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved pages",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := files.ListPages()
			if err != nil {
				return err
			}

			var items []PageListItem
			for _, name := range names {
				page, err := files.ReadPage(name)
				if err != nil {
					cli.PrintWarning("skipping %s: %v", name, err)
					continue
				}
				items = append(items, PageListItem{
					Name:       page.Name,
					Theme:      page.Theme,
					Components: countNodes(page.Nodes),
					Modified:   humanize.Time(page.Modified),
				})
			}

			outputFormat, _ := cmd.Flags().GetString("output")
			if outputFormat == "json" || outputFormat == "yaml" {
				return cli.OutputResults(cmd.OutOrStdout(), outputFormat, items)
			}

			if len(items) == 0 {
				cli.PrintInfo("No pages yet. Create one with 'brickyard page new <name>'")
				return nil
			}
			table := cli.NewTableFormatter(cmd.OutOrStdout())
			table.Header("NAME", "THEME", "COMPONENTS", "MODIFIED")
			for _, item := range items {
				table.Row(item.Name, item.Theme, fmt.Sprint(item.Components), item.Modified)
			}
			table.Flush()
			return nil
		},
	}
}

func newPageShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <page>",
		Short: "Print the component tree of a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := files.ReadPage(args[0])
			if err != nil {
				return err
			}

			outputFormat, _ := cmd.Flags().GetString("output")
			if outputFormat == "json" || outputFormat == "yaml" {
				return cli.OutputResults(cmd.OutOrStdout(), outputFormat, page)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Name: %s\n", page.Name)
			fmt.Fprintf(w, "Theme: %s\n", page.Theme)
			fmt.Fprintf(w, "Components: %s\n", canvas.CountLabel(len(page.Nodes)))
			fmt.Fprintf(w, "Path: %s\n", page.Path)
			fmt.Fprintln(w, strings.Repeat("-", 60))
			if len(page.Nodes) == 0 {
				fmt.Fprintln(w, "(empty)")
				return nil
			}
			writeTree(w, page.Nodes, 0)
			return nil
		},
	}
}

func writeTree(w io.Writer, nodes []*models.Node, depth int) {
	for _, n := range nodes {
		line := strings.Repeat("  ", depth) + n.ID + "  " + n.Type
		if n.Slot != "" {
			line += "  [" + n.Slot + "]"
		}
		if text := canvas.TextOf(n.Content); text != "" && len(n.Children) == 0 {
			line += "  " + cli.TruncateString(text, 40)
		}
		fmt.Fprintln(w, line)
		writeTree(w, n.Children, depth+1)
	}
}

func countNodes(nodes []*models.Node) int {
	count := 0
	for _, n := range nodes {
		n.Walk(func(_, _ *models.Node) bool {
			count++
			return true
		})
	}
	return count
}

func newPageRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <page> <new-name>",
		Short: "Rename a page",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			newName, err := files.RenamePage(args[0], args[1])
			if err != nil {
				return err
			}
			cli.PrintSuccess("Renamed %s to %s", files.PageFile(args[0]), newName)
			return nil
		},
	}
}

func newPageThemeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "theme <page> <theme>",
		Short: "Set the Bootswatch theme a page exports with",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateTheme(args[1]); err != nil {
				return err
			}
			page, err := files.ReadPage(args[0])
			if err != nil {
				return err
			}
			page.Theme = args[1]
			if err := files.WritePage(page); err != nil {
				return err
			}
			cli.PrintSuccess("Page %s now uses the %s theme", page.Name, page.Theme)
			return nil
		},
	}
}

func newPageDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <page>",
		Short: "Permanently delete a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := files.PageFile(args[0])
			if !files.PageExists(name) {
				return fmt.Errorf("page not found: %s", name)
			}

			confirmed, err := cli.Confirm(fmt.Sprintf("Permanently delete page '%s'? This cannot be undone.", name), false)
			if err != nil {
				return err
			}
			if !confirmed {
				cli.PrintInfo("Deletion cancelled")
				return nil
			}

			if err := files.DeletePage(name); err != nil {
				return fmt.Errorf("failed to delete page: %w", err)
			}
			cli.PrintSuccess("Deleted page: %s", name)
			return nil
		},
	}
}

func newPageEditCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <page>",
		Short: "Open the page file in your editor ($EDITOR)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := files.ReadPage(args[0])
			if err != nil {
				return err
			}
			if err := cli.NewEditorLauncher().OpenFile(page.Path); err != nil {
				return err
			}

			// Reading back catches edits that broke the file
			if _, err := files.ReadPage(page.Name); err != nil {
				cli.PrintWarning("page %s no longer loads: %v", page.Name, err)
				return nil
			}
			cli.PrintSuccess("Edited page: %s", page.Name)
			return nil
		},
	}
}
