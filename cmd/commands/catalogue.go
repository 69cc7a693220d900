package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brickyard/brickyard-cli/internal/cli"
	"github.com/brickyard/brickyard-cli/pkg/catalogue"
)

// CatalogueResult is the structured output of the catalogue command
type CatalogueResult struct {
	Categories []CatalogueCategory `json:"categories" yaml:"categories"`
	Count      int                 `json:"count" yaml:"count"`
}

type CatalogueCategory struct {
	Key   string          `json:"key" yaml:"key"`
	Name  string          `json:"name" yaml:"name"`
	Items []CatalogueItem `json:"items" yaml:"items"`
}

type CatalogueItem struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Tab  string `json:"tab,omitempty" yaml:"tab,omitempty"`
}

var (
	catalogueTab    string
	catalogueSearch string
)

// NewCatalogueCommand creates the catalogue command
func NewCatalogueCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "catalogue",
		Aliases: []string{"components"},
		Short:   "List the components that can be placed on a page",
		Long: `List the component catalogue grouped by category.

The project catalogue at .brickyard/catalogue.yaml replaces the built-in
one when present.

Examples:
  # List everything
  brickyard catalogue

  # Only the hero layouts of the pre-made styles
  brickyard catalogue --tab hero

  # Search by name
  brickyard catalogue --search card -o json`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.NewCommandContext().ValidateProject()
		},
		RunE: runCatalogue,
	}

	cmd.Flags().StringVar(&catalogueTab, "tab", catalogue.TabAll, "Tab filter for tabbed categories")
	cmd.Flags().StringVarP(&catalogueSearch, "search", "s", "", "Only items whose name contains this text")

	return cmd
}

func runCatalogue(cmd *cobra.Command, args []string) error {
	ctx := cli.NewCommandContext()
	cat, err := ctx.Catalogue()
	if err != nil {
		return fmt.Errorf("failed to load catalogue: %w", err)
	}

	var result CatalogueResult
	for _, c := range cat.Search(catalogueSearch) {
		items := catalogue.Visible(c, catalogueTab)
		if len(items) == 0 {
			continue
		}
		entry := CatalogueCategory{Key: c.Key, Name: c.Name}
		for _, item := range items {
			entry.Items = append(entry.Items, CatalogueItem{ID: item.ID, Name: item.Name, Tab: item.Tab})
		}
		result.Categories = append(result.Categories, entry)
		result.Count += len(entry.Items)
	}

	outputFormat, _ := cmd.Flags().GetString("output")
	if outputFormat == "json" || outputFormat == "yaml" {
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, result)
	}

	if result.Count == 0 {
		cli.PrintInfo("No components match")
		return nil
	}

	table := cli.NewTableFormatter(cmd.OutOrStdout())
	table.Header("ID", "NAME", "CATEGORY", "TAB")
	for _, c := range result.Categories {
		for _, item := range c.Items {
			table.Row(item.ID, item.Name, c.Name, item.Tab)
		}
	}
	table.Flush()
	return nil
}
