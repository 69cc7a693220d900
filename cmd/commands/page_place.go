package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brickyard/brickyard-cli/internal/cli"
	"github.com/brickyard/brickyard-cli/pkg/workspace"
)

// PlacementResult is printed after add and nest
type PlacementResult struct {
	Page   string `json:"page" yaml:"page"`
	NodeID string `json:"nodeId" yaml:"nodeId"`
	Type   string `json:"type" yaml:"type"`
	Parent string `json:"parent,omitempty" yaml:"parent,omitempty"`
	Count  string `json:"count" yaml:"count"`
}

var (
	nestSlot   string
	nestColumn int
)

func newPageAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <page> <component>",
		Short: "Append a catalogue component to the top level of a page",
		Example: `  brickyard page add landing hero-centered
  brickyard page add landing row-2col -o json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cli.NewCommandContext()
			sess, err := openForPlacement(ctx, args[0], args[1])
			if err != nil {
				return err
			}

			node, ok := sess.Engine.InsertTop(args[1])
			if !ok {
				return fmt.Errorf("failed to add %s", args[1])
			}
			if err := sess.Save(); err != nil {
				return err
			}
			return printPlacement(cmd, PlacementResult{
				Page:   sess.Page.Name,
				NodeID: node.ID,
				Type:   node.Type,
				Count:  sess.Canvas().CountLabel(),
			})
		},
	}
}

func newPageNestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nest <page> <parent-id> <component>",
		Short: "Place a catalogue component inside a container node",
		Long: `Place a catalogue component inside an existing node.

Row layouts take --column to choose a column (zero-based). Other
containers receive the component in their content slot unless --slot
names another one. Pairs the compatibility rules forbid are refused.`,
		Example: `  brickyard page nest landing comp-1 paragraph
  brickyard page nest landing comp-4 card-basic --column 1`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cli.NewCommandContext()
			page, parent, component := args[0], args[1], args[2]
			sess, err := openForPlacement(ctx, page, component)
			if err != nil {
				return err
			}

			loc, found := sess.Canvas().Find(parent)
			if !found {
				return fmt.Errorf("node %s not found on page %s", parent, sess.Page.Name)
			}
			if !sess.Canvas().Rules().IsCompatible(loc.Node.Type, component) {
				return fmt.Errorf("%s cannot be placed inside %s", component, loc.Node.Type)
			}

			var placed bool
			var nodeID, nodeType string
			if cmd.Flags().Changed("column") {
				node, ok := sess.Engine.InsertIntoColumn(parent, nestColumn, component)
				if ok {
					placed, nodeID, nodeType = true, node.ID, node.Type
				}
			} else {
				node, ok := sess.Engine.InsertNested(parent, nestSlot, component)
				if ok {
					placed, nodeID, nodeType = true, node.ID, node.Type
				}
			}
			if !placed {
				return fmt.Errorf("cannot place %s inside %s", component, parent)
			}

			if err := sess.Save(); err != nil {
				return err
			}
			return printPlacement(cmd, PlacementResult{
				Page:   sess.Page.Name,
				NodeID: nodeID,
				Type:   nodeType,
				Parent: parent,
				Count:  sess.Canvas().CountLabel(),
			})
		},
	}
	cmd.Flags().StringVar(&nestSlot, "slot", "", "Slot to place into (default slot if empty)")
	cmd.Flags().IntVar(&nestColumn, "column", 0, "Zero-based column of a row layout")
	return cmd
}

func newPageMoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "move <page> <node-id> <up|down>",
		Short:     "Move a node one position up or down among its siblings",
		Long: `Move a node one position up or down. Top-level nodes move within the
page; nested nodes move within the slot of their parent.`,
		Args:      cobra.ExactArgs(3),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cli.NewCommandContext()
			sess, err := ctx.OpenSession(args[0])
			if err != nil {
				return err
			}

			var moved bool
			switch args[2] {
			case "up":
				moved = sess.Engine.MoveUp(args[1])
			case "down":
				moved = sess.Engine.MoveDown(args[1])
			default:
				return fmt.Errorf("direction must be up or down, got %q", args[2])
			}
			if !moved {
				cli.PrintInfo("%s did not move", args[1])
				return nil
			}
			if err := sess.Save(); err != nil {
				return err
			}
			cli.PrintSuccess("Moved %s %s", args[1], args[2])
			return nil
		},
	}
}

func newPageRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <page> <node-id>",
		Aliases: []string{"remove"},
		Short:   "Remove a node and everything inside it",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cli.NewCommandContext()
			sess, err := ctx.OpenSession(args[0])
			if err != nil {
				return err
			}
			if !sess.Engine.Delete(args[1]) {
				return fmt.Errorf("node %s not found on page %s", args[1], sess.Page.Name)
			}
			if err := sess.Save(); err != nil {
				return err
			}
			cli.PrintSuccess("Removed %s (%s left)", args[1], sess.Canvas().CountLabel())
			return nil
		},
	}
}

// openForPlacement opens the page after checking the component exists
func openForPlacement(ctx *cli.CommandContext, page, component string) (*workspace.Session, error) {
	cat, err := ctx.Catalogue()
	if err != nil {
		return nil, err
	}
	if err := cli.ValidateComponent(cat, component); err != nil {
		return nil, err
	}
	return ctx.OpenSession(page)
}

func printPlacement(cmd *cobra.Command, result PlacementResult) error {
	outputFormat, _ := cmd.Flags().GetString("output")
	if outputFormat == "json" || outputFormat == "yaml" {
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, result)
	}
	if result.Parent != "" {
		cli.PrintSuccess("Placed %s as %s inside %s", result.Type, result.NodeID, result.Parent)
	} else {
		cli.PrintSuccess("Added %s as %s", result.Type, result.NodeID)
	}
	cli.PrintInfo("%s: %s", result.Page, result.Count)
	return nil
}
