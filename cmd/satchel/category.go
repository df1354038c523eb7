// Category command group: add, rename, rm, list.
package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/internal/library"
)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"cat"},
	Short:   "Manage categories",
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoryAdd,
}

var categoryRenameCmd = &cobra.Command{
	Use:   "rename <id-or-name> <new-name>",
	Short: "Rename a category",
	Args:  cobra.ExactArgs(2),
	RunE:  runCategoryRename,
}

var categoryRmCmd = &cobra.Command{
	Use:   "rm <id-or-name>",
	Short: "Delete a category, moving its prompts to Uncategorized",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoryRm,
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	Args:  cobra.NoArgs,
	RunE:  runCategoryList,
}

func init() {
	categoryCmd.AddCommand(categoryAddCmd)
	categoryCmd.AddCommand(categoryRenameCmd)
	categoryCmd.AddCommand(categoryRmCmd)
	categoryCmd.AddCommand(categoryListCmd)
}

func runCategoryAdd(cmd *cobra.Command, args []string) error {
	return withController(func(ctx context.Context, ctrl *library.Controller) error {
		id, err := ctrl.CreateCategory(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Created category: %s\n", id)
		return nil
	})
}

func runCategoryRename(cmd *cobra.Command, args []string) error {
	return withController(func(ctx context.Context, ctrl *library.Controller) error {
		id, err := resolveCategoryID(ctrl.Document(), args[0])
		if err != nil {
			return err
		}
		if err := ctrl.RenameCategory(id, args[1]); err != nil {
			return err
		}
		fmt.Printf("Renamed category: %s\n", id)
		return nil
	})
}

func runCategoryRm(cmd *cobra.Command, args []string) error {
	return withController(func(ctx context.Context, ctrl *library.Controller) error {
		id, err := resolveCategoryID(ctrl.Document(), args[0])
		if err != nil {
			return err
		}
		if err := ctrl.DeleteCategory(id); err != nil {
			return err
		}
		fmt.Printf("Deleted category: %s\n", id)
		return nil
	})
}

func runCategoryList(cmd *cobra.Command, args []string) error {
	return withController(func(ctx context.Context, ctrl *library.Controller) error {
		doc := ctrl.Document()

		if flagJSON {
			return printJSON(doc.Categories)
		}

		counts := make(map[string]int, len(doc.Categories))
		for _, p := range doc.Prompts {
			counts[p.CategoryID]++
		}
		for _, cat := range doc.Categories {
			fmt.Printf("%s  %-24s  %d prompt(s)\n", cat.ID, cat.Name, counts[cat.ID])
		}
		return nil
	})
}
