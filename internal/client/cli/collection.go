package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) collectionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "collection",
		Aliases: []string{"col"},
		Short:   "Manage your personal collection",
	}

	add := &cobra.Command{
		Use:   "add <item-id>",
		Short: "Add an item to your collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()
			if err := a.vault.AddToCollection(ctx, args[0]); err != nil {
				return err
			}
			success(a.out, "Added %s to your collection", args[0])
			return nil
		},
	}

	remove := &cobra.Command{
		Use:     "remove <item-id>",
		Aliases: []string{"rm"},
		Short:   "Remove an item from your collection",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()
			if err := a.vault.RemoveFromCollection(ctx, args[0]); err != nil {
				return err
			}
			success(a.out, "Removed %s from your collection", args[0])
			return nil
		},
	}

	var asJSON bool
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your collection",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()
			items, err := a.vault.Collection(ctx)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(a.out, items)
			}
			printItems(a.out, items)
			fmt.Fprintln(a.out, subtleStyle.Render(fmt.Sprintf("%d items", len(items))))
			return nil
		},
	}
	list.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	for _, sub := range []*cobra.Command{add, remove, list} {
		cmd.AddCommand(requireLogin(sub))
	}
	return requireLogin(cmd)
}
