package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) proposeEditCommand() *cobra.Command {
	var (
		sets    []string
		comment string
	)
	cmd := &cobra.Command{
		Use:   "propose-edit <item-id>",
		Short: "Suggest a correction to an item",
		Example: `  ragvault propose-edit 4b1c... --set year=1991 --set origin=USA
  ragvault propose-edit 4b1c... --set tags="grunge, 1991" --comment "tag says 91"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseAssignments(sets)
			if err != nil {
				return err
			}
			ctx, cancel := a.requestContext(cmd)
			defer cancel()
			e, err := a.vault.ProposeEdit(ctx, args[0], fields, comment)
			if err != nil {
				return err
			}
			success(a.out, "Proposed edit %s", e.ID)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field=value, repeatable")
	cmd.Flags().StringVar(&comment, "comment", "", "note for the reviewer")
	return requireLogin(cmd)
}

func (a *App) reviewEditCommand() *cobra.Command {
	var approve, reject bool
	cmd := &cobra.Command{
		Use:   "review-edit <edit-id>",
		Short: "Approve or reject a pending edit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if approve == reject {
				return errors.New("pass exactly one of --approve or --reject")
			}
			ctx, cancel := a.requestContext(cmd)
			defer cancel()
			e, err := a.vault.ReviewEdit(ctx, args[0], approve)
			if err != nil {
				return err
			}
			success(a.out, "Edit %s %s", e.ID, e.Status)
			return nil
		},
	}
	cmd.Flags().BoolVar(&approve, "approve", false, "apply the edit")
	cmd.Flags().BoolVar(&reject, "reject", false, "discard the edit")
	return requireLogin(cmd)
}

func (a *App) pendingEditsCommand() *cobra.Command {
	var itemID string
	cmd := &cobra.Command{
		Use:   "pending-edits",
		Short: "List edits waiting for review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()
			edits, err := a.vault.PendingEdits(ctx, itemID)
			if err != nil {
				return err
			}
			if len(edits) == 0 {
				fmt.Fprintln(a.out, subtleStyle.Render("No pending edits"))
			}
			for _, e := range edits {
				printEdit(a.out, e)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&itemID, "item", "", "only edits for this item")
	return requireLogin(cmd)
}
