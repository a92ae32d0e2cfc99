package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) searchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Save and rerun browse filters by name",
	}

	var ff filterFlags
	save := &cobra.Command{
		Use:   "save <name>",
		Short: "Save the given filters under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := ff.filters()
			if err != nil {
				return err
			}
			if err := a.vault.SaveSearch(cmd.Context(), args[0], filters); err != nil {
				return err
			}
			success(a.out, "Saved search %q", args[0])
			return nil
		},
	}
	ff.bind(save.Flags())

	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved searches",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			saved, err := a.vault.SavedSearches(cmd.Context())
			if err != nil {
				return err
			}
			if len(saved) == 0 {
				fmt.Fprintln(a.out, subtleStyle.Render("No saved searches"))
			}
			for _, s := range saved {
				fmt.Fprintf(a.out, "%s  %s\n", titleStyle.Render(s.Name), describeFilters(s.Filters))
			}
			return nil
		},
	}

	var offset int
	run := &cobra.Command{
		Use:   "run <name>",
		Short: "Browse with a saved search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()
			page, err := a.vault.RunSearch(ctx, args[0], offset)
			if err != nil {
				return err
			}
			printPage(a.out, page)
			return nil
		},
	}
	run.Flags().IntVar(&offset, "offset", 0, "start position in the listing")

	del := &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved search",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.vault.DeleteSearch(cmd.Context(), args[0]); err != nil {
				return err
			}
			success(a.out, "Deleted search %q", args[0])
			return nil
		},
	}

	cmd.AddCommand(save, list, run, del)
	return cmd
}
