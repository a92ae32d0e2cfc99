package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ragvault/internal/common"
	"github.com/dmitrijs2005/ragvault/internal/vault"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// filterFlags is the command-line form of vault.Filters.
type filterFlags struct {
	search, category, year, stitch, origin, brand, sort string
	verified, hasImage, newThisWeek                      bool
}

func (f *filterFlags) bind(fs *pflag.FlagSet) {
	fs.StringVarP(&f.search, "search", "s", "", "free-text search over subject, brand, title and tags")
	fs.StringVar(&f.category, "category", "", "one of "+strings.Join(vault.Categories, ", "))
	fs.StringVar(&f.year, "year", "", "exact year")
	fs.StringVar(&f.stitch, "stitch", "", "stitch type contains")
	fs.StringVar(&f.origin, "origin", "", "country of origin contains")
	fs.StringVar(&f.brand, "brand", "", "brand contains")
	fs.StringVar(&f.sort, "sort", string(vault.SortVerified), "verified, newest, alphabetical or score")
	fs.BoolVar(&f.verified, "verified", false, "only community-verified items")
	fs.BoolVar(&f.hasImage, "has-image", false, "only items with an image")
	fs.BoolVar(&f.newThisWeek, "new", false, "only items added in the last 7 days")
}

func (f *filterFlags) filters() (vault.Filters, error) {
	category := strings.TrimSpace(f.category)
	if category != "" && category != vault.CategoryAll && !vault.IsCategory(category) {
		return vault.Filters{}, fmt.Errorf("%w: unknown category %q", common.ErrorValidation, category)
	}
	return vault.Filters{
		Search:       f.search,
		Category:     category,
		YearFilter:   f.year,
		StitchFilter: f.stitch,
		OriginFilter: f.origin,
		BrandFilter:  f.brand,
		SortBy:       vault.ParseSortKey(f.sort),
		Quick: vault.QuickFilters{
			VerifiedOnly: f.verified,
			HasImage:     f.hasImage,
			NewThisWeek:  f.newThisWeek,
		},
	}, nil
}

func (a *App) browseCommand() *cobra.Command {
	var (
		ff     filterFlags
		offset int
		all    bool
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:     "browse",
		Aliases: []string{"ls"},
		Short:   "List vault items, one page at a time",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := ff.filters()
			if err != nil {
				return err
			}
			ctx := commandContext(cmd)
			if all {
				items, err := a.vault.BrowseAll(ctx, filters)
				if err != nil {
					return err
				}
				if asJSON {
					return printJSON(a.out, items)
				}
				for _, it := range items {
					fmt.Fprintln(a.out, formatItemShort(it))
				}
				fmt.Fprintln(a.out, subtleStyle.Render(fmt.Sprintf("%d items", len(items))))
				return nil
			}

			page, err := a.vault.Browse(ctx, offset, filters)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(a.out, page)
			}
			printPage(a.out, page)
			return nil
		},
	}
	ff.bind(cmd.Flags())
	cmd.Flags().IntVar(&offset, "offset", 0, "start position in the listing")
	cmd.Flags().BoolVar(&all, "all", false, "fetch every page")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func (a *App) showCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <item-id>",
		Short: "Show one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()
			v, err := a.vault.Show(ctx, args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(a.out, v)
			}
			printItemDetail(a.out, v)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
