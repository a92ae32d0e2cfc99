package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/ragvault/internal/api"
	"github.com/dmitrijs2005/ragvault/internal/karma"
	"github.com/dmitrijs2005/ragvault/internal/vault"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	verifiedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	badgeStyle    = lipgloss.NewStyle().Padding(0, 1).Bold(true)
	tierColors    = map[karma.Tier]lipgloss.Color{
		karma.Newcomer:    lipgloss.Color("245"),
		karma.Contributor: lipgloss.Color("45"),
		karma.Trusted:     lipgloss.Color("42"),
		karma.Expert:      lipgloss.Color("214"),
		karma.Curator:     lipgloss.Color("141"),
		karma.Moderator:   lipgloss.Color("196"),
	}
)

func success(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, successStyle.Render(fmt.Sprintf(format, args...)))
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// tierBadge renders a tier name as a coloured label.
func tierBadge(tier string) string {
	t, err := karma.ParseTier(tier)
	if err != nil {
		return badgeStyle.Render(strings.ToUpper(tier))
	}
	return badgeStyle.Foreground(tierColors[t]).Render(strings.ToUpper(string(t)))
}

// formatItemShort is the one-line listing form of an item.
func formatItemShort(it vault.Item) string {
	var b strings.Builder
	b.WriteString(subtleStyle.Render(it.ID))
	b.WriteString("  ")
	b.WriteString(titleStyle.Render(it.Subject))
	if it.Title != "" {
		b.WriteString(" - " + it.Title)
	}
	var meta []string
	for _, v := range []string{it.Category, it.Year, it.Brand} {
		if v != "" {
			meta = append(meta, v)
		}
	}
	if len(meta) > 0 {
		b.WriteString(subtleStyle.Render(" (" + strings.Join(meta, ", ") + ")"))
	}
	if it.Verified() {
		b.WriteString(" " + verifiedStyle.Render("✓"))
	}
	return b.String()
}

func printItems(w io.Writer, items []api.ItemView) {
	for _, v := range items {
		fmt.Fprintln(w, formatItemShort(v.Item))
	}
}

func printPage(w io.Writer, page *api.BrowseVaultResponse) {
	printItems(w, page.Items)
	footer := fmt.Sprintf("%d of %d items", len(page.Items), page.TotalCount)
	if page.HasMore {
		footer += fmt.Sprintf("; next page: --offset %d", page.NextOffset)
	}
	fmt.Fprintln(w, subtleStyle.Render(footer))
}

// describeFilters summarises the non-default parts of f.
func describeFilters(f vault.Filters) string {
	var parts []string
	add := func(name, v string) {
		if v != "" {
			parts = append(parts, fmt.Sprintf("%s=%q", name, v))
		}
	}
	add("search", f.Search)
	if f.Category != vault.CategoryAll {
		add("category", f.Category)
	}
	add("year", f.YearFilter)
	add("stitch", f.StitchFilter)
	add("origin", f.OriginFilter)
	add("brand", f.BrandFilter)
	if f.Quick.VerifiedOnly {
		parts = append(parts, "verified")
	}
	if f.Quick.HasImage {
		parts = append(parts, "has-image")
	}
	if f.Quick.NewThisWeek {
		parts = append(parts, "new")
	}
	parts = append(parts, "sort="+string(vault.ParseSortKey(string(f.SortBy))))
	return strings.Join(parts, " ")
}

func printItemDetail(w io.Writer, v *api.ItemView) {
	it := v.Item
	fmt.Fprintln(w, titleStyle.Render(it.Subject))
	row := func(label, value string) {
		if value != "" {
			fmt.Fprintf(w, "  %-13s %s\n", label+":", value)
		}
	}
	row("ID", it.ID)
	row("Title", it.Title)
	row("Brand", it.Brand)
	row("Category", it.Category)
	row("Year", it.Year)
	row("Stitch", it.StitchType)
	row("Origin", it.Origin)
	row("Tags", strings.Join(it.Tags, ", "))
	row("Verified", fmt.Sprintf("%d/%d", it.VerificationCount, vault.VerifiedCount))
	row("Score", fmt.Sprint(it.Score))
	row("Image", v.ImageURL)
	if !it.CreatedAt.IsZero() {
		row("Added", it.CreatedAt.Format("2006-01-02"))
	}
}

func printProfile(w io.Writer, p *api.ProfileResponse) {
	fmt.Fprintf(w, "%s %s\n", titleStyle.Render(p.Username), tierBadge(p.Tier))
	fmt.Fprintf(w, "  Karma:       %d\n", p.Karma)
	if p.NextTier != "" {
		fmt.Fprintf(w, "  Next tier:   %s in %d karma\n", p.NextTier, p.ToNext)
	}
	perms := append([]string(nil), p.Permissions...)
	sort.Strings(perms)
	fmt.Fprintf(w, "  Permissions: %s\n", strings.Join(perms, ", "))
	if len(p.Events) > 0 {
		fmt.Fprintln(w, "  Recent karma:")
		for _, e := range p.Events {
			fmt.Fprintf(w, "    %+4d  %s %s\n", e.Delta, e.Reason, subtleStyle.Render(e.CreatedAt.Format("2006-01-02")))
		}
	}
}

func printEdit(w io.Writer, e api.EditProposal) {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	changes := make([]string, 0, len(keys))
	for _, k := range keys {
		changes = append(changes, fmt.Sprintf("%s=%q", k, e.Fields[k]))
	}
	fmt.Fprintf(w, "%s  item %s  [%s]  %s\n", subtleStyle.Render(e.ID), e.ItemID, e.Status, strings.Join(changes, " "))
	if e.Comment != "" {
		fmt.Fprintf(w, "    %s\n", subtleStyle.Render(e.Comment))
	}
}
