package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/ragvault/internal/common"
	"github.com/dmitrijs2005/ragvault/internal/vault"
	"github.com/google/uuid"
)

// Editable item fields. Basic fields need only edit_basic_fields-level
// trust; the rest need edit_all_fields.
const (
	FieldSubject    = "subject"
	FieldTitle      = "title"
	FieldTags       = "tags"
	FieldBrand      = "brand"
	FieldCategory   = "category"
	FieldYear       = "year"
	FieldStitchType = "stitch_type"
	FieldOrigin     = "origin"
	FieldSlug       = "slug"
)

var basicFields = map[string]bool{
	FieldSubject: true,
	FieldTitle:   true,
	FieldTags:    true,
}

var allFields = map[string]bool{
	FieldSubject:    true,
	FieldTitle:      true,
	FieldTags:       true,
	FieldBrand:      true,
	FieldCategory:   true,
	FieldYear:       true,
	FieldStitchType: true,
	FieldOrigin:     true,
	FieldSlug:       true,
}

var (
	yearPattern   = regexp.MustCompile(`^(19|20)\d{2}$`)
	slugPattern   = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	nonSlugRunes  = regexp.MustCompile(`[^a-z0-9]+`)
	maxFieldRunes = 200
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrorValidation, fmt.Sprintf(format, args...))
}

// onlyBasic reports whether every key in fields is a basic field.
func onlyBasic(fields map[string]string) bool {
	for k := range fields {
		if !basicFields[k] {
			return false
		}
	}
	return true
}

func validateYear(y string) error {
	if y != "" && !yearPattern.MatchString(y) {
		return invalid("year %q must be a four digit year", y)
	}
	return nil
}

func validateCategory(c string) error {
	if !vault.IsCategory(c) {
		return invalid("unknown category %q", c)
	}
	return nil
}

func splitTagList(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// applyFields validates fields and writes them onto item.
func applyFields(item *vault.Item, fields map[string]string) error {
	if len(fields) == 0 {
		return invalid("no fields to change")
	}
	for k, v := range fields {
		if !allFields[k] {
			return invalid("field %q cannot be edited", k)
		}
		v = strings.TrimSpace(v)
		if len([]rune(v)) > maxFieldRunes {
			return invalid("field %q is too long", k)
		}
		switch k {
		case FieldSubject:
			if v == "" {
				return invalid("subject must not be empty")
			}
			item.Subject = v
		case FieldTitle:
			item.Title = v
		case FieldTags:
			item.Tags = splitTagList(v)
		case FieldBrand:
			item.Brand = v
		case FieldCategory:
			if err := validateCategory(v); err != nil {
				return err
			}
			item.Category = v
		case FieldYear:
			if err := validateYear(v); err != nil {
				return err
			}
			item.Year = v
		case FieldStitchType:
			item.StitchType = v
		case FieldOrigin:
			item.Origin = v
		case FieldSlug:
			if !slugPattern.MatchString(v) {
				return invalid("slug %q must be lowercase words joined by '-'", v)
			}
			item.Slug = v
		}
	}
	return nil
}

// newSlug derives a URL slug from the subject and year plus a short random
// suffix, e.g. "iron-maiden-1984-3f2a9c1d".
func newSlug(subject, year string) string {
	base := strings.Trim(nonSlugRunes.ReplaceAllString(strings.ToLower(subject+" "+year), "-"), "-")
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}
