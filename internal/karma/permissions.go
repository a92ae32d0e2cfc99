package karma

import (
	"fmt"
	"slices"

	"github.com/dmitrijs2005/ragvault/internal/common"
)

// Permission names a capability gated by tier.
type Permission string

const (
	PermVote            Permission = "vote"
	PermSubmitItems     Permission = "submit_items"
	PermProposeEdits    Permission = "propose_edits"
	PermVerifyItems     Permission = "verify_items"
	PermUploadImages    Permission = "upload_images"
	PermEditBasicFields Permission = "edit_basic_fields"
	PermEditAllFields   Permission = "edit_all_fields"
	PermApproveEdits    Permission = "approve_edits"
	PermMergeDuplicates Permission = "merge_duplicates"
	PermModerateContent Permission = "moderate_content"
	PermAdminActions    Permission = "admin_actions"
)

var everyone = []Tier{Newcomer, Contributor, Trusted, Expert, Curator, Moderator}

// permissions is the static allow-list. Each row is a superset of the row
// for any stricter permission.
var permissions = map[Permission][]Tier{
	PermVote:            everyone,
	PermSubmitItems:     everyone,
	PermProposeEdits:    everyone,
	PermVerifyItems:     {Contributor, Trusted, Expert, Curator, Moderator},
	PermUploadImages:    {Contributor, Trusted, Expert, Curator, Moderator},
	PermEditBasicFields: {Contributor, Trusted, Expert, Curator, Moderator},
	PermEditAllFields:   {Trusted, Expert, Curator, Moderator},
	PermApproveEdits:    {Expert, Curator, Moderator},
	PermMergeDuplicates: {Curator, Moderator},
	PermModerateContent: {Curator, Moderator},
	PermAdminActions:    {Moderator},
}

// ParsePermission validates a permission name.
func ParsePermission(s string) (Permission, error) {
	p := Permission(s)
	if _, ok := permissions[p]; !ok {
		return "", fmt.Errorf("%w: %q", common.ErrUnknownPermission, s)
	}
	return p, nil
}

// HasPermission reports whether tier may exercise p. Admins may do anything,
// whatever their tier. An unknown permission is a caller bug and yields
// ErrUnknownPermission instead of a silent deny.
func HasPermission(tier Tier, p Permission, isAdmin bool) (bool, error) {
	if isAdmin {
		return true, nil
	}
	allowed, ok := permissions[p]
	if !ok {
		return false, fmt.Errorf("%w: %q", common.ErrUnknownPermission, p)
	}
	return slices.Contains(allowed, tier), nil
}

// Require is HasPermission for call sites that want an error on deny.
func Require(tier Tier, p Permission, isAdmin bool) error {
	ok, err := HasPermission(tier, p, isAdmin)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s requires %s", common.ErrPermissionDenied, tier, p)
	}
	return nil
}

// Granted lists every permission tier (or an admin) holds, sorted by name.
func Granted(tier Tier, isAdmin bool) []Permission {
	out := []Permission{}
	for p, tiers := range permissions {
		if isAdmin || slices.Contains(tiers, tier) {
			out = append(out, p)
		}
	}
	slices.Sort(out)
	return out
}
