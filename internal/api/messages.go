// Package api is the wire contract between the RagVault server and its
// clients: message types, the JSON codec they travel in and the
// ragvault.v1.RagVault service descriptor.
package api

import (
	"time"

	"github.com/dmitrijs2005/ragvault/internal/vault"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	UserID string `json:"user_id"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse is returned by Login and RefreshToken.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type PingResponse struct {
	Status string `json:"status"`
}

type KarmaEvent struct {
	Delta     int       `json:"delta"`
	Reason    string    `json:"reason"`
	RefType   string    `json:"ref_type,omitempty"`
	RefID     string    `json:"ref_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileResponse describes the caller: karma standing, what the tier
// unlocks and the latest karma ledger entries.
type ProfileResponse struct {
	UserID      string       `json:"user_id"`
	Username    string       `json:"username"`
	Karma       int          `json:"karma"`
	Tier        string       `json:"tier"`
	NextTier    string       `json:"next_tier,omitempty"`
	ToNext      int          `json:"to_next,omitempty"`
	IsAdmin     bool         `json:"is_admin,omitempty"`
	Permissions []string     `json:"permissions"`
	Events      []KarmaEvent `json:"events"`
}

// ItemView is an item plus a short-lived display URL for its image.
type ItemView struct {
	Item     vault.Item `json:"item"`
	ImageURL string     `json:"image_url,omitempty"`
}

type BrowseVaultRequest struct {
	Offset  int           `json:"offset"`
	Filters vault.Filters `json:"filters"`
}

type BrowseVaultResponse struct {
	Items      []ItemView `json:"items"`
	TotalCount int        `json:"total_count"`
	HasMore    bool       `json:"has_more"`
	NextOffset int        `json:"next_offset"`
}

type GetItemRequest struct {
	ID string `json:"id"`
}

// SubmitItemRequest announces an image by setting ImageContentType
// (image/jpeg, image/png or image/webp).
type SubmitItemRequest struct {
	Subject          string   `json:"subject"`
	Brand            string   `json:"brand,omitempty"`
	Title            string   `json:"title,omitempty"`
	Category         string   `json:"category"`
	Year             string   `json:"year,omitempty"`
	Tags             []string `json:"tags,omitempty"`
	StitchType       string   `json:"stitch_type,omitempty"`
	Origin           string   `json:"origin,omitempty"`
	ImageContentType string   `json:"image_content_type,omitempty"`
}

// ImageUpload tells the client where to PUT the announced image.
type ImageUpload struct {
	ItemID      string    `json:"item_id"`
	StorageKey  string    `json:"storage_key"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type SubmitItemResponse struct {
	Item   ItemView     `json:"item"`
	Upload *ImageUpload `json:"upload,omitempty"`
}

// RequestImageUploadRequest asks for a fresh presigned PUT for an existing
// item, replacing any upload that never completed.
type RequestImageUploadRequest struct {
	ItemID      string `json:"item_id"`
	ContentType string `json:"content_type"`
}

type ItemRequest struct {
	ItemID string `json:"item_id"`
}

type VerifyItemResponse struct {
	VerificationCount int  `json:"verification_count"`
	Verified          bool `json:"verified"`
}

type ProposeEditRequest struct {
	ItemID  string            `json:"item_id"`
	Fields  map[string]string `json:"fields"`
	Comment string            `json:"comment,omitempty"`
}

type EditProposal struct {
	ID         string            `json:"id"`
	ItemID     string            `json:"item_id"`
	ProposerID string            `json:"proposer_id"`
	Fields     map[string]string `json:"fields"`
	Comment    string            `json:"comment,omitempty"`
	Status     string            `json:"status"`
	ReviewerID string            `json:"reviewer_id,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

type ReviewEditRequest struct {
	EditID  string `json:"edit_id"`
	Approve bool   `json:"approve"`
}

type ListPendingEditsRequest struct {
	ItemID string `json:"item_id,omitempty"`
}

type ListPendingEditsResponse struct {
	Edits []EditProposal `json:"edits"`
}

type ListCollectionResponse struct {
	Items []ItemView `json:"items"`
}
