package models

import "time"

// ImageUploadTask instructs the client to PUT an image to a presigned URL.
// The item's image key is only published once the upload is confirmed.
type ImageUploadTask struct {
	ItemID      string
	StorageKey  string
	URL         string
	ContentType string
	ExpiresAt   time.Time
}
