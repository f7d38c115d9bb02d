package models

import "time"

// FileAttachment is metadata for a file referenced by messages, tasks and
// projects. The transfer pipeline itself lives outside this service; only
// the descriptor is stored.
type FileAttachment struct {
	ID         string    `bson:"id" json:"id"`
	Name       string    `bson:"name" json:"name"`
	Type       string    `bson:"type" json:"type"`
	Size       int64     `bson:"size" json:"size"`
	URL        string    `bson:"url" json:"url"`
	UploadedBy string    `bson:"uploaded_by" json:"uploadedBy"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}
