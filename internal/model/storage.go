package model

import "time"

const (
	ObjectTypeFolder = "folder"
	ObjectTypeFile   = "file"
)

// StorageObject is a bucket entry: a folder (key prefix) or a file.
type StorageObject struct {
	Type        string     `json:"type"`
	Name        string     `json:"name"`
	Path        string     `json:"path"`
	Size        *int64     `json:"size"`
	MimeType    string     `json:"mimeType"`
	TimeCreated *time.Time `json:"timeCreated"`
	TimeUpdated *time.Time `json:"timeUpdated"`
}

// StorageListing is one page of a folder listing.
type StorageListing struct {
	Items       []StorageObject `json:"items"`
	CurrentPath string          `json:"currentPath"`
	HasMore     bool            `json:"hasMore"`
	TotalCount  int             `json:"totalCount"`
	Page        int             `json:"page"`
	Limit       int             `json:"limit"`
}
