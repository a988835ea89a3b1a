package models

import "time"

// ExportResult describes a report artifact stored in the object store
type ExportResult struct {
	FileName    string    `json:"file_name"`
	ObjectKey   string    `json:"object_key"`
	URL         string    `json:"url"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	GeneratedAt time.Time `json:"generated_at"`
}
