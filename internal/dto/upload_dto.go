package dto

import "time"

// UploadResponse describes a stored file and its retrievable URL.
type UploadResponse struct {
	ID           uint      `json:"id"`
	OriginalName string    `json:"original_name"`
	FileType     string    `json:"file_type"`
	SizeBytes    int64     `json:"size_bytes"`
	Checksum     string    `json:"checksum"`
	URL          string    `json:"url"`
	CreatedAt    time.Time `json:"created_at"`
}
