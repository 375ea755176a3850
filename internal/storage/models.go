package storage

import (
	"fmt"
	"time"
)

// Status is the processing state of an uploaded document.
type Status string

const (
	StatusUploaded   Status = "uploaded"
	StatusProcessing Status = "processing"
	StatusProcessed  Status = "processed"
	StatusError      Status = "error"
)

// Terminal reports whether no further transition is allowed from s.
func (s Status) Terminal() bool {
	return s == StatusProcessed || s == StatusError
}

// DocumentRecord is the persisted metadata of one uploaded document.
type DocumentRecord struct {
	ID               string    `json:"id"`
	OriginalName     string    `json:"original_name"`
	UploadedAt       time.Time `json:"uploaded_at"`
	LastAccessedAt   time.Time `json:"last_accessed_at"`
	SizeBytes        int64     `json:"size_bytes"`
	Status           Status    `json:"status"`
	ChunkCount       int       `json:"chunk_count"`
	ProcessingErrors []string  `json:"processing_errors"`
	// VectorPrefix is shared by every vector id derived from this document.
	VectorPrefix string `json:"vector_prefix"`
}

// VectorPrefixFor returns the vector id prefix of a document.
func VectorPrefixFor(id string) string {
	return fmt.Sprintf("%s_chunk_", id)
}

// RecordUpdate is a partial update. Nil fields are left untouched.
type RecordUpdate struct {
	Status       *Status
	ChunkCount   *int
	AppendErrors []string
}

// apply mutates rec in place and refreshes LastAccessedAt.
func (u RecordUpdate) apply(rec *DocumentRecord, now time.Time) {
	if u.Status != nil {
		rec.Status = *u.Status
	}
	if u.ChunkCount != nil {
		rec.ChunkCount = *u.ChunkCount
	}
	if len(u.AppendErrors) > 0 {
		rec.ProcessingErrors = append(rec.ProcessingErrors, u.AppendErrors...)
	}
	if rec.ProcessingErrors == nil {
		rec.ProcessingErrors = []string{}
	}
	rec.LastAccessedAt = now
}
