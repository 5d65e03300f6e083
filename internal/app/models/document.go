package models

import "time"

// Common document type tags. doc_type is free-form; these are the values the
// upload endpoint produces.
const (
	DocTypeResume  = "resume"
	DocTypeIDProof = "id_proof"
)

// Document references an uploaded file belonging to a student. FilePath is an
// opaque locator into blob storage; the row and its backing blob are removed
// together when the owning student is deleted.
type Document struct {
	ID         int64     `json:"id" db:"id" example:"1"`
	StudentID  int64     `json:"studentId" db:"student_id" example:"1"`
	DocType    string    `json:"docType" db:"doc_type" example:"resume"`
	FilePath   string    `json:"filePath" db:"file_path"`
	UploadedAt time.Time `json:"uploadedAt" db:"uploaded_at"`
}
