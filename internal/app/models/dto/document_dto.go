package dto

// UploadedFileInfo describes one stored file in an upload response
type UploadedFileInfo struct {
	DocumentID int64  `json:"documentId" example:"12"`
	DocType    string `json:"docType" example:"resume"`
	Filename   string `json:"filename" example:"resume.pdf"`
}

// UploadDocumentsResponse is returned after a multipart upload
type UploadDocumentsResponse struct {
	Message string             `json:"message" example:"Files uploaded successfully"`
	Files   []UploadedFileInfo `json:"files"`
}
