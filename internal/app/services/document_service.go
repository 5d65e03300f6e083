package services

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/campusworks/studenttrack/internal/app/models"
	"github.com/campusworks/studenttrack/internal/pkg/filestorage"
)

// DocumentService tracks the relationship between students and their
// uploaded blobs. Blob storage itself is the filestorage collaborator.
type DocumentService interface {
	AttachDocument(ctx context.Context, studentID int64, docType, filename string, r io.Reader) (*models.Document, error)
	GetDocument(ctx context.Context, studentID, docID int64) (*models.Document, []byte, error)
	DeleteDocument(ctx context.Context, studentID, docID int64) error
}

type documentService struct {
	students  StudentStore
	documents DocumentStore
	storage   filestorage.Storage
	logger    zerolog.Logger
}

// NewDocumentService creates a new document service instance
func NewDocumentService(students StudentStore, documents DocumentStore, storage filestorage.Storage, logger zerolog.Logger) DocumentService {
	return &documentService{
		students:  students,
		documents: documents,
		storage:   storage,
		logger:    logger,
	}
}

// AttachDocument stores the blob and records a document row for the student.
// doc_type is not unique per student; repeated uploads of the same type
// coexist. A missing student yields apperrors.ErrStudentNotFound.
func (s *documentService) AttachDocument(ctx context.Context, studentID int64, docType, filename string, r io.Reader) (*models.Document, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	locator, err := s.storage.Store(r, filename)
	if err != nil {
		return nil, err
	}

	doc := &models.Document{
		StudentID: studentID,
		DocType:   docType,
		FilePath:  locator,
	}

	if err := s.documents.Create(ctx, doc); err != nil {
		// The row never existed, so the stored blob is unreferenced; drop it.
		if rmErr := s.storage.Remove(locator); rmErr != nil {
			s.logger.Warn().Err(rmErr).Str("locator", locator).Msg("Failed to remove blob after document insert failure")
		}
		return nil, err
	}

	s.logger.Info().Int64("studentID", studentID).Int64("documentID", doc.ID).Str("docType", docType).Msg("Document attached")
	return doc, nil
}

// GetDocument returns the document row and its blob content. A missing row
// yields apperrors.ErrDocumentNotFound; a row whose blob is gone yields
// apperrors.ErrBlobMissing so the boundary can report the two distinctly.
func (s *documentService) GetDocument(ctx context.Context, studentID, docID int64) (*models.Document, []byte, error) {
	doc, err := s.documents.GetForStudent(ctx, studentID, docID)
	if err != nil {
		return nil, nil, err
	}

	data, err := s.storage.Retrieve(doc.FilePath)
	if err != nil {
		return nil, nil, err
	}

	return doc, data, nil
}

// DeleteDocument removes a single document row and, best-effort, its blob.
func (s *documentService) DeleteDocument(ctx context.Context, studentID, docID int64) error {
	doc, err := s.documents.GetForStudent(ctx, studentID, docID)
	if err != nil {
		return err
	}

	if err := s.documents.Delete(ctx, studentID, docID); err != nil {
		return err
	}

	if err := s.storage.Remove(doc.FilePath); err != nil {
		s.logger.Warn().Err(err).Int64("documentID", docID).Str("locator", doc.FilePath).Msg("Failed to remove blob during document delete")
	}

	return nil
}
