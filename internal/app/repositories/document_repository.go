package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusworks/studenttrack/internal/app/models"
	"github.com/campusworks/studenttrack/internal/pkg/apperrors"
	"github.com/campusworks/studenttrack/internal/pkg/logger"
)

const documentColumns = "id, student_id, doc_type, file_path, uploaded_at"

// DocumentRepository handles database operations for document references
type DocumentRepository struct {
	db *pgxpool.Pool
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create inserts a document row, filling in ID and UploadedAt. Multiple
// documents of the same doc_type may coexist for one student.
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := `
		INSERT INTO documents (student_id, doc_type, file_path)
		VALUES ($1, $2, $3)
		RETURNING id, uploaded_at
	`

	err := r.db.QueryRow(ctx, query, doc.StudentID, doc.DocType, doc.FilePath).
		Scan(&doc.ID, &doc.UploadedAt)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", doc.StudentID).Str("docType", doc.DocType).Msg("Error executing create document query")
		return fmt.Errorf("error creating document: %w", err)
	}

	return nil
}

// GetForStudent retrieves a document by ID, scoped to its owning student.
// A row owned by a different student is indistinguishable from no row.
func (r *DocumentRepository) GetForStudent(ctx context.Context, studentID, docID int64) (*models.Document, error) {
	var doc models.Document
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1 AND student_id = $2`

	err := r.db.QueryRow(ctx, query, docID, studentID).Scan(
		&doc.ID, &doc.StudentID, &doc.DocType, &doc.FilePath, &doc.UploadedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDocumentNotFound
		}
		logger.Error().Err(err).Int64("documentID", docID).Msg("Error scanning document row")
		return nil, fmt.Errorf("error retrieving document: %w", err)
	}

	return &doc, nil
}

// ListByStudentIDs loads document rows for a batch of students in one query,
// keyed by student ID and ordered by id ascending.
func (r *DocumentRepository) ListByStudentIDs(ctx context.Context, studentIDs []int64) (map[int64][]models.Document, error) {
	result := make(map[int64][]models.Document, len(studentIDs))
	if len(studentIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE student_id = ANY($1)
		ORDER BY id ASC
	`

	rows, err := r.db.Query(ctx, query, studentIDs)
	if err != nil {
		return nil, fmt.Errorf("error querying documents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var doc models.Document
		if err := rows.Scan(
			&doc.ID, &doc.StudentID, &doc.DocType, &doc.FilePath, &doc.UploadedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning document row: %w", err)
		}
		result[doc.StudentID] = append(result[doc.StudentID], doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", err)
	}

	return result, nil
}

// Delete removes a single document row scoped to its owning student.
func (r *DocumentRepository) Delete(ctx context.Context, studentID, docID int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM documents WHERE id = $1 AND student_id = $2`, docID, studentID)
	if err != nil {
		logger.Error().Err(err).Int64("documentID", docID).Msg("Error executing delete document query")
		return fmt.Errorf("error deleting document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrDocumentNotFound
	}

	return nil
}
