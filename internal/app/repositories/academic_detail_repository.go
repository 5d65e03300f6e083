package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusworks/studenttrack/internal/app/models"
	"github.com/campusworks/studenttrack/internal/pkg/logger"
)

// AcademicDetailRepository handles academic_details database operations
type AcademicDetailRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAcademicDetailRepository creates a new AcademicDetailRepository
func NewAcademicDetailRepository(db *pgxpool.Pool) *AcademicDetailRepository {
	return &AcademicDetailRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateTx inserts an academic details row inside tx, filling in its ID.
func (r *AcademicDetailRepository) CreateTx(ctx context.Context, tx pgx.Tx, detail *models.AcademicDetail) error {
	query := `
		INSERT INTO academic_details (student_id, college_name, department, graduation_year, cgpa, backlogs)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := tx.QueryRow(ctx, query,
		detail.StudentID,
		detail.CollegeName,
		detail.Department,
		detail.GraduationYear,
		detail.CGPA,
		detail.Backlogs,
	).Scan(&detail.ID)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", detail.StudentID).Msg("Error executing create academic details query")
		return fmt.Errorf("error creating academic details: %w", err)
	}

	return nil
}

// ListByStudentIDs loads academic rows for a batch of students in one query,
// keyed by student ID. Rows are ordered by id ascending, so index 0 is the
// "first" row the update merge targets.
func (r *AcademicDetailRepository) ListByStudentIDs(ctx context.Context, studentIDs []int64) (map[int64][]models.AcademicDetail, error) {
	result := make(map[int64][]models.AcademicDetail, len(studentIDs))
	if len(studentIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT id, student_id, college_name, department, graduation_year, cgpa, backlogs
		FROM academic_details
		WHERE student_id = ANY($1)
		ORDER BY id ASC
	`

	rows, err := r.db.Query(ctx, query, studentIDs)
	if err != nil {
		return nil, fmt.Errorf("error querying academic details: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var detail models.AcademicDetail
		if err := rows.Scan(
			&detail.ID,
			&detail.StudentID,
			&detail.CollegeName,
			&detail.Department,
			&detail.GraduationYear,
			&detail.CGPA,
			&detail.Backlogs,
		); err != nil {
			return nil, fmt.Errorf("error scanning academic details row: %w", err)
		}
		result[detail.StudentID] = append(result[detail.StudentID], detail)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating academic details rows: %w", err)
	}

	return result, nil
}

// ReplaceFirstTx overwrites every field of the student's first (lowest-id)
// academic row inside tx. Returns false without error when the student has
// no academic rows; the caller treats that as a no-op.
func (r *AcademicDetailRepository) ReplaceFirstTx(ctx context.Context, tx pgx.Tx, studentID int64, detail models.AcademicDetail) (bool, error) {
	query := `
		UPDATE academic_details
		SET college_name = $1, department = $2, graduation_year = $3, cgpa = $4, backlogs = $5
		WHERE id = (
			SELECT id FROM academic_details WHERE student_id = $6 ORDER BY id ASC LIMIT 1
		)
	`

	result, err := tx.Exec(ctx, query,
		detail.CollegeName,
		detail.Department,
		detail.GraduationYear,
		detail.CGPA,
		detail.Backlogs,
		studentID,
	)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing replace academic details query")
		return false, fmt.Errorf("error updating academic details: %w", err)
	}

	return result.RowsAffected() > 0, nil
}
