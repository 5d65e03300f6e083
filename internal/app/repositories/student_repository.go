package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusworks/studenttrack/internal/app/models"
	"github.com/campusworks/studenttrack/internal/pkg/apperrors"
	"github.com/campusworks/studenttrack/internal/pkg/dberrors"
	"github.com/campusworks/studenttrack/internal/pkg/logger"
)

// emailUniqueConstraint is the unique constraint on students.email. Relying
// on the constraint instead of a pre-check query closes the race between
// concurrent creates with the same email: exactly one insert wins.
const emailUniqueConstraint = "students_email_key"

const studentColumns = "id, name, email, phone, gender, created_at"

// StudentSearchFilter holds the optional, AND-combined search criteria.
// College and Department match case-insensitively as substrings; Year matches
// exactly.
type StudentSearchFilter struct {
	College    *string
	Year       *int
	Department *string
}

// StudentPatch carries a partial student update. Nil fields are left
// untouched; non-nil fields overwrite the stored value.
type StudentPatch struct {
	Name   *string
	Email  *string
	Phone  *string
	Gender *string
}

// IsEmpty reports whether the patch sets no field at all.
func (p StudentPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil && p.Gender == nil
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateTx inserts a new student inside tx, filling in ID and CreatedAt.
// An existing row with the same email yields apperrors.ErrDuplicateEmail.
func (r *StudentRepository) CreateTx(ctx context.Context, tx pgx.Tx, student *models.Student) error {
	query := `
		INSERT INTO students (name, email, phone, gender)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := tx.QueryRow(ctx, query, student.Name, student.Email, student.Phone, student.Gender).
		Scan(&student.ID, &student.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, emailUniqueConstraint) {
			logger.Warn().Str("email", student.Email).Msg("Attempted to create student with duplicate email")
			return apperrors.ErrDuplicateEmail
		}
		logger.Error().Err(err).Str("email", student.Email).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a bare student row (no children) by ID.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	var student models.Student
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&student.ID, &student.Name, &student.Email, &student.Phone, &student.Gender, &student.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// ExistsTx checks inside tx whether a student row exists.
func (r *StudentRepository) ExistsTx(ctx context.Context, tx pgx.Tx, id int64) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM students WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking student existence: %w", err)
	}
	return exists, nil
}

// List returns up to limit bare student rows after skipping skip rows.
// Results are ordered by id ascending so that successive pages with the same
// parameters are disjoint and contiguous absent concurrent writes.
func (r *StudentRepository) List(ctx context.Context, skip, limit int) ([]models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns).
		From("students").
		OrderBy("id ASC").
		Offset(uint64(skip)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	return r.queryStudents(ctx, sql, args)
}

// Search returns bare student rows matching the filter, paginated like List.
// The filter runs as an inner join against academic_details, so a student
// with no academic rows never matches.
func (r *StudentRepository) Search(ctx context.Context, filter StudentSearchFilter, skip, limit int) ([]models.Student, error) {
	sql, args, err := buildSearchQuery(filter, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to build search students query: %w", err)
	}

	return r.queryStudents(ctx, sql, args)
}

// buildSearchQuery composes the search statement. Kept separate so the filter
// composition is testable without a database.
func buildSearchQuery(filter StudentSearchFilter, skip, limit int) (string, []interface{}, error) {
	query := squirrel.Select("DISTINCT s.id, s.name, s.email, s.phone, s.gender, s.created_at").
		From("students s").
		Join("academic_details a ON a.student_id = s.id").
		PlaceholderFormat(squirrel.Dollar)

	if filter.College != nil {
		query = query.Where("a.college_name ILIKE ?", "%"+*filter.College+"%")
	}
	if filter.Year != nil {
		query = query.Where("a.graduation_year = ?", *filter.Year)
	}
	if filter.Department != nil {
		query = query.Where("a.department ILIKE ?", "%"+*filter.Department+"%")
	}

	return query.OrderBy("s.id ASC").
		Offset(uint64(skip)).
		Limit(uint64(limit)).
		ToSql()
}

func (r *StudentRepository) queryStudents(ctx context.Context, sql string, args []interface{}) ([]models.Student, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing students query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(
			&student.ID, &student.Name, &student.Email, &student.Phone, &student.Gender, &student.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}

// UpdateTx applies a partial update inside tx. Fields the patch leaves nil
// are not written at all. An empty patch is a no-op success. An email
// collision yields apperrors.ErrDuplicateEmail, a missing student
// apperrors.ErrStudentNotFound.
func (r *StudentRepository) UpdateTx(ctx context.Context, tx pgx.Tx, id int64, patch StudentPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	sql, args, err := buildPatchQuery(id, patch)
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	result, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, emailUniqueConstraint) {
			logger.Warn().Int64("studentID", id).Msg("Attempted to update student to duplicate email")
			return apperrors.ErrDuplicateEmail
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// buildPatchQuery builds the dynamic SET list for a non-empty patch.
func buildPatchQuery(id int64, patch StudentPatch) (string, []interface{}, error) {
	query := squirrel.Update("students").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	if patch.Name != nil {
		query = query.Set("name", *patch.Name)
	}
	if patch.Email != nil {
		query = query.Set("email", *patch.Email)
	}
	if patch.Phone != nil {
		query = query.Set("phone", *patch.Phone)
	}
	if patch.Gender != nil {
		query = query.Set("gender", *patch.Gender)
	}

	return query.ToSql()
}

// DeleteTx removes a student row inside tx. The academic_details and
// documents foreign keys are declared ON DELETE CASCADE, so the children go
// with it in the same transaction.
func (r *StudentRepository) DeleteTx(ctx context.Context, tx pgx.Tx, id int64) error {
	result, err := tx.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error executing delete student query")
		return fmt.Errorf("error deleting student: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}
