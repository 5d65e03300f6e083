package services

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/campusworks/studenttrack/internal/app/models"
	"github.com/campusworks/studenttrack/internal/app/repositories"
	"github.com/campusworks/studenttrack/internal/db"
)

// The services accept narrow store interfaces rather than concrete
// repositories so that business rules can be exercised against fakes.

// TxRunner runs a function inside a database transaction.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// StudentStore is the slice of StudentRepository the services depend on.
type StudentStore interface {
	CreateTx(ctx context.Context, tx pgx.Tx, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	ExistsTx(ctx context.Context, tx pgx.Tx, id int64) (bool, error)
	List(ctx context.Context, skip, limit int) ([]models.Student, error)
	Search(ctx context.Context, filter repositories.StudentSearchFilter, skip, limit int) ([]models.Student, error)
	UpdateTx(ctx context.Context, tx pgx.Tx, id int64, patch repositories.StudentPatch) error
	DeleteTx(ctx context.Context, tx pgx.Tx, id int64) error
}

// AcademicDetailStore is the slice of AcademicDetailRepository the services depend on.
type AcademicDetailStore interface {
	CreateTx(ctx context.Context, tx pgx.Tx, detail *models.AcademicDetail) error
	ListByStudentIDs(ctx context.Context, studentIDs []int64) (map[int64][]models.AcademicDetail, error)
	ReplaceFirstTx(ctx context.Context, tx pgx.Tx, studentID int64, detail models.AcademicDetail) (bool, error)
}

// DocumentStore is the slice of DocumentRepository the services depend on.
type DocumentStore interface {
	Create(ctx context.Context, doc *models.Document) error
	GetForStudent(ctx context.Context, studentID, docID int64) (*models.Document, error)
	ListByStudentIDs(ctx context.Context, studentIDs []int64) (map[int64][]models.Document, error)
	Delete(ctx context.Context, studentID, docID int64) error
}
