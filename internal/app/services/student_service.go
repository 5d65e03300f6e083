package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/campusworks/studenttrack/internal/app/models"
	"github.com/campusworks/studenttrack/internal/app/models/dto"
	"github.com/campusworks/studenttrack/internal/app/repositories"
	"github.com/campusworks/studenttrack/internal/pkg/apperrors"
	"github.com/campusworks/studenttrack/internal/pkg/filestorage"
	"github.com/campusworks/studenttrack/internal/pkg/helpers"
)

// StudentService handles student-related operations
type StudentService interface {
	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error)
	GetStudent(ctx context.Context, id int64) (*models.Student, error)
	ListStudents(ctx context.Context, skip, limit int) ([]models.Student, error)
	SearchStudents(ctx context.Context, filter repositories.StudentSearchFilter, skip, limit int) ([]models.Student, error)
	UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error)
	DeleteStudent(ctx context.Context, id int64) error
}

type studentService struct {
	db        TxRunner
	students  StudentStore
	academics AcademicDetailStore
	documents DocumentStore
	storage   filestorage.Storage
	logger    zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(
	db TxRunner,
	students StudentStore,
	academics AcademicDetailStore,
	documents DocumentStore,
	storage filestorage.Storage,
	logger zerolog.Logger,
) StudentService {
	return &studentService{
		db:        db,
		students:  students,
		academics: academics,
		documents: documents,
		storage:   storage,
		logger:    logger,
	}
}

// CreateStudent creates a student together with its single academic details
// row in one transaction: no caller can ever observe the student without its
// academics. Duplicate emails surface as apperrors.ErrDuplicateEmail from the
// storage-layer unique constraint.
func (s *studentService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	student := &models.Student{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Gender: req.Gender,
	}
	detail := &models.AcademicDetail{
		CollegeName:    req.AcademicDetails.CollegeName,
		Department:     req.AcademicDetails.Department,
		GraduationYear: req.AcademicDetails.GraduationYear,
		CGPA:           req.AcademicDetails.CGPA,
		Backlogs:       req.AcademicDetails.Backlogs,
	}

	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.students.CreateTx(ctx, tx, student); err != nil {
			return err
		}
		detail.StudentID = student.ID
		return s.academics.CreateTx(ctx, tx, detail)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentID", student.ID).Str("email", student.Email).Msg("Student created")

	student.AcademicDetails = []models.AcademicDetail{*detail}
	student.Documents = []models.Document{}
	return student, nil
}

// GetStudent returns the student with its academic and document lists
// eagerly populated.
func (s *studentService) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	populated, err := s.populate(ctx, []models.Student{*student})
	if err != nil {
		return nil, err
	}

	return &populated[0], nil
}

// ListStudents returns a page of fully populated students ordered by id
// ascending. skip and limit outside their ranges are rejected, not clamped.
func (s *studentService) ListStudents(ctx context.Context, skip, limit int) ([]models.Student, error) {
	if err := helpers.ValidateSkipLimit(skip, limit); err != nil {
		return nil, err
	}

	students, err := s.students.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}

	return s.populate(ctx, students)
}

// SearchStudents returns a page of fully populated students whose academics
// satisfy the filter. Pagination semantics match ListStudents.
func (s *studentService) SearchStudents(ctx context.Context, filter repositories.StudentSearchFilter, skip, limit int) ([]models.Student, error) {
	if err := helpers.ValidateSkipLimit(skip, limit); err != nil {
		return nil, err
	}

	students, err := s.students.Search(ctx, filter, skip, limit)
	if err != nil {
		return nil, err
	}

	return s.populate(ctx, students)
}

// UpdateStudent applies a partial update in one transaction. Omitted student
// fields are left untouched. A present academic sub-object replaces the first
// academic row in full; if the student has no academic rows, that part is a
// silent no-op.
func (s *studentService) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	patch := repositories.StudentPatch{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Gender: req.Gender,
	}

	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		exists, err := s.students.ExistsTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.ErrStudentNotFound
		}

		if err := s.students.UpdateTx(ctx, tx, id, patch); err != nil {
			return err
		}

		if req.AcademicDetails != nil {
			detail := models.AcademicDetail{
				CollegeName:    req.AcademicDetails.CollegeName,
				Department:     req.AcademicDetails.Department,
				GraduationYear: req.AcademicDetails.GraduationYear,
				CGPA:           req.AcademicDetails.CGPA,
				Backlogs:       req.AcademicDetails.Backlogs,
			}
			replaced, err := s.academics.ReplaceFirstTx(ctx, tx, id, detail)
			if err != nil {
				return err
			}
			if !replaced {
				s.logger.Debug().Int64("studentID", id).Msg("Academic update skipped, student has no academic rows")
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetStudent(ctx, id)
}

// DeleteStudent removes a student. The row delete runs in one transaction and
// cascades to academic_details and documents; the backing blobs are removed
// afterwards, best-effort, so a missing blob can never abort the delete.
func (s *studentService) DeleteStudent(ctx context.Context, id int64) error {
	docsByStudent, err := s.documents.ListByStudentIDs(ctx, []int64{id})
	if err != nil {
		return fmt.Errorf("error loading documents before delete: %w", err)
	}

	err = s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.students.DeleteTx(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	for _, doc := range docsByStudent[id] {
		if err := s.storage.Remove(doc.FilePath); err != nil {
			s.logger.Warn().Err(err).Int64("documentID", doc.ID).Str("locator", doc.FilePath).Msg("Failed to remove blob during student delete")
		}
	}

	s.logger.Info().Int64("studentID", id).Int("documents", len(docsByStudent[id])).Msg("Student deleted")
	return nil
}

// populate stitches academic and document lists onto a batch of students in
// two queries. Lists are always non-nil so responses serialize as [] rather
// than null.
func (s *studentService) populate(ctx context.Context, students []models.Student) ([]models.Student, error) {
	if len(students) == 0 {
		return []models.Student{}, nil
	}

	ids := make([]int64, len(students))
	for i, student := range students {
		ids[i] = student.ID
	}

	academics, err := s.academics.ListByStudentIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	documents, err := s.documents.ListByStudentIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range students {
		students[i].AcademicDetails = academics[students[i].ID]
		if students[i].AcademicDetails == nil {
			students[i].AcademicDetails = []models.AcademicDetail{}
		}
		students[i].Documents = documents[students[i].ID]
		if students[i].Documents == nil {
			students[i].Documents = []models.Document{}
		}
	}

	return students, nil
}
