package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/campusworks/studenttrack/internal/app/models/dto"
	"github.com/campusworks/studenttrack/internal/app/repositories"
	"github.com/campusworks/studenttrack/internal/pkg/apperrors"
)

type serviceFixture struct {
	students  *fakeStudentStore
	academics *fakeAcademicStore
	documents *fakeDocumentStore
	storage   *fakeStorage
	service   StudentService
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		students:  newFakeStudentStore(),
		academics: newFakeAcademicStore(),
		documents: newFakeDocumentStore(),
		storage:   newFakeStorage(),
	}
	f.service = NewStudentService(&fakeTxRunner{}, f.students, f.academics, f.documents, f.storage, zerolog.Nop())
	return f
}

func createRequest(name, email string) *dto.CreateStudentRequest {
	return &dto.CreateStudentRequest{
		Name:   name,
		Email:  email,
		Phone:  "+91-9876543210",
		Gender: "Male",
		AcademicDetails: dto.AcademicDetailsRequest{
			CollegeName:    "Indian Institute of Technology Delhi",
			Department:     "Computer Science",
			GraduationYear: 2024,
			CGPA:           8.5,
		},
	}
}

func TestCreateStudent(t *testing.T) {
	f := newServiceFixture()

	student, err := f.service.CreateStudent(context.Background(), createRequest("Rahul Sharma", "rahul@email.com"))
	require.NoError(t, err)
	require.NotZero(t, student.ID)
	require.Len(t, student.AcademicDetails, 1)
	require.Equal(t, student.ID, student.AcademicDetails[0].StudentID)
	require.Equal(t, "Indian Institute of Technology Delhi", student.AcademicDetails[0].CollegeName)
	require.NotNil(t, student.Documents)
	require.Empty(t, student.Documents)
}

func TestCreateStudentDuplicateEmail(t *testing.T) {
	f := newServiceFixture()

	_, err := f.service.CreateStudent(context.Background(), createRequest("Rahul Sharma", "rahul@email.com"))
	require.NoError(t, err)

	_, err = f.service.CreateStudent(context.Background(), createRequest("Someone Else", "rahul@email.com"))
	require.ErrorIs(t, err, apperrors.ErrDuplicateEmail)
}

func TestGetStudentNotFound(t *testing.T) {
	f := newServiceFixture()

	_, err := f.service.GetStudent(context.Background(), 42)
	require.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestGetStudentPopulatesChildren(t *testing.T) {
	f := newServiceFixture()

	created, err := f.service.CreateStudent(context.Background(), createRequest("Rahul Sharma", "rahul@email.com"))
	require.NoError(t, err)

	got, err := f.service.GetStudent(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, got.AcademicDetails, 1)
	require.NotNil(t, got.Documents)
	require.Empty(t, got.Documents)
}

func TestListStudentsRejectsBadWindow(t *testing.T) {
	f := newServiceFixture()

	cases := []struct {
		name  string
		skip  int
		limit int
	}{
		{"negative skip", -1, 10},
		{"zero limit", 0, 0},
		{"limit above maximum", 0, 101},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.ListStudents(context.Background(), tc.skip, tc.limit)
			require.ErrorIs(t, err, apperrors.ErrInvalidParameter)
		})
	}
}

func TestListStudentsEmptyPageIsNotNil(t *testing.T) {
	f := newServiceFixture()

	students, err := f.service.ListStudents(context.Background(), 0, 10)
	require.NoError(t, err)
	require.NotNil(t, students)
	require.Empty(t, students)
}

func TestListStudentsPaginates(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	emails := []string{"a@email.com", "b@email.com", "c@email.com"}
	for _, email := range emails {
		_, err := f.service.CreateStudent(ctx, createRequest("Student", email))
		require.NoError(t, err)
	}

	page, err := f.service.ListStudents(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Equal(t, "b@email.com", page[0].Email)
	require.Len(t, page[0].AcademicDetails, 1)
}

func TestSearchStudentsForwardsFilter(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	_, err := f.service.CreateStudent(ctx, createRequest("Rahul Sharma", "rahul@email.com"))
	require.NoError(t, err)

	college := "IIT"
	year := 2024
	filter := repositories.StudentSearchFilter{College: &college, Year: &year}

	_, err = f.service.SearchStudents(ctx, filter, 0, 10)
	require.NoError(t, err)
	require.Len(t, f.students.searchCalls, 1)
	require.Equal(t, filter, f.students.searchCalls[0])
}

func TestSearchStudentsRejectsBadWindow(t *testing.T) {
	f := newServiceFixture()

	_, err := f.service.SearchStudents(context.Background(), repositories.StudentSearchFilter{}, -1, 10)
	require.ErrorIs(t, err, apperrors.ErrInvalidParameter)
	require.Empty(t, f.students.searchCalls)
}

func TestUpdateStudentPartialPatch(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	created, err := f.service.CreateStudent(ctx, createRequest("Rahul Sharma", "rahul@email.com"))
	require.NoError(t, err)

	newName := "Rahul S"
	updated, err := f.service.UpdateStudent(ctx, created.ID, &dto.UpdateStudentRequest{Name: &newName})
	require.NoError(t, err)
	require.Equal(t, "Rahul S", updated.Name)
	require.Equal(t, "rahul@email.com", updated.Email)
	require.Equal(t, created.Phone, updated.Phone)
}

func TestUpdateStudentNotFound(t *testing.T) {
	f := newServiceFixture()

	name := "Nobody"
	_, err := f.service.UpdateStudent(context.Background(), 42, &dto.UpdateStudentRequest{Name: &name})
	require.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestUpdateStudentEmailCollision(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	_, err := f.service.CreateStudent(ctx, createRequest("First", "first@email.com"))
	require.NoError(t, err)
	second, err := f.service.CreateStudent(ctx, createRequest("Second", "second@email.com"))
	require.NoError(t, err)

	taken := "first@email.com"
	_, err = f.service.UpdateStudent(ctx, second.ID, &dto.UpdateStudentRequest{Email: &taken})
	require.ErrorIs(t, err, apperrors.ErrDuplicateEmail)
}

func TestUpdateStudentReplacesAcademicDetails(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	created, err := f.service.CreateStudent(ctx, createRequest("Rahul Sharma", "rahul@email.com"))
	require.NoError(t, err)

	updated, err := f.service.UpdateStudent(ctx, created.ID, &dto.UpdateStudentRequest{
		AcademicDetails: &dto.AcademicDetailsRequest{
			CollegeName:    "Delhi University",
			Department:     "Electronics",
			GraduationYear: 2026,
			CGPA:           7.2,
			Backlogs:       2,
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.AcademicDetails, 1)
	require.Equal(t, "Delhi University", updated.AcademicDetails[0].CollegeName)
	require.Equal(t, 2026, updated.AcademicDetails[0].GraduationYear)
	require.Equal(t, 2, updated.AcademicDetails[0].Backlogs)
}

func TestUpdateStudentAcademicNoRowsIsNoOp(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	// Student created without going through the service, so no academic rows.
	created, err := f.service.CreateStudent(ctx, createRequest("Rahul Sharma", "rahul@email.com"))
	require.NoError(t, err)
	delete(f.academics.details, created.ID)

	updated, err := f.service.UpdateStudent(ctx, created.ID, &dto.UpdateStudentRequest{
		AcademicDetails: &dto.AcademicDetailsRequest{
			CollegeName:    "Delhi University",
			Department:     "Electronics",
			GraduationYear: 2026,
			CGPA:           7.2,
		},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.AcademicDetails)
	require.Empty(t, updated.AcademicDetails)
}

func TestUpdateStudentEmptyPatchSucceeds(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	created, err := f.service.CreateStudent(ctx, createRequest("Rahul Sharma", "rahul@email.com"))
	require.NoError(t, err)

	updated, err := f.service.UpdateStudent(ctx, created.ID, &dto.UpdateStudentRequest{})
	require.NoError(t, err)
	require.Equal(t, created.Name, updated.Name)
	require.Equal(t, created.Email, updated.Email)
}

func TestDeleteStudentRemovesBlobs(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	created, err := f.service.CreateStudent(ctx, createRequest("Rahul Sharma", "rahul@email.com"))
	require.NoError(t, err)

	docService := NewDocumentService(f.students, f.documents, f.storage, zerolog.Nop())
	_, err = docService.AttachDocument(ctx, created.ID, "resume", "resume.pdf", bytesReader("resume content"))
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteStudent(ctx, created.ID))
	require.Empty(t, f.storage.blobs)

	_, err = f.service.GetStudent(ctx, created.ID)
	require.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestDeleteStudentToleratesMissingBlob(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	created, err := f.service.CreateStudent(ctx, createRequest("Rahul Sharma", "rahul@email.com"))
	require.NoError(t, err)

	docService := NewDocumentService(f.students, f.documents, f.storage, zerolog.Nop())
	_, err = docService.AttachDocument(ctx, created.ID, "resume", "resume.pdf", bytesReader("resume content"))
	require.NoError(t, err)

	f.storage.removeErr = errStoreDown

	require.NoError(t, f.service.DeleteStudent(ctx, created.ID))
}

func TestDeleteStudentNotFound(t *testing.T) {
	f := newServiceFixture()

	err := f.service.DeleteStudent(context.Background(), 42)
	require.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}
