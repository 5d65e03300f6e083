package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/campusworks/studenttrack/internal/app/models"
	"github.com/campusworks/studenttrack/internal/app/repositories"
	"github.com/campusworks/studenttrack/internal/db"
	"github.com/campusworks/studenttrack/internal/pkg/apperrors"
)

// In-memory fakes standing in for the pgx-backed repositories. The fake
// transaction runner passes a nil pgx.Tx; the fakes never touch it.

type fakeTxRunner struct {
	beginErr error
}

func (f *fakeTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	if f.beginErr != nil {
		return f.beginErr
	}
	return fn(ctx, nil)
}

type fakeStudentStore struct {
	students map[int64]models.Student
	nextID   int64

	searchCalls []repositories.StudentSearchFilter
	listErr     error
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: map[int64]models.Student{}, nextID: 1}
}

func (f *fakeStudentStore) CreateTx(ctx context.Context, tx pgx.Tx, student *models.Student) error {
	for _, existing := range f.students {
		if existing.Email == student.Email {
			return apperrors.ErrDuplicateEmail
		}
	}
	student.ID = f.nextID
	student.CreatedAt = time.Now()
	f.nextID++
	f.students[student.ID] = *student
	return nil
}

func (f *fakeStudentStore) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	student, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return &student, nil
}

func (f *fakeStudentStore) ExistsTx(ctx context.Context, tx pgx.Tx, id int64) (bool, error) {
	_, ok := f.students[id]
	return ok, nil
}

func (f *fakeStudentStore) List(ctx context.Context, skip, limit int) ([]models.Student, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Student
	for id := int64(1); id < f.nextID; id++ {
		if student, ok := f.students[id]; ok {
			out = append(out, student)
		}
	}
	if skip >= len(out) {
		return nil, nil
	}
	out = out[skip:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStudentStore) Search(ctx context.Context, filter repositories.StudentSearchFilter, skip, limit int) ([]models.Student, error) {
	f.searchCalls = append(f.searchCalls, filter)
	return f.List(ctx, skip, limit)
}

func (f *fakeStudentStore) UpdateTx(ctx context.Context, tx pgx.Tx, id int64, patch repositories.StudentPatch) error {
	student, ok := f.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	if patch.Email != nil {
		for otherID, other := range f.students {
			if otherID != id && other.Email == *patch.Email {
				return apperrors.ErrDuplicateEmail
			}
		}
		student.Email = *patch.Email
	}
	if patch.Name != nil {
		student.Name = *patch.Name
	}
	if patch.Phone != nil {
		student.Phone = *patch.Phone
	}
	if patch.Gender != nil {
		student.Gender = *patch.Gender
	}
	f.students[id] = student
	return nil
}

func (f *fakeStudentStore) DeleteTx(ctx context.Context, tx pgx.Tx, id int64) error {
	if _, ok := f.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(f.students, id)
	return nil
}

type fakeAcademicStore struct {
	details map[int64][]models.AcademicDetail
	nextID  int64
}

func newFakeAcademicStore() *fakeAcademicStore {
	return &fakeAcademicStore{details: map[int64][]models.AcademicDetail{}, nextID: 1}
}

func (f *fakeAcademicStore) CreateTx(ctx context.Context, tx pgx.Tx, detail *models.AcademicDetail) error {
	detail.ID = f.nextID
	f.nextID++
	f.details[detail.StudentID] = append(f.details[detail.StudentID], *detail)
	return nil
}

func (f *fakeAcademicStore) ListByStudentIDs(ctx context.Context, studentIDs []int64) (map[int64][]models.AcademicDetail, error) {
	out := map[int64][]models.AcademicDetail{}
	for _, id := range studentIDs {
		if rows, ok := f.details[id]; ok {
			out[id] = rows
		}
	}
	return out, nil
}

func (f *fakeAcademicStore) ReplaceFirstTx(ctx context.Context, tx pgx.Tx, studentID int64, detail models.AcademicDetail) (bool, error) {
	rows, ok := f.details[studentID]
	if !ok || len(rows) == 0 {
		return false, nil
	}
	detail.ID = rows[0].ID
	detail.StudentID = studentID
	rows[0] = detail
	return true, nil
}

type fakeDocumentStore struct {
	documents map[int64][]models.Document
	nextID    int64
	createErr error
}

func newFakeDocumentStore() *fakeDocumentStore {
	return &fakeDocumentStore{documents: map[int64][]models.Document{}, nextID: 1}
}

func (f *fakeDocumentStore) Create(ctx context.Context, doc *models.Document) error {
	if f.createErr != nil {
		return f.createErr
	}
	doc.ID = f.nextID
	doc.UploadedAt = time.Now()
	f.nextID++
	f.documents[doc.StudentID] = append(f.documents[doc.StudentID], *doc)
	return nil
}

func (f *fakeDocumentStore) GetForStudent(ctx context.Context, studentID, docID int64) (*models.Document, error) {
	for _, doc := range f.documents[studentID] {
		if doc.ID == docID {
			return &doc, nil
		}
	}
	return nil, apperrors.ErrDocumentNotFound
}

func (f *fakeDocumentStore) ListByStudentIDs(ctx context.Context, studentIDs []int64) (map[int64][]models.Document, error) {
	out := map[int64][]models.Document{}
	for _, id := range studentIDs {
		if docs, ok := f.documents[id]; ok {
			out[id] = docs
		}
	}
	return out, nil
}

func (f *fakeDocumentStore) Delete(ctx context.Context, studentID, docID int64) error {
	docs := f.documents[studentID]
	for i, doc := range docs {
		if doc.ID == docID {
			f.documents[studentID] = append(docs[:i], docs[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrDocumentNotFound
}

type fakeStorage struct {
	blobs     map[string][]byte
	nextBlob  int
	removed   []string
	removeErr error
	storeErr  error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{blobs: map[string][]byte{}}
}

func (f *fakeStorage) Store(r io.Reader, suggestedName string) (string, error) {
	if f.storeErr != nil {
		return "", f.storeErr
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return "", err
	}
	f.nextBlob++
	locator := fmt.Sprintf("blob-%d", f.nextBlob)
	f.blobs[locator] = buf.Bytes()
	return locator, nil
}

func (f *fakeStorage) Retrieve(locator string) ([]byte, error) {
	data, ok := f.blobs[locator]
	if !ok {
		return nil, apperrors.ErrBlobMissing
	}
	return data, nil
}

func (f *fakeStorage) Remove(locator string) error {
	f.removed = append(f.removed, locator)
	if f.removeErr != nil {
		return f.removeErr
	}
	delete(f.blobs, locator)
	return nil
}

var errStoreDown = errors.New("connection refused")

func bytesReader(s string) io.Reader {
	return bytes.NewBufferString(s)
}
