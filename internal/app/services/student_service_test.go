package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sanwar/studentsvc/internal/app/models"
	"github.com/sanwar/studentsvc/internal/app/models/dto"
	"github.com/sanwar/studentsvc/internal/app/repositories"
	"github.com/sanwar/studentsvc/internal/db"
	"github.com/sanwar/studentsvc/internal/pkg/apperrors"
)

// stubStudentRepo implements repositories.StudentRepository with pluggable
// behavior per test.
type stubStudentRepo struct {
	findByID func(ctx context.Context, id int64) (*models.Student, error)
	save     func(ctx context.Context, student *models.Student) error
	delete   func(ctx context.Context, id int64) error
	findAll  func(ctx context.Context, query dto.ListStudentsQuery, yield func(models.Student) error) error
}

func (s *stubStudentRepo) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	return s.findByID(ctx, id)
}

func (s *stubStudentRepo) Save(ctx context.Context, student *models.Student) error {
	return s.save(ctx, student)
}

func (s *stubStudentRepo) DeleteByID(ctx context.Context, id int64) error {
	return s.delete(ctx, id)
}

func (s *stubStudentRepo) FindAllByStatusAndName(ctx context.Context, query dto.ListStudentsQuery, yield func(models.Student) error) error {
	return s.findAll(ctx, query, yield)
}

func (s *stubStudentRepo) WithTx(tx pgx.Tx) repositories.StudentRepository { return s }

type stubCourseWorkRepo struct {
	findByStudentID   func(ctx context.Context, studentID int64) ([]*models.CourseWork, error)
	deleteByStudentID func(ctx context.Context, studentID int64) error
}

func (s *stubCourseWorkRepo) FindByStudentID(ctx context.Context, studentID int64) ([]*models.CourseWork, error) {
	return s.findByStudentID(ctx, studentID)
}

func (s *stubCourseWorkRepo) DeleteByStudentID(ctx context.Context, studentID int64) error {
	return s.deleteByStudentID(ctx, studentID)
}

func (s *stubCourseWorkRepo) WithTx(tx pgx.Tx) repositories.CourseWorkRepository { return s }

// stubTxRunner executes the transaction function directly; the nil tx is
// fine because the stub repositories ignore WithTx.
type stubTxRunner struct {
	calls int
}

func (s *stubTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	s.calls++
	return fn(ctx, nil)
}

func TestCreateStudentStampsServerFields(t *testing.T) {
	var saved *models.Student
	repo := &stubStudentRepo{
		save: func(ctx context.Context, student *models.Student) error {
			student.ID = 1
			saved = student
			return nil
		},
	}
	svc := NewStudentService(repo, &stubCourseWorkRepo{}, &stubTxRunner{})

	before := time.Now().UnixMilli()
	student, err := svc.CreateStudent(context.Background(), "george")
	after := time.Now().UnixMilli()
	if err != nil {
		t.Fatalf("CreateStudent: %v", err)
	}

	if saved == nil {
		t.Fatal("Save was not called")
	}
	if student.ID != 1 {
		t.Errorf("ID = %d, want 1", student.ID)
	}
	if student.Name != "george" {
		t.Errorf("Name = %q, want %q", student.Name, "george")
	}
	if student.Status != models.StudentStatusActive {
		t.Errorf("Status = %d, want %d", student.Status, models.StudentStatusActive)
	}
	if student.RegisteredOn < before || student.RegisteredOn > after {
		t.Errorf("RegisteredOn = %d, want within [%d, %d]", student.RegisteredOn, before, after)
	}
}

func TestUpdateStudentPreservesFieldsExceptName(t *testing.T) {
	registeredOn := time.Now().UnixMilli()
	repo := &stubStudentRepo{
		findByID: func(ctx context.Context, id int64) (*models.Student, error) {
			return &models.Student{ID: 2, Name: "Saprol", RegisteredOn: registeredOn, Status: 0}, nil
		},
		save: func(ctx context.Context, student *models.Student) error { return nil },
	}
	svc := NewStudentService(repo, &stubCourseWorkRepo{}, &stubTxRunner{})

	student, err := svc.UpdateStudentName(context.Background(), 2, "Anwar")
	if err != nil {
		t.Fatalf("UpdateStudentName: %v", err)
	}

	if student.Name != "Anwar" {
		t.Errorf("Name = %q, want %q", student.Name, "Anwar")
	}
	if student.Status != 0 {
		t.Errorf("Status = %d, want 0 (must not be touched by update)", student.Status)
	}
	if student.RegisteredOn != registeredOn {
		t.Errorf("RegisteredOn = %d, want %d", student.RegisteredOn, registeredOn)
	}
	if student.ID != 2 {
		t.Errorf("ID = %d, want 2", student.ID)
	}
}

func TestUpdateStudentMissing(t *testing.T) {
	repo := &stubStudentRepo{
		findByID: func(ctx context.Context, id int64) (*models.Student, error) {
			return nil, apperrors.ErrStudentNotFound
		},
		save: func(ctx context.Context, student *models.Student) error {
			t.Fatal("Save must not be called for a missing student")
			return nil
		},
	}
	svc := NewStudentService(repo, &stubCourseWorkRepo{}, &stubTxRunner{})

	_, err := svc.UpdateStudentName(context.Background(), 1, "Anwar")
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("error = %v, want ErrStudentNotFound", err)
	}
	if err.Error() != "Student with ID 1 not found" {
		t.Errorf("message = %q, want %q", err.Error(), "Student with ID 1 not found")
	}
}

func TestDeleteStudentCascadeOrder(t *testing.T) {
	var ops []string
	repo := &stubStudentRepo{
		findByID: func(ctx context.Context, id int64) (*models.Student, error) {
			ops = append(ops, "find")
			return &models.Student{ID: 1, Name: "Saprol", Status: 1}, nil
		},
		delete: func(ctx context.Context, id int64) error {
			ops = append(ops, "deleteStudent")
			return nil
		},
	}
	cwRepo := &stubCourseWorkRepo{
		deleteByStudentID: func(ctx context.Context, studentID int64) error {
			ops = append(ops, "deleteCourseWork")
			return nil
		},
	}
	tx := &stubTxRunner{}
	svc := NewStudentService(repo, cwRepo, tx)

	student, err := svc.DeleteStudent(context.Background(), 1)
	if err != nil {
		t.Fatalf("DeleteStudent: %v", err)
	}

	if student.Name != "Saprol" {
		t.Errorf("snapshot Name = %q, want %q", student.Name, "Saprol")
	}
	want := []string{"find", "deleteCourseWork", "deleteStudent"}
	if len(ops) != len(want) {
		t.Fatalf("ops = %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("ops = %v, want %v", ops, want)
		}
	}
	if tx.calls != 1 {
		t.Errorf("WithTransaction calls = %d, want 1", tx.calls)
	}
}

func TestDeleteStudentCourseWorkFailureStopsCascade(t *testing.T) {
	storeErr := errors.New("connection reset")
	repo := &stubStudentRepo{
		findByID: func(ctx context.Context, id int64) (*models.Student, error) {
			return &models.Student{ID: 1, Name: "Saprol", Status: 1}, nil
		},
		delete: func(ctx context.Context, id int64) error {
			t.Fatal("student row must not be deleted after a coursework failure")
			return nil
		},
	}
	cwRepo := &stubCourseWorkRepo{
		deleteByStudentID: func(ctx context.Context, studentID int64) error {
			return storeErr
		},
	}
	svc := NewStudentService(repo, cwRepo, &stubTxRunner{})

	_, err := svc.DeleteStudent(context.Background(), 1)
	if !errors.Is(err, storeErr) {
		t.Fatalf("error = %v, want %v", err, storeErr)
	}
}

func TestDeleteStudentMissing(t *testing.T) {
	repo := &stubStudentRepo{
		findByID: func(ctx context.Context, id int64) (*models.Student, error) {
			return nil, apperrors.ErrStudentNotFound
		},
	}
	tx := &stubTxRunner{}
	svc := NewStudentService(repo, &stubCourseWorkRepo{}, tx)

	_, err := svc.DeleteStudent(context.Background(), 7)
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("error = %v, want ErrStudentNotFound", err)
	}
	if err.Error() != "Student with ID 7 not found" {
		t.Errorf("message = %q, want %q", err.Error(), "Student with ID 7 not found")
	}
	if tx.calls != 0 {
		t.Errorf("WithTransaction calls = %d, want 0", tx.calls)
	}
}

func TestListStudentsNormalizesFilters(t *testing.T) {
	var got dto.ListStudentsQuery
	repo := &stubStudentRepo{
		findAll: func(ctx context.Context, query dto.ListStudentsQuery, yield func(models.Student) error) error {
			got = query
			return nil
		},
	}
	svc := NewStudentService(repo, &stubCourseWorkRepo{}, &stubTxRunner{})

	status := "7"
	name := "nameValue"
	err := svc.ListStudents(context.Background(), 1, 10, &status, &name, func(models.Student) error { return nil })
	if err != nil {
		t.Fatalf("ListStudents: %v", err)
	}

	if got.Offset != 0 || got.Limit != 10 {
		t.Errorf("offset/limit = %d/%d, want 0/10", got.Offset, got.Limit)
	}
	if got.Status == nil || *got.Status != 7 {
		t.Errorf("Status = %v, want 7", got.Status)
	}
	if got.Name == nil || *got.Name != "%nameValue%" {
		t.Errorf("Name = %v, want %%nameValue%%", got.Name)
	}
}

func TestListStudentsPaginationMath(t *testing.T) {
	var got dto.ListStudentsQuery
	repo := &stubStudentRepo{
		findAll: func(ctx context.Context, query dto.ListStudentsQuery, yield func(models.Student) error) error {
			got = query
			return nil
		},
	}
	svc := NewStudentService(repo, &stubCourseWorkRepo{}, &stubTxRunner{})

	if err := svc.ListStudents(context.Background(), 3, 25, nil, nil, func(models.Student) error { return nil }); err != nil {
		t.Fatalf("ListStudents: %v", err)
	}

	if got.Offset != 50 || got.Limit != 25 {
		t.Errorf("offset/limit = %d/%d, want 50/25", got.Offset, got.Limit)
	}
	if got.Status != nil {
		t.Errorf("Status = %v, want nil for absent filter", got.Status)
	}
	if got.Name != nil {
		t.Errorf("Name = %v, want nil for absent filter", got.Name)
	}
}

func TestListStudentsRejectsNonIntegerStatus(t *testing.T) {
	repo := &stubStudentRepo{
		findAll: func(ctx context.Context, query dto.ListStudentsQuery, yield func(models.Student) error) error {
			t.Fatal("repository must not be queried with an invalid status")
			return nil
		},
	}
	svc := NewStudentService(repo, &stubCourseWorkRepo{}, &stubTxRunner{})

	status := "statusValue"
	err := svc.ListStudents(context.Background(), 1, 10, &status, nil, func(models.Student) error { return nil })
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("error = %v, want ErrValidationFailed", err)
	}
}

func TestGetStudentCourseWorkMissingStudent(t *testing.T) {
	repo := &stubStudentRepo{
		findByID: func(ctx context.Context, id int64) (*models.Student, error) {
			return nil, apperrors.ErrStudentNotFound
		},
	}
	cwRepo := &stubCourseWorkRepo{
		findByStudentID: func(ctx context.Context, studentID int64) ([]*models.CourseWork, error) {
			t.Fatal("coursework must not be queried for a missing student")
			return nil, nil
		},
	}
	svc := NewStudentService(repo, cwRepo, &stubTxRunner{})

	_, err := svc.GetStudentCourseWork(context.Background(), 9)
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("error = %v, want ErrStudentNotFound", err)
	}
}
