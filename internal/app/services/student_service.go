package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sanwar/studentsvc/internal/app/models"
	"github.com/sanwar/studentsvc/internal/app/models/dto"
	"github.com/sanwar/studentsvc/internal/app/repositories"
	"github.com/sanwar/studentsvc/internal/db"
	"github.com/sanwar/studentsvc/internal/pkg/apperrors"
	"github.com/sanwar/studentsvc/internal/pkg/helpers"
)

// TxRunner runs a function inside a database transaction. *db.PostgresDB
// satisfies it.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// StudentService defines the interface for student-related operations
type StudentService interface {
	CreateStudent(ctx context.Context, name string) (*models.Student, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	UpdateStudentName(ctx context.Context, id int64, name string) (*models.Student, error)
	DeleteStudent(ctx context.Context, id int64) (*models.Student, error)
	// ListStudents streams matching students through yield. status and name
	// are the raw optional query parameters; nil means unfiltered.
	ListStudents(ctx context.Context, page, limit int64, status, name *string, yield func(models.Student) error) error
	GetStudentCourseWork(ctx context.Context, studentID int64) ([]*models.CourseWork, error)
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	studentRepo    repositories.StudentRepository
	courseWorkRepo repositories.CourseWorkRepository
	tx             TxRunner
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo repositories.StudentRepository, courseWorkRepo repositories.CourseWorkRepository, tx TxRunner) StudentService {
	return &studentServiceImpl{
		studentRepo:    studentRepo,
		courseWorkRepo: courseWorkRepo,
		tx:             tx,
	}
}

// CreateStudent persists a new student. Registration time and status are
// stamped here; whatever the caller sent for them is ignored.
func (s *studentServiceImpl) CreateStudent(ctx context.Context, name string) (*models.Student, error) {
	student := &models.Student{
		Name:         name,
		RegisteredOn: time.Now().UnixMilli(),
		Status:       models.StudentStatusActive,
	}

	if err := s.studentRepo.Save(ctx, student); err != nil {
		return nil, err
	}

	return student, nil
}

// GetStudentByID retrieves a student by ID
func (s *studentServiceImpl) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.NewStudentNotFoundError(id)
		}
		return nil, err
	}

	return student, nil
}

// UpdateStudentName copies only the name onto the stored student and
// persists it. Every other stored field is preserved.
func (s *studentServiceImpl) UpdateStudentName(ctx context.Context, id int64, name string) (*models.Student, error) {
	student, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.NewStudentNotFoundError(id)
		}
		return nil, err
	}

	student.Name = name
	if err := s.studentRepo.Save(ctx, student); err != nil {
		return nil, err
	}

	return student, nil
}

// DeleteStudent removes the student and all coursework referencing it inside
// a single transaction, coursework first so the foreign key never dangles.
// The snapshot loaded before deletion is returned.
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.NewStudentNotFoundError(id)
		}
		return nil, err
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.courseWorkRepo.WithTx(tx).DeleteByStudentID(ctx, id); err != nil {
			return err
		}
		return s.studentRepo.WithTx(tx).DeleteByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	return student, nil
}

// ListStudents normalizes the filter and pagination parameters and streams
// the result set. The name filter becomes an escaped %…% substring pattern;
// the status filter must parse as the integer column type.
func (s *studentServiceImpl) ListStudents(ctx context.Context, page, limit int64, status, name *string, yield func(models.Student) error) error {
	offset, limit := helpers.CalculateOffsetLimit(page, limit)

	query := dto.ListStudentsQuery{
		Offset: offset,
		Limit:  limit,
	}

	if status != nil {
		parsed, err := strconv.ParseInt(*status, 10, 32)
		if err != nil {
			return apperrors.NewValidationError(fmt.Sprintf("status must be an integer, got %q", *status))
		}
		statusVal := int32(parsed)
		query.Status = &statusVal
	}

	if name != nil {
		pattern := helpers.ContainsPattern(*name)
		query.Name = &pattern
	}

	return s.studentRepo.FindAllByStatusAndName(ctx, query, yield)
}

// GetStudentCourseWork retrieves the coursework rows of an existing student
func (s *studentServiceImpl) GetStudentCourseWork(ctx context.Context, studentID int64) ([]*models.CourseWork, error) {
	if _, err := s.studentRepo.FindByID(ctx, studentID); err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.NewStudentNotFoundError(studentID)
		}
		return nil, err
	}

	return s.courseWorkRepo.FindByStudentID(ctx, studentID)
}
