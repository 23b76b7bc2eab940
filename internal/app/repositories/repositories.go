package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sanwar/studentsvc/internal/app/models"
	"github.com/sanwar/studentsvc/internal/app/models/dto"
)

// DBTX is the subset of pgx operations the repositories need. Both
// *pgxpool.Pool and pgx.Tx satisfy it, so the same repository code runs
// inside and outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// StudentRepository is the persistence gateway for the students table.
type StudentRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	Save(ctx context.Context, student *models.Student) error
	DeleteByID(ctx context.Context, id int64) error
	// FindAllByStatusAndName streams matching rows through yield in id order.
	// Iteration stops at the first error yield returns.
	FindAllByStatusAndName(ctx context.Context, query dto.ListStudentsQuery, yield func(models.Student) error) error
	// WithTx returns a repository bound to the given transaction.
	WithTx(tx pgx.Tx) StudentRepository
}

// CourseWorkRepository is the persistence gateway for the coursework table.
type CourseWorkRepository interface {
	FindByStudentID(ctx context.Context, studentID int64) ([]*models.CourseWork, error)
	DeleteByStudentID(ctx context.Context, studentID int64) error
	// WithTx returns a repository bound to the given transaction.
	WithTx(tx pgx.Tx) CourseWorkRepository
}

// Repositories holds all repository instances
type Repositories struct {
	Student    StudentRepository
	CourseWork CourseWorkRepository
}

// NewRepositories creates all repositories backed by the given pool
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Student:    NewStudentRepository(pool),
		CourseWork: NewCourseWorkRepository(pool),
	}
}
