package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sanwar/studentsvc/internal/app/models"
	"github.com/sanwar/studentsvc/internal/app/models/dto"
	"github.com/sanwar/studentsvc/internal/pkg/apperrors"
	"github.com/sanwar/studentsvc/internal/pkg/dberrors"
)

// findAllByStatusAndNameSQL serves every filter combination with a single
// statement: a NULL parameter disables its predicate. ORDER BY id keeps
// offset pagination stable.
const findAllByStatusAndNameSQL = `
	SELECT id, name, registered_on, status
	FROM students
	WHERE ($1::int IS NULL OR status = $1)
	  AND ($2::text IS NULL OR name LIKE $2 ESCAPE '\')
	ORDER BY id ASC
	LIMIT $3 OFFSET $4
`

// studentRepository implements StudentRepository over pgx
type studentRepository struct {
	db DBTX
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db DBTX) StudentRepository {
	return &studentRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *studentRepository) WithTx(tx pgx.Tx) StudentRepository {
	return &studentRepository{db: tx}
}

// FindByID retrieves a student by ID
func (r *studentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `
		SELECT id, name, registered_on, status
		FROM students
		WHERE id = $1
	`

	var student models.Student
	err := r.db.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.Name,
		&student.RegisteredOn,
		&student.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// Save persists the student: an insert when the ID is still unassigned,
// otherwise an update of the existing row. On insert the store-assigned ID is
// written back onto the value.
func (r *studentRepository) Save(ctx context.Context, student *models.Student) error {
	if student.ID == 0 {
		query := `
			INSERT INTO students (name, registered_on, status)
			VALUES ($1, $2, $3)
			RETURNING id
		`

		err := r.db.QueryRow(ctx, query, student.Name, student.RegisteredOn, student.Status).Scan(&student.ID)
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrStudentExists
			}
			return fmt.Errorf("error inserting student: %w", err)
		}
		return nil
	}

	query := `
		UPDATE students
		SET name = $1, registered_on = $2, status = $3
		WHERE id = $4
	`

	cmdTag, err := r.db.Exec(ctx, query, student.Name, student.RegisteredOn, student.Status, student.ID)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// DeleteByID deletes a student row by ID
func (r *studentRepository) DeleteByID(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return fmt.Errorf("student %d still has coursework rows: %w", id, err)
		}
		return fmt.Errorf("error deleting student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// FindAllByStatusAndName streams students matching the query filters, one
// yield call per row as pgx delivers them.
func (r *studentRepository) FindAllByStatusAndName(ctx context.Context, query dto.ListStudentsQuery, yield func(models.Student) error) error {
	rows, err := r.db.Query(ctx, findAllByStatusAndNameSQL, query.Status, query.Name, query.Limit, query.Offset)
	if err != nil {
		return fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var student models.Student
		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.RegisteredOn,
			&student.Status,
		); err != nil {
			return fmt.Errorf("error scanning student row: %w", err)
		}
		if err := yield(student); err != nil {
			return err
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating students: %w", err)
	}

	return nil
}
