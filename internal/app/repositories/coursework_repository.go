package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sanwar/studentsvc/internal/app/models"
)

// courseWorkRepository implements CourseWorkRepository over pgx
type courseWorkRepository struct {
	db DBTX
}

// NewCourseWorkRepository creates a new coursework repository
func NewCourseWorkRepository(db DBTX) CourseWorkRepository {
	return &courseWorkRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *courseWorkRepository) WithTx(tx pgx.Tx) CourseWorkRepository {
	return &courseWorkRepository{db: tx}
}

// FindByStudentID retrieves all coursework rows belonging to a student
func (r *courseWorkRepository) FindByStudentID(ctx context.Context, studentID int64) ([]*models.CourseWork, error) {
	query := `
		SELECT id, student_id, course_name, score
		FROM coursework
		WHERE student_id = $1
		ORDER BY id ASC
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving coursework: %w", err)
	}
	defer rows.Close()

	var courseWork []*models.CourseWork
	for rows.Next() {
		var cw models.CourseWork
		if err := rows.Scan(
			&cw.ID,
			&cw.StudentID,
			&cw.CourseName,
			&cw.Score,
		); err != nil {
			return nil, fmt.Errorf("error scanning coursework row: %w", err)
		}
		courseWork = append(courseWork, &cw)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating coursework: %w", err)
	}

	return courseWork, nil
}

// DeleteByStudentID removes every coursework row referencing the student.
// A student without coursework is not an error.
func (r *courseWorkRepository) DeleteByStudentID(ctx context.Context, studentID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM coursework WHERE student_id = $1`, studentID)
	if err != nil {
		return fmt.Errorf("error deleting coursework for student %d: %w", studentID, err)
	}

	return nil
}
