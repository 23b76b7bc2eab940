package models

// CourseWork defines a unit of coursework based on the 'coursework' table.
// Rows are removed together with their student inside one transaction.
type CourseWork struct {
	ID         int64  `json:"id" db:"id" example:"1"`
	StudentID  int64  `json:"studentId" db:"student_id" example:"1"` // Owning student
	CourseName string `json:"courseName" db:"course_name" example:"Distributed Systems"`
	Score      *int32 `json:"score,omitempty" db:"score"` // Nil until graded
}
