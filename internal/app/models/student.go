package models

// Student statuses. A student is created active; other lifecycle states are
// assigned by out-of-band processes.
const (
	StudentStatusActive int32 = 1
)

// Student defines the student model based on the 'students' table
type Student struct {
	ID           int64  `json:"id" db:"id" example:"1"`                              // Unique identifier assigned by the store
	Name         string `json:"name" db:"name" example:"george"`                     // Student's display name, the only mutable field
	RegisteredOn int64  `json:"registeredOn" db:"registered_on" example:"1712345678901"` // Creation timestamp in epoch milliseconds, server-stamped
	Status       int32  `json:"status" db:"status" example:"1"`                      // Lifecycle status code, 1 at creation
}
