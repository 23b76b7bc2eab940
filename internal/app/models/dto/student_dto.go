package dto

// CreateStudentRequest is the request body for student creation. Any id,
// registeredOn or status supplied by the caller is ignored; the server stamps
// those fields itself.
type CreateStudentRequest struct {
	Name string `json:"name" binding:"required" example:"george"`
}

// UpdateStudentRequest is the request body for the partial update. Only the
// name is taken from the body; all other fields of the stored student are
// preserved.
type UpdateStudentRequest struct {
	Name string `json:"name" binding:"required" example:"Anwar"`
}

// ListStudentsQuery carries the normalized parameters of the filtered list
// query down to the repository. Nil filters mean "do not constrain that
// column". Name is already wrapped as a %…% LIKE pattern.
type ListStudentsQuery struct {
	Offset int64
	Limit  int64
	Status *int32
	Name   *string
}
