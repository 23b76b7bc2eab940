package dto

// GeneralResponse is the uniform success/failure wrapper returned by the
// mutating student endpoints. Data marshals to JSON null when no payload is
// attached, which is the wire shape clients expect on failures.
type GeneralResponse[T any] struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    map[string]T `json:"data"`
}

// Success builds a successful envelope carrying data.
func Success[T any](message string, data map[string]T) GeneralResponse[T] {
	return GeneralResponse[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// Failure builds a failed envelope with no data.
func Failure[T any](message string) GeneralResponse[T] {
	return GeneralResponse[T]{
		Success: false,
		Message: message,
	}
}
