package model

import "fmt"

// ValidationError 结构校验失败：携带字段路径与原因，调用方修正输入后可重试
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed at %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError reports whether err is a schema validation failure.
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}
