package model

import "time"

// Discussion 课程讨论区留言，programId/userId 仅为外键引用
type Discussion struct {
	ID         string    `json:"id"`
	ProgramID  string    `json:"programId"`
	UserID     string    `json:"userId"`
	AuthorName string    `json:"authorName,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (d *Discussion) Validate() error {
	if d.ID == "" {
		return NewValidationError("id", "id is required")
	}
	if d.ProgramID == "" {
		return NewValidationError("programId", "programId is required")
	}
	if d.UserID == "" {
		return NewValidationError("userId", "userId is required")
	}
	if d.Content == "" {
		return NewValidationError("content", "content is required")
	}
	return nil
}
