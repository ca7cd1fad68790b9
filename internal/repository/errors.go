package repository

import (
	"errors"
	"fmt"
)

// NotFoundError 指定集合中不存在该 id
type NotFoundError struct {
	Collection string
	ID         string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("document %s/%s not found", e.Collection, e.ID)
}

// ConflictError 乐观版本校验失败：读到的版本已过期
type ConflictError struct {
	Collection      string
	ID              string
	ExpectedVersion int64
	ActualVersion   int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("stale write to %s/%s: expected version %d, stored version %d",
		e.Collection, e.ID, e.ExpectedVersion, e.ActualVersion)
}

// TransientStoreError 远端存储暂时不可达；读路径可回退本地快照
type TransientStoreError struct {
	Op  string
	Err error
}

func (e *TransientStoreError) Error() string {
	return fmt.Sprintf("store %s failed transiently: %v", e.Op, e.Err)
}

func (e *TransientStoreError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

func IsTransient(err error) bool {
	var t *TransientStoreError
	return errors.As(err, &t)
}
