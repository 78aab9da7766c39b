package service

import (
	"errors"
	"fmt"
)

// 错误类别，每个服务操作失败时恰好属于其中一类.
var (
	ErrInvalidFileType   = errors.New("invalid file type")
	ErrDuplicateFile     = errors.New("duplicate file")
	ErrFilesystem        = errors.New("filesystem error")
	ErrFileNotFound      = errors.New("file not found")
	ErrDatabaseOperation = errors.New("database operation failed")
)

// Error 携带面向用户的消息与可选数据. errors.Is 可同时匹配类别与底层原因.
type Error struct {
	Kind    error
	Message string
	Data    any
	Err     error
}

func newError(kind error, message string, data any, cause error) *Error {
	return &Error{Kind: kind, Message: message, Data: data, Err: cause}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}

	return []error{e.Kind}
}

// KindOf 返回错误类别，非服务错误返回 ErrDatabaseOperation.
func KindOf(err error) error {
	for _, kind := range []error{ErrInvalidFileType, ErrDuplicateFile, ErrFilesystem, ErrFileNotFound, ErrDatabaseOperation} {
		if errors.Is(err, kind) {
			return kind
		}
	}

	return ErrDatabaseOperation
}

// AsError 把任意错误转为 *Error.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return newError(KindOf(err), "Unexpected error", nil, err)
}
