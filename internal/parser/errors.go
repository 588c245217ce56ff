package parser

import (
	"errors"
	"fmt"
)

var (
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrTruncatedInput    = errors.New("truncated input")
	// ErrSeekFailure 属于 ErrTruncatedInput 一类
	ErrSeekFailure     = fmt.Errorf("seek failure: %w", ErrTruncatedInput)
	ErrMalformedRecord = errors.New("malformed record")
)

// FieldError 记录是哪个字段、哪个偏移量读取失败
type FieldError struct {
	Field  string
	Offset int64
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s at offset %d: %v", e.Field, e.Offset, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
