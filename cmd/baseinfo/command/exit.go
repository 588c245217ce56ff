package command

import (
	"errors"

	"baseinfo/internal/parser"
)

// 进程退出码, 每种失败对应一个
const (
	ExitOK                = 0
	ExitUsage             = 1
	ExitSourceUnavailable = 2
	ExitTruncatedInput    = 3
	ExitMalformedRecord   = 4
)

// ExitCode maps an error returned by the root command to a process exit code.
// Seek failures are truncated-input errors and share its code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, parser.ErrSourceUnavailable):
		return ExitSourceUnavailable
	case errors.Is(err, parser.ErrTruncatedInput):
		return ExitTruncatedInput
	case errors.Is(err, parser.ErrMalformedRecord):
		return ExitMalformedRecord
	default:
		return ExitUsage
	}
}
