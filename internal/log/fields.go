package log

import "go.uber.org/zap"

type Field = zap.Field

var (
	String   = zap.String
	Int      = zap.Int
	Int64    = zap.Int64
	Uint64   = zap.Uint64
	Duration = zap.Duration
)

//Cause attaches an error to a log record under the "cause" key.
func Cause(err error) Field {
	return zap.NamedError("cause", err)
}
