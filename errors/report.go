// errors/report.go
package errors

import (
	"encoding/json"
	"io"

	"go.uber.org/zap"
)

// Response is the JSON structure written for errors.
type Response struct {
	Error *Error `json:"error" yaml:"error"`
}

// Write writes an error as a JSON Response to w.
func Write(w io.Writer, err error) error {
	e := From(err)
	return json.NewEncoder(w).Encode(Response{Error: e})
}

// WriteWithLogger writes an error and logs it. Internal errors are logged at
// error level; caller-input errors at debug level, since they are expected.
func WriteWithLogger(w io.Writer, err error, logger *zap.Logger) error {
	e := From(err)

	if e.Code == CodeInternalError {
		logger.Error("internal error", Fields(e)...)
	} else {
		logger.Debug("rejected email address", Fields(e)...)
	}

	return Write(w, e)
}

// Fields returns structured log fields describing e.
func Fields(e *Error) []zap.Field {
	fields := []zap.Field{
		zap.String("code", e.Code),
		zap.String("message", e.Message),
		zap.String("sqlstate", e.SQLState()),
	}
	if e.Reason != "" {
		fields = append(fields, zap.String("reason", e.Reason))
	}
	if e.Input != "" {
		fields = append(fields, zap.String("input", e.Input))
	}
	if e.Err != nil {
		fields = append(fields, zap.Error(e.Err))
	}
	return fields
}
