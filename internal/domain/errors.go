package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies failures reported to the operator.
type ErrorKind string

const (
	KindIngestion         ErrorKind = "INGESTION_ERROR"
	KindMissingColumn     ErrorKind = "MISSING_COLUMN"
	KindReconciliationGap ErrorKind = "RECONCILIATION_GAP"
	KindExportUnavailable ErrorKind = "EXPORT_UNAVAILABLE"
	KindFileTooLarge      ErrorKind = "FILE_TOO_LARGE"
	KindInvalidInput      ErrorKind = "INVALID_INPUT"
)

var (
	ErrFileTooLarge       = errors.New("file exceeds the upload size ceiling")
	ErrUnsupportedFormat  = errors.New("unsupported file format")
	ErrNoData             = errors.New("no data rows")
	ErrSessionNotFound    = errors.New("session not found")
	ErrExportUnavailable  = errors.New("export format unavailable")
	ErrTableNotFound      = errors.New("table not found")
	ErrSKUGroupNotFound   = errors.New("sku group not found")
	ErrSnapshotIncomplete = errors.New("old, new and payout snapshots are all required")
)

// FileError isolates a failure to one file of a batch.
type FileError struct {
	File string    `json:"file"`
	Kind ErrorKind `json:"kind"`
	Err  error     `json:"-"`
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// MarshalJSON exposes the cause message to API callers.
func (e *FileError) MarshalJSON() ([]byte, error) {
	msg := ""
	if e.Err != nil {
		msg = e.Err.Error()
	}
	return json.Marshal(struct {
		File    string    `json:"file"`
		Kind    ErrorKind `json:"kind"`
		Message string    `json:"message"`
	}{e.File, e.Kind, msg})
}

// MissingFieldError names the semantic fields a computation needed but could not resolve.
type MissingFieldError struct {
	Operation string
	Fields    []Field
}

func (e *MissingFieldError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = string(f)
	}
	return fmt.Sprintf("%s: missing required column(s): %s", e.Operation, strings.Join(names, ", "))
}

// KindOf maps an error to its reporting kind.
func KindOf(err error) ErrorKind {
	var fe *FileError
	var mf *MissingFieldError
	switch {
	case errors.As(err, &fe):
		return fe.Kind
	case errors.As(err, &mf):
		return KindMissingColumn
	case errors.Is(err, ErrFileTooLarge):
		return KindFileTooLarge
	case errors.Is(err, ErrExportUnavailable):
		return KindExportUnavailable
	default:
		return KindInvalidInput
	}
}
