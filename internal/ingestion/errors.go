package ingestion

import (
	"errors"
	"fmt"

	"github.com/rpattn/leadrecon/internal/domain"
)

var (
	// ErrMalformedFilename is returned when a lead file name does not encode vendor and campaign.
	ErrMalformedFilename = errors.New("malformed filename")
	// ErrEmptyFile is returned when a file has no data rows.
	ErrEmptyFile = errors.New("file is empty")
	// ErrUnreadableFile is returned when a file cannot be decoded.
	ErrUnreadableFile = errors.New("file is unreadable")
	// ErrMissingColumns is returned when a file lacks the columns it cannot do without.
	ErrMissingColumns = errors.New("missing required columns")
)

// FileError describes why one input file was excluded.
type FileError struct {
	FileName string
	Kind     domain.FileKind
	Err      error
}

func newFileError(kind domain.FileKind, fileName string, err error) *FileError {
	return &FileError{FileName: fileName, Kind: kind, Err: err}
}

// Error implements the error interface.
func (e *FileError) Error() string {
	return fmt.Sprintf("%s file %q: %v", e.Kind, e.FileName, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *FileError) Unwrap() error {
	return e.Err
}

// Notice converts the error into a skip notice for the caller.
func (e *FileError) Notice() domain.SkipNotice {
	reason := ""
	if e.Err != nil {
		reason = e.Err.Error()
	}
	return domain.SkipNotice{FileName: e.FileName, Kind: e.Kind, Reason: reason}
}
