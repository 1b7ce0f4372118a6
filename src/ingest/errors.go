package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedTimestamp marks an unparseable timestamp. The whole batch is
	// rejected; the surrounding RecordError names the offending record.
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	// ErrMissingField marks an absent sender/channel/message value.
	ErrMissingField = errors.New("missing required field")
	// ErrMissingColumns marks a CSV header without the required columns.
	ErrMissingColumns = errors.New("missing required columns")
	// ErrUnsupportedFormat marks a transcript file whose format is unknown.
	ErrUnsupportedFormat = errors.New("unsupported transcript format")
)

// RecordError locates a validation failure at a specific transcript record.
// Index is 1-based, counting data records (the CSV header is not a record).
type RecordError struct {
	Index int
	Field string
	Err   error
}

func (e *RecordError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("record %d: field %q: %v", e.Index, e.Field, e.Err)
	}
	return fmt.Sprintf("record %d: %v", e.Index, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// UserError wraps ingestion failures with a hint for CLI display.
type UserError struct {
	Message string
	Hint    string
	Err     error
}

func (e *UserError) Error() string {
	msg := e.Message
	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n\nDetails: %v", e.Err)
	}
	return msg
}

func (e *UserError) Unwrap() error { return e.Err }

// WrapError converts ingestion errors to user-facing messages.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrMissingColumns):
		return &UserError{
			Message: "Transcript is missing required columns",
			Hint:    "CSV transcripts need a header with: timestamp, sender, channel, message",
			Err:     err,
		}
	case errors.Is(err, ErrMalformedTimestamp):
		return &UserError{
			Message: "Transcript contains an unreadable timestamp",
			Hint:    "Timestamps must be RFC3339 (2024-03-01T09:00:00Z) or \"2024-03-01 09:00:00\"",
			Err:     err,
		}
	case errors.Is(err, ErrUnsupportedFormat):
		return &UserError{
			Message: "Unsupported transcript format",
			Hint:    "Supported formats: .csv (timestamp,sender,channel,message) and .json (array of records)",
			Err:     err,
		}
	}
	return err
}
