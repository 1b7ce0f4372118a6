// Package ingest loads conversation transcripts into the immutable message
// table the pipeline consumes. Validation is strict: a single malformed
// record rejects the whole batch, with the record index in the error.
// Empty message text is valid (it scores neutral downstream).
package ingest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"riskwatch/src/contracts"
)

// requiredColumns is the CSV contract, in any column order.
var requiredColumns = []string{"timestamp", "sender", "channel", "message"}

// timestampLayouts are tried in order for each record.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// Load reads a transcript file, dispatching on extension (.csv or .json),
// and returns messages sorted by timestamp ascending.
func Load(path string) ([]contracts.Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open transcript: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(f)
	case ".json":
		return ReadJSON(f)
	default:
		return nil, fmt.Errorf("ingest: %s: %w", path, ErrUnsupportedFormat)
	}
}

// ReadCSV parses a CSV transcript. The header must contain the required
// columns (any order, extra columns ignored). Zero data rows is valid and
// yields an empty table.
func ReadCSV(r io.Reader) ([]contracts.Message, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("ingest: empty file: %w", ErrMissingColumns)
	}
	if err != nil {
		return nil, fmt.Errorf("ingest: read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, want := range requiredColumns {
		if _, ok := col[want]; !ok {
			return nil, fmt.Errorf("ingest: column %q: %w", want, ErrMissingColumns)
		}
	}

	var msgs []contracts.Message
	for index := 1; ; index++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &RecordError{Index: index, Err: err}
		}

		msg, err := buildMessage(index, record{
			timestamp: row[col["timestamp"]],
			sender:    row[col["sender"]],
			channel:   row[col["channel"]],
			text:      row[col["message"]],
			hasText:   true,
		})
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}

	sortByTimestamp(msgs)
	return msgs, nil
}

// jsonRecord is one element of a JSON transcript array.
type jsonRecord struct {
	Timestamp *string `json:"timestamp"`
	Sender    *string `json:"sender"`
	Channel   *string `json:"channel"`
	Message   *string `json:"message"`
}

// ReadJSON parses a JSON transcript: an array of records with timestamp,
// sender, channel, and message keys. Absent keys are validation failures;
// an empty array is a valid empty table.
func ReadJSON(r io.Reader) ([]contracts.Message, error) {
	var records []jsonRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("ingest: parse json: %w", err)
	}

	msgs := make([]contracts.Message, 0, len(records))
	for i, rec := range records {
		index := i + 1
		if rec.Timestamp == nil {
			return nil, &RecordError{Index: index, Field: "timestamp", Err: ErrMissingField}
		}
		raw := record{timestamp: *rec.Timestamp}
		if rec.Sender != nil {
			raw.sender = *rec.Sender
		}
		if rec.Channel != nil {
			raw.channel = *rec.Channel
		}
		if rec.Message != nil {
			raw.text = *rec.Message
			raw.hasText = true
		}

		msg, err := buildMessage(index, raw)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}

	sortByTimestamp(msgs)
	return msgs, nil
}

// record is the raw field set of one transcript row before validation.
type record struct {
	timestamp string
	sender    string
	channel   string
	text      string
	hasText   bool
}

func buildMessage(index int, raw record) (contracts.Message, error) {
	ts, err := parseTimestamp(raw.timestamp)
	if err != nil {
		return contracts.Message{}, &RecordError{Index: index, Field: "timestamp", Err: err}
	}
	if strings.TrimSpace(raw.sender) == "" {
		return contracts.Message{}, &RecordError{Index: index, Field: "sender", Err: ErrMissingField}
	}
	if strings.TrimSpace(raw.channel) == "" {
		return contracts.Message{}, &RecordError{Index: index, Field: "channel", Err: ErrMissingField}
	}
	if !raw.hasText {
		return contracts.Message{}, &RecordError{Index: index, Field: "message", Err: ErrMissingField}
	}

	return contracts.Message{
		Timestamp: ts,
		Sender:    raw.sender,
		Channel:   raw.channel,
		Text:      raw.text,
	}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrMissingField
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
}

// sortByTimestamp sorts the batch: downstream windowing assumes ascending
// timestamps. Stable, so records with equal timestamps keep file order.
func sortByTimestamp(msgs []contracts.Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].Timestamp.Before(msgs[j].Timestamp)
	})
}
