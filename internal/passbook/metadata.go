// Package passbook fetches descriptive metadata for a password book, the
// server-held record of how a file was encrypted. Nothing is cached and
// nothing is ever synthesised: an unknown id is reported as not found.
package passbook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Metadata is the read-only projection returned by the backend.
type Metadata struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	Created      Timestamp `json:"created"`
	Rounds       int       `json:"rounds"`
	OriginalFile string    `json:"originalFile"`
	Details      Details   `json:"metadata"`
}

// Details is the nested metadata block of a password book.
type Details struct {
	EncryptionTime   Timestamp `json:"encryption_time"`
	TotalRounds      int       `json:"total_rounds"`
	OriginalFilename string    `json:"original_filename"`
	OriginalHash     string    `json:"original_hash,omitempty"`
	BookID           string    `json:"book_id,omitempty"`
}

// Timestamp accepts RFC 3339 as well as ISO 8601 without a zone, which the
// backend emits for local times. Zone-less values are read as UTC.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("timestamp: unrecognised format %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}

// String formats the timestamp for display.
func (t Timestamp) String() string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}

// Field is one displayable name/value pair of a Metadata.
type Field struct {
	Name  string
	Value string
}

// Fields lists what a details view shows, in display order. Empty values
// are rendered as "-".
func (m *Metadata) Fields() []Field {
	orDash := func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	}
	return []Field{
		{"ID", orDash(m.ID)},
		{"Filename", orDash(m.Filename)},
		{"Created", m.Created.String()},
		{"Rounds", strconv.Itoa(m.Rounds)},
		{"Original file", orDash(m.OriginalFile)},
		{"Encryption time", m.Details.EncryptionTime.String()},
		{"Total rounds", strconv.Itoa(m.Details.TotalRounds)},
		{"Original filename", orDash(m.Details.OriginalFilename)},
		{"Original hash", orDash(m.Details.OriginalHash)},
	}
}
