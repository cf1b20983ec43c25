package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// isoLocalLayout is ISO-8601 without a zone, as older documents were written.
// Such values are read as UTC.
const isoLocalLayout = "2006-01-02T15:04:05.999999999"

// Timestamp is a UTC instant stored as RFC 3339. It also reads zone-less
// ISO-8601 values.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC()}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func ParseTimestamp(s string) (Timestamp, error) {
	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return NewTimestamp(parsed), nil
	}
	parsed, err := time.ParseInLocation(isoLocalLayout, s, time.UTC)
	if err != nil {
		return Timestamp{}, fmt.Errorf("invalid timestamp %q", s)
	}
	return NewTimestamp(parsed), nil
}
