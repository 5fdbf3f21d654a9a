// Package date provides a day granularity Date used for purchase dates.
package date

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02" // write date format

// Date represents a date with day-level granularity. The zero value means
// "no date".
type Date struct {
	y int
	m time.Month
	d int
}

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Of returns the day of t, in t's location.
func Of(t time.Time) Date { return New(t.Date()) }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

// String format the date in its standard format, and "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.time().Format(DateFormat)
}

// Parse parses a Date from a string. It is lenient and accepts "2025-7-1" as
// well as full RFC 3339 timestamps, of which only the day is kept.
func Parse(str string) (Date, error) {
	str = strings.TrimSpace(str)
	if on, err := time.Parse(readDateFormat, str); err == nil {
		return Of(on), nil
	}
	if on, err := time.Parse(time.RFC3339Nano, str); err == nil {
		return Of(on.UTC()), nil
	}
	return Date{}, fmt.Errorf("invalid date %q want format %q", str, readDateFormat)
}

// UnmarshalJSON reads a date from a string, from a number of milliseconds
// since the epoch, or from a document store timestamp object
// {"seconds":...} (also "_seconds"). null and "" read as the zero Date.
func (j *Date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*j = Date{}
		return nil
	}
	switch data[0] {
	case '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		if str == "" {
			*j = Date{}
			return nil
		}
		d, err := Parse(str)
		if err != nil {
			return err
		}
		*j = d
	case '{':
		var ts struct {
			Seconds       *int64 `json:"seconds"`
			LegacySeconds *int64 `json:"_seconds"`
		}
		if err := json.Unmarshal(data, &ts); err != nil {
			return err
		}
		sec := ts.Seconds
		if sec == nil {
			sec = ts.LegacySeconds
		}
		if sec == nil {
			return fmt.Errorf("invalid timestamp object %s", data)
		}
		*j = Of(time.Unix(*sec, 0).UTC())
	default:
		var ms int64
		if err := json.Unmarshal(data, &ms); err != nil {
			return fmt.Errorf("invalid date %s: %w", data, err)
		}
		*j = Of(time.UnixMilli(ms).UTC())
	}
	return nil
}

// MarshalJSON writes the date as a "2006-01-02" string.
func (j Date) MarshalJSON() ([]byte, error) {
	str := j.String()
	return json.Marshal(&str)
}

// check that a Date pointer is a valid json marshall/unmarshaller type.
var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
