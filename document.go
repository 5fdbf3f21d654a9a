package stacker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Document is what is persisted for a user: the stack and the value it had
// when it was last saved.
type Document struct {
	Stack       []Holding
	LastValue   float64
	LastUpdated time.Time
}

// NewDocument returns the document to save for a stack valued at value.
func NewDocument(s *Stack, value Money, now time.Time) Document {
	return Document{
		Stack:       s.Holdings(),
		LastValue:   value.Float64(),
		LastUpdated: now.UTC(),
	}
}

// Previous returns the value of the stack at the last session, zero when unknown.
func (d Document) Previous() Money { return USD(toNumberOrZero(d.LastValue)) }

// MarshalJSON writes {stack, lastValue, lastUpdated}, stack is never null.
func (d Document) MarshalJSON() ([]byte, error) {
	stack := d.Stack
	if stack == nil {
		stack = []Holding{}
	}
	var w jsonObjectWriter
	w.Append("stack", stack)
	w.Append("lastValue", toNumberOrZero(d.LastValue))
	if !d.LastUpdated.IsZero() {
		w.Append("lastUpdated", d.LastUpdated.Format(time.RFC3339Nano))
	}
	return w.MarshalJSON()
}

// UnmarshalJSON reads a document. Stacks saved before the document format
// existed are a bare array of holdings, they read with a zero LastValue.
func (d *Document) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var stack []Holding
		if err := json.Unmarshal(data, &stack); err != nil {
			return fmt.Errorf("invalid legacy stack: %w", err)
		}
		*d = Document{Stack: stack}
		return nil
	}

	var j struct {
		Stack       json.RawMessage `json:"stack"`
		LastValue   lenientNumber   `json:"lastValue"`
		LastUpdated string          `json:"lastUpdated"`
	}
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	var stack []Holding
	// a stack that is not an array is an empty stack.
	if len(j.Stack) > 0 && bytes.TrimSpace(j.Stack)[0] == '[' {
		if err := json.Unmarshal(j.Stack, &stack); err != nil {
			return fmt.Errorf("invalid stack: %w", err)
		}
	}
	*d = Document{Stack: stack, LastValue: float64(j.LastValue)}
	if t, err := time.Parse(time.RFC3339Nano, j.LastUpdated); err == nil {
		d.LastUpdated = t
	}
	return nil
}

// DecodeDocument reads a document from r. An empty input is the empty
// document of a new user.
func DecodeDocument(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Document{}, nil
	}
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("cannot decode stack document: %w", err)
	}
	return d, nil
}

// EncodeDocument writes d to w as indented JSON.
func EncodeDocument(w io.Writer, d Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
