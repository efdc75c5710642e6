// Package format implements the three output modes the "make" CLI command
// can dump a clustered tree's paths through.
package format

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Step is one level of a clustered path, suitable for direct encoding.
type Step struct {
	Pattern string `json:"pattern"`
}

// Formatter writes one clustered path (a sequence of pattern steps) plus
// its occurrence count, to the writer it was constructed with.
type Formatter interface {
	Format(path []Step, count int) error
}

// JSON emits one JSON object per line: {"pattern":["a","[0-9]+"],"count":3}.
// Using json.Encoder rather than manual string building (the rough edge the
// teacher's own outputJSON has) avoids ad hoc escaping bugs.
type JSON struct {
	enc *json.Encoder
}

func NewJSON(w io.Writer) *JSON {
	return &JSON{enc: json.NewEncoder(w)}
}

type jsonRecord struct {
	Pattern []string `json:"pattern"`
	Count   int      `json:"count"`
}

func (f *JSON) Format(path []Step, count int) error {
	rec := jsonRecord{Pattern: make([]string, len(path)), Count: count}
	for i, s := range path {
		rec.Pattern[i] = s.Pattern
	}
	return f.enc.Encode(rec)
}

// CSV emits one row per path: pattern (joined with "/"), count.
type CSV struct {
	w           *csv.Writer
	wroteHeader bool
}

// NewCSV wraps w in a buffered csv.Writer, flushing after every record so
// a long-running "make" stream doesn't buffer an unbounded amount of
// output before it becomes visible.
func NewCSV(w io.Writer) *CSV {
	return &CSV{w: csv.NewWriter(w)}
}

func (c *CSV) Format(path []Step, count int) error {
	if !c.wroteHeader {
		if err := c.w.Write([]string{"pattern", "count"}); err != nil {
			return fmt.Errorf("format: writing csv header: %w", err)
		}
		c.wroteHeader = true
	}
	var joined string
	for i, s := range path {
		if i > 0 {
			joined += "/"
		}
		joined += s.Pattern
	}
	if err := c.w.Write([]string{joined, strconv.Itoa(count)}); err != nil {
		return fmt.Errorf("format: writing csv record: %w", err)
	}
	c.w.Flush()
	return c.w.Error()
}

// Null discards every record; used for "-F null" dry-run mode, where only
// the final Stats summary matters.
type Null struct{}

func (Null) Format([]Step, int) error { return nil }
