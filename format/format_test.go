package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestJSON_Format(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSON(&buf)
	if err := f.Format([]Step{{Pattern: "a"}, {Pattern: "[0-9]+"}}, 3); err != nil {
		t.Fatalf("Format: %v", err)
	}
	var rec jsonRecord
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if rec.Count != 3 || len(rec.Pattern) != 2 || rec.Pattern[1] != "[0-9]+" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestCSV_Format_WritesHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	f := NewCSV(&buf)
	if err := f.Format([]Step{{Pattern: "a"}}, 1); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if err := f.Format([]Step{{Pattern: "b"}}, 2); err != nil {
		t.Fatalf("Format: %v", err)
	}
	out := buf.String()
	if strings.Count(out, "pattern,count") != 1 {
		t.Fatalf("expected exactly one header row, got:\n%s", out)
	}
	if !strings.Contains(out, "a,1") || !strings.Contains(out, "b,2") {
		t.Fatalf("missing expected rows:\n%s", out)
	}
}

func TestNull_Format_NeverErrors(t *testing.T) {
	var n Null
	if err := n.Format([]Step{{Pattern: "x"}}, 5); err != nil {
		t.Fatalf("Null.Format should never error, got %v", err)
	}
}
