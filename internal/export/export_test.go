package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/srdobolo/API-Request-Sapo-Emprego/internal/models"
)

func sampleResults() []models.SubmissionResult {
	return []models.SubmissionResult{
		{
			URL:       "https://www.recruityard.com/find-jobs-all/agent-pt",
			Reference: "RY-1",
			Title:     "Agent",
			Status:    models.StatusSucceeded,
			Attempts:  1,
		},
		{
			URL:      "https://www.recruityard.com/find-jobs-all/broken-pt",
			Status:   models.StatusFailed,
			Reason:   "http 400: {\"error\":\n\"bad\"}",
			Attempts: 3,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResults(&buf, sampleResults(), FormatCSV, WriteOptions{}); err != nil {
		t.Fatalf("WriteResults() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	if lines[0] != "url,reference,title,status,attempts,reason" {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "https://www.recruityard.com/find-jobs-all/agent-pt,RY-1,Agent,succeeded,1,") {
		t.Fatalf("row = %q", lines[1])
	}
}

func TestWriteTSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResults(&buf, sampleResults(), FormatTSV, WriteOptions{}); err != nil {
		t.Fatalf("WriteResults() error = %v", err)
	}
	if !strings.Contains(buf.String(), "failed\t3\t") {
		t.Fatalf("unexpected tsv output: %q", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResults(&buf, sampleResults(), FormatJSON, WriteOptions{}); err != nil {
		t.Fatalf("WriteResults() error = %v", err)
	}

	var decoded []models.SubmissionResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(decoded) != 2 || decoded[1].Status != models.StatusFailed {
		t.Fatalf("unexpected decoded results: %+v", decoded)
	}

	buf.Reset()
	if err := WriteResults(&buf, nil, FormatJSON, WriteOptions{}); err != nil {
		t.Fatalf("WriteResults() error = %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("empty results should encode as [], got %q", buf.String())
	}
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResults(&buf, sampleResults(), FormatMarkdown, WriteOptions{}); err != nil {
		t.Fatalf("WriteResults() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"- **Agent** (RY-1)", "- **-** (-)", "  Status: failed", "  Reason: http 400"} {
		if !strings.Contains(out, want) {
			t.Fatalf("markdown missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	_ = WriteResults(&buf, nil, FormatMarkdown, WriteOptions{})
	if strings.TrimSpace(buf.String()) != "No results." {
		t.Fatalf("unexpected empty markdown: %q", buf.String())
	}
}

func TestWriteTablePlain(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResults(&buf, sampleResults(), FormatTable, WriteOptions{}); err != nil {
		t.Fatalf("WriteResults() error = %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "\x1b") {
		t.Fatalf("plain table should not contain escape codes: %q", out)
	}
	if !strings.Contains(out, "recruityard.com/find-jobs-all/agent-pt") {
		t.Fatalf("table missing short url: %q", out)
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{"": FormatTable, "CSV": FormatCSV, "markdown": FormatMarkdown, "tsv": FormatTSV}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
