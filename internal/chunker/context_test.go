package chunker

import (
	"strings"
	"testing"
)

func TestExtractWithContext(t *testing.T) {
	doc := "First sentence here. The earnest money deposit shall be two percent of the bid value. Final sentence follows."

	tests := []struct {
		name        string
		text        string
		keyword     string
		contextSize int
		want        string
	}{
		{
			name:        "empty text",
			text:        "",
			keyword:     "turnover",
			contextSize: 100,
			want:        "",
		},
		{
			name:        "empty keyword",
			text:        doc,
			keyword:     "",
			contextSize: 100,
			want:        "",
		},
		{
			name:        "keyword absent",
			text:        doc,
			keyword:     "performance security",
			contextSize: 100,
			want:        "",
		},
		{
			name:        "expands to sentence boundaries",
			text:        doc,
			keyword:     "earnest money deposit",
			contextSize: 4,
			want:        "The earnest money deposit shall be two percent of the bid value.",
		},
		{
			name:        "window covering whole document",
			text:        doc,
			keyword:     "earnest money deposit",
			contextSize: 500,
			want:        doc,
		},
		{
			name:        "case insensitive match",
			text:        doc,
			keyword:     "EARNEST MONEY DEPOSIT",
			contextSize: 4,
			want:        "The earnest money deposit shall be two percent of the bid value.",
		},
		{
			name:        "paragraph boundary expansion",
			text:        "Intro paragraph.\n\nThe performance security is five percent.\n\nClosing paragraph.",
			keyword:     "performance security",
			contextSize: 5,
			want:        "The performance security is five percent.",
		},
		{
			name:        "keyword at document start",
			text:        "Turnover requirements are listed below. See annexure for details.",
			keyword:     "turnover",
			contextSize: 10,
			want:        "Turnover requirements are listed below.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractWithContext(tt.text, tt.keyword, tt.contextSize)
			if got != tt.want {
				t.Errorf("ExtractWithContext() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractWithContext_ContainsKeyword(t *testing.T) {
	doc := "Clause 12 begins here. The security deposit shall be recovered from running bills at the rate of five percent. Clause 13 follows after this point."
	got := ExtractWithContext(doc, "security deposit", 30)
	if !strings.Contains(strings.ToLower(got), "security deposit") {
		t.Errorf("extracted window %q does not contain the keyword", got)
	}
}

func TestExtractWithContext_Idempotent(t *testing.T) {
	doc := "Some preamble text. The defect liability period is twelve months from completion. Another clause here."
	first := ExtractWithContext(doc, "defect liability", 25)
	for i := 0; i < 5; i++ {
		if got := ExtractWithContext(doc, "defect liability", 25); got != first {
			t.Fatalf("call %d returned %q, first call returned %q", i+2, got, first)
		}
	}
	if first == "" {
		t.Fatal("expected a non-empty extraction")
	}
}

func TestExtractWithContext_FirstOccurrenceOnly(t *testing.T) {
	doc := "The turnover clause appears early. Later text repeats the turnover word again near the end of the document to make sure only one window comes back."
	got := ExtractWithContext(doc, "turnover", 10)
	if got == "" {
		t.Fatal("expected a non-empty extraction")
	}
	// A single call yields one window around the first occurrence.
	if strings.Count(got, "turnover") != 1 {
		t.Errorf("window %q should cover only the first occurrence", got)
	}
}
