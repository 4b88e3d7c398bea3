package chunker

import (
	"fmt"
	"strings"
	"testing"
)

func emdDoc(n int) string {
	return fmt.Sprintf("Tender notice number %d for road construction. The earnest money deposit shall be paid by demand draft in favour of the authority before the deadline closes.", n)
}

func TestExtractCriteria(t *testing.T) {
	files := map[string]string{
		"doc1.txt": emdDoc(1),
		"doc2.txt": emdDoc(2),
		"doc3.txt": emdDoc(3),
	}

	got := ExtractCriteria(files, 500)

	if len(got) != 1 {
		t.Fatalf("ExtractCriteria() found %d criteria types, want 1: %v", len(got), got)
	}
	sections := got["emd_submission"]
	if len(sections) != 3 {
		t.Fatalf("emd_submission sections = %d, want one per document", len(sections))
	}
	for i, section := range sections {
		wantSource := fmt.Sprintf("doc%d.txt", i+1)
		if section.Source != wantSource {
			t.Errorf("sections[%d].Source = %q, want %q", i, section.Source, wantSource)
		}
		if section.Keyword != "earnest money deposit" {
			t.Errorf("sections[%d].Keyword = %q, want earnest money deposit", i, section.Keyword)
		}
		if section.CriteriaType != "emd_submission" {
			t.Errorf("sections[%d].CriteriaType = %q, want emd_submission", i, section.CriteriaType)
		}
		if !strings.Contains(strings.ToLower(section.Text), "earnest money deposit") {
			t.Errorf("sections[%d].Text = %q, keyword missing", i, section.Text)
		}
	}
}

func TestExtractCriteria_DeduplicatesIdenticalSections(t *testing.T) {
	files := map[string]string{
		"a.txt": emdDoc(1),
		"b.txt": emdDoc(1),
	}

	got := ExtractCriteria(files, 500)
	sections := got["emd_submission"]
	if len(sections) != 1 {
		t.Fatalf("sections = %d, want identical extractions collapsed to 1", len(sections))
	}
	if sections[0].Source != "a.txt" {
		t.Errorf("Source = %q, want first seen a.txt", sections[0].Source)
	}
}

func TestExtractCriteria_SkipsShortDocuments(t *testing.T) {
	files := map[string]string{
		"tiny.txt": "The annual turnover requirement is ten million rupees.",
	}

	got := ExtractCriteria(files, 500)
	if len(got) != 0 {
		t.Errorf("ExtractCriteria() = %v, want nothing from a document under 100 chars", got)
	}
}

func TestExtractCriteria_EmptyInput(t *testing.T) {
	got := ExtractCriteria(nil, 500)
	if got == nil || len(got) != 0 {
		t.Errorf("ExtractCriteria(nil) = %v, want empty non-nil map", got)
	}
}

func TestCriteriaTypeOrder(t *testing.T) {
	order := CriteriaTypeOrder()
	if len(order) != 11 {
		t.Fatalf("len(CriteriaTypeOrder()) = %d, want 11", len(order))
	}
	if order[0] != "turnover" {
		t.Errorf("order[0] = %q, want turnover", order[0])
	}
	if order[len(order)-1] != "incentive_bonus" {
		t.Errorf("order[last] = %q, want incentive_bonus", order[len(order)-1])
	}
}

func TestDedupKey(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "short text lowered and trimmed",
			text: "  The Turnover Clause  ",
			want: "the turnover clause",
		},
		{
			name: "long text cut to prefix",
			text: strings.Repeat("a", 150),
			want: strings.Repeat("a", 100),
		},
		{
			name: "cut never splits a rune",
			text: strings.Repeat("a", 99) + "é" + strings.Repeat("b", 50),
			want: strings.Repeat("a", 99),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dedupKey(tt.text); got != tt.want {
				t.Errorf("dedupKey() = %q, want %q", got, tt.want)
			}
		})
	}
}
