package selector

import (
	"strings"
	"testing"
)

var defaultConfig = Config{
	MaxFilesToProcess: 5,
	TopFilesToUse:     5,
	ContextSize:       500,
}

const (
	techPara1 = "The contractor shall furnish a completion certificate for each similar work executed in the preceding seven years."
	techPara2 = "Work experience of comparable nature must be supported by client certificates issued in original form."
	finPara1  = "The audited balance sheet and financial statement for the last three years shall accompany the bid."
	finPara2  = "A certified statement of net worth from a chartered accountant is to be enclosed with the submission."
	jvPara    = "A consortium of not more than three members may apply provided the lead member holds the majority share."
)

func TestCombine_EmptyInput(t *testing.T) {
	if got := Combine(nil, defaultConfig); got != "" {
		t.Errorf("Combine(nil) = %q, want empty", got)
	}
	if got := Combine(map[string]string{}, defaultConfig); got != "" {
		t.Errorf("Combine(empty) = %q, want empty", got)
	}
}

func TestCombine_PrefersRelevantChunks(t *testing.T) {
	files := map[string]string{
		"tender.txt": strings.Join([]string{techPara1, techPara2, finPara1, finPara2, jvPara}, "\n\n"),
	}

	got := Combine(files, defaultConfig)

	// Technical chunks first, then financial, then joint venture, in
	// paragraph order within each category.
	want := strings.Join([]string{techPara1, techPara2, finPara1, finPara2, jvPara}, chunkSeparator)
	if got != want {
		t.Errorf("Combine() = %q, want %q", got, want)
	}
	if strings.Contains(got, sectionSeparator) {
		t.Error("chunk path must not include the fallback section separator")
	}
}

func TestCombine_FallbackKeepsLargestFiles(t *testing.T) {
	// Six files with no relevant content and below the chunking minimum, so
	// selection must fall back to the largest whole files.
	files := map[string]string{
		"doc1.txt": strings.Repeat("a", 10),
		"doc2.txt": strings.Repeat("b", 20),
		"doc3.txt": strings.Repeat("c", 30),
		"doc4.txt": strings.Repeat("d", 40),
		"doc5.txt": strings.Repeat("e", 50),
		"doc6.txt": strings.Repeat("f", 60),
	}

	got := Combine(files, defaultConfig)

	want := strings.Join([]string{
		strings.Repeat("f", 60),
		strings.Repeat("e", 50),
		strings.Repeat("d", 40),
		strings.Repeat("c", 30),
		strings.Repeat("b", 20),
	}, chunkSeparator)
	if got != want {
		t.Errorf("Combine() = %q, want five largest files size descending", got)
	}
}

func TestCombine_FallbackWithChunkPreamble(t *testing.T) {
	aText := jvPara + "\n\n" + "The work site is located twelve kilometers from the district headquarters on the highway."
	bText := "Short general note about the pre-bid site visit."
	files := map[string]string{
		"a.txt": aText,
		"b.txt": bText,
	}

	got := Combine(files, defaultConfig)

	// One relevant chunk is too few, so the whole files follow the chunk
	// preamble after the section separator.
	want := jvPara + sectionSeparator + aText + chunkSeparator + bText
	if got != want {
		t.Errorf("Combine() = %q, want %q", got, want)
	}
}

func TestCombine_Deterministic(t *testing.T) {
	files := map[string]string{
		"z.txt": strings.Repeat("z", 40),
		"m.txt": strings.Repeat("m", 40),
		"a.txt": strings.Repeat("a", 40),
	}

	first := Combine(files, defaultConfig)
	for i := 0; i < 10; i++ {
		if got := Combine(files, defaultConfig); got != first {
			t.Fatalf("Combine() run %d = %q, differs from first run %q", i+2, got, first)
		}
	}
	// All files fit, joined in filename order.
	want := strings.Join([]string{
		strings.Repeat("a", 40),
		strings.Repeat("m", 40),
		strings.Repeat("z", 40),
	}, chunkSeparator)
	if first != want {
		t.Errorf("Combine() = %q, want files in name order", first)
	}
}

func TestLargestTexts_TieBreakByName(t *testing.T) {
	files := map[string]string{
		"b.txt": strings.Repeat("b", 30),
		"a.txt": strings.Repeat("a", 30),
		"c.txt": strings.Repeat("c", 40),
	}

	got := largestTexts(files, 2)
	if len(got) != 2 {
		t.Fatalf("largestTexts() returned %d texts, want 2", len(got))
	}
	if got[0] != strings.Repeat("c", 40) {
		t.Errorf("got[0] = %q, want the largest file", got[0])
	}
	// Equal sizes keep filename order.
	if got[1] != strings.Repeat("a", 30) {
		t.Errorf("got[1] = %q, want a.txt to win the size tie", got[1])
	}
}
