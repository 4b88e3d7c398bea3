package chunker

import (
	"strings"

	"github.com/mfenderov/tenderlens/pkg/models"
)

// minSectionLength discards extraction results too short to be useful.
const minSectionLength = 20

// dedupPrefixLength is the number of leading characters used as the
// similarity key when deduplicating extracted sections.
const dedupPrefixLength = 100

// CriteriaSection is one contextual excerpt extracted for a specific
// procurement sub-criterion.
type CriteriaSection struct {
	Text         string `json:"text"`
	Source       string `json:"source"`
	Keyword      string `json:"keyword"`
	CriteriaType string `json:"criteria_type"`
}

// criteriaSearchTerms lists the specific sub-criteria scanned for in every
// tender, each with its candidate phrases ordered most-common-first. The
// phrase order is a scan-cost optimization only, never a ranking.
var criteriaSearchTerms = []struct {
	Type  string
	Terms []string
}{
	{"turnover", []string{"turnover", "annual turnover", "average annual turnover", "financial turnover", "revenue"}},
	{"emd_submission", []string{"earnest money deposit", "emd", "bid security", "mode of emd", "emd submission"}},
	{"completion_period", []string{"completion period", "contract period", "time of completion", "project timeline"}},
	{"performance_security", []string{"performance security", "performance guarantee", "performance bond"}},
	{"security_deposit", []string{"security deposit", "retention money", "retention amount", "withheld amount"}},
	{"defect_liability", []string{"defect liability", "defect liability period", "maintenance period", "warranty period"}},
	{"mobilization_advance", []string{"mobilization advance", "mobilisation advance", "advance payment"}},
	{"solvency_working_capital", []string{"solvency", "working capital", "bank solvency", "credit facility"}},
	{"liquid_asset", []string{"liquid asset", "cash flow", "liquidity", "liquid fund"}},
	{"price_variation", []string{"price variation", "price adjustment", "escalation clause", "price escalation"}},
	{"incentive_bonus", []string{"incentive", "bonus clause", "early completion bonus", "performance bonus"}},
}

// CriteriaTypeOrder returns the fixed order criteria types are scanned and
// later assembled in.
func CriteriaTypeOrder() []string {
	order := make([]string, len(criteriaSearchTerms))
	for i, entry := range criteriaSearchTerms {
		order[i] = entry.Type
	}
	return order
}

// ExtractCriteria scans all documents for the specific criteria phrases and
// extracts a contextual excerpt per (phrase, document) hit. Documents under
// 100 trimmed characters are ignored. Criteria types whose phrases appear
// nowhere in the combined text are skipped without per-document scanning.
// Sections are deduplicated per type on their lowercased, trimmed 100-char
// prefix, first seen wins. Types with no surviving sections are omitted.
func ExtractCriteria(files map[string]string, contextSize int) map[string][]CriteriaSection {
	if len(files) == 0 {
		return map[string][]CriteriaSection{}
	}

	validNames := make([]string, 0, len(files))
	for _, name := range models.SortedFileNames(files) {
		if len(strings.TrimSpace(files[name])) > minDocumentLength {
			validNames = append(validNames, name)
		}
	}
	if len(validNames) == 0 {
		return map[string][]CriteriaSection{}
	}

	loweredTexts := make([]string, len(validNames))
	for i, name := range validNames {
		loweredTexts[i] = strings.ToLower(files[name])
	}
	combinedLower := strings.Join(loweredTexts, " ")

	result := make(map[string][]CriteriaSection)
	for _, entry := range criteriaSearchTerms {
		if !anyTermPresent(combinedLower, entry.Terms) {
			continue
		}

		sections := extractSections(files, validNames, loweredTexts, entry.Type, entry.Terms, contextSize)
		if len(sections) > 0 {
			result[entry.Type] = sections
		}
	}
	return result
}

func anyTermPresent(combinedLower string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(combinedLower, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

func extractSections(files map[string]string, names []string, loweredTexts []string, criteriaType string, terms []string, contextSize int) []CriteriaSection {
	var sections []CriteriaSection
	processed := make(map[string]bool, len(terms))

	for _, term := range terms {
		termLower := strings.ToLower(term)
		if processed[termLower] {
			continue
		}
		processed[termLower] = true

		for i, name := range names {
			if !strings.Contains(loweredTexts[i], termLower) {
				continue
			}
			extracted := ExtractWithContext(files[name], term, contextSize)
			if len(strings.TrimSpace(extracted)) > minSectionLength {
				sections = append(sections, CriteriaSection{
					Text:         extracted,
					Source:       name,
					Keyword:      term,
					CriteriaType: criteriaType,
				})
			}
		}
	}

	return dedupSections(sections)
}

// dedupSections drops sections whose leading text matches one already seen,
// preserving first-seen order.
func dedupSections(sections []CriteriaSection) []CriteriaSection {
	unique := make([]CriteriaSection, 0, len(sections))
	seen := make(map[string]bool, len(sections))

	for _, section := range sections {
		key := dedupKey(section.Text)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, section)
	}
	return unique
}

// dedupKey is the lowercased, whitespace-trimmed prefix of the section text.
// The cut respects UTF-8 boundaries so a rune is never split.
func dedupKey(text string) string {
	if len(text) > dedupPrefixLength {
		cut := dedupPrefixLength
		for cut > 0 && text[cut]&0xC0 == 0x80 {
			cut--
		}
		text = text[:cut]
	}
	return strings.TrimSpace(strings.ToLower(text))
}
