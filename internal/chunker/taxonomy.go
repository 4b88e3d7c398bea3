package chunker

// Category is one of the fixed coarse classification buckets for tender
// document passages.
type Category string

const (
	CategoryTechnical         Category = "technical"
	CategoryFinancial         Category = "financial"
	CategoryJointVenture      Category = "joint_venture"
	CategoryCommercialClauses Category = "commercial_clauses"
	// CategoryOther collects paragraphs that match no taxonomy phrase.
	CategoryOther Category = "other"
)

// CategoryOrder is the fixed order categories are considered in when
// assembling relevant chunks for the LLM. CategoryOther is deliberately
// excluded: unmatched paragraphs are kept but never promoted as relevant.
var CategoryOrder = []Category{
	CategoryTechnical,
	CategoryFinancial,
	CategoryJointVenture,
	CategoryCommercialClauses,
}

// taxonomy maps each category to the lowercase domain phrases that identify
// it. Initialized once, never mutated.
var taxonomy = map[Category][]string{
	CategoryTechnical: {
		"technical qualification", "technical criteria", "technical requirement",
		"similar work", "work experience", "project experience", "completion certificate",
		"work order", "technical capacity", "technical capability", "eligible works",
		"qualification requirement", "technical eligibility",
	},
	CategoryFinancial: {
		"turnover", "financial qualification", "financial criteria", "financial requirement",
		"annual turnover", "average annual turnover", "financial capacity",
		"financial capability", "net worth", "liquid asset", "solvency",
		"working capital", "financial statement", "balance sheet", "profit and loss",
		"financial position", "financial standing", "financial strength", "revenue",
	},
	CategoryJointVenture: {
		"joint venture", "jv ", "consortium", "jv criteria", "jv requirement",
		"lead member", "lead partner", "jv agreement", "jv formation",
	},
	CategoryCommercialClauses: {
		"earnest money", "emd", "bid security", "performance security",
		"security deposit", "retention money", "defect liability", "completion period",
	},
}

// TaxonomyPhrases returns the phrases for a category (nil for unknown ones).
func TaxonomyPhrases(cat Category) []string {
	return taxonomy[cat]
}
