package chunker

import "strings"

// DefaultContextSize is the number of characters taken before and after a
// matched keyword when no explicit window size is configured.
const DefaultContextSize = 500

// sentence/paragraph boundary markers, in the order they are probed.
var boundaryMarkers = []string{". ", ".\n", "\n\n"}

// ExtractWithContext returns the passage around the first case-insensitive
// occurrence of keyword in text. The raw window of contextSize characters on
// each side is widened outward to the nearest sentence or paragraph boundary
// (or the document edge), then trimmed. Returns "" when the keyword is absent.
// Only the first occurrence is considered.
func ExtractWithContext(text, keyword string, contextSize int) string {
	if text == "" || keyword == "" {
		return ""
	}

	textLower := strings.ToLower(text)
	keywordLower := strings.ToLower(keyword)

	pos := strings.Index(textLower, keywordLower)
	if pos == -1 {
		return ""
	}

	start := pos - contextSize
	if start < 0 {
		start = 0
	}
	end := pos + len(keyword) + contextSize
	if end > len(text) {
		end = len(text)
	}

	start = previousBoundary(text, start)
	end = nextBoundary(text, end)

	return strings.TrimSpace(text[start:end])
}

// previousBoundary finds the closest boundary marker before pos and returns
// the position just past it, or 0 when none exists.
func previousBoundary(text string, pos int) int {
	if pos <= 0 {
		return pos
	}

	boundary := -1
	for _, marker := range boundaryMarkers {
		if b := strings.LastIndex(text[:pos], marker); b > boundary {
			boundary = b
		}
	}
	if boundary == -1 {
		return 0
	}
	return boundary + 2
}

// nextBoundary finds the closest boundary marker at or after pos and returns
// the position just past its first character, or pos when none exists.
func nextBoundary(text string, pos int) int {
	if pos >= len(text) {
		return pos
	}

	boundary := -1
	for _, marker := range boundaryMarkers {
		if b := strings.Index(text[pos:], marker); b != -1 {
			if boundary == -1 || pos+b < boundary {
				boundary = pos + b
			}
		}
	}
	if boundary == -1 {
		return pos
	}
	return boundary + 1
}
