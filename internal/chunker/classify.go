package chunker

import (
	"strings"
	"sync"
	"sync/atomic"
)

// minClassifyLength is the trimmed length below which a passage is not
// classified at all.
const minClassifyLength = 10

// matchCache memoizes (text, phrase) substring lookups. Lookups are pure, so
// the cache is insert-only with a capacity bound instead of eviction: once
// full, misses fall through to a direct scan. Safe for concurrent use.
type matchCache struct {
	entries  sync.Map
	size     atomic.Int64
	capacity int64
}

func (c *matchCache) contains(textLower, phrase string) bool {
	key := phrase + "\x00" + textLower
	if v, ok := c.entries.Load(key); ok {
		return v.(bool)
	}

	found := strings.Contains(textLower, phrase)
	if c.size.Load() < c.capacity {
		if _, loaded := c.entries.LoadOrStore(key, found); !loaded {
			c.size.Add(1)
		}
	}
	return found
}

var phraseMatches = &matchCache{capacity: 4096}

// Classify returns the taxonomy categories whose phrases occur in text as
// case-insensitive literal substrings. Categories are not mutually exclusive;
// a passage may match several. Texts shorter than 10 trimmed characters match
// nothing. Pure aside from the optional memoization above.
func Classify(text string) []Category {
	if len(strings.TrimSpace(text)) < minClassifyLength {
		return nil
	}

	textLower := strings.ToLower(text)

	var matched []Category
	for _, cat := range CategoryOrder {
		for _, phrase := range taxonomy[cat] {
			if phraseMatches.contains(textLower, phrase) {
				matched = append(matched, cat)
				break
			}
		}
	}
	return matched
}
