package models

import "strings"

// Category partitions the vocabulary pool into independent learning pools.
// All queue and selection operations are scoped to exactly one category.
type Category string

const (
	CategoryGeneral  Category = "GENERAL"
	CategoryToeic    Category = "TOEIC"
	CategoryVstep    Category = "VSTEP"
	CategorySpeaking Category = "SPEAKING"
	CategoryWriting  Category = "WRITING"
)

// Categories returns every known category in display order.
func Categories() []Category {
	return []Category{
		CategoryGeneral,
		CategoryToeic,
		CategoryVstep,
		CategorySpeaking,
		CategoryWriting,
	}
}

// ParseCategory matches s against the known categories, ignoring case.
// The second return value reports whether s named a known category.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Categories() {
		if c == known {
			return known, true
		}
	}
	return CategoryGeneral, false
}
