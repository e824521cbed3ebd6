package deck

import (
	"fmt"
	"strings"
)

// EnglishColumn is the column every table carries alongside its language column.
const EnglishColumn = "English"

// Language names a foreign-language column, e.g. "French".
type Language string

const (
	LanguageFrench         Language = "French"
	LanguageGerman         Language = "German"
	LanguageSpanish        Language = "Spanish"
	LanguageMexicanSpanish Language = "Mexican Spanish"
)

// Languages lists the supported languages in menu order.
var Languages = []Language{LanguageFrench, LanguageGerman, LanguageSpanish, LanguageMexicanSpanish}

// Slug returns the file-name form of the language: "Mexican Spanish" → "mexican_spanish".
func (l Language) Slug() string {
	return strings.ReplaceAll(strings.ToLower(string(l)), " ", "_")
}

// ParseLanguage matches a language by display name or slug, ignoring case.
func ParseLanguage(s string) (Language, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, l := range Languages {
		if norm == strings.ToLower(string(l)) || norm == l.Slug() {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown language %q", s)
}

// Category names a phrase collection.
type Category string

const (
	CategoryGeneral    Category = "general"
	CategoryTravel     Category = "travel"
	CategoryRestaurant Category = "restaurant"
	CategoryDating     Category = "dating"
	CategoryWork       Category = "work"
)

// Categories lists the supported categories in menu order.
var Categories = []Category{CategoryGeneral, CategoryTravel, CategoryRestaurant, CategoryDating, CategoryWork}

// ParseCategory matches a category name, ignoring case.
func ParseCategory(s string) (Category, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, c := range Categories {
		if norm == string(c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Direction selects which side of an entry is the prompt.
type Direction string

const (
	ToEnglish   Direction = "to_english"
	FromEnglish Direction = "from_english"
)

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	if d == FromEnglish {
		return ToEnglish
	}
	return FromEnglish
}

// Label returns "to English" or "from English".
func (d Direction) Label() string {
	if d == FromEnglish {
		return "from English"
	}
	return "to English"
}

// ParseDirection accepts "to_english", "to-english", "from_english" and "from-english".
func ParseDirection(s string) (Direction, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_") {
	case string(ToEnglish):
		return ToEnglish, nil
	case string(FromEnglish):
		return FromEnglish, nil
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

// Selector identifies one deck: a language, a category and a direction.
// Legacy selects the single-language French word list, which ignores the
// category and keeps one in-progress file for both directions.
type Selector struct {
	Language  Language
	Category  Category
	Direction Direction
	Legacy    bool
}

// LanguageColumn is the name of the foreign-language column for this selector.
func (s Selector) LanguageColumn() string {
	if s.Legacy {
		return string(LanguageFrench)
	}
	return string(s.Language)
}

// PromptColumn is the column shown first.
func (s Selector) PromptColumn() string {
	if s.Direction == FromEnglish {
		return EnglishColumn
	}
	return s.LanguageColumn()
}

// AnswerColumn is the column revealed after the delay.
func (s Selector) AnswerColumn() string {
	if s.Direction == FromEnglish {
		return s.LanguageColumn()
	}
	return EnglishColumn
}

func (s Selector) String() string {
	if s.Legacy {
		return fmt.Sprintf("%s words %s", LanguageFrench, s.Direction.Label())
	}
	return fmt.Sprintf("%s %s - %s", s.Language, s.Direction.Label(), s.Category)
}

// All returns every non-legacy selector combination.
func All() []Selector {
	var out []Selector
	for _, l := range Languages {
		for _, c := range Categories {
			for _, d := range []Direction{ToEnglish, FromEnglish} {
				out = append(out, Selector{Language: l, Category: c, Direction: d})
			}
		}
	}
	return out
}
