package domain

import "strings"

// Level is how deep into the product taxonomy two answers must agree
type Level string

const (
	LevelPrimary    Level = "primary"
	LevelSecondary  Level = "secondary"
	LevelTertiary   Level = "tertiary"
	LevelQuaternary Level = "quaternary"
)

// ProductCategoryEntry places one product in the four-level taxonomy.
// An empty category field means the level is absent for that product.
type ProductCategoryEntry struct {
	Name       string `json:"name" yaml:"name"`
	Primary    string `json:"primary,omitempty" yaml:"primary"`
	Secondary  string `json:"secondary,omitempty" yaml:"secondary"`
	Tertiary   string `json:"tertiary,omitempty" yaml:"tertiary"`
	Quaternary string `json:"quaternary,omitempty" yaml:"quaternary"`
}

// Category returns the entry's value at the given level
func (e ProductCategoryEntry) Category(level Level) string {
	switch level {
	case LevelPrimary:
		return e.Primary
	case LevelSecondary:
		return e.Secondary
	case LevelTertiary:
		return e.Tertiary
	case LevelQuaternary:
		return e.Quaternary
	}
	return ""
}

// Path joins the present categories from the top, e.g. "Fruit > Berry"
func (e ProductCategoryEntry) Path() string {
	var parts []string
	for _, c := range []string{e.Primary, e.Secondary, e.Tertiary, e.Quaternary} {
		if c == "" {
			break
		}
		parts = append(parts, c)
	}
	return strings.Join(parts, " > ")
}
