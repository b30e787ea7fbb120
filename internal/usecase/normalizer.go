package usecase

import (
	"fmt"
	"strings"

	"github.com/flavorquiz/backend/internal/domain"
)

// Lexicon holds the validated flavor distinction and spelling variation tables.
// It is immutable after construction and safe for concurrent use.
type Lexicon struct {
	distinctions map[string]domain.FlavorDistinctionRule
	variations   []domain.SpellingVariation
}

// defaultLexicon is built from the domain tables once at startup
var defaultLexicon = MustNewLexicon(domain.DefaultFlavorDistinctions, domain.DefaultSpellingVariations)

// DefaultLexicon returns the process-wide lexicon
func DefaultLexicon() *Lexicon {
	return defaultLexicon
}

// NewLexicon validates and copies the given tables.
// Every variant must be lowercase and begin and end with a word character,
// otherwise it could never match on word boundaries.
func NewLexicon(
	distinctions map[string]domain.FlavorDistinctionRule,
	variations []domain.SpellingVariation,
) (*Lexicon, error) {
	for key, rule := range distinctions {
		if key == "" || key != strings.ToLower(strings.TrimSpace(key)) {
			return nil, fmt.Errorf("%w: key %q must be trimmed lowercase", domain.ErrInvalidDistinction, key)
		}
		for _, f := range rule.Forbidden {
			if f == "" || f != strings.ToLower(f) {
				return nil, fmt.Errorf("%w: forbidden term %q under %q must be non-empty lowercase", domain.ErrInvalidDistinction, f, key)
			}
		}
	}

	for _, v := range variations {
		if v.Canonical == "" {
			return nil, fmt.Errorf("%w: empty canonical term", domain.ErrInvalidVariation)
		}
		for _, variant := range v.Variants {
			if err := validateVariant(variant); err != nil {
				return nil, fmt.Errorf("%w: %q under %q: %v", domain.ErrInvalidVariation, variant, v.Canonical, err)
			}
		}
	}

	return &Lexicon{
		distinctions: copyDistinctions(distinctions),
		variations:   copyVariations(variations),
	}, nil
}

// MustNewLexicon is like NewLexicon but panics on invalid tables
func MustNewLexicon(
	distinctions map[string]domain.FlavorDistinctionRule,
	variations []domain.SpellingVariation,
) *Lexicon {
	l, err := NewLexicon(distinctions, variations)
	if err != nil {
		panic(err)
	}
	return l
}

func validateVariant(variant string) error {
	if variant == "" {
		return fmt.Errorf("empty variant")
	}
	if variant != strings.ToLower(variant) {
		return fmt.Errorf("variant must be lowercase")
	}
	if !isWordByte(variant[0]) || !isWordByte(variant[len(variant)-1]) {
		return fmt.Errorf("variant must start and end with a word character")
	}
	return nil
}

// Normalize lowercases and trims text, then rewrites every whole-word
// occurrence of a registered variant to its canonical term. Entries are
// applied in declaration order, so a later entry wins for overlapping variants.
func (l *Lexicon) Normalize(text string) string {
	normalized := strings.ToLower(strings.TrimSpace(text))
	for _, v := range l.variations {
		for _, variant := range v.Variants {
			normalized = replaceWholeWord(normalized, variant, v.Canonical)
		}
	}
	return normalized
}

// MatchesWithVariation reports whether both answers normalize to the same text
func (l *Lexicon) MatchesWithVariation(userAnswer, correctAnswer string) bool {
	return l.Normalize(userAnswer) == l.Normalize(correctAnswer)
}

// CheckForbiddenConfusion flags userAnswer when it contains, or is contained
// in, a term the rule for correctAnswer forbids. No rule means no violation.
func (l *Lexicon) CheckForbiddenConfusion(userAnswer, correctAnswer string) domain.ForbiddenCheck {
	userNorm := strings.ToLower(strings.TrimSpace(userAnswer))
	correctNorm := strings.ToLower(strings.TrimSpace(correctAnswer))

	rule, ok := l.distinctions[correctNorm]
	if !ok {
		return domain.ForbiddenCheck{}
	}

	for _, forbidden := range rule.Forbidden {
		if strings.Contains(userNorm, forbidden) || strings.Contains(forbidden, userNorm) {
			return domain.ForbiddenCheck{
				IsForbidden: true,
				Reason:      fmt.Sprintf("\"%s\" and \"%s\" are DIFFERENT flavors - store training critical!", userAnswer, correctAnswer),
			}
		}
	}

	return domain.ForbiddenCheck{}
}

// FlavorDistinctions returns a copy of the distinction rules
func (l *Lexicon) FlavorDistinctions() map[string]domain.FlavorDistinctionRule {
	return copyDistinctions(l.distinctions)
}

// SpellingVariations returns a copy of the spelling variation table
func (l *Lexicon) SpellingVariations() []domain.SpellingVariation {
	return copyVariations(l.variations)
}

// Normalize applies the default lexicon
func Normalize(text string) string {
	return defaultLexicon.Normalize(text)
}

// MatchesWithVariation applies the default lexicon
func MatchesWithVariation(userAnswer, correctAnswer string) bool {
	return defaultLexicon.MatchesWithVariation(userAnswer, correctAnswer)
}

// CheckForbiddenConfusion applies the default lexicon
func CheckForbiddenConfusion(userAnswer, correctAnswer string) domain.ForbiddenCheck {
	return defaultLexicon.CheckForbiddenConfusion(userAnswer, correctAnswer)
}

// FlavorDistinctions returns a copy of the default distinction rules
func FlavorDistinctions() map[string]domain.FlavorDistinctionRule {
	return defaultLexicon.FlavorDistinctions()
}

// SpellingVariations returns a copy of the default spelling variations
func SpellingVariations() []domain.SpellingVariation {
	return defaultLexicon.SpellingVariations()
}

// isWordByte matches the ASCII word class [A-Za-z0-9_]
func isWordByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// atWordStart reports whether a word may begin at byte offset i
func atWordStart(s string, i int) bool {
	return i == 0 || !isWordByte(s[i-1])
}

// atWordEnd reports whether a word may end at byte offset i
func atWordEnd(s string, i int) bool {
	return i == len(s) || !isWordByte(s[i])
}

// replaceWholeWord replaces each occurrence of word in s that sits on word
// boundaries. Matches are found left to right without overlap, and the
// replacement text is never rescanned. word must start and end with a word byte.
func replaceWholeWord(s, word, repl string) string {
	if !strings.Contains(s, word) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	pos := 0
	for {
		i := strings.Index(s[pos:], word)
		if i < 0 {
			break
		}
		start := pos + i
		end := start + len(word)
		if atWordStart(s, start) && atWordEnd(s, end) {
			b.WriteString(s[pos:start])
			b.WriteString(repl)
			pos = end
			continue
		}
		// word starts with an ASCII byte, so start+1 never splits a rune
		b.WriteString(s[pos : start+1])
		pos = start + 1
	}
	b.WriteString(s[pos:])
	return b.String()
}

// containsWholeWord reports whether word occurs in s on word boundaries
func containsWholeWord(s, word string) bool {
	for pos := 0; pos < len(s); {
		i := strings.Index(s[pos:], word)
		if i < 0 {
			return false
		}
		start := pos + i
		if atWordStart(s, start) && atWordEnd(s, start+len(word)) {
			return true
		}
		pos = start + 1
	}
	return false
}

func copyDistinctions(src map[string]domain.FlavorDistinctionRule) map[string]domain.FlavorDistinctionRule {
	dst := make(map[string]domain.FlavorDistinctionRule, len(src))
	for k, rule := range src {
		dst[k] = domain.FlavorDistinctionRule{
			Forbidden: append([]string(nil), rule.Forbidden...),
			Aliases:   append([]string(nil), rule.Aliases...),
		}
	}
	return dst
}

func copyVariations(src []domain.SpellingVariation) []domain.SpellingVariation {
	dst := make([]domain.SpellingVariation, len(src))
	for i, v := range src {
		dst[i] = domain.SpellingVariation{
			Canonical: v.Canonical,
			Variants:  append([]string(nil), v.Variants...),
		}
	}
	return dst
}
