package usecase

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/flavorquiz/backend/internal/domain"
)

// Keywords that signal how specific a reverse question is.
// Matched as whole words against the lowercased question.
var (
	tertiaryKeywords = []string{
		"specific", "exact", "exactly", "precise", "precisely", "particular",
		"variety", "varietal", "subtype", "sub-type", "which one", "named",
	}

	secondaryKeywords = []string{
		"type", "kind", "family", "style", "group", "subcategory",
		"sort", "class", "blend", "profile",
	}

	// quaternaryKeywords are counted for diagnostics only; DetectLevel never consults them
	quaternaryKeywords = []string{
		"note", "notes", "hint", "hints", "undertone", "finish", "accent", "aftertaste",
	}
)

// levelSignals are the keyword hit counts found in a question
type levelSignals struct {
	tertiary   int
	secondary  int
	quaternary int
}

func countKeywords(text string, keywords []string) int {
	count := 0
	for _, k := range keywords {
		if containsWholeWord(text, k) {
			count++
		}
	}
	return count
}

func detectLevelSignals(question string) levelSignals {
	q := strings.ToLower(question)
	return levelSignals{
		tertiary:   countKeywords(q, tertiaryKeywords),
		secondary:  countKeywords(q, secondaryKeywords),
		quaternary: countKeywords(q, quaternaryKeywords),
	}
}

func (s levelSignals) level() domain.Level {
	switch {
	case s.tertiary >= 2:
		return domain.LevelTertiary
	case s.tertiary == 1 || s.secondary >= 2:
		return domain.LevelSecondary
	}
	return domain.LevelPrimary
}

// DetectLevel infers how many taxonomy levels a reverse question expects to agree.
// An empty question asks only for the primary category.
func DetectLevel(question string) domain.Level {
	if strings.TrimSpace(question) == "" {
		return domain.LevelPrimary
	}
	return detectLevelSignals(question).level()
}

// ResolveEntry finds the first entry whose name equals name, ignoring case
// and surrounding whitespace. It returns nil when nothing matches.
func ResolveEntry(name string, database []domain.ProductCategoryEntry) *domain.ProductCategoryEntry {
	target := strings.TrimSpace(name)
	for i := range database {
		if strings.EqualFold(strings.TrimSpace(database[i].Name), target) {
			entry := database[i]
			return &entry
		}
	}
	return nil
}

// CategoryCheck is the outcome of comparing two taxonomy entries
type CategoryCheck struct {
	Matched bool
	Shared  []string
}

// sameCategory requires both values to be present and equal
func sameCategory(a, b string) bool {
	return a != "" && a == b
}

// CheckCategoryMatch decides whether two entries agree at the given level.
// Secondary and tertiary both require primary and secondary agreement;
// tertiary additionally reports an agreeing tertiary category without requiring it.
func CheckCategoryMatch(user, expected *domain.ProductCategoryEntry, level domain.Level) CategoryCheck {
	if user == nil || expected == nil {
		return CategoryCheck{}
	}

	if !sameCategory(user.Primary, expected.Primary) {
		return CategoryCheck{}
	}
	if level == domain.LevelPrimary {
		return CategoryCheck{Matched: true, Shared: []string{expected.Primary}}
	}

	if !sameCategory(user.Secondary, expected.Secondary) {
		return CategoryCheck{}
	}
	shared := []string{expected.Primary, expected.Secondary}

	if level == domain.LevelTertiary && sameCategory(user.Tertiary, expected.Tertiary) {
		shared = append(shared, expected.Tertiary)
	}

	return CategoryCheck{Matched: true, Shared: shared}
}

// CompareWithHierarchicalCategory scores a reverse question. The text tiers
// run first; only a failed verdict falls back to taxonomy agreement, and
// only when a database is supplied.
func (v *AnswerValidator) CompareWithHierarchicalCategory(
	userAnswer, expectedAnswer, question string,
	database []domain.ProductCategoryEntry,
	opts domain.ComparisonOptions,
) domain.ComparisonResult {
	result := v.Compare(userAnswer, expectedAnswer, opts)

	if !result.Status.IsFailure() {
		result.MatchType = domain.MatchTypeExact
		result.Exact = &domain.ExactMatchInfo{XPMultiplier: float64(result.Award) / domain.AwardFull}
		return result
	}

	if database == nil {
		result.MatchType = domain.MatchTypeNone
		return result
	}

	log := v.detailLogger(opts)
	signals := detectLevelSignals(question)
	level := DetectLevel(question)
	log.Info("category fallback",
		zap.String("level", string(level)),
		zap.Int("tertiary_hits", signals.tertiary),
		zap.Int("secondary_hits", signals.secondary),
		zap.Int("quaternary_hits", signals.quaternary),
	)

	userEntry := ResolveEntry(userAnswer, database)
	expectedEntry := ResolveEntry(expectedAnswer, database)
	if userEntry == nil || expectedEntry == nil {
		log.Info("category fallback: entry not found",
			zap.Bool("user_found", userEntry != nil),
			zap.Bool("expected_found", expectedEntry != nil),
		)
		return noCategoryMatch(expectedAnswer, result.Similarity)
	}

	check := CheckCategoryMatch(userEntry, expectedEntry, level)
	if !check.Matched {
		log.Info("category fallback: no agreement",
			zap.String("user_path", userEntry.Path()),
			zap.String("expected_path", expectedEntry.Path()),
		)
		return noCategoryMatch(expectedAnswer, result.Similarity)
	}

	log.Info("category fallback: match", zap.Strings("shared", check.Shared))
	return domain.ComparisonResult{
		Status:     domain.StatusCategoryMatch,
		Similarity: result.Similarity,
		Feedback: fmt.Sprintf("✓ Correct category! \"%s\" and \"%s\" are both %s.",
			userAnswer, expectedAnswer, strings.Join(check.Shared, " > ")),
		Award:     domain.AwardFull,
		MatchType: domain.MatchTypeCategory,
		Category: &domain.CategoryMatchInfo{
			XPMultiplier:     1.0,
			MatchedLevel:     level,
			SharedCategories: check.Shared,
		},
	}
}

func noCategoryMatch(expectedAnswer string, similarity float64) domain.ComparisonResult {
	return domain.ComparisonResult{
		Status:     domain.StatusIncorrect,
		Similarity: similarity,
		Feedback:   fmt.Sprintf("✗ Not quite. The correct answer is \"%s\".", expectedAnswer),
		Award:      domain.AwardNone,
		MatchType:  domain.MatchTypeNone,
	}
}
