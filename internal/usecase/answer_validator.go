package usecase

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/flavorquiz/backend/internal/domain"
)

// Similarity reported for a spelling-variant match, which has no edit-distance score of its own
const spellingVariationSimilarity = 0.95

var noopLogger = zap.NewNop()

// ValidatorConfig holds configuration for the answer validator
type ValidatorConfig struct {
	Lexicon *Lexicon
	Logger  *zap.Logger
}

// AnswerValidator scores free-typed answers against the expected answer.
// It holds no mutable state and is safe for concurrent use.
type AnswerValidator struct {
	lexicon *Lexicon
	logger  *zap.Logger
}

// NewAnswerValidator creates a validator, falling back to the default lexicon and a no-op logger
func NewAnswerValidator(config ValidatorConfig) *AnswerValidator {
	lexicon := config.Lexicon
	if lexicon == nil {
		lexicon = defaultLexicon
	}

	logger := config.Logger
	if logger == nil {
		logger = noopLogger
	}

	return &AnswerValidator{
		lexicon: lexicon,
		logger:  logger,
	}
}

// Lexicon returns the tables the validator matches against
func (v *AnswerValidator) Lexicon() *Lexicon {
	return v.lexicon
}

// Compare runs the tiers in order and returns the first terminal verdict:
//  0. empty answer
//  1. exact match after trim and lowercase
//  2. forbidden flavor confusion (only with StrictFlavors)
//  3. registered spelling variation
//  4. edit-distance similarity against the thresholds
func (v *AnswerValidator) Compare(userAnswer, correctAnswer string, opts domain.ComparisonOptions) domain.ComparisonResult {
	opts = opts.WithDefaults()

	if strings.TrimSpace(userAnswer) == "" {
		return domain.ComparisonResult{
			Status:     domain.StatusEmpty,
			Similarity: 0,
			Feedback:   "❌ No answer provided",
			Award:      domain.AwardNone,
		}
	}

	userNorm := strings.ToLower(strings.TrimSpace(userAnswer))
	correctNorm := strings.ToLower(strings.TrimSpace(correctAnswer))

	log := v.detailLogger(opts)
	log.Info("comparing answer",
		zap.String("user", userAnswer),
		zap.String("correct", correctAnswer),
	)

	if userNorm == correctNorm {
		log.Info("result: perfect (exact match)")
		return domain.ComparisonResult{
			Status:     domain.StatusPerfect,
			Similarity: 1.0,
			Feedback:   "✓ Perfect! Exact match.",
			Award:      domain.AwardFull,
		}
	}

	// Confusable flavors are lexically close, so this must run before fuzzy scoring
	if opts.StrictFlavors {
		if check := v.lexicon.CheckForbiddenConfusion(userAnswer, correctAnswer); check.IsForbidden {
			log.Info("result: forbidden confusion")
			return domain.ComparisonResult{
				Status:     domain.StatusForbidden,
				Similarity: 0,
				Feedback:   "🚫 " + check.Reason,
				Award:      domain.AwardNone,
			}
		}
	}

	if v.lexicon.MatchesWithVariation(userAnswer, correctAnswer) {
		log.Info("result: close (spelling variation)")
		return domain.ComparisonResult{
			Status:     domain.StatusCloseSpelling,
			Similarity: spellingVariationSimilarity,
			Feedback:   "~ Close! Spelling variation accepted.",
			Award:      domain.AwardClose,
		}
	}

	similarity := Similarity(userNorm, correctNorm)
	percent := formatPercent(similarity)

	switch {
	case similarity >= opts.PerfectThreshold:
		log.Info("result: perfect (fuzzy)", zap.Float64("similarity", similarity))
		return domain.ComparisonResult{
			Status:     domain.StatusPerfect,
			Similarity: similarity,
			Feedback:   "✓ Perfect!",
			Award:      domain.AwardFull,
		}
	case similarity >= opts.CloseThreshold:
		log.Info("result: close (fuzzy)", zap.Float64("similarity", similarity))
		return domain.ComparisonResult{
			Status:     domain.StatusClose,
			Similarity: similarity,
			Feedback:   fmt.Sprintf("~ Close! Minor differences (%s%% match).", percent),
			Award:      domain.AwardClose,
		}
	case similarity >= opts.AcceptThreshold:
		log.Info("result: acceptable (fuzzy)", zap.Float64("similarity", similarity))
		return domain.ComparisonResult{
			Status:     domain.StatusAcceptable,
			Similarity: similarity,
			Feedback:   fmt.Sprintf("≈ Acceptable (%s%% match), but check spelling.", percent),
			Award:      domain.AwardAcceptable,
		}
	}

	log.Info("result: incorrect", zap.Float64("similarity", similarity))
	return domain.ComparisonResult{
		Status:     domain.StatusIncorrect,
		Similarity: similarity,
		Feedback:   "✗ Not quite. Try again!",
		Award:      domain.AwardNone,
	}
}

// detailLogger returns the validator logger when per-tier details are requested
func (v *AnswerValidator) detailLogger(opts domain.ComparisonOptions) *zap.Logger {
	if !opts.LogDetails {
		return noopLogger
	}
	return v.logger.Named("answer")
}

// formatPercent renders a ratio as a whole percentage, e.g. 0.857 -> "86"
func formatPercent(ratio float64) string {
	return fmt.Sprintf("%.0f", ratio*100)
}
