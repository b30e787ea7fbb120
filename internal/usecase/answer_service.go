package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/flavorquiz/backend/internal/domain"
)

// AnswerServiceConfig holds configuration for the answer service
type AnswerServiceConfig struct {
	// Defaults are the options every request starts from
	Defaults domain.ComparisonOptions
}

// AnswerService scores quiz answers against configured defaults and the taxonomy
type AnswerService struct {
	validator *AnswerValidator
	taxonomy  domain.TaxonomyRepository
	defaults  domain.ComparisonOptions
	logger    *zap.Logger
}

// NewAnswerService creates a new answer service. A nil taxonomy disables the category fallback.
func NewAnswerService(
	validator *AnswerValidator,
	taxonomy domain.TaxonomyRepository,
	config AnswerServiceConfig,
	logger *zap.Logger,
) *AnswerService {
	if validator == nil {
		validator = NewAnswerValidator(ValidatorConfig{Logger: logger})
	}
	if logger == nil {
		logger = noopLogger
	}

	return &AnswerService{
		validator: validator,
		taxonomy:  taxonomy,
		defaults:  config.Defaults.WithDefaults(),
		logger:    logger.Named("service"),
	}
}

// Defaults returns the options requests start from
func (s *AnswerService) Defaults() domain.ComparisonOptions {
	return s.defaults
}

// resolveOptions overlays a request's overrides on the defaults
func (s *AnswerService) resolveOptions(override *domain.OptionsOverride) (domain.ComparisonOptions, error) {
	if err := override.Validate(); err != nil {
		return domain.ComparisonOptions{}, fmt.Errorf("%w: thresholds must be in (0, 1]", err)
	}
	return override.Apply(s.defaults), nil
}

// Compare scores a plain answer
func (s *AnswerService) Compare(ctx context.Context, request *domain.CompareRequest) (domain.ComparisonResult, error) {
	if request == nil || strings.TrimSpace(request.CorrectAnswer) == "" {
		return domain.ComparisonResult{}, fmt.Errorf("%w: correctAnswer is required", domain.ErrInvalidRequest)
	}

	opts, err := s.resolveOptions(request.Options)
	if err != nil {
		return domain.ComparisonResult{}, err
	}

	result := s.validator.Compare(request.UserAnswer, request.CorrectAnswer, opts)
	s.logger.Debug("answer compared",
		zap.String("status", string(result.Status)),
		zap.Float64("similarity", result.Similarity),
	)
	return result, nil
}

// CompareCategory scores a reverse-question answer with the taxonomy fallback.
// Flow: resolve options -> load taxonomy -> compare -> return
func (s *AnswerService) CompareCategory(
	ctx context.Context,
	request *domain.CategoryCompareRequest,
) (domain.ComparisonResult, error) {
	if request == nil || strings.TrimSpace(request.ExpectedAnswer) == "" {
		return domain.ComparisonResult{}, fmt.Errorf("%w: expectedAnswer is required", domain.ErrInvalidRequest)
	}

	opts, err := s.resolveOptions(request.Options)
	if err != nil {
		return domain.ComparisonResult{}, err
	}

	entries, err := s.entries(ctx)
	if err != nil {
		return domain.ComparisonResult{}, err
	}

	result := s.validator.CompareWithHierarchicalCategory(
		request.UserAnswer, request.ExpectedAnswer, request.Question, entries, opts)
	s.logger.Debug("category answer compared",
		zap.String("status", string(result.Status)),
		zap.String("match_type", string(result.MatchType)),
	)
	return result, nil
}

// Lookup finds a product's taxonomy entry by name
func (s *AnswerService) Lookup(ctx context.Context, name string) (*domain.ProductCategoryEntry, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidRequest)
	}

	entries, err := s.entries(ctx)
	if err != nil {
		return nil, err
	}

	entry := ResolveEntry(name, entries)
	if entry == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrEntryNotFound, name)
	}
	return entry, nil
}

// FlavorDistinctions returns a copy of the validator's distinction table
func (s *AnswerService) FlavorDistinctions() map[string]domain.FlavorDistinctionRule {
	return s.validator.Lexicon().FlavorDistinctions()
}

// SpellingVariations returns a copy of the validator's spelling table
func (s *AnswerService) SpellingVariations() []domain.SpellingVariation {
	return s.validator.Lexicon().SpellingVariations()
}

func (s *AnswerService) entries(ctx context.Context) ([]domain.ProductCategoryEntry, error) {
	if s.taxonomy == nil {
		return nil, nil
	}
	entries, err := s.taxonomy.Entries(ctx)
	if err != nil {
		s.logger.Error("taxonomy lookup failed", zap.Error(err))
		return nil, err
	}
	return entries, nil
}
