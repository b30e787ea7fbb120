package domain

// Status is the terminal verdict of an answer comparison
type Status string

const (
	StatusEmpty         Status = "empty"
	StatusPerfect       Status = "perfect"
	StatusForbidden     Status = "forbidden"
	StatusCloseSpelling Status = "close_spelling"
	StatusClose         Status = "close"
	StatusAcceptable    Status = "acceptable"
	StatusIncorrect     Status = "incorrect"
	StatusCategoryMatch Status = "category_match"
)

// IsFailure reports whether the status is one that triggers the category fallback
func (s Status) IsFailure() bool {
	return s == StatusIncorrect || s == StatusForbidden || s == StatusEmpty
}

// MatchType tells which path produced a reverse-question verdict
type MatchType string

const (
	MatchTypeExact    MatchType = "exact"
	MatchTypeCategory MatchType = "category"
	MatchTypeNone     MatchType = "none"
)

// XP awards attached to verdicts
const (
	AwardNone       = 0
	AwardAcceptable = 50
	AwardClose      = 75
	AwardFull       = 100
)

// Default comparison thresholds
const (
	DefaultPerfectThreshold = 1.0
	DefaultCloseThreshold   = 0.85
	DefaultAcceptThreshold  = 0.80
)

// ComparisonOptions configures a single comparison.
// A zero threshold means "use the default"; start from DefaultComparisonOptions
// so StrictFlavors is enabled.
type ComparisonOptions struct {
	PerfectThreshold float64 `json:"perfectThreshold" mapstructure:"perfect_threshold"`
	CloseThreshold   float64 `json:"closeThreshold" mapstructure:"close_threshold"`
	AcceptThreshold  float64 `json:"acceptThreshold" mapstructure:"accept_threshold"`
	StrictFlavors    bool    `json:"strictFlavors" mapstructure:"strict_flavors"`
	// LogDetails writes each tier decision at info level
	LogDetails       bool    `json:"logDetails" mapstructure:"log_details"`
}

// DefaultComparisonOptions returns the documented defaults
func DefaultComparisonOptions() ComparisonOptions {
	return ComparisonOptions{
		PerfectThreshold: DefaultPerfectThreshold,
		CloseThreshold:   DefaultCloseThreshold,
		AcceptThreshold:  DefaultAcceptThreshold,
		StrictFlavors:    true,
	}
}

// WithDefaults fills unset thresholds with their defaults
func (o ComparisonOptions) WithDefaults() ComparisonOptions {
	if o.PerfectThreshold <= 0 {
		o.PerfectThreshold = DefaultPerfectThreshold
	}
	if o.CloseThreshold <= 0 {
		o.CloseThreshold = DefaultCloseThreshold
	}
	if o.AcceptThreshold <= 0 {
		o.AcceptThreshold = DefaultAcceptThreshold
	}
	return o
}

// ExactMatchInfo is the payload of a reverse-question verdict decided by the text tiers
type ExactMatchInfo struct {
	XPMultiplier float64 `json:"xpMultiplier"`
}

// CategoryMatchInfo is the payload of a verdict decided by taxonomy agreement
type CategoryMatchInfo struct {
	XPMultiplier     float64  `json:"xpMultiplier"`
	MatchedLevel     Level    `json:"matchedLevel"`
	SharedCategories []string `json:"sharedCategories"`
}

// ComparisonResult is the engine's only output.
// Exact and Category are mutually exclusive and selected by MatchType;
// plain comparisons leave MatchType empty and both payloads nil.
type ComparisonResult struct {
	Status     Status  `json:"status"`
	Similarity float64 `json:"similarity"`
	Feedback   string  `json:"feedback"`
	Award      int     `json:"award"`

	MatchType MatchType          `json:"matchType,omitempty"`
	Exact     *ExactMatchInfo    `json:"exact,omitempty"`
	Category  *CategoryMatchInfo `json:"category,omitempty"`
}

// XPMultiplier returns the reward multiplier of the taken path, 0 when none applies
func (r ComparisonResult) XPMultiplier() float64 {
	switch {
	case r.Category != nil:
		return r.Category.XPMultiplier
	case r.Exact != nil:
		return r.Exact.XPMultiplier
	}
	return 0
}

// MatchedLevel returns the taxonomy level of a category match, empty otherwise
func (r ComparisonResult) MatchedLevel() Level {
	if r.Category == nil {
		return ""
	}
	return r.Category.MatchedLevel
}

// SharedCategories returns a copy of the agreeing categories of a category match
func (r ComparisonResult) SharedCategories() []string {
	if r.Category == nil {
		return nil
	}
	return append([]string(nil), r.Category.SharedCategories...)
}

// ForbiddenCheck is the outcome of a forbidden-confusion lookup
type ForbiddenCheck struct {
	IsForbidden bool   `json:"isForbidden"`
	Reason      string `json:"reason,omitempty"`
}
