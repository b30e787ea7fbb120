package domain

// CompareRequest asks for a plain answer comparison.
// An empty UserAnswer is valid and scores as "empty".
type CompareRequest struct {
	UserAnswer    string           `json:"userAnswer"`
	CorrectAnswer string           `json:"correctAnswer" binding:"required"`
	Options       *OptionsOverride `json:"options,omitempty"`
}

// CategoryCompareRequest asks for a reverse-question comparison
type CategoryCompareRequest struct {
	UserAnswer     string           `json:"userAnswer"`
	ExpectedAnswer string           `json:"expectedAnswer" binding:"required"`
	Question       string           `json:"question"`
	Options        *OptionsOverride `json:"options,omitempty"`
}

// OptionsOverride carries per-request option changes; nil fields keep the base value
type OptionsOverride struct {
	PerfectThreshold *float64 `json:"perfectThreshold,omitempty"`
	CloseThreshold   *float64 `json:"closeThreshold,omitempty"`
	AcceptThreshold  *float64 `json:"acceptThreshold,omitempty"`
	StrictFlavors    *bool    `json:"strictFlavors,omitempty"`
	LogDetails       *bool    `json:"logDetails,omitempty"`
}

// Apply overlays the set fields on base
func (o *OptionsOverride) Apply(base ComparisonOptions) ComparisonOptions {
	if o == nil {
		return base
	}
	if o.PerfectThreshold != nil {
		base.PerfectThreshold = *o.PerfectThreshold
	}
	if o.CloseThreshold != nil {
		base.CloseThreshold = *o.CloseThreshold
	}
	if o.AcceptThreshold != nil {
		base.AcceptThreshold = *o.AcceptThreshold
	}
	if o.StrictFlavors != nil {
		base.StrictFlavors = *o.StrictFlavors
	}
	if o.LogDetails != nil {
		base.LogDetails = *o.LogDetails
	}
	return base
}

// Validate checks the overridden thresholds lie in (0, 1]
func (o *OptionsOverride) Validate() error {
	if o == nil {
		return nil
	}
	for _, t := range []*float64{o.PerfectThreshold, o.CloseThreshold, o.AcceptThreshold} {
		if t != nil && (*t <= 0 || *t > 1) {
			return ErrInvalidRequest
		}
	}
	return nil
}
