package usecase

import "github.com/flavorquiz/backend/internal/domain"

// Tone is a presentation hint for a verdict
type Tone string

const (
	ToneSuccess  Tone = "success"
	ToneWarning  Tone = "warning"
	ToneCaution  Tone = "caution"
	ToneError    Tone = "error"
	ToneCritical Tone = "critical"
)

// Feedback is a display-ready description of a comparison result
type Feedback struct {
	Icon     string `json:"icon"`
	Tone     Tone   `json:"tone"`
	Headline string `json:"headline"`
	Detail   string `json:"detail"`
}

type feedbackTemplate struct {
	icon     string
	tone     Tone
	headline string
}

var feedbackTemplates = map[domain.Status]feedbackTemplate{
	domain.StatusPerfect:       {"✓", ToneSuccess, "Perfect! You got it exactly right."},
	domain.StatusCategoryMatch: {"✓", ToneSuccess, "Correct! Same product category."},
	domain.StatusClose:         {"~", ToneWarning, "Close! You're very close with minor spelling differences."},
	domain.StatusCloseSpelling: {"~", ToneWarning, "Accepted! Spelling variation of correct answer."},
	domain.StatusAcceptable:    {"≈", ToneCaution, "Acceptable match, but double-check your spelling."},
	domain.StatusIncorrect:     {"✗", ToneError, "Not quite right. Study this one more carefully."},
	domain.StatusForbidden:     {"🚫", ToneCritical, "Critical! These are different flavors."},
	domain.StatusEmpty:         {"⚠️", ToneCaution, "Please enter an answer."},
}

// FormatFeedback maps a result to its display message; unknown statuses read as incorrect
func FormatFeedback(result domain.ComparisonResult) Feedback {
	tmpl, ok := feedbackTemplates[result.Status]
	if !ok {
		tmpl = feedbackTemplates[domain.StatusIncorrect]
	}
	return Feedback{
		Icon:     tmpl.icon,
		Tone:     tmpl.tone,
		Headline: tmpl.headline,
		Detail:   result.Feedback,
	}
}

// String renders the icon and headline as one plain-text line.
// Detail already carries its own icon.
func (f Feedback) String() string {
	return f.Icon + " " + f.Headline
}
