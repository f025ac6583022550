package domain

import "go.trai.ch/zerr"

// Severity is the configured importance of a forbidden import rule.
type Severity string

const (
	// SeverityError marks findings that block the build.
	SeverityError Severity = "error"
	// SeverityWarning marks findings that should be fixed but do not block.
	SeverityWarning Severity = "warning"
	// SeverityInfo marks purely informational findings.
	SeverityInfo Severity = "info"
)

// ParseSeverity converts a configured severity string. Empty means error.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(s) {
	case "", SeverityError:
		return SeverityError, nil
	case SeverityWarning:
		return SeverityWarning, nil
	case SeverityInfo:
		return SeverityInfo, nil
	default:
		return "", zerr.With(ErrInvalidSeverity, "severity", s)
	}
}

// Category is how a violation is presented to consumers of the result.
type Category string

const (
	// CategoryBlocked findings fail the run.
	CategoryBlocked Category = "blocked"
	// CategoryWarning findings are reported but do not fail the run.
	CategoryWarning Category = "warning"
	// CategoryInfo findings are informational.
	CategoryInfo Category = "info"
)

// SeverityToCategory maps a rule severity onto a result category.
func SeverityToCategory(s Severity) Category {
	switch s {
	case SeverityWarning:
		return CategoryWarning
	case SeverityInfo:
		return CategoryInfo
	default:
		return CategoryBlocked
	}
}

// Violation is a forbidden import found in a file.
type Violation struct {
	FilePath        string        `json:"file_path"`
	OffensiveImport string        `json:"offensive_import"`
	Rule            ForbiddenRule `json:"rule"`
	Line            int           `json:"line_number"`
}

// CategorizedViolation is a violation tagged with its category.
type CategorizedViolation struct {
	Violation
	Category   Category `json:"category"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// Categorize tags v with the category derived from its rule severity.
func Categorize(v Violation) CategorizedViolation {
	return CategorizedViolation{
		Violation:  v,
		Category:   SeverityToCategory(v.Rule.Severity),
		Suggestion: v.Rule.Reason,
	}
}

// LongFunction is a function whose body exceeds the configured line threshold.
type LongFunction struct {
	FilePath  string `json:"file_path"`
	Name      string `json:"name"`
	StartLine int    `json:"line_start"`
	Lines     int    `json:"lines"`
	Threshold int    `json:"threshold"`
}
