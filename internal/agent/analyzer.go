package agent

import (
	"fmt"
	"strings"

	"github.com/bridgectl/bridgectl/internal/api"
)

// Analyzer turns bridge error items and break-mode exceptions into fix
// suggestions using substring pattern matching. The patterns are deliberately
// coarse; they cover the common failure shapes a build or debug session
// surfaces.
type Analyzer struct{}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// AnalyzeError classifies a single error item and returns suggestions, most
// specific first. The first suggestion names the error class, subsequent ones
// name a concrete action. Returns nil when no pattern matches.
func (a *Analyzer) AnalyzeError(item api.ErrorItem) []string {
	description := strings.ToLower(item.Description)

	switch {
	case strings.Contains(description, "not defined") || strings.Contains(description, "does not exist"):
		return []string{
			"Missing import or undefined variable",
			fmt.Sprintf("Action: Check imports at %s", item.File),
		}
	case strings.Contains(description, "null reference"):
		return []string{
			"Null reference exception",
			fmt.Sprintf("Action: Add null check at line %d", item.Line),
		}
	case strings.Contains(description, "type mismatch") || strings.Contains(description, "cannot convert"):
		return []string{
			"Type conversion issue",
			"Action: Check type compatibility",
		}
	}

	return nil
}

// AnalyzeException returns suggestions for an exception reported by a break
// snapshot. Matching is by exception type name, not message text.
func (a *Analyzer) AnalyzeException(exception string) []string {
	switch {
	case strings.Contains(exception, "NullReferenceException"):
		return []string{
			"Add null checks before object access",
			"Example: if (obj != null) { obj.Method(); }",
		}
	case strings.Contains(exception, "IndexOutOfRangeException"):
		return []string{
			"Validate array/list bounds",
			"Example: if (index >= 0 && index < array.Length)",
		}
	}

	return nil
}
