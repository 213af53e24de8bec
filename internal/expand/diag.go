package expand

import (
	"fmt"
	"go/token"

	"gotestx/internal/domain"
)

// diag builds a diagnostic anchored at the marked function's position.
func diag(kind domain.Kind, pos token.Position, fn, format string, args ...any) domain.Diagnostic {
	return domain.Diagnostic{
		Kind:     kind,
		File:     pos.Filename,
		Line:     pos.Line,
		Column:   pos.Column,
		Function: fn,
		Message:  fmt.Sprintf(format, args...),
	}
}
