package parser

import (
	"fmt"
	"strings"
	"unicode"
)

// DirectivePrefix is the comment directive that marks a function for
// expansion. It must appear in the doc comment directly above the function.
const DirectivePrefix = "//testx:test"

// Directive holds the parsed arguments of a testx marker comment.
type Directive struct {
	Setup   string // explicit setup function name, empty for the default
	NoSetup bool   // setup resolution disabled
}

// isDirective reports whether a raw comment line is a testx marker.
func isDirective(text string) bool {
	return text == DirectivePrefix || strings.HasPrefix(text, DirectivePrefix+" ")
}

// parseDirective parses the arguments of a marker comment line.
// Supported forms:
//
//	//testx:test
//	//testx:test setup=prepareConn
//	//testx:test no_setup
func parseDirective(text string) (Directive, error) {
	var d Directive

	rest := strings.TrimSpace(strings.TrimPrefix(text, DirectivePrefix))
	if rest == "" {
		return d, nil
	}

	for _, arg := range strings.Fields(rest) {
		switch {
		case arg == "no_setup":
			d.NoSetup = true
		case strings.HasPrefix(arg, "setup="):
			name := strings.TrimPrefix(arg, "setup=")
			if !isIdentifier(name) {
				return d, fmt.Errorf("invalid setup function name %q", name)
			}
			d.Setup = name
		default:
			return d, fmt.Errorf("unsupported directive argument %q", arg)
		}
	}

	if d.NoSetup && d.Setup != "" {
		return d, fmt.Errorf("setup= and no_setup are mutually exclusive")
	}
	return d, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}
