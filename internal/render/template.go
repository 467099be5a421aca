package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aeveltstra/lammpster/internal/entity"
)

// MissingPlaceholderError reports a template placeholder with no
// counterpart key in the profile. A malformed template is a content bug
// that must surface loudly, unlike the lookup misses elsewhere in the
// pipeline.
type MissingPlaceholderError struct {
	Template string
	Key      string
}

func (e *MissingPlaceholderError) Error() string {
	return fmt.Sprintf("template %s references placeholder %q, which has no value in the profile",
		e.Template, e.Key)
}

// Placeholder tokens: $key, ${key}, and $$ for a literal dollar sign.
var placeholderPattern = regexp.MustCompile(`\$(?:\$|\{([A-Za-z_][A-Za-z0-9_]*)\}|([A-Za-z_][A-Za-z0-9_]*))`)

// ApplyProfileToTemplate substitutes the profile's fields into the template
// body in a single pass. Literal text passes through verbatim; each
// placeholder resolves by exact key lookup, with no recursion and no type
// coercion. A present-but-empty field substitutes as the empty string. A
// placeholder whose key the profile does not know at all fails the whole
// operation; no partial output is produced.
//
// A nil profile or empty body yields "", nil: nothing to render.
func ApplyProfileToTemplate(p *entity.Profile, templateName, body string) (string, error) {
	if p == nil || body == "" {
		return "", nil
	}

	locs := placeholderPattern.FindAllStringIndex(body, -1)
	covered := make(map[int]bool, len(locs)*2)
	for _, loc := range locs {
		for i := loc[0]; i < loc[1]; i++ {
			covered[i] = true
		}
	}
	for i := 0; i < len(body); i++ {
		if body[i] == '$' && !covered[i] {
			return "", fmt.Errorf("template %s: stray $ at offset %d is not a valid placeholder", templateName, i)
		}
	}

	var missing string
	result := placeholderPattern.ReplaceAllStringFunc(body, func(tok string) string {
		if tok == "$$" {
			return "$"
		}
		key := strings.Trim(tok[1:], "{}")
		value, ok := p.Lookup(key)
		if !ok {
			if missing == "" {
				missing = key
			}
			return tok
		}
		if value == nil {
			return ""
		}
		return *value
	})
	if missing != "" {
		return "", &MissingPlaceholderError{Template: templateName, Key: missing}
	}
	return result, nil
}
