package internals

import (
	"fmt"
	"regexp"
	"strings"
)

var extensionLeafRe = regexp.MustCompile(`^'(\..*)'$`)
var regexLeafRe = regexp.MustCompile(`^/(.*)/$`)
var nameLeafRe = regexp.MustCompile(`^'(.*)'$`)
var sizeLeafRe = regexp.MustCompile(`^(?P<l>\d+(?:\.\d*)?[KMGTP]?I?B?)?\.\.(?P<h>\d+(?:\.\d*)?[KMGTP]?I?B?)?$`)
var timeLeafRe = regexp.MustCompile(`^(?P<l>(?:\d+y)?(?:\d+mo)?(?:\d+w)?(?:\d+d)?(?:\d+h)?(?:\d+m)?(?:\d+s)?)?\.\.(?P<h>(?:\d+y)?(?:\d+mo)?(?:\d+w)?(?:\d+d)?(?:\d+h)?(?:\d+m)?(?:\d+s)?)?$`)

// ParsePattern parses the surface syntax described in the pattern algebra
// design (leaves `['.ext']`/`['name']`/`[/regex/]`/`[min..max]`, composites
// `(a&b&c)`/`(a|b|c)` with an optional leading `!`). A bare `[..]` is
// ambiguous and parses to (nil, nil) rather than an error — matching the
// original tool's "skip, context is unknown" behavior. Mixing `&` and `|`
// at the same parenthesis level is a ParseError.
func ParsePattern(s string) (Pattern, error) {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		return parseLeaf(strings.TrimSpace(s[1 : len(s)-1]))
	}

	inverted := false
	if strings.HasPrefix(s, "!") {
		inverted = true
		s = strings.TrimSpace(s[1:])
	}
	if !(strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")) {
		return nil, fmt.Errorf("invalid pattern string %q: nested patterns must be enclosed in parentheses", s)
	}
	inner := s[1 : len(s)-1]

	parts, mode, err := splitTopLevel(inner)
	if err != nil {
		return nil, err
	}

	children := make([]Pattern, 0, len(parts))
	for _, part := range parts {
		child, err := ParsePattern(part)
		if err != nil {
			return nil, err
		}
		if child != nil {
			children = append(children, child)
		}
	}

	return &CompositePattern{Children: children, Inverted: inverted, MergeMode: mode}, nil
}

// splitTopLevel splits a composite pattern's inner text on its top-level
// `&`/`|` separators (ignoring separators nested inside parentheses) and
// reports which merge mode was used. Mixing `&` and `|` at the same level
// is rejected.
func splitTopLevel(s string) ([]string, MergeMode, error) {
	var parts []string
	depth := 0
	start := 0
	var sepSeen byte
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case '&', '|':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
				if sepSeen == 0 {
					sepSeen = s[i]
				} else if sepSeen != s[i] {
					return nil, 0, fmt.Errorf("invalid pattern string %q: cannot mix '&' and '|' at the same level", s)
				}
			}
		}
	}
	parts = append(parts, strings.TrimSpace(s[start:]))

	mode := MergeAll
	if sepSeen == '|' {
		mode = MergeAny
	}
	return parts, mode, nil
}

func parseLeaf(inner string) (Pattern, error) {
	if inner == ".." {
		return nil, nil
	}

	if m := extensionLeafRe.FindStringSubmatch(inner); m != nil {
		return NewNamePattern(m[1], NameExtension)
	}
	if m := regexLeafRe.FindStringSubmatch(inner); m != nil {
		return NewNamePattern(m[1], NameRegex)
	}
	if m := nameLeafRe.FindStringSubmatch(inner); m != nil {
		return NewNamePattern(m[1], NameExact)
	}

	if m := sizeLeafRe.FindStringSubmatch(strings.ToUpper(inner)); m != nil {
		var min, max *int64
		if m[1] != "" {
			v, err := ParseSize(m[1])
			if err != nil {
				return nil, err
			}
			min = &v
		}
		if m[2] != "" {
			v, err := ParseSize(m[2])
			if err != nil {
				return nil, err
			}
			max = &v
		}
		if min != nil && max != nil && *min > *max {
			return nil, nil
		}
		return &SizePattern{Min: min, Max: max}, nil
	}

	if m := timeLeafRe.FindStringSubmatch(inner); m != nil {
		var min, max *int64
		if m[1] != "" {
			v, err := ParseDuration(m[1])
			if err != nil {
				return nil, err
			}
			min = &v
		}
		if m[2] != "" {
			v, err := ParseDuration(m[2])
			if err != nil {
				return nil, err
			}
			max = &v
		}
		if min != nil && max != nil && *min > *max {
			return nil, nil
		}
		return &DatePattern{Min: min, Max: max, Kind: DateModified}, nil
	}

	return nil, fmt.Errorf("invalid pattern leaf: %q", inner)
}
