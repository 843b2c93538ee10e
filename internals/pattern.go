package internals

import (
	"regexp"
	"strconv"
	"strings"
)

// Pattern is the algebraic predicate type matched against FileInfo and
// IncompleteFileInfo records. It is implemented by NamePattern, SizePattern,
// DatePattern (the leaves) and CompositePattern (conjunction/disjunction of
// sub-patterns, optionally negated). Go has no tagged union, so dispatch
// happens through this interface rather than through an explicit tag field.
type Pattern interface {
	// Match reports whether the given file satisfies this pattern. Only
	// the fields populated on an IncompleteFileInfo are guaranteed to be
	// meaningful, so patterns must not depend on FileHash/First16B.
	Match(StatRecord) bool
	// String renders the pattern's surface syntax; re-parsing it with
	// ParsePattern must yield an equivalent pattern. The date-leaf syntax
	// carries no timestamp kind, so a re-parsed date leaf measures age from
	// the modified time.
	String() string
}

// StatRecord is the subset of FileInfo/IncompleteFileInfo that pattern
// leaves need: a path and a size and three timestamps. Both record types
// satisfy it directly.
type StatRecord interface {
	statPath() string
	statSize() int64
	statModified() int64
	statAccessed() int64
	statCreated() int64
}

func (f FileInfo) statPath() string      { return f.Path }
func (f FileInfo) statSize() int64       { return f.Size }
func (f FileInfo) statModified() int64   { return f.Modified }
func (f FileInfo) statAccessed() int64   { return f.Accessed }
func (f FileInfo) statCreated() int64    { return f.Created }

func (i IncompleteFileInfo) statPath() string    { return i.Path }
func (i IncompleteFileInfo) statSize() int64     { return i.Size }
func (i IncompleteFileInfo) statModified() int64 { return i.Modified }
func (i IncompleteFileInfo) statAccessed() int64 { return i.Accessed }
func (i IncompleteFileInfo) statCreated() int64  { return i.Created }

// NameKind selects which part of the basename a NamePattern inspects.
type NameKind int

const (
	// NameExtension matches the file's trailing extension.
	NameExtension NameKind = iota
	// NameRegex full-matches the basename against a regular expression.
	NameRegex
	// NameExact matches the basename exactly.
	NameExact
)

// NamePattern matches a file's basename, extension, or a regular
// expression over the basename.
type NamePattern struct {
	Pattern string
	Kind    NameKind
	re      *regexp.Regexp // compiled by NewNamePattern for NameRegex
}

// NewNamePattern constructs a NamePattern, compiling the regex eagerly
// when Kind == NameRegex so parse errors surface at construction time.
// The regex is anchored at both ends so it must match the whole basename.
func NewNamePattern(pattern string, kind NameKind) (*NamePattern, error) {
	p := &NamePattern{Pattern: pattern, Kind: kind}
	if kind == NameRegex {
		re, err := regexp.Compile(`^(?:` + pattern + `)$`)
		if err != nil {
			return nil, err
		}
		p.re = re
	}
	return p, nil
}

func basename(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

func extensionOf(name string) string {
	// A dot at position 0 (dotfiles) is not an extension separator.
	i := strings.LastIndex(name, ".")
	if i <= 0 {
		return ""
	}
	return name[i:]
}

// Match implements Pattern.
func (p *NamePattern) Match(f StatRecord) bool {
	name := basename(f.statPath())
	switch p.Kind {
	case NameExtension:
		if p.Pattern == ".*" {
			return extensionOf(name) != ""
		}
		return extensionOf(name) == p.Pattern
	case NameRegex:
		return p.re != nil && p.re.MatchString(name)
	case NameExact:
		if p.Pattern == "*" {
			return true
		}
		return name == p.Pattern
	}
	return false
}

// String implements Pattern.
func (p *NamePattern) String() string {
	switch p.Kind {
	case NameExtension:
		return "['." + strings.TrimLeft(p.Pattern, ".") + "']"
	case NameExact:
		return "['" + p.Pattern + "']"
	case NameRegex:
		return "[/" + p.Pattern + "/]"
	}
	return "[?" + p.Pattern + "]"
}

// SizePattern matches an inclusive byte-size range. Either bound may be
// absent (nil), meaning unbounded on that side.
type SizePattern struct {
	Min, Max *int64
}

// Match implements Pattern.
func (p *SizePattern) Match(f StatRecord) bool {
	size := f.statSize()
	if p.Min != nil && size < *p.Min {
		return false
	}
	if p.Max != nil && size > *p.Max {
		return false
	}
	return true
}

func (p *SizePattern) String() string {
	var lo, hi string
	if p.Min != nil {
		lo = strconv.FormatInt(*p.Min, 10) + "B"
	}
	if p.Max != nil {
		hi = strconv.FormatInt(*p.Max, 10) + "B"
	}
	return "[" + lo + ".." + hi + "]"
}

// DateKind selects which timestamp a DatePattern's age is measured from.
type DateKind int

const (
	// DateModified measures age from the modified timestamp.
	DateModified DateKind = iota
	// DateAccessed measures age from the accessed timestamp.
	DateAccessed
	// DateCreated measures age from the created timestamp.
	DateCreated
)

// DatePattern matches a file whose age — now minus the chosen timestamp,
// in nanoseconds — lies in the closed interval [Min, Max]. Either bound
// may be absent.
type DatePattern struct {
	Min, Max *int64
	Kind     DateKind
	NowNs    func() int64 // injected for deterministic tests; defaults to wall clock
}

func (p *DatePattern) now() int64 {
	if p.NowNs != nil {
		return p.NowNs()
	}
	return wallClockNowNs()
}

// Match implements Pattern.
func (p *DatePattern) Match(f StatRecord) bool {
	var ts int64
	switch p.Kind {
	case DateAccessed:
		ts = f.statAccessed()
	case DateCreated:
		ts = f.statCreated()
	default:
		ts = f.statModified()
	}
	age := p.now() - ts
	if p.Min != nil && age < *p.Min {
		return false
	}
	if p.Max != nil && age > *p.Max {
		return false
	}
	return true
}

func (p *DatePattern) String() string {
	var lo, hi string
	if p.Min != nil {
		lo = HumanTime(*p.Min, 0)
	}
	if p.Max != nil {
		hi = HumanTime(*p.Max, 0)
	}
	return "[" + lo + ".." + hi + "]"
}

// MergeMode selects how a CompositePattern combines its children.
type MergeMode int

const (
	// MergeAll is conjunction (AND) of every child pattern.
	MergeAll MergeMode = iota
	// MergeAny is disjunction (OR) of every child pattern.
	MergeAny
)

// CompositePattern combines child patterns with AND/OR, optionally
// negating the combined result.
type CompositePattern struct {
	Children  []Pattern
	Inverted  bool
	MergeMode MergeMode
}

// Match implements Pattern.
func (p *CompositePattern) Match(f StatRecord) bool {
	var result bool
	if p.MergeMode == MergeAll {
		result = true
		for _, c := range p.Children {
			if !c.Match(f) {
				result = false
				break
			}
		}
	} else {
		result = false
		for _, c := range p.Children {
			if c.Match(f) {
				result = true
				break
			}
		}
	}
	if p.Inverted {
		return !result
	}
	return result
}

func (p *CompositePattern) String() string {
	sep := "&"
	if p.MergeMode == MergeAny {
		sep = "|"
	}
	parts := make([]string, len(p.Children))
	for i, c := range p.Children {
		parts[i] = c.String()
	}
	prefix := ""
	if p.Inverted {
		prefix = "!"
	}
	return prefix + "(" + strings.Join(parts, sep) + ")"
}
