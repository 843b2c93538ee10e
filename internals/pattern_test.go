package internals

import "testing"

func mustPattern(t *testing.T, s string) Pattern {
	t.Helper()
	p, err := ParsePattern(s)
	if err != nil {
		t.Fatalf("ParsePattern(%q): %v", s, err)
	}
	if p == nil {
		t.Fatalf("ParsePattern(%q) returned a nil pattern", s)
	}
	return p
}

func TestParsePatternNameLeaves(t *testing.T) {
	cases := []struct {
		pattern string
		path    string
		want    bool
	}{
		{`['.txt']`, "/a/b/notes.txt", true},
		{`['.txt']`, "/a/b/notes.md", false},
		{`['report']`, "/a/b/report", true},
		{`['report']`, "/a/b/report.txt", false},
		{`[/img_\d+\.jpg/]`, "/a/img_001.jpg", true},
		{`[/img_\d+\.jpg/]`, "/a/photo.jpg", false},
	}
	for _, c := range cases {
		p := mustPattern(t, c.pattern)
		got := p.Match(IncompleteFileInfo{Path: c.path})
		if got != c.want {
			t.Errorf("pattern %q against %q = %v, want %v", c.pattern, c.path, got, c.want)
		}
	}
}

func TestParsePatternSizeLeaf(t *testing.T) {
	p := mustPattern(t, "[10..20]")
	if !p.Match(IncompleteFileInfo{Size: 15}) {
		t.Errorf("expected size 15 to match [10..20]")
	}
	if p.Match(IncompleteFileInfo{Size: 25}) {
		t.Errorf("expected size 25 to not match [10..20]")
	}

	unbounded := mustPattern(t, "[10..]")
	if !unbounded.Match(IncompleteFileInfo{Size: 1_000_000}) {
		t.Errorf("expected an open upper bound to admit a large size")
	}
	if unbounded.Match(IncompleteFileInfo{Size: 5}) {
		t.Errorf("expected size 5 to fail a minimum of 10")
	}
}

func TestParsePatternCompositeAndOr(t *testing.T) {
	and := mustPattern(t, "(['.txt']&[0..100])")
	if !and.Match(IncompleteFileInfo{Path: "x.txt", Size: 50}) {
		t.Errorf("expected a small .txt file to match the AND composite")
	}
	if and.Match(IncompleteFileInfo{Path: "x.txt", Size: 500}) {
		t.Errorf("expected a large .txt file to fail the AND composite")
	}

	or := mustPattern(t, "(['.txt']|['.md'])")
	if !or.Match(IncompleteFileInfo{Path: "x.md"}) {
		t.Errorf("expected an .md file to match the OR composite")
	}
	if or.Match(IncompleteFileInfo{Path: "x.go"}) {
		t.Errorf("expected a .go file to fail the OR composite")
	}
}

func TestParsePatternNegation(t *testing.T) {
	p := mustPattern(t, "!(['.txt'])")
	if p.Match(IncompleteFileInfo{Path: "x.txt"}) {
		t.Errorf("expected negation to exclude a matching .txt file")
	}
	if !p.Match(IncompleteFileInfo{Path: "x.md"}) {
		t.Errorf("expected negation to admit a non-matching file")
	}
}

func TestParsePatternRejectsMixedOperators(t *testing.T) {
	if _, err := ParsePattern("(['.txt']&['.md']|['.go'])"); err == nil {
		t.Errorf("expected mixing '&' and '|' at the same level to fail")
	}
}

func TestParsePatternAmbiguousLeafIsSkipped(t *testing.T) {
	p, err := ParsePattern("[..]")
	if err != nil {
		t.Fatalf("unexpected error for an ambiguous leaf: %v", err)
	}
	if p != nil {
		t.Errorf("expected a bare [..] leaf to parse to a nil pattern")
	}
}

func TestParsePatternRoundTripsThroughString(t *testing.T) {
	for _, s := range []string{`['.txt']`, `['report']`, `[/^img_\d+/]`} {
		p := mustPattern(t, s)
		reparsed := mustPattern(t, p.String())
		sample := IncompleteFileInfo{Path: "/a/img_001.jpg"}
		if p.Match(sample) != reparsed.Match(sample) {
			t.Errorf("round-tripping %q through String() changed its behavior", s)
		}
	}
}

func TestDatePatternUsesInjectedClock(t *testing.T) {
	min := int64(1_000_000_000) // 1 second, in nanoseconds
	p := &DatePattern{Min: &min, Kind: DateModified, NowNs: func() int64 { return 10_000_000_000 }}

	if p.Match(IncompleteFileInfo{Modified: 9_500_000_000}) {
		t.Errorf("a file modified half a second ago should fail a one-second minimum age")
	}
	if !p.Match(IncompleteFileInfo{Modified: 1_000_000_000}) {
		t.Errorf("a file modified nine seconds ago should satisfy a one-second minimum age")
	}
}
