package alias

import (
	"strconv"
	"strings"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
}

func testPolicy() *Policy {
	return NewPolicy(WithClock(fixedClock))
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"My Cool Link", "my-cool-link"},
		{"  spaced  out  ", "spaced-out"},
		{"UPPER", "upper"},
		{"with_underscore!", "withunderscore"},
		{"already-fine", "already-fine"},
		{"--edge--case--", "edge-case"},
		{"a---b", "a-b"},
		{"日本語", ""},
		{"", ""},
		{"!!!", ""},
	}

	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"My Cool Link", "  spaced  out  ", "UPPER", "a---b", "--x--",
		"plain", "with 2 numbers 3", "!!!", "", "mIxEd-CaSe 99",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestValidateAcceptsGoodKeys(t *testing.T) {
	p := testPolicy()
	for _, key := range []string{"my-link", "abc", "promo2026", "a1b2c3", strings.Repeat("x", 30)} {
		if res := p.Validate(key); !res.Valid {
			t.Errorf("Validate(%q) rejected: %s", key, res.Error)
		}
	}
}

func TestValidateLength(t *testing.T) {
	p := testPolicy()
	if res := p.Validate("ab"); res.Valid {
		t.Error("expected too-short rejection for \"ab\"")
	}
	if res := p.Validate(strings.Repeat("a", 31)); res.Valid {
		t.Error("expected too-long rejection for 31 chars")
	}
	if res := p.Validate(strings.Repeat("a", 30)); !res.Valid {
		t.Errorf("30 chars should be valid, got: %s", res.Error)
	}
}

func TestValidateSyntax(t *testing.T) {
	p := testPolicy()
	cases := []string{"my--link", "-link", "link-", "my link", "Link!", "caps-A"}
	for _, key := range cases {
		if res := p.Validate(key); res.Valid {
			t.Errorf("Validate(%q) should reject", key)
		}
	}
}

func TestValidateRawInputGuard(t *testing.T) {
	// The validator must reject raw (unnormalized) input on its own,
	// even though normalization would have cleaned it up.
	p := testPolicy()
	res := p.Validate("my link")
	if res.Valid {
		t.Fatal("whitespace key should be rejected")
	}
	if len(res.Suggestions) == 0 || res.Suggestions[0] != "my-link" {
		t.Errorf("expected hyphenated suggestion, got %v", res.Suggestions)
	}
}

func TestValidateReservedWord(t *testing.T) {
	p := testPolicy()
	res := p.Validate("login")
	if res.Valid {
		t.Fatal("reserved word should be rejected")
	}

	want := []string{"login1", "login2", "login-2026", "my-login", "go-login", "login-now"}
	if len(res.Suggestions) != len(want) {
		t.Fatalf("expected %d suggestions, got %v", len(want), res.Suggestions)
	}
	for i, s := range want {
		if res.Suggestions[i] != s {
			t.Errorf("suggestion[%d] = %q, want %q", i, res.Suggestions[i], s)
		}
	}
}

func TestValidateReservedIsCaseInsensitiveViaNormalize(t *testing.T) {
	p := testPolicy()
	if res := p.Validate(Normalize("LOGIN")); res.Valid {
		t.Error("normalized uppercase reserved word should be rejected")
	}
}

func TestValidateRoutePrefixesReserved(t *testing.T) {
	p := testPolicy()
	// Single-letter route prefixes are below the length minimum anyway,
	// but they must stay in the reserved set should the minimum change.
	for _, key := range []string{"p", "r", "e", "s", "c"} {
		if res := p.Validate(key); res.Valid {
			t.Errorf("route prefix %q should never validate", key)
		}
	}
}

func TestValidateBlockedWord(t *testing.T) {
	p := testPolicy()
	for _, key := range []string{"buy-malware", "hack-tools", "my-admin-page"} {
		res := p.Validate(key)
		if res.Valid {
			t.Errorf("blocked key %q should be rejected", key)
		}
		if len(res.Suggestions) != 0 {
			t.Errorf("blocked key %q must not get suggestions, got %v", key, res.Suggestions)
		}
	}
}

func TestValidatePhishingTerm(t *testing.T) {
	p := testPolicy()
	for _, key := range []string{"verify-account", "my-verify-account-page", "verifyaccount"} {
		res := p.Validate(key)
		if res.Valid {
			t.Errorf("phishing key %q should be rejected", key)
		}
		if len(res.Suggestions) != 0 {
			t.Errorf("phishing key %q must not get suggestions, got %v", key, res.Suggestions)
		}
	}
}

func TestSuggestionsOrderAndLengthFilter(t *testing.T) {
	p := testPolicy()

	got := p.Suggestions("promo")
	want := []string{"promo1", "promo2", "promo-2026", "my-promo", "go-promo", "promo-now"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("suggestion[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	// A 29-char base keeps only the single-char suffixes.
	long := strings.Repeat("x", 29)
	got = p.Suggestions(long)
	for _, s := range got {
		if len(s) > 30 {
			t.Errorf("suggestion %q exceeds the length limit", s)
		}
	}
	if len(got) != 2 {
		t.Errorf("expected 2 surviving suggestions for a 29-char base, got %v", got)
	}
}

func TestSuggestionsUseInjectedClock(t *testing.T) {
	year := 2031
	p := NewPolicy(WithClock(func() time.Time {
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	}))
	got := p.Suggestions("link")
	if got[2] != "link-"+strconv.Itoa(year) {
		t.Errorf("expected year suggestion link-%d, got %q", year, got[2])
	}
}

func TestCustomWordLists(t *testing.T) {
	p := NewPolicy(
		WithClock(fixedClock),
		WithReservedWords([]string{"onlyme"}),
		WithBlockedWords(nil),
		WithPhishingTerms(nil),
	)
	if res := p.Validate("login"); !res.Valid {
		t.Error("login should pass with a custom reserved set")
	}
	if res := p.Validate("onlyme"); res.Valid {
		t.Error("custom reserved word should be rejected")
	}
}
