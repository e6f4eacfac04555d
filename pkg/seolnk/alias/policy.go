package alias

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	minLength = 3
	maxLength = 30
)

var (
	nonKeyChars = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenRuns  = regexp.MustCompile(`-{2,}`)
	spaceRuns   = regexp.MustCompile(`\s+`)
)

// reservedWords are platform route names an alias must not collide with.
// The single letters are the public resolution route prefixes.
var reservedWords = []string{
	"login", "signup", "logout", "register", "dashboard", "api", "admin",
	"pricing", "blog", "about", "contact", "terms", "privacy", "help",
	"docs", "settings", "account", "billing", "features", "stats",
	"static", "assets", "health", "auth",
	"p", "r", "e", "s", "c",
}

// blockedWords reject an alias on substring match. Content policy:
// no suggestions are generated for these.
var blockedWords = []string{
	"admin", "hack", "malware", "virus", "phish", "exploit", "warez",
	"crack", "scam", "fraud",
	"porn", "sex", "xxx",
	"drug", "cocaine", "heroin", "meth",
	"kill", "murder", "terror", "nazi",
	"fuck", "shit", "bitch", "cunt",
}

// phishingTerms reject aliases that impersonate sign-in or account
// verification flows. Matched as substrings and, hyphen-stripped, as
// exact matches, so "verifyaccount" is caught as well.
var phishingTerms = []string{
	"google-login", "facebook-login", "microsoft-login", "apple-login",
	"bank-login", "paypal-secure", "verify-account", "account-verify",
	"account-update", "password-reset", "confirm-identity", "wallet-verify",
	"secure-signin", "appleid",
}

// Result is the outcome of validating a candidate alias.
type Result struct {
	Valid       bool     `json:"valid"`
	Error       string   `json:"error,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Policy validates candidate aliases against the platform naming rules.
// The word lists are fixed at construction; a Policy is safe for
// concurrent use.
type Policy struct {
	reserved map[string]struct{}
	blocked  []string
	phishing []string
	now      func() time.Time
}

// Option configures a Policy.
type Option func(*Policy)

// WithClock overrides the clock used for year-based suggestions.
func WithClock(now func() time.Time) Option {
	return func(p *Policy) { p.now = now }
}

// WithReservedWords replaces the reserved word set.
func WithReservedWords(words []string) Option {
	return func(p *Policy) {
		p.reserved = make(map[string]struct{}, len(words))
		for _, w := range words {
			p.reserved[strings.ToLower(w)] = struct{}{}
		}
	}
}

// WithBlockedWords replaces the blocked content word list.
func WithBlockedWords(words []string) Option {
	return func(p *Policy) { p.blocked = words }
}

// WithPhishingTerms replaces the phishing impersonation term list.
func WithPhishingTerms(terms []string) Option {
	return func(p *Policy) { p.phishing = terms }
}

// NewPolicy returns a Policy carrying the platform word lists,
// adjusted by opts.
func NewPolicy(opts ...Option) *Policy {
	p := &Policy{
		blocked:  blockedWords,
		phishing: phishingTerms,
		now:      time.Now,
	}
	WithReservedWords(reservedWords)(p)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Normalize turns raw user input into a canonical alias key: trimmed,
// lowercased, whitespace runs replaced by a single hyphen, everything
// outside [a-z0-9-] stripped, hyphen runs collapsed, and leading or
// trailing hyphens removed. Normalize never fails; the worst case is
// an empty string. It is idempotent.
func Normalize(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = spaceRuns.ReplaceAllString(key, "-")
	key = nonKeyChars.ReplaceAllString(key, "")
	key = hyphenRuns.ReplaceAllString(key, "-")
	return strings.Trim(key, "-")
}

// Validate applies the naming rule chain to key. The first failing rule
// wins. Validate expects a normalized key but independently guards
// against raw input. Reserved-word hits carry suggestions; blocked and
// phishing hits deliberately do not.
func (p *Policy) Validate(key string) Result {
	if len(key) < minLength {
		return Result{Error: "alias is too short (minimum 3 characters)"}
	}
	if len(key) > maxLength {
		return Result{Error: "alias is too long (maximum 30 characters)"}
	}
	if strings.ContainsAny(key, " \t\n") {
		return Result{
			Error:       "alias must not contain spaces",
			Suggestions: []string{strings.ReplaceAll(key, " ", "-")},
		}
	}
	if nonKeyChars.MatchString(key) {
		return Result{Error: "alias may only contain lowercase letters, numbers, and hyphens"}
	}
	if strings.Contains(key, "--") {
		return Result{Error: "alias must not contain consecutive hyphens"}
	}
	if strings.HasPrefix(key, "-") || strings.HasSuffix(key, "-") {
		return Result{Error: "alias must not start or end with a hyphen"}
	}
	if _, ok := p.reserved[key]; ok {
		return Result{
			Error:       "this alias is reserved",
			Suggestions: p.Suggestions(key),
		}
	}
	for _, w := range p.blocked {
		if strings.Contains(key, w) {
			return Result{Error: "this alias is not allowed"}
		}
	}
	stripped := strings.ReplaceAll(key, "-", "")
	for _, term := range p.phishing {
		if strings.Contains(key, term) || stripped == strings.ReplaceAll(term, "-", "") {
			return Result{Error: "this alias is not allowed"}
		}
	}
	return Result{Valid: true}
}

// Suggestions returns alternative candidates for a taken or reserved
// base, in a fixed order, dropping any that exceed the length limit.
// Availability is the caller's problem: these are name candidates only.
func (p *Policy) Suggestions(base string) []string {
	year := strconv.Itoa(p.now().Year())
	candidates := []string{
		base + "1",
		base + "2",
		base + "-" + year,
		"my-" + base,
		"go-" + base,
		base + "-now",
	}
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if len(c) <= maxLength {
			out = append(out, c)
		}
	}
	return out
}
