package lexicon

import (
	"regexp"
	"strings"
)

// Matcher is the compiled, read-only form of a Lexicon. Compile once at
// pipeline construction; safe for concurrent use.
type Matcher struct {
	lex         Lexicon
	risk        []*regexp.Regexp
	dismissive  []*regexp.Regexp
	impact      []*regexp.Regexp
	persistence []*regexp.Regexp
	leadership  map[string]struct{}
}

// Compile validates the lexicon and builds word-boundary matchers for every
// phrase list. Phrases match case-insensitively and never across word
// boundaries ("issue" does not match inside "issues").
func Compile(lex Lexicon) (*Matcher, error) {
	if err := lex.Validate(); err != nil {
		return nil, err
	}

	m := &Matcher{
		lex:        lex,
		leadership: make(map[string]struct{}, len(lex.LeadershipRoles)),
	}
	for _, role := range lex.LeadershipRoles {
		m.leadership[role] = struct{}{}
	}

	var err error
	if m.risk, err = compilePhrases(lex.RiskKeywords); err != nil {
		return nil, err
	}
	if m.dismissive, err = compilePhrases(lex.DismissivePatterns); err != nil {
		return nil, err
	}
	if m.impact, err = compilePhrases(lex.ImpactKeywords); err != nil {
		return nil, err
	}
	if m.persistence, err = compilePhrases(lex.PersistenceMarkers); err != nil {
		return nil, err
	}
	return m, nil
}

// MustCompile is Compile for known-good lexicons (defaults, test fixtures).
func MustCompile(lex Lexicon) *Matcher {
	m, err := Compile(lex)
	if err != nil {
		panic(err)
	}
	return m
}

// compilePhrases builds one anchored regexp per phrase. \b anchors work for
// phrases too: the boundary applies to the first and last word of the phrase.
func compilePhrases(phrases []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(phrases))
	for _, p := range phrases {
		p = strings.TrimSpace(strings.ToLower(p))
		if p == "" {
			continue
		}
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(p) + `\b`)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// Lexicon returns the source lexicon (by value; callers cannot mutate the
// compiled state).
func (m *Matcher) Lexicon() Lexicon { return m.lex }

// ContainsRisk reports whether the text mentions any risk keyword.
func (m *Matcher) ContainsRisk(text string) bool { return anyMatch(m.risk, text) }

// ContainsDismissive reports whether the text contains any dismissive phrase.
func (m *Matcher) ContainsDismissive(text string) bool { return anyMatch(m.dismissive, text) }

// ContainsImpact reports whether the text mentions a high-impact keyword.
func (m *Matcher) ContainsImpact(text string) bool { return anyMatch(m.impact, text) }

// ContainsPersistence reports whether the text carries a persistence marker.
func (m *Matcher) ContainsPersistence(text string) bool { return anyMatch(m.persistence, text) }

// IsLeadership reports whether the sender is a configured leadership identity.
// Exact match, case-sensitive: role names are identities, not prose.
func (m *Matcher) IsLeadership(sender string) bool {
	_, ok := m.leadership[sender]
	return ok
}

func anyMatch(res []*regexp.Regexp, text string) bool {
	for _, re := range res {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
