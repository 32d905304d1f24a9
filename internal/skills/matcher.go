// Package skills matches resume text against fixed skill vocabularies.
package skills

import (
	"fmt"
	"sort"
	"strings"
)

// Policy selects how vocabulary entries are found in the token stream.
type Policy string

const (
	// PolicyToken intersects single tokens with the vocabulary. Entries made
	// of several words can never match.
	PolicyToken Policy = "token"
	// PolicyPhrase also matches multi-word entries when their words appear
	// as a contiguous run of tokens.
	PolicyPhrase Policy = "phrase"
)

// ParsePolicy resolves a configured policy name. An empty name selects
// PolicyPhrase.
func ParsePolicy(name string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(name))) {
	case "", PolicyPhrase:
		return PolicyPhrase, nil
	case PolicyToken:
		return PolicyToken, nil
	default:
		return "", fmt.Errorf("unsupported match policy: %s", name)
	}
}

type Matcher struct {
	tokenizer Tokenizer
	policy    Policy
}

// NewMatcher defaults to the Whitespace tokenizer and PolicyPhrase.
func NewMatcher(tokenizer Tokenizer, policy Policy) *Matcher {
	if tokenizer == nil {
		tokenizer = Whitespace{}
	}
	if policy == "" {
		policy = PolicyPhrase
	}
	return &Matcher{tokenizer: tokenizer, policy: policy}
}

func (m *Matcher) Policy() Policy { return m.policy }

func (m *Matcher) Tokenizer() Tokenizer { return m.tokenizer }

// Match returns the vocabulary entries found in text, sorted. The result is
// never nil.
func (m *Matcher) Match(text string, vocab *Vocabulary) []string {
	if vocab == nil || vocab.Len() == 0 {
		return []string{}
	}

	tokens := m.tokenizer.Tokenize(text)

	window := 1
	if m.policy == PolicyPhrase {
		window = vocab.maxWords
	}

	found := make(map[string]struct{})
	for i := range tokens {
		for n := 1; n <= window && i+n <= len(tokens); n++ {
			candidate := tokens[i]
			if n > 1 {
				candidate = strings.Join(tokens[i:i+n], " ")
			}
			if vocab.Contains(candidate) {
				found[candidate] = struct{}{}
			}
		}
	}

	matched := make([]string, 0, len(found))
	for word := range found {
		matched = append(matched, word)
	}
	sort.Strings(matched)

	return matched
}
