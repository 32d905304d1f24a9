package skills

import (
	"fmt"
	"regexp"
	"strings"
)

// Tokenizer splits text into the tokens skill matching operates on.
type Tokenizer interface {
	Name() string
	Tokenize(text string) []string
}

const (
	TokenizerWhitespace = "whitespace"
	TokenizerLinguistic = "linguistic"
)

// Whitespace splits on runs of whitespace only. Punctuation stays attached
// to its word, so "python," is not "python".
type Whitespace struct{}

func (Whitespace) Name() string { return TokenizerWhitespace }

func (Whitespace) Tokenize(text string) []string {
	return strings.Fields(text)
}

// words with inner joiners (problem-solving, node.js, ci/cd) and trailing
// language markers (c++, c#) stay whole; any other symbol is its own token.
var linguisticToken = regexp.MustCompile(`[\p{L}\p{N}]+(?:[-'./&][\p{L}\p{N}]+)*[+#]*|[^\s\p{L}\p{N}]`)

// Linguistic separates punctuation from words and lowercases every token.
type Linguistic struct{}

func (Linguistic) Name() string { return TokenizerLinguistic }

func (Linguistic) Tokenize(text string) []string {
	tokens := linguisticToken.FindAllString(text, -1)
	for i, token := range tokens {
		tokens[i] = strings.ToLower(token)
	}
	return tokens
}

// ParseTokenizer resolves a tokenizer by its configured name. An empty name
// selects Whitespace.
func ParseTokenizer(name string) (Tokenizer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", TokenizerWhitespace:
		return Whitespace{}, nil
	case TokenizerLinguistic:
		return Linguistic{}, nil
	default:
		return nil, fmt.Errorf("unsupported tokenizer: %s", name)
	}
}
