package skills

import (
	"reflect"
	"testing"
)

func TestLinguisticTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect []string
	}{
		{
			name:   "punctuation split",
			input:  "python, sql.",
			expect: []string{"python", ",", "sql", "."},
		},
		{
			name:   "language markers",
			input:  "C++ and C#",
			expect: []string{"c++", "and", "c#"},
		},
		{
			name:   "inner joiners",
			input:  "problem-solving node.js ci/cd",
			expect: []string{"problem-solving", "node.js", "ci/cd"},
		},
		{
			name:   "brackets",
			input:  "(aws)",
			expect: []string{"(", "aws", ")"},
		},
		{
			name:   "empty",
			input:  "   ",
			expect: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Linguistic{}.Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.expect) {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestWhitespaceTokenize(t *testing.T) {
	got := Whitespace{}.Tokenize(" python,\tsql\n\ngo ")
	expect := []string{"python,", "sql", "go"}
	if !reflect.DeepEqual(got, expect) {
		t.Fatalf("expected %q, got %q", expect, got)
	}
}

func TestParseTokenizer(t *testing.T) {
	for input, expect := range map[string]string{
		"":           TokenizerWhitespace,
		"whitespace": TokenizerWhitespace,
		"Linguistic": TokenizerLinguistic,
	} {
		got, err := ParseTokenizer(input)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", input, err)
		}
		if got.Name() != expect {
			t.Fatalf("ParseTokenizer(%q): expected %s, got %s", input, expect, got.Name())
		}
	}

	if _, err := ParseTokenizer("spacy"); err == nil {
		t.Fatalf("expected error for unknown tokenizer")
	}
}

func TestVocabularyNormalizes(t *testing.T) {
	vocab := NewVocabulary(Soft, "  Time   Management ", "LEADERSHIP", "leadership", "", "   ")

	if vocab.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d: %v", vocab.Len(), vocab.Words())
	}
	if !vocab.Contains("time management") || !vocab.Contains("leadership") {
		t.Fatalf("unexpected vocabulary: %v", vocab.Words())
	}
	if vocab.Kind() != Soft {
		t.Fatalf("expected soft kind, got %s", vocab.Kind())
	}

	words := vocab.Words()
	words[0] = "mutated"
	if vocab.Contains("mutated") {
		t.Fatalf("Words must return a copy")
	}
}

func TestDefaultVocabularies(t *testing.T) {
	if got := DefaultTechnical().Len(); got != 50 {
		t.Fatalf("expected 50 technical skills, got %d", got)
	}
	if got := DefaultSoft().Len(); got != 41 {
		t.Fatalf("expected 41 soft skills, got %d", got)
	}
}
