package skills

import (
	"sort"
	"strings"
)

type Kind string

const (
	Technical Kind = "technical"
	Soft      Kind = "soft"
)

// Vocabulary is an immutable set of lowercase skill keywords. Build it once
// at startup and share it read-only.
type Vocabulary struct {
	kind  Kind
	words map[string]struct{}
	// longest entry in words, counted in whitespace-separated words
	maxWords int
}

// NewVocabulary lowercases, trims and deduplicates words. Blank entries
// are ignored.
func NewVocabulary(kind Kind, words ...string) *Vocabulary {
	v := &Vocabulary{
		kind:  kind,
		words: make(map[string]struct{}, len(words)),
	}

	for _, word := range words {
		normalized := strings.Join(strings.Fields(strings.ToLower(word)), " ")
		if normalized == "" {
			continue
		}
		v.words[normalized] = struct{}{}

		if n := strings.Count(normalized, " ") + 1; n > v.maxWords {
			v.maxWords = n
		}
	}

	return v
}

func (v *Vocabulary) Kind() Kind {
	return v.kind
}

func (v *Vocabulary) Len() int {
	return len(v.words)
}

func (v *Vocabulary) Contains(word string) bool {
	_, ok := v.words[word]
	return ok
}

// Words returns a sorted copy of the vocabulary.
func (v *Vocabulary) Words() []string {
	out := make([]string, 0, len(v.words))
	for word := range v.words {
		out = append(out, word)
	}
	sort.Strings(out)
	return out
}

var defaultTechnical = []string{
	"python", "java", "sql", "react", "nlp", "flask", "aws", "docker", "kubernetes",
	"machine learning", "deep learning", "data analysis", "html", "css", "javascript",
	"c++", "c#", "ruby", "php", "swift", "typescript", "go", "scala", "rust", "matlab",
	"r", "sas", "hadoop", "spark", "tableau", "powerbi", "excel", "git", "github",
	"jenkins", "ansible", "terraform", "linux", "unix", "windows", "networking",
	"cybersecurity", "penetration testing", "ethical hacking", "cloud computing",
	"devops", "agile", "scrum", "project management", "business analysis",
}

var defaultSoft = []string{
	"communication", "leadership", "teamwork", "problem-solving", "adaptability",
	"time management", "critical thinking", "creativity", "interpersonal skills",
	"emotional intelligence", "conflict resolution", "negotiation", "presentation skills",
	"active listening", "collaboration", "decision making", "work ethic", "positive attitude",
	"flexibility", "self-motivation", "stress management", "organizational skills",
	"customer service", "empathy", "cultural awareness", "networking", "relationship building",
	"influence", "persuasion", "mentoring", "coaching", "public speaking", "writing skills",
	"research skills", "analytical skills", "attention to detail", "initiative", "self-awareness",
	"self-regulation", "social skills", "resilience",
}

// DefaultTechnical returns the built-in technical vocabulary.
func DefaultTechnical() *Vocabulary {
	return NewVocabulary(Technical, defaultTechnical...)
}

// DefaultSoft returns the built-in soft skill vocabulary.
func DefaultSoft() *Vocabulary {
	return NewVocabulary(Soft, defaultSoft...)
}
