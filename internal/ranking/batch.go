package ranking

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Mode string

const (
	// ModeSimple scores by skill counts only.
	ModeSimple Mode = "simple"
	// ModeReference adds job description similarity to the score.
	ModeReference Mode = "reference"
)

const (
	NoTechnicalSkills = "No technical skills found"
	NoSoftSkills      = "No soft skills found"
)

// Record is the scored result for one document.
type Record struct {
	DisplayName     string   `json:"name"`
	SourceFilename  string   `json:"filename"`
	TechnicalSkills []string `json:"technical_skills"`
	SoftSkills      []string `json:"soft_skills"`
	// Similarity is set in reference mode only.
	Similarity     *float64 `json:"similarity,omitempty"`
	CompositeScore float64  `json:"score"`
}

// MatchedSkills are the skills counted by the reference mode score.
func (r *Record) MatchedSkills() []string {
	return r.TechnicalSkills
}

// Batch is the ranked output of one invocation. Records are ordered by
// CompositeScore, highest first; ties keep their input order.
type Batch struct {
	ID      string    `json:"id"`
	Mode    Mode      `json:"mode"`
	Records []*Record `json:"records"`
}

func (b *Batch) Len() int {
	return len(b.Records)
}

func (b *Batch) Scores() []float64 {
	scores := make([]float64, 0, len(b.Records))
	for _, record := range b.Records {
		scores = append(scores, record.CompositeScore)
	}
	return scores
}

// DisplayRow is one line of the upload result page.
type DisplayRow struct {
	Name            string  `json:"name"`
	Filename        string  `json:"filename"`
	Score           float64 `json:"score"`
	TechnicalSkills string  `json:"technical_skills"`
	SoftSkills      string  `json:"soft_skills"`
}

// Display renders the batch for presentation with comma-joined skills and
// placeholders for empty sets.
func (b *Batch) Display() []DisplayRow {
	rows := make([]DisplayRow, 0, len(b.Records))
	for _, record := range b.Records {
		rows = append(rows, DisplayRow{
			Name:            record.DisplayName,
			Filename:        record.SourceFilename,
			Score:           record.CompositeScore,
			TechnicalSkills: joinOr(record.TechnicalSkills, NoTechnicalSkills),
			SoftSkills:      joinOr(record.SoftSkills, NoSoftSkills),
		})
	}
	return rows
}

// Tuple is the folder mode result shape.
type Tuple struct {
	Filename string   `json:"filename"`
	Score    float64  `json:"score"`
	Skills   []string `json:"skills"`
}

func (t Tuple) String() string {
	return fmt.Sprintf("%s\t%s\t%s", t.Filename, strconv.FormatFloat(t.Score, 'f', 2, 64), strings.Join(t.Skills, ", "))
}

func (b *Batch) Tuples() []Tuple {
	tuples := make([]Tuple, 0, len(b.Records))
	for _, record := range b.Records {
		tuples = append(tuples, Tuple{
			Filename: record.SourceFilename,
			Score:    record.CompositeScore,
			Skills:   append([]string{}, record.MatchedSkills()...),
		})
	}
	return tuples
}

// DumpToTmpFile writes the batch as indented JSON and returns the file name.
func (b *Batch) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "ranking_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return "", err
	}
	return file.Name(), nil
}

func joinOr(items []string, placeholder string) string {
	if len(items) == 0 {
		return placeholder
	}
	return strings.Join(items, ", ")
}
