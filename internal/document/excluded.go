package document

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"time"
)

// ExcludedDocuments is the content of an exclude file: documents already
// reviewed that later runs should leave out.
type ExcludedDocuments struct {
	Items []*ExcludedDocument
}

type ExcludedDocument struct {
	Filename   string
	Score      float64 `json:",omitempty"`
	ExcludedAt time.Time
}

// ReadExcludedFile decodes the exclude file at path. A missing or empty
// file is an empty list.
func ReadExcludedFile(path string) (*ExcludedDocuments, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &ExcludedDocuments{}, nil
		}
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedDocuments{}, nil
	}

	var excluded ExcludedDocuments
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

func (e *ExcludedDocuments) Filenames() []string {
	names := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		names = append(names, item.Filename)
	}
	return names
}

// Append adds the items of s whose filename is not listed yet.
func (e *ExcludedDocuments) Append(s *ExcludedDocuments) {
	seen := make(map[string]struct{}, len(e.Items))
	for _, item := range e.Items {
		seen[item.Filename] = struct{}{}
	}

	for _, item := range s.Items {
		if _, ok := seen[item.Filename]; ok {
			continue
		}
		seen[item.Filename] = struct{}{}
		e.Items = append(e.Items, item)
	}
}

// WriteFile stores the list as indented JSON, replacing path.
func (e *ExcludedDocuments) WriteFile(path string) error {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
