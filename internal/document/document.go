package document

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

const pdfExtension = ".pdf"

// Document is a single uploaded or scanned file. It lives only for the
// duration of one ranking request.
type Document struct {
	Name string
	Data []byte
}

type Documents struct {
	Items []*Document
}

// New builds a collection preserving the given order.
func New(items ...*Document) *Documents {
	return &Documents{Items: items}
}

// IsPDF reports whether the filename carries the .pdf extension.
// The check is case-sensitive.
func IsPDF(name string) bool {
	return strings.HasSuffix(name, pdfExtension)
}

// ReadDir loads the PDF files located directly in dir, following symlinks.
// Subdirectories are not descended into. A file that cannot be read is
// logged and skipped. Items are ordered by filename.
func ReadDir(dir string, logger *zap.Logger) (*Documents, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %q: %w", dir, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	docs := &Documents{}
	for _, entry := range entries {
		if !IsPDF(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			logger.Warn("skipping unreadable file", zap.String("filename", entry.Name()), zap.Error(err))
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("skipping unreadable file", zap.String("filename", entry.Name()), zap.Error(err))
			continue
		}

		docs.Items = append(docs.Items, &Document{Name: entry.Name(), Data: data})
	}

	return docs, nil
}

func (d *Documents) Len() int {
	return len(d.Items)
}

func (d *Documents) Names() []string {
	names := make([]string, 0, len(d.Items))
	for _, doc := range d.Items {
		names = append(names, doc.Name)
	}
	return names
}

// Exclude removes every document whose name is in targets and returns the
// removed names. Relative order of the remaining documents is kept.
func (d *Documents) Exclude(targets []string) []string {
	drop := make(map[string]struct{}, len(targets))
	for _, target := range targets {
		drop[target] = struct{}{}
	}

	return d.RemoveFunc(func(doc *Document) bool {
		_, ok := drop[doc.Name]
		return ok
	})
}

// RemoveFunc drops documents for which fn returns true, keeping order.
func (d *Documents) RemoveFunc(fn func(*Document) bool) []string {
	var removed []string
	kept := d.Items[:0]
	for _, doc := range d.Items {
		if fn(doc) {
			removed = append(removed, doc.Name)
			continue
		}
		kept = append(kept, doc)
	}

	// release references held past the new length
	for i := len(kept); i < len(d.Items); i++ {
		d.Items[i] = nil
	}
	d.Items = kept

	return removed
}
