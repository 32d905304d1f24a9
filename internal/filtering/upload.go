package filtering

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/document"
)

type emptyNameFilter struct{}

// NewEmptyName creates a filter that removes documents without a filename.
func NewEmptyName() Filter {
	return &emptyNameFilter{}
}

func (f *emptyNameFilter) Name() string { return "empty_name" }

func (f *emptyNameFilter) Disable(string) {}

func (f *emptyNameFilter) IsEnabled() bool { return true }

func (f *emptyNameFilter) Validate(*Config) error { return nil }

func (f *emptyNameFilter) Apply(_ context.Context, deps Deps, docs *document.Documents) (*document.Documents, Step, error) {
	initial := docs.Len()
	removed := docs.RemoveFunc(func(doc *document.Document) bool {
		return doc.Name == ""
	})
	if len(removed) > 0 {
		deps.Logger.Info("skipping documents without a filename",
			zap.Int("skipped", len(removed)),
			zap.Int("documents_left", docs.Len()),
		)
	}

	return docs, Step{Initial: initial, Dropped: len(removed), Left: docs.Len()}, nil
}

type extensionFilter struct{}

// NewExtension creates a filter that keeps PDF documents only.
func NewExtension() Filter {
	return &extensionFilter{}
}

func (f *extensionFilter) Name() string { return "extension" }

func (f *extensionFilter) Disable(string) {}

func (f *extensionFilter) IsEnabled() bool { return true }

func (f *extensionFilter) Validate(*Config) error { return nil }

func (f *extensionFilter) Apply(_ context.Context, deps Deps, docs *document.Documents) (*document.Documents, Step, error) {
	initial := docs.Len()
	removed := docs.RemoveFunc(func(doc *document.Document) bool {
		return !document.IsPDF(doc.Name)
	})
	if len(removed) > 0 {
		deps.Logger.Info("skipping non-pdf documents",
			zap.Strings("skipped_documents", removed),
			zap.Int("documents_left", docs.Len()),
		)
	}

	return docs, Step{Initial: initial, Dropped: len(removed), Left: docs.Len()}, nil
}
