package filtering

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resume-ranker/internal/document"
)

func upload(names ...string) *document.Documents {
	docs := document.New()
	for _, name := range names {
		docs.Items = append(docs.Items, &document.Document{Name: name, Data: []byte("%PDF")})
	}
	return docs
}

func TestRunDefaultSteps(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)

	docs, err := Run(context.Background(), &Config{}, Deps{Logger: zap.New(core)}, Default(),
		upload("a.pdf", "", "notes.txt", "b.PDF", "c.pdf"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := docs.Names(); !reflect.DeepEqual(got, []string{"a.pdf", "c.pdf"}) {
		t.Fatalf("unexpected documents left: %v", got)
	}

	steps := observed.FilterMessage("filter step").All()
	if len(steps) != 3 {
		t.Fatalf("expected 3 logged steps, got %d", len(steps))
	}

	extension := steps[1].ContextMap()
	if extension["name"] != "extension" || extension["dropped"] != int64(2) || extension["left"] != int64(2) {
		t.Fatalf("unexpected extension step fields: %v", extension)
	}
}

func TestExcludeFileStep(t *testing.T) {
	path := filepath.Join(t.TempDir(), "excluded.json")
	content := `{"Items":[{"Filename":"b.pdf","ExcludedAt":"2024-05-01T10:00:00Z"}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	docs, err := Run(context.Background(), &Config{ExcludeFile: path}, Deps{}, Default(), upload("a.pdf", "b.pdf", "c.pdf"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := docs.Names(); !reflect.DeepEqual(got, []string{"a.pdf", "c.pdf"}) {
		t.Fatalf("unexpected documents left: %v", got)
	}
}

func TestExcludeFileStepInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "excluded.json")
	if err := os.WriteFile(path, []byte("[broken"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Run(context.Background(), &Config{ExcludeFile: path}, Deps{}, Default(), upload("a.pdf")); err == nil {
		t.Fatalf("expected error for invalid exclude file")
	}
}

func TestDisabledStepIsSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "excluded.json")
	if err := os.WriteFile(path, []byte(`{"Items":[{"Filename":"a.pdf"}]}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	steps := Default()
	DisableByName(steps, "exclude_file", "requested")

	docs, err := Run(context.Background(), &Config{ExcludeFile: path}, Deps{}, steps, upload("a.pdf"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if docs.Len() != 1 {
		t.Fatalf("expected the disabled step to keep a.pdf, got %v", docs.Names())
	}

	statuses := Describe(steps)
	last := statuses[len(statuses)-1]
	if last.Name != "exclude_file" || last.Enabled || last.Reason != "requested" {
		t.Fatalf("unexpected status: %+v", last)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Run(ctx, nil, Deps{}, Default(), upload("a.pdf")); err == nil {
		t.Fatalf("expected context error")
	}
}
