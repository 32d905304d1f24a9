package document

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestIsPDF(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect bool
	}{
		{name: "pdf", input: "jane.pdf", expect: true},
		{name: "upper case extension", input: "jane.PDF", expect: false},
		{name: "docx", input: "jane.docx", expect: false},
		{name: "empty", input: "", expect: false},
		{name: "only extension", input: ".pdf", expect: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsPDF(tt.input); got != tt.expect {
				t.Fatalf("IsPDF(%q): expected %v, got %v", tt.input, tt.expect, got)
			}
		})
	}
}

func TestExcludeKeepsOrder(t *testing.T) {
	docs := New(
		&Document{Name: "a.pdf"},
		&Document{Name: "b.pdf"},
		&Document{Name: "c.pdf"},
		&Document{Name: "d.pdf"},
	)

	removed := docs.Exclude([]string{"c.pdf", "a.pdf", "missing.pdf"})

	if !reflect.DeepEqual(removed, []string{"a.pdf", "c.pdf"}) {
		t.Fatalf("unexpected removed names: %v", removed)
	}

	if !reflect.DeepEqual(docs.Names(), []string{"b.pdf", "d.pdf"}) {
		t.Fatalf("unexpected remaining names: %v", docs.Names())
	}
}

func TestReadDirIsNotRecursive(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	write("b.pdf", "second")
	write("a.pdf", "first")
	write("notes.txt", "text")

	if err := os.Mkdir(filepath.Join(dir, "nested.pdf"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "nested.pdf", "c.pdf"), []byte("deep"), 0o644); err != nil {
		t.Fatalf("write nested: %v", err)
	}

	docs, err := ReadDir(dir, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{"a.pdf", "b.pdf"}
	if !reflect.DeepEqual(docs.Names(), expected) {
		t.Fatalf("expected %v, got %v", expected, docs.Names())
	}

	if string(docs.Items[0].Data) != "first" {
		t.Fatalf("unexpected data for a.pdf: %q", docs.Items[0].Data)
	}
}

func TestReadDirMissing(t *testing.T) {
	if _, err := ReadDir(filepath.Join(t.TempDir(), "absent"), nil); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestReadDirFollowsSymlinksAndSkipsUnreadable(t *testing.T) {
	dir := t.TempDir()
	outside := t.TempDir()

	if err := os.WriteFile(filepath.Join(outside, "jane.pdf"), []byte("linked"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.pdf"), []byte("plain"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	links := map[string]string{
		"jane.pdf":   filepath.Join(outside, "jane.pdf"),
		"broken.pdf": filepath.Join(outside, "missing.pdf"),
		// not a pdf, so it must not be touched at all
		"notes.txt": filepath.Join(outside, "missing.txt"),
	}
	for name, target := range links {
		if err := os.Symlink(target, filepath.Join(dir, name)); err != nil {
			t.Skipf("symlinks unsupported: %v", err)
		}
	}

	core, observed := observer.New(zapcore.WarnLevel)
	docs, err := ReadDir(dir, zap.New(core))
	if err != nil {
		t.Fatalf("expected the batch to survive an unreadable file, got %v", err)
	}

	expected := []string{"a.pdf", "jane.pdf"}
	if !reflect.DeepEqual(docs.Names(), expected) {
		t.Fatalf("expected %v, got %v", expected, docs.Names())
	}
	if string(docs.Items[1].Data) != "linked" {
		t.Fatalf("unexpected data for the symlinked pdf: %q", docs.Items[1].Data)
	}

	warnings := observed.FilterMessage("skipping unreadable file").All()
	if len(warnings) != 1 || warnings[0].ContextMap()["filename"] != "broken.pdf" {
		t.Fatalf("expected one warning for broken.pdf, got %+v", warnings)
	}
}
