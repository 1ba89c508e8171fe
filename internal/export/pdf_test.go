package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/ShaperCut/internal/dimension"
	"github.com/piwi3910/ShaperCut/internal/engine"
	"github.com/piwi3910/ShaperCut/internal/model"
)

func TestWritePDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview.pdf")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := WritePDF(f, buildTestPlan(t)); err != nil {
		t.Fatalf("WritePDF returned error: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	// Two pages with an embedded QR image
	if info.Size() < 1000 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestWritePDF_Header(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, buildTestPlan(t)); err != nil {
		t.Fatalf("WritePDF returned error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header")
	}
}

func TestWritePDF_EmptyPlan(t *testing.T) {
	var buf bytes.Buffer
	plan := engine.Plan{Job: model.NewJob("empty", dimension.Millimeter)}
	if err := WritePDF(&buf, plan); err == nil {
		t.Fatal("expected error for empty plan, got nil")
	}
}

func TestSortedEntries(t *testing.T) {
	entries := sortedEntries(buildTestPlan(t))
	want := []string{"outer", "hole", "note"}
	for i, e := range entries {
		if e.Node.ID != want[i] {
			t.Errorf("entry %d: expected %s, got %s", i, want[i], e.Node.ID)
		}
	}
}
