package extractor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtractPlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stored-upload")
	content := "This Agreement is made by and between Acme Co and Beta LLC."
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, filename := range []string{"contract.txt", "contract.md", "CONTRACT.TXT"} {
		got, err := Extract(path, filename)
		if err != nil {
			t.Errorf("Extract(%q) failed: %v", filename, err)
			continue
		}
		if got != content {
			t.Errorf("Extract(%q) = %q", filename, got)
		}
	}
}

func TestExtractUnsupportedFormat(t *testing.T) {
	_, err := Extract("/tmp/whatever", "contract.docx")
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("error = %v, want unsupported format", err)
	}
}

func TestExtractMissingFile(t *testing.T) {
	if _, err := Extract(filepath.Join(t.TempDir(), "gone.txt"), "gone.txt"); err == nil {
		t.Error("expected an error for a missing file")
	}
}
