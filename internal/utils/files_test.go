package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSafeWriteFileCreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "2024", "meta.md")
	if err := SafeWriteFile(path, []byte("first")); err != nil {
		t.Fatalf("SafeWriteFile: %v", err)
	}
	if err := SafeWriteFile(path, []byte("second")); err != nil {
		t.Fatalf("SafeWriteFile overwrite: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "second" {
		t.Fatalf("content = %q", b)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %d entries", len(entries))
	}
}

func TestPrettyJSON(t *testing.T) {
	b, err := PrettyJSON(map[string]int{"rows": 3})
	if err != nil {
		t.Fatalf("PrettyJSON: %v", err)
	}
	if string(b) != "{\n  \"rows\": 3\n}\n" {
		t.Fatalf("json = %q", b)
	}
	if _, err := PrettyJSON(func() {}); err == nil {
		t.Fatalf("expected error for unsupported value")
	}
}
