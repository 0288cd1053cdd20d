package lexicon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fillers.txt")
	content := "# fillers\nUm\n\nuh\num\n  you know  \n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	words, err := LoadWords(path)
	if err != nil {
		t.Fatalf("LoadWords: %v", err)
	}
	want := []string{"um", "uh", "you know"}
	if len(words) != len(want) {
		t.Fatalf("words = %v, want %v", words, want)
	}
	for i := range want {
		if words[i] != want[i] {
			t.Fatalf("words[%d] = %q, want %q", i, words[i], want[i])
		}
	}
}

func TestLoadWordsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("# only a comment\n\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadWords(path); err == nil {
		t.Fatalf("expected error for empty list")
	}
}

func TestSetContains(t *testing.T) {
	set := NewSet([]string{"Like", " so ", ""})
	if !set.Contains("like") || !set.Contains("so") {
		t.Fatalf("set = %v", set)
	}
	if set.Contains("") || len(set) != 2 {
		t.Fatalf("empty entry kept: %v", set)
	}
}
