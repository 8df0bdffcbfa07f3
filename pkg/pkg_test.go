package pkg

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	expected := "tpp"
	if Name != expected {
		t.Errorf("Expected Name to be %q, got %q", expected, Name)
	}
}

func TestDescription(t *testing.T) {
	if Description == "" {
		t.Error("Expected Description to be non-empty")
	}
}

func TestVersion(t *testing.T) {
	// Version is embedded from VERSION file, so it should not be empty.
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("Failed to read VERSION file: %v", err)
	}

	if content := strings.TrimSpace(string(buf)); Version != content {
		t.Errorf("Expected Version to be %q, got %q", content, Version)
	}
}

func TestAuthor(t *testing.T) {
	if len(Author) == 0 {
		t.Error("Expected Author to have at least one entry")
	}

	expectedName := "ardnew"
	expectedEmail := "andrew@ardnew.com"

	if !slices.ContainsFunc(Author, func(a AuthorInfo) bool {
		return a.Name == expectedName && a.Email == expectedEmail
	}) {
		t.Errorf("Expected Author to contain %q, %q", expectedName, expectedEmail)
	}
}

func TestConfigDir_EndsWithPrefix(t *testing.T) {
	if got := filepath.Base(ConfigDir()); got != Prefix() {
		t.Errorf("ConfigDir() base = %q, want %q", got, Prefix())
	}

	if got := filepath.Base(CacheDir()); got != Prefix() {
		t.Errorf("CacheDir() base = %q, want %q", got, Prefix())
	}
}
