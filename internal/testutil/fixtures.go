// Package testutil defines support code for unit tests.
package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// A Case is a test input loaded from a fixture file.
type Case struct {
	Name  string // path of the file relative to the fixture directory
	Input []byte
	Valid bool // whether the input is expected to be valid
}

// Cases loads the fixture files in dir and its subdirectories. Files whose
// base names begin with "valid" or "pass" are expected to be valid; files
// beginning with "invalid" or "fail" are expected to be invalid. Other files
// are ignored. Cases fails t if dir cannot be read or contains no fixtures.
func Cases(t testing.TB, dir string) []Case {
	t.Helper()
	var out []Case
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".json" {
			return err
		}
		var valid bool
		switch base := filepath.Base(path); {
		case strings.HasPrefix(base, "valid"), strings.HasPrefix(base, "pass"):
			valid = true
		case strings.HasPrefix(base, "invalid"), strings.HasPrefix(base, "fail"):
			valid = false
		default:
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		name, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, Case{Name: filepath.ToSlash(name), Input: data, Valid: valid})
		return nil
	})
	if err != nil {
		t.Fatalf("Loading fixtures: %v", err)
	} else if len(out) == 0 {
		t.Fatalf("No fixtures found in %q", dir)
	}
	return out
}
