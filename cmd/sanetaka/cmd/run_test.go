package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/siglang/sanetaka/internal/errors"
)

func TestReadSourcePrefersInline(t *testing.T) {
	source, file, err := readSource("return 1;", []string{"ignored.snt"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source != "return 1;" || file != "<eval>" {
		t.Fatalf("got source=%q file=%q", source, file)
	}
}

func TestReadSourceFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.snt")
	if err := os.WriteFile(path, []byte("return 1;"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	source, file, err := readSource("", []string{path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source != "return 1;" || file != path {
		t.Fatalf("got source=%q file=%q", source, file)
	}
}

func TestReadSourceNoInputIsError(t *testing.T) {
	if _, _, err := readSource("", nil); err == nil {
		t.Fatalf("expected an error when neither --eval nor a file argument is given")
	}
}

func TestReportErrReturnsTheSameError(t *testing.T) {
	ce := &errors.CompileError{Message: "boom", File: "f.snt"}
	cfg := &Config{Color: errors.ColorNever}
	if got := reportErr(ce, "source", cfg); got != ce {
		t.Fatalf("reportErr must return the same error it was given")
	}
}
