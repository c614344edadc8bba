package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// LoadError reports a failure to read an input before validation.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string { return fmt.Sprintf("could not load %q: %v", e.Path, e.Err) }

func (e *LoadError) Unwrap() error { return e.Err }

// loadSource reads the complete contents of path, or of stdin if path is "-".
// Inputs named *.gz and *.zst are decompressed. The result must be valid
// UTF-8 of at most maxSize bytes. Any error has concrete type *LoadError.
func loadSource(path string, stdin io.Reader, maxSize int64) ([]byte, error) {
	data, err := readSource(path, stdin, maxSize)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return data, nil
}

func readSource(path string, stdin io.Reader, maxSize int64) ([]byte, error) {
	if path == "-" {
		return readLimited(stdin, maxSize)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch filepath.Ext(path) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer zr.Close()
		return readLimited(zr, maxSize)

	case ".zst":
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer dec.Close()
		return readLimited(dec, maxSize)
	}
	return readLimited(f, maxSize)
}

func readLimited(r io.Reader, maxSize int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, err
	} else if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("input exceeds maximum size %d bytes", maxSize)
	} else if !utf8.Valid(data) {
		return nil, fmt.Errorf("input is not valid UTF-8")
	}
	return data, nil
}
