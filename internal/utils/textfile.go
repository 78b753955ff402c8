package utils

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
)

// binaryProbeSize is how many leading bytes are inspected for a null byte
// when deciding whether a file looks binary.
const binaryProbeSize = 512

// ReadCapped reads at most maxBytes of a file and reports whether the
// content was truncated. Invalid UTF-8 sequences are replaced with the
// Unicode replacement character so downstream stages never fail on
// arbitrary bytes.
func ReadCapped(path string, maxBytes int) (content string, truncated bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", false, err
	}
	defer f.Close()

	buf := make([]byte, maxBytes+1)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", false, err
	}
	if n > maxBytes {
		n = maxBytes
		truncated = true
	}
	return strings.ToValidUTF8(string(buf[:n]), "�"), truncated, nil
}

// LooksBinary probes the first bytes of a file for a null byte. Unreadable
// files are treated as binary so the selector skips them.
func LooksBinary(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	buf := make([]byte, binaryProbeSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	return bytes.IndexByte(buf[:n], 0) >= 0
}
