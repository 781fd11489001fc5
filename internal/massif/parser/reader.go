package parser

import (
	"bufio"
	"io"
	"os"
)

// LineSource abstracts a UTF-8 text input that yields one logical line at a
// time with any trailing CR/LF stripped. ReadLine returns io.EOF (with an
// empty string) at end of stream, distinct from a blank line, and surfaces
// any underlying I/O error distinctly from both.
type LineSource interface {
	ReadLine() (string, error)
}

// readerLineSource adapts an arbitrary io.Reader. It does not own the
// reader and never closes it.
type readerLineSource struct {
	scanner *bufio.Scanner
}

// NewReaderLineSource wraps r as a LineSource. The caller retains ownership
// of r and is responsible for closing it, if applicable.
func NewReaderLineSource(r io.Reader) LineSource {
	scanner := bufio.NewScanner(r)
	// Massif trees can nest deeply under big labels (file:line, demangled
	// symbols); grow well past bufio's 64KiB default token limit.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 4*1024*1024)
	return &readerLineSource{scanner: scanner}
}

func (s *readerLineSource) ReadLine() (string, error) {
	if s.scanner.Scan() {
		return s.scanner.Text(), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// fileLineSource opens a file by path and owns the resulting handle.
type fileLineSource struct {
	file  *os.File
	inner LineSource
}

// NewFileLineSource opens path for reading. The caller must call Close.
func NewFileLineSource(path string) (*fileLineSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &fileLineSource{file: f, inner: NewReaderLineSource(f)}, nil
}

func (s *fileLineSource) ReadLine() (string, error) {
	return s.inner.ReadLine()
}

func (s *fileLineSource) Close() error {
	return s.file.Close()
}
