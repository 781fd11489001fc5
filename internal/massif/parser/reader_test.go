package parser

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderLineSourceMixedLineEndings(t *testing.T) {
	src := NewReaderLineSource(strings.NewReader("one\ntwo\r\nthree"))

	line, err := src.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "one", line)

	line, err = src.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "two", line)

	line, err = src.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "three", line)

	_, err = src.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}

func TestFileLineSourceNonExistent(t *testing.T) {
	_, err := NewFileLineSource("/this/does/not/exist")
	assert.Error(t, err)
}
