package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitOnce(t *testing.T) {
	key, value, ok := splitOnce("desc: --detailed-freq=1", ": ")
	assert.True(t, ok)
	assert.Equal(t, "desc", key)
	assert.Equal(t, "--detailed-freq=1", value)

	_, _, ok = splitOnce("no separator here", ": ")
	assert.False(t, ok)

	key, value, ok = splitOnce("mem_heap_B=352", "=")
	assert.True(t, ok)
	assert.Equal(t, "mem_heap_B", key)
	assert.Equal(t, "352", value)
}

func TestLeadingSpaces(t *testing.T) {
	assert.Equal(t, 0, leadingSpaces("n1: 100 root"))
	assert.Equal(t, 3, leadingSpaces("   n0: 50 leaf"))
	assert.Equal(t, 0, leadingSpaces("\tn0: 50 leaf")) // tab is not a space
}

func TestParseChildCount(t *testing.T) {
	n, ok := parseChildCount("n18:")
	assert.True(t, ok)
	assert.EqualValues(t, 18, n)

	n, ok = parseChildCount("n0:")
	assert.True(t, ok)
	assert.EqualValues(t, 0, n)

	_, ok = parseChildCount("18:")
	assert.False(t, ok)

	_, ok = parseChildCount("n18")
	assert.False(t, ok)

	_, ok = parseChildCount("nx:")
	assert.False(t, ok)
}

func TestParseUnsigned(t *testing.T) {
	n, err := parseUnsigned("46630998")
	assert.NoError(t, err)
	assert.EqualValues(t, 46630998, n)

	_, err = parseUnsigned("")
	assert.Error(t, err)

	_, err = parseUnsigned("-5")
	assert.Error(t, err)

	_, err = parseUnsigned("12x")
	assert.Error(t, err)
}
