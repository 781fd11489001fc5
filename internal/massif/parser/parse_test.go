package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseS1MinimumValidProfile(t *testing.T) {
	input := `desc: --detailed-freq=1
cmd: glom
time_unit: i
snapshot=0
time=0
mem_heap_B=0
mem_heap_extra_B=0
mem_stacks_B=0
heap_tree=detailed
n0: 0 (heap allocation functions) malloc/new/new[], --alloc-fns, etc.
snapshot=1
time=46630998
mem_heap_B=352
mem_heap_extra_B=8
mem_stacks_B=0
heap_tree=detailed
n1: 352 a
 n0: 352 0x400088D: ??? (in /lib/ld-2.10.1.so)
`
	profile, err := ParseReader(NewReaderLineSource(strings.NewReader(input)))
	require.NoError(t, err)

	require.Len(t, profile.Snapshots, 2)
	require.NotNil(t, profile.Snapshots[1].Tree)
	assert.EqualValues(t, 1, profile.Snapshots[1].Tree.ChildCountDeclared)
	assert.Equal(t, "0x400088D: ??? (in /lib/ld-2.10.1.so)", profile.Snapshots[1].Tree.Children[0].Label)
	assert.EqualValues(t, 46630998, profile.MaxTime)
	assert.EqualValues(t, 360, profile.MaxTotalBytes)
}

func TestParseS2EmptyHeapTree(t *testing.T) {
	input := `desc: d
cmd: c
time_unit: i
snapshot=0
time=0
mem_heap_B=0
mem_heap_extra_B=0
mem_stacks_B=0
heap_tree=empty
`
	profile, err := ParseReader(NewReaderLineSource(strings.NewReader(input)))
	require.NoError(t, err)
	require.Len(t, profile.Snapshots, 1)
	snap := profile.Snapshots[0]
	assert.Nil(t, snap.Tree)
}

func TestParseS3PeakHeapTree(t *testing.T) {
	input := `desc: d
cmd: c
time_unit: i
snapshot=0
time=0
mem_heap_B=0
mem_heap_extra_B=0
mem_stacks_B=0
heap_tree=peak
`
	profile, err := ParseReader(NewReaderLineSource(strings.NewReader(input)))
	require.NoError(t, err)
	require.Len(t, profile.Snapshots, 1)
	assert.Nil(t, profile.Snapshots[0].Tree)
}

func TestParseS4MultiSubtree(t *testing.T) {
	var b strings.Builder
	b.WriteString("desc: d\ncmd: c\ntime_unit: i\nsnapshot=0\ntime=0\nmem_heap_B=0\nmem_heap_extra_B=0\nmem_stacks_B=0\nheap_tree=detailed\n")
	b.WriteString("n18: 1800 root\n")
	labels := make([]string, 18)
	for i := range labels {
		labels[i] = "c" + string(rune('a'+i))
	}
	labels[5] = "0x554E715: xmlHashCreate (hash.c:156)"
	for _, l := range labels {
		b.WriteString(" n0: 100 " + l + "\n")
	}

	profile, err := ParseReader(NewReaderLineSource(strings.NewReader(b.String())))
	require.NoError(t, err)
	require.Len(t, profile.Snapshots, 1)
	root := profile.Snapshots[0].Tree
	require.NotNil(t, root)
	require.Len(t, root.Children, 18)
	assert.Equal(t, "0x554E715: xmlHashCreate (hash.c:156)", root.Children[5].Label)
	for _, c := range root.Children {
		assert.EqualValues(t, len(c.Children), c.ChildCountDeclared)
	}
}

func TestParseS5NonExistentPath(t *testing.T) {
	_, err := ParseFile("/this/does/not/exist")
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, ErrIO, pe.Kind)
}

func TestParseS6ArbitraryText(t *testing.T) {
	input := `package main

import "fmt"

func main() {
	fmt.Println("hello")
}
`
	_, err := ParseReader(NewReaderLineSource(strings.NewReader(input)))
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, ErrUnexpectedLine, pe.Kind)
}

func TestParseS7TruncatedTree(t *testing.T) {
	input := `desc: d
cmd: c
time_unit: i
snapshot=0
time=0
mem_heap_B=0
mem_heap_extra_B=0
mem_stacks_B=0
heap_tree=detailed
n2: 100 root
 n0: 50 c1
`
	_, err := ParseReader(NewReaderLineSource(strings.NewReader(input)))
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, ErrTruncatedTree, pe.Kind)
}

func TestParseNoSnapshots(t *testing.T) {
	input := "desc: d\ncmd: c\ntime_unit: i\n"
	_, err := ParseReader(NewReaderLineSource(strings.NewReader(input)))
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, ErrNoSnapshots, pe.Kind)
}

func TestParseTrailingData(t *testing.T) {
	input := `desc: d
cmd: c
time_unit: i
snapshot=0
time=0
mem_heap_B=0
mem_heap_extra_B=0
mem_stacks_B=0
heap_tree=empty
garbage line here
`
	_, err := ParseReader(NewReaderLineSource(strings.NewReader(input)))
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, ErrTrailingData, pe.Kind)
}

func TestParseDeterministic(t *testing.T) {
	input := `desc: d
cmd: c
time_unit: i
snapshot=0
time=1
mem_heap_B=2
mem_heap_extra_B=3
mem_stacks_B=4
heap_tree=empty
`
	p1, err1 := ParseReader(NewReaderLineSource(strings.NewReader(input)))
	p2, err2 := ParseReader(NewReaderLineSource(strings.NewReader(input)))
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, p1, p2)
}
