package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotTotalBytes(t *testing.T) {
	s := &Snapshot{Heap: 100, HeapExtra: 20, Stacks: 5}
	assert.EqualValues(t, 125, s.TotalBytes())
}

func TestTreeKindString(t *testing.T) {
	assert.Equal(t, "empty", TreeEmpty.String())
	assert.Equal(t, "peak", TreePeak.String())
	assert.Equal(t, "detailed", TreeDetailed.String())
	assert.Equal(t, "unknown", TreeKind(99).String())
}

func TestProfileMarshalJSON(t *testing.T) {
	profile := &Profile{
		Description: "d",
		Command:     "c",
		TimeUnit:    "i",
		Snapshots: []*Snapshot{
			{Index: 0, Time: 1, Heap: 2, TreeKind: TreeDetailed, Tree: &HeapNode{
				ChildCountDeclared: 1,
				TotalBytes:         2,
				Label:              "root",
				Children:           []*HeapNode{{Label: "leaf", Depth: 1}},
			}},
		},
	}

	out, err := json.Marshal(profile)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "d", decoded["description"])

	snapshots := decoded["snapshots"].([]any)
	snap0 := snapshots[0].(map[string]any)
	assert.Equal(t, "detailed", snap0["treeKind"])
	assert.Equal(t, "root", snap0["tree"].(map[string]any)["label"])
}
