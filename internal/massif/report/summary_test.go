package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mabhi256/massifglom/internal/massif/model"
)

func TestSummaryContainsHeaderFields(t *testing.T) {
	profile := &model.Profile{
		Description:   "--detailed-freq=1",
		Command:       "glom",
		TimeUnit:      "i",
		MaxTime:       100,
		MaxTotalBytes: 1024,
		Snapshots: []*model.Snapshot{
			{Index: 0, Time: 0, Heap: 0, HeapExtra: 0, Stacks: 0, TreeKind: model.TreeEmpty},
			{Index: 1, Time: 100, Heap: 1000, HeapExtra: 24, Stacks: 0, TreeKind: model.TreeDetailed},
		},
	}

	out := Summary(profile)
	assert.Contains(t, out, "--detailed-freq=1")
	assert.Contains(t, out, "glom")
	assert.Contains(t, out, "1/2")
	assert.True(t, strings.Contains(out, "empty") || strings.Contains(out, "detailed"))
}

func TestTreeDepth(t *testing.T) {
	leaf := &model.HeapNode{Depth: 2}
	mid := &model.HeapNode{Depth: 1, Children: []*model.HeapNode{leaf}}
	root := &model.HeapNode{Depth: 0, Children: []*model.HeapNode{mid}}

	assert.EqualValues(t, 2, TreeDepth(root))
	assert.EqualValues(t, 0, TreeDepth(nil))
}
