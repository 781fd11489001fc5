package parser

import "github.com/mabhi256/massifglom/internal/massif/model"

// maybeSnapshot accumulates a snapshot's fields as they are parsed. The
// fields are plain values that stay zero until their line is seen; they
// do not record whether they were set. The state machine's fixed field
// order is what ensures each one is set exactly once before finalize is
// called. finalize copies the fields into a model.Snapshot and does not
// check them.
type maybeSnapshot struct {
	index     uint32
	time      uint64
	heap      uint64
	heapExtra uint64
	stacks    uint64
	treeKind  model.TreeKind
	tree      *model.HeapNode
}

func (m *maybeSnapshot) finalize() *model.Snapshot {
	return &model.Snapshot{
		Index:     m.index,
		Time:      m.time,
		Heap:      m.heap,
		HeapExtra: m.heapExtra,
		Stacks:    m.stacks,
		TreeKind:  m.treeKind,
		Tree:      m.tree,
	}
}

// isSeparatorLine reports whether line is ignorable between/around
// snapshots: blank, or matching ^#-+$ (a '#' followed by one or more '-').
func isSeparatorLine(line string) bool {
	if line == "" {
		return true
	}
	if len(line) < 2 || line[0] != '#' {
		return false
	}
	for i := 1; i < len(line); i++ {
		if line[i] != '-' {
			return false
		}
	}
	return true
}
