package parser

import (
	"strings"

	"github.com/mabhi256/massifglom/internal/massif/model"
)

// feedOutcome tags what happened after feeding one line into the builder.
type feedOutcome int

const (
	treeContinues feedOutcome = iota
	treeComplete
)

// heapFrame is a node under construction plus how many more children the
// builder still expects to see appended to it before it can be finalized.
type heapFrame struct {
	node      *model.HeapNode
	remaining uint32
}

// heapTreeBuilder reconstructs a pre-order-serialized heap tree, tracking an
// explicit parent stack rather than back-pointers. Feed lines to it one at
// a time in the order they appear in the source.
type heapTreeBuilder struct {
	stack []*heapFrame
	root  *model.HeapNode
}

func newHeapTreeBuilder() *heapTreeBuilder {
	return &heapTreeBuilder{}
}

// parseNodeLine parses one heap-tree node line into a provisional node and
// its depth, without touching builder state.
func parseNodeLine(line string, lineNo int) (*model.HeapNode, error) {
	depth := leadingSpaces(line)
	rest := line[depth:]

	sp := strings.IndexByte(rest, ' ')
	if sp < 0 {
		return nil, newHeapNodeError(ReasonMissingBytes, lineNo, "node line has no byte count: %q", line)
	}
	countTok, rest := rest[:sp], rest[sp+1:]

	childCount, ok := parseChildCount(countTok)
	if !ok {
		return nil, newHeapNodeError(ReasonBadChildCountToken, lineNo, "malformed child-count token: %q", countTok)
	}

	sp = strings.IndexByte(rest, ' ')
	if sp < 0 {
		return nil, newHeapNodeError(ReasonMissingLabel, lineNo, "node line has no label: %q", line)
	}
	bytesTok, label := rest[:sp], rest[sp+1:]

	total, err := parseUnsigned(bytesTok)
	if err != nil {
		return nil, newHeapNodeError(ReasonMissingBytes, lineNo, "malformed byte count %q: %v", bytesTok, err)
	}

	return &model.HeapNode{
		ChildCountDeclared: childCount,
		TotalBytes:         total,
		Label:              label,
		Depth:              uint32(depth),
	}, nil
}

// finalize asserts the arity invariant on a frame about to be popped.
func (b *heapTreeBuilder) finalize(f *heapFrame, lineNo int) error {
	if uint32(len(f.node.Children)) != f.node.ChildCountDeclared {
		return newHeapNodeError(ReasonDepthMismatch, lineNo,
			"node %q declared n%d: but has %d children",
			f.node.Label, f.node.ChildCountDeclared, len(f.node.Children))
	}
	return nil
}

// feed consumes one heap-tree line. It returns treeComplete with the
// reconstructed root once the tree's last node has been seen, or an error
// on any invariant violation.
func (b *heapTreeBuilder) feed(line string, lineNo int) (feedOutcome, *model.HeapNode, error) {
	n, err := parseNodeLine(line, lineNo)
	if err != nil {
		return treeContinues, nil, err
	}

	if len(b.stack) == 0 {
		if n.Depth != 0 {
			return treeContinues, nil, newHeapNodeError(ReasonDepthMismatch, lineNo,
				"root node must have depth 0, got %d", n.Depth)
		}
		if n.ChildCountDeclared == 0 {
			return treeComplete, n, nil
		}
		b.stack = append(b.stack, &heapFrame{node: n, remaining: n.ChildCountDeclared})
		b.root = n
		return treeContinues, nil, nil
	}

	// Pop frames that have no remaining children left; each pop finalizes
	// the popped node.
	for len(b.stack) > 0 && b.stack[len(b.stack)-1].remaining == 0 {
		top := b.stack[len(b.stack)-1]
		if err := b.finalize(top, lineNo); err != nil {
			return treeContinues, nil, err
		}
		b.stack = b.stack[:len(b.stack)-1]
	}

	if len(b.stack) == 0 {
		// We finished the root's subtree but more nodes follow: the
		// declared arity undercounted, or a depth-0 node appeared early.
		return treeContinues, nil, newHeapNodeError(ReasonDepthMismatch, lineNo,
			"unexpected node after tree completed: %q", line)
	}

	top := b.stack[len(b.stack)-1]
	if n.Depth != top.node.Depth+1 {
		if n.Depth > top.node.Depth+1 {
			return treeContinues, nil, newHeapNodeError(ReasonDepthJump, lineNo,
				"depth jumped from %d to %d", top.node.Depth, n.Depth)
		}
		return treeContinues, nil, newHeapNodeError(ReasonDepthMismatch, lineNo,
			"depth %d does not match any ancestor (expected %d)", n.Depth, top.node.Depth+1)
	}

	top.node.Children = append(top.node.Children, n)
	top.remaining--

	if n.ChildCountDeclared > 0 {
		b.stack = append(b.stack, &heapFrame{node: n, remaining: n.ChildCountDeclared})
		return treeContinues, nil, nil
	}

	// n is a leaf. If that drained every remaining level, the tree is done.
	if allLevelsDrained(b.stack) {
		for len(b.stack) > 0 {
			last := b.stack[len(b.stack)-1]
			if err := b.finalize(last, lineNo); err != nil {
				return treeContinues, nil, err
			}
			b.stack = b.stack[:len(b.stack)-1]
		}
		return treeComplete, b.root, nil
	}

	return treeContinues, nil, nil
}

func allLevelsDrained(stack []*heapFrame) bool {
	for _, f := range stack {
		if f.remaining != 0 {
			return false
		}
	}
	return true
}

// truncated reports whether end-of-stream occurred with the tree still
// incomplete (some ancestor has remaining > 0).
func (b *heapTreeBuilder) truncated() bool {
	return len(b.stack) > 0
}
