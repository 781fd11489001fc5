// Package model defines the in-memory representation of a parsed heap
// profile: headers, an ordered sequence of snapshots, and the recursive
// heap allocation tree a detailed snapshot carries.
package model

// TreeKind tags whether a snapshot carries a heap tree and, if not, why.
type TreeKind byte

const (
	// TreeEmpty marks a snapshot with no heap tree.
	TreeEmpty TreeKind = iota
	// TreePeak marks a snapshot the sampler flagged as the peak sample;
	// in this format it never carries a tree body.
	TreePeak
	// TreeDetailed marks a snapshot whose body includes a heap tree.
	TreeDetailed
)

func (k TreeKind) String() string {
	switch k {
	case TreeEmpty:
		return "empty"
	case TreePeak:
		return "peak"
	case TreeDetailed:
		return "detailed"
	default:
		return "unknown"
	}
}

// Snapshot is one sample point of the traced program's memory state.
type Snapshot struct {
	Index     uint32 `json:"index"`
	Time      uint64 `json:"time"`
	Heap      uint64 `json:"heap"`
	HeapExtra uint64 `json:"heapExtra"`
	Stacks    uint64 `json:"stacks"`

	TreeKind TreeKind `json:"treeKind"`
	// Tree is nil unless TreeKind == TreeDetailed.
	Tree *HeapNode `json:"tree,omitempty"`
}

// MarshalJSON renders TreeKind as its lowercase name rather than its
// underlying integer value, so `json` output matches the format's own
// `heap_tree=` vocabulary.
func (k TreeKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// TotalBytes is the sum of heap, heap-overhead, and stack usage at this
// snapshot — the quantity a stacked area plot would stack.
func (s *Snapshot) TotalBytes() uint64 {
	return s.Heap + s.HeapExtra + s.Stacks
}

// Profile is the top-level result of a successful parse.
type Profile struct {
	Description string `json:"description"`
	Command     string `json:"command"`
	TimeUnit    string `json:"timeUnit"` // one of "i", "ms", "B"; carried verbatim, unvalidated

	Snapshots []*Snapshot `json:"snapshots"`

	// MaxTime and MaxTotalBytes are derived aggregates computed once during
	// the parse, rather than recomputed on every access.
	MaxTime       uint64 `json:"maxTime"`
	MaxTotalBytes uint64 `json:"maxTotalBytes"`
}
