package parser

import (
	"io"

	"github.com/mabhi256/massifglom/internal/massif/model"
)

type parserState int

const (
	stateDesc parserState = iota
	stateCmd
	stateTimeUnit
	stateAwaitSnapshot
	stateSnapTime
	stateSnapHeap
	stateSnapHeapExtra
	stateSnapStacks
	stateSnapHeapTreeKind
	stateSnapHeapTreeBody
	stateDone
)

// stateMachine drives the line source through the parser states of
// spec.md §4.5, dispatching each line by current state and prefix,
// accumulating the in-progress snapshot, and finalizing snapshots and the
// heap tree they may carry.
type stateMachine struct {
	src LineSource

	state       parserState
	lineNo      int
	description string
	command     string
	timeUnit    string

	current  *maybeSnapshot
	treeBldr *heapTreeBuilder

	snapshots []*model.Snapshot
}

func newStateMachine(src LineSource) *stateMachine {
	return &stateMachine{src: src, state: stateDesc}
}

// run drives the state machine to completion, returning the accumulated
// snapshots or the first ParseError encountered.
func (m *stateMachine) run() ([]*model.Snapshot, error) {
	for {
		line, err := m.src.ReadLine()
		if err == io.EOF {
			return m.onEOF()
		}
		if err != nil {
			return nil, newIOError(m.lineNo+1, err)
		}
		m.lineNo++

		if err := m.step(line); err != nil {
			return nil, err
		}
		if m.state == stateDone {
			return m.snapshots, nil
		}
	}
}

func (m *stateMachine) onEOF() ([]*model.Snapshot, error) {
	switch m.state {
	case stateAwaitSnapshot:
		if len(m.snapshots) == 0 {
			return nil, newError(ErrNoSnapshots, m.lineNo, "end of stream with no snapshots")
		}
		return m.snapshots, nil
	case stateSnapHeapTreeBody:
		return nil, newError(ErrTruncatedTree, m.lineNo, "end of stream inside heap tree")
	default:
		return nil, newError(ErrUnexpectedLine, m.lineNo, "end of stream while expecting %s", m.state)
	}
}

func (m *stateMachine) step(line string) error {
	switch m.state {
	case stateDesc:
		return m.header(line, "desc: ", &m.description, stateCmd)
	case stateCmd:
		return m.header(line, "cmd: ", &m.command, stateTimeUnit)
	case stateTimeUnit:
		return m.header(line, "time_unit: ", &m.timeUnit, stateAwaitSnapshot)
	case stateAwaitSnapshot:
		return m.awaitSnapshot(line)
	case stateSnapTime:
		return m.snapField(line, "time=", stateSnapHeap, func(v uint64) { m.current.time = v })
	case stateSnapHeap:
		return m.snapField(line, "mem_heap_B=", stateSnapHeapExtra, func(v uint64) { m.current.heap = v })
	case stateSnapHeapExtra:
		return m.snapField(line, "mem_heap_extra_B=", stateSnapStacks, func(v uint64) { m.current.heapExtra = v })
	case stateSnapStacks:
		return m.snapField(line, "mem_stacks_B=", stateSnapHeapTreeKind, func(v uint64) { m.current.stacks = v })
	case stateSnapHeapTreeKind:
		return m.heapTreeKind(line)
	case stateSnapHeapTreeBody:
		return m.heapTreeBody(line)
	default:
		return newError(ErrUnexpectedLine, m.lineNo, "no input expected in state %s", m.state)
	}
}

func (m *stateMachine) header(line, prefix string, dst *string, next parserState) error {
	key, value, ok := splitOnce(line, ": ")
	if !ok || key+": " != prefix {
		return newError(ErrUnexpectedLine, m.lineNo, "expected prefix %q, got %q", prefix, line)
	}
	*dst = value
	m.state = next
	return nil
}

func (m *stateMachine) awaitSnapshot(line string) error {
	if isSeparatorLine(line) {
		return nil
	}
	key, value, ok := splitOnce(line, "=")
	if !ok || key != "snapshot" {
		if len(m.snapshots) == 0 {
			return newError(ErrUnexpectedLine, m.lineNo, "expected \"snapshot=<N>\", got %q", line)
		}
		if last := m.snapshots[len(m.snapshots)-1]; last.TreeKind == model.TreePeak {
			if _, nodeErr := parseNodeLine(line, m.lineNo); nodeErr == nil {
				return newError(ErrUnexpectedLine, m.lineNo, "heap_tree=peak carries no tree body, got %q", line)
			}
		}
		return newError(ErrTrailingData, m.lineNo, "expected \"snapshot=<N>\" or ignorable line, got %q", line)
	}
	n, err := parseUnsigned(value)
	if err != nil || n > 0xFFFFFFFF {
		return newError(ErrUnexpectedValue, m.lineNo, "invalid snapshot index %q", value)
	}
	m.current = &maybeSnapshot{index: uint32(n)}
	m.state = stateSnapTime
	return nil
}

func (m *stateMachine) snapField(line, prefix string, next parserState, set func(uint64)) error {
	key, value, ok := splitOnce(line, "=")
	if !ok || key+"=" != prefix {
		return newError(ErrUnexpectedLine, m.lineNo, "expected prefix %q, got %q", prefix, line)
	}
	n, err := parseUnsigned(value)
	if err != nil {
		return newError(ErrUnexpectedValue, m.lineNo, "field %q: invalid unsigned value %q", prefix, value)
	}
	set(n)
	m.state = next
	return nil
}

func (m *stateMachine) heapTreeKind(line string) error {
	key, value, ok := splitOnce(line, "=")
	if !ok || key != "heap_tree" {
		return newError(ErrUnexpectedLine, m.lineNo, "expected \"heap_tree=<kind>\", got %q", line)
	}
	switch value {
	case "empty":
		m.current.treeKind = model.TreeEmpty
		return m.finalizeSnapshot()
	case "peak":
		m.current.treeKind = model.TreePeak
		return m.finalizeSnapshot()
	case "detailed":
		m.current.treeKind = model.TreeDetailed
		m.treeBldr = newHeapTreeBuilder()
		m.state = stateSnapHeapTreeBody
		return nil
	default:
		return newError(ErrUnexpectedValue, m.lineNo, "heap_tree=%q not in {empty, peak, detailed}", value)
	}
}

func (m *stateMachine) heapTreeBody(line string) error {
	if isSeparatorLine(line) {
		return nil
	}
	outcome, root, err := m.treeBldr.feed(line, m.lineNo)
	if err != nil {
		return err
	}
	if outcome == treeComplete {
		m.current.tree = root
		m.treeBldr = nil
		return m.finalizeSnapshot()
	}
	return nil
}

func (m *stateMachine) finalizeSnapshot() error {
	m.snapshots = append(m.snapshots, m.current.finalize())
	m.current = nil
	m.state = stateAwaitSnapshot
	return nil
}

func (s parserState) String() string {
	switch s {
	case stateDesc:
		return "Desc"
	case stateCmd:
		return "Cmd"
	case stateTimeUnit:
		return "TimeUnit"
	case stateAwaitSnapshot:
		return "AwaitSnapshot"
	case stateSnapTime:
		return "SnapTime"
	case stateSnapHeap:
		return "SnapHeap"
	case stateSnapHeapExtra:
		return "SnapHeapExtra"
	case stateSnapStacks:
		return "SnapStacks"
	case stateSnapHeapTreeKind:
		return "SnapHeapTreeKind"
	case stateSnapHeapTreeBody:
		return "SnapHeapTreeBody"
	case stateDone:
		return "Done"
	default:
		return "Unknown"
	}
}
