// Package parser implements the line-oriented state machine that turns a
// massif-style heap profile text stream into a model.Profile: a line
// source, tokenizer helpers, a heap-tree builder, a snapshot builder, the
// driving state machine, and the public entry points below that wrap it
// all up with the derived aggregates.
package parser

import (
	"github.com/mabhi256/massifglom/internal/massif/model"
)

// ParseReader consumes lines from src until end-of-stream and returns the
// assembled Profile. ParseReader does not own src and never closes it.
func ParseReader(src LineSource) (*model.Profile, error) {
	m := newStateMachine(src)
	snapshots, err := m.run()
	if err != nil {
		return nil, err
	}

	profile := &model.Profile{
		Description: m.description,
		Command:     m.command,
		TimeUnit:    m.timeUnit,
		Snapshots:   snapshots,
	}

	for _, s := range snapshots {
		if s.Time > profile.MaxTime {
			profile.MaxTime = s.Time
		}
		if total := s.TotalBytes(); total > profile.MaxTotalBytes {
			profile.MaxTotalBytes = total
		}
	}

	return profile, nil
}

// ParseFile opens the file at path, parses it, and releases the handle on
// every exit path.
func ParseFile(path string) (*model.Profile, error) {
	src, err := NewFileLineSource(path)
	if err != nil {
		return nil, &ParseError{Kind: ErrIO, Line: 0, Message: err.Error(), Cause: err}
	}
	defer src.Close()

	return ParseReader(src)
}
