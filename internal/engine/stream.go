package engine

import (
	"context"
	"fmt"

	"github.com/vk/dashgrid/internal/dashboard"
)

// Stream is a lazy, pull-based iterator over panel results in declared
// panel order. Nothing is computed until Next is called, and each panel is
// computed at most once per Stream: repeated retrieval of a title, whether
// by iteration or ByTitle, serves the cached result without issuing
// further queries.
//
// The usual pattern mirrors sql.Rows:
//
//	s := eng.Stream(cfg)
//	for s.Next(ctx) {
//		use(s.Panel())
//	}
//	if err := s.Err(); err != nil { ... }
type Stream struct {
	x    *execution
	next int
	cur  *dashboard.PanelResult
	err  error
}

// Stream begins a lazy execution of the dashboard. The returned Stream is
// for a single consumer.
func (e *Engine) Stream(cfg *dashboard.Config) *Stream {
	return &Stream{x: newExecution(e, cfg)}
}

// Next computes the next panel and reports whether one is available.
// It returns false after the last panel or on the first error.
func (s *Stream) Next(ctx context.Context) bool {
	if s.err != nil || s.next >= len(s.x.cfg.Panels) {
		return false
	}
	res, err := s.x.panel(ctx, s.x.cfg.Panels[s.next])
	s.next++
	if err != nil {
		s.cur = nil
		s.err = err
		return false
	}
	s.cur = res
	return true
}

// Panel returns the result produced by the last successful Next call.
func (s *Stream) Panel() *dashboard.PanelResult {
	return s.cur
}

// Err returns the error that stopped iteration, if any.
func (s *Stream) Err() error {
	return s.err
}

// ByTitle returns the result for the named panel, computing it on first
// request and serving the cached copy afterwards. Values resolved this way
// remain visible to panels later in the iteration order.
func (s *Stream) ByTitle(ctx context.Context, title string) (*dashboard.PanelResult, error) {
	for _, p := range s.x.cfg.Panels {
		if p.Title == title {
			return s.x.panel(ctx, p)
		}
	}
	return nil, fmt.Errorf("unknown panel %q", title)
}
