package state

import "github.com/kk-code-lab/rview/internal/highlight"

// checkpointInterval is the number of lines between saved pass carries.
const checkpointInterval = 256

// RenderedLine is one highlighted document line.
type RenderedLine struct {
	Number int // zero-based
	Spans  []highlight.Span
}

// passKey names everything the carry of a pass depends on. Colors and the
// current match do not change bracket depth, comment state or match ordinals.
type passKey struct {
	generation uint64
	language   highlight.Language
	syntax     bool
	query      string
}

// passCheckpoints holds carries[i], the state before line i*checkpointInterval.
type passCheckpoints struct {
	key     passKey
	carries []highlight.Carry
}

func (c *passCheckpoints) record(nextLine int, carry highlight.Carry) {
	if nextLine%checkpointInterval != 0 {
		return
	}
	if nextLine/checkpointInterval == len(c.carries) {
		c.carries = append(c.carries, carry)
	}
}

// RenderLines highlights document lines [start, end). The carry entering
// start is the one a pass from line 0 would have, so block comments, bracket
// depth and match ordinals stay consistent while scrolling.
func (s *AppState) RenderLines(start, end int) []RenderedLine {
	doc := s.Document
	if doc == nil {
		return nil
	}
	if start < 0 {
		start = 0
	}
	if end > len(doc.Lines) {
		end = len(doc.Lines)
	}
	if start >= end {
		return nil
	}

	opts := s.HighlightOptions()
	pass := s.passAt(opts, start)
	out := make([]RenderedLine, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, RenderedLine{Number: i, Spans: pass.Line(doc.Lines[i])})
		s.passCache.record(i+1, pass.Carry())
	}
	return out
}

// passAt returns a pass positioned before line, resuming from the nearest
// saved checkpoint.
func (s *AppState) passAt(opts highlight.Options, line int) *highlight.Pass {
	doc := s.Document
	key := passKey{
		generation: doc.Generation,
		language:   opts.Language,
		syntax:     opts.Syntax,
		query:      opts.Query,
	}
	if s.passCache == nil || s.passCache.key != key {
		s.passCache = &passCheckpoints{key: key, carries: []highlight.Carry{{}}}
	}

	cp := s.passCache
	k := line / checkpointInterval
	if k >= len(cp.carries) {
		k = len(cp.carries) - 1
	}
	pass := highlight.ResumePass(opts, cp.carries[k])
	for i := k * checkpointInterval; i < line; i++ {
		pass.Skip(doc.Lines[i])
		cp.record(i+1, pass.Carry())
	}
	return pass
}
