package highlight

import "github.com/kk-code-lab/rview/internal/search"

// Pass highlights the lines of one document from the top, owning the carry
// state and a compiled query. Lines must be fed in document order.
type Pass struct {
	opts    Options
	matcher search.Matcher
	carry   Carry
}

// NewPass starts a pass at the top of a document.
func NewPass(opts Options) *Pass {
	return &Pass{opts: opts, matcher: search.NewMatcher(opts.Query)}
}

// ResumePass continues a pass from a carry saved by an earlier pass with the
// same options, at the line that followed it.
func ResumePass(opts Options, carry Carry) *Pass {
	return &Pass{opts: opts, matcher: search.NewMatcher(opts.Query), carry: carry}
}

// Line highlights the next line of the document.
func (p *Pass) Line(line string) []Span {
	return highlightLine(line, p.opts, p.matcher, &p.carry)
}

// Skip advances past a line that will not be drawn. Without syntax coloring
// only the match ordinal moves, so the line is counted instead of split.
func (p *Pass) Skip(line string) {
	if p.opts.Syntax {
		_ = highlightLine(line, p.opts, p.matcher, &p.carry)
		return
	}
	p.carry.MatchCounter += p.matcher.Count(line)
}

// Carry returns the state after the last line fed to the pass.
func (p *Pass) Carry() Carry {
	return p.carry
}
