package pieces

import (
	"fmt"
	"strings"
)

// Problem is one failure found while building a catalog. MoveID is empty
// when the failure concerns the piece as a whole.
type Problem struct {
	Piece  string
	MoveID string
	Err    error
}

func (p *Problem) Error() string {
	if p.MoveID == "" {
		return fmt.Sprintf("piece %q: %v", p.Piece, p.Err)
	}
	return fmt.Sprintf("piece %q: move %q: %v", p.Piece, p.MoveID, p.Err)
}

func (p *Problem) Unwrap() error {
	return p.Err
}

// Report aggregates every problem of a build instead of stopping at the first.
type Report struct {
	Problems []*Problem
}

func (r *Report) add(piece, moveID string, err error) {
	r.Problems = append(r.Problems, &Problem{Piece: piece, MoveID: moveID, Err: err})
}

// merge appends the problems of err, flattening nested reports.
func (r *Report) merge(piece string, err error) {
	if other, ok := err.(*Report); ok {
		r.Problems = append(r.Problems, other.Problems...)
		return
	}
	r.add(piece, "", err)
}

// Err returns r, or nil when there is nothing to report.
func (r *Report) Err() error {
	if r == nil || len(r.Problems) == 0 {
		return nil
	}
	return r
}

func (r *Report) Error() string {
	lines := make([]string, 0, len(r.Problems)+1)
	lines = append(lines, fmt.Sprintf("%d problem(s):", len(r.Problems)))
	for _, p := range r.Problems {
		lines = append(lines, "  "+p.Error())
	}
	return strings.Join(lines, "\n")
}

func (r *Report) Unwrap() []error {
	errs := make([]error, len(r.Problems))
	for i, p := range r.Problems {
		errs[i] = p
	}
	return errs
}
