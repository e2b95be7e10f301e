package pipeline

import (
	"fmt"

	"booktrans/internal/segment"
)

// Selection is the CLI-level choice of which segment ordinals to process.
// Zero values mean "not set". Index wins when both index and a range are
// supplied; with neither, the whole list is selected.
type Selection struct {
	Index int
	Start int
	End   int
}

// SelectionError reports an ordinal outside the identified segment list. It
// is a pre-flight failure: nothing has been written when it is returned.
type SelectionError struct {
	Requested int
	First     int
	Last      int
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("selection %d out of range: segments run from %d to %d", e.Requested, e.First, e.Last)
}

// Resolve maps the selection onto the concrete subset of segments, in
// ascending ordinal order.
func Resolve(segs []segment.Segment, sel Selection) ([]segment.Segment, error) {
	if len(segs) == 0 {
		return nil, fmt.Errorf("no segments to select from")
	}
	first, last := segs[0].Index, segs[len(segs)-1].Index

	if sel.Index != 0 {
		for _, s := range segs {
			if s.Index == sel.Index {
				return []segment.Segment{s}, nil
			}
		}
		return nil, &SelectionError{Requested: sel.Index, First: first, Last: last}
	}

	if sel.Start != 0 || sel.End != 0 {
		if sel.Start == 0 || sel.End == 0 {
			return nil, fmt.Errorf("--start and --end must be given together")
		}
		if sel.Start > sel.End {
			return nil, fmt.Errorf("--start %d is after --end %d", sel.Start, sel.End)
		}
		if sel.Start < first || sel.Start > last {
			return nil, &SelectionError{Requested: sel.Start, First: first, Last: last}
		}
		if sel.End < first || sel.End > last {
			return nil, &SelectionError{Requested: sel.End, First: first, Last: last}
		}
		var out []segment.Segment
		for _, s := range segs {
			if s.Index >= sel.Start && s.Index <= sel.End {
				out = append(out, s)
			}
		}
		return out, nil
	}

	return segs, nil
}
