package selection

import (
	"fmt"
	"slices"
)

// NoFocus marks the absence of a focused row.
const NoFocus = -1

// Direction is the way selected rows travel when moved.
type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// SelectionChanged is delivered after every mutation that changes the
// selection, and after appends while rows are selected. Selected is ascending.
type SelectionChanged struct {
	Owner     string
	Selected  []int
	TotalRows int
}

// IsClear reports whether nothing is selected.
func (e SelectionChanged) IsClear() bool { return len(e.Selected) == 0 }

// IsSingleSelection reports whether exactly one row is selected.
func (e SelectionChanged) IsSingleSelection() bool { return len(e.Selected) == 1 }

// CanMove reports whether a move in direction d would change anything.
func (e SelectionChanged) CanMove(d Direction) bool {
	if e.IsClear() {
		return false
	}
	switch d {
	case Up:
		return slices.Min(e.Selected) > 0
	case Down:
		return slices.Max(e.Selected) < e.TotalRows-1
	default:
		return false
	}
}

func (e SelectionChanged) String() string {
	if e.IsClear() {
		return fmt.Sprintf("SelectionCleared{owner=%s rows=%d}", e.Owner, e.TotalRows)
	}
	return fmt.Sprintf("SelectionChanged{owner=%s selected=%v rows=%d}", e.Owner, e.Selected, e.TotalRows)
}

// MoveResult is delivered after a move was applied.
type MoveResult struct {
	Owner     string
	Direction Direction
	Result    SelectionAndFocus
}

// Sink receives engine notifications. Calls happen synchronously on the
// caller's goroutine once the mutation is fully applied.
type Sink interface {
	OnSelectionChanged(SelectionChanged)
	OnMoveResult(MoveResult)
}

// SinkFuncs adapts plain functions to Sink. Nil fields are skipped.
type SinkFuncs struct {
	SelectionChanged func(SelectionChanged)
	MoveResult       func(MoveResult)
}

func (s SinkFuncs) OnSelectionChanged(e SelectionChanged) {
	if s.SelectionChanged != nil {
		s.SelectionChanged(e)
	}
}

func (s SinkFuncs) OnMoveResult(e MoveResult) {
	if s.MoveResult != nil {
		s.MoveResult(e)
	}
}
