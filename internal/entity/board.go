package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// Cell is the content of one board position.
type Cell string

const (
	EmptyCell Cell = ""
	MarkX     Cell = "X"
	MarkO     Cell = "O"
)

// BoardSize is the number of cells on a 3x3 board.
const BoardSize = 9

// WinningLines are the rows, columns and diagonals that win the game.
var WinningLines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// IsMark reports whether the cell holds one of the two player marks.
func (that Cell) IsMark() bool {
	return that == MarkX || that == MarkO
}

// Opponent returns the other mark. EmptyCell has no opponent and maps to itself.
func (that Cell) Opponent() Cell {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return EmptyCell
	}
}

// ParseMark accepts "X" or "O".
func ParseMark(s string) (Cell, error) {
	mark := Cell(s)
	if !mark.IsMark() {
		return EmptyCell, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, s)
	}

	return mark, nil
}

// Board is addressed 0..8, row = index/3, col = index%3.
// It is a value type: copying a Board copies every cell.
type Board [BoardSize]Cell

func validIndex(index int) error {
	if index < 0 || index >= BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrIndexOutOfRange, index)
	}

	return nil
}

func (that *Board) Get(index int) (Cell, error) {
	if err := validIndex(index); err != nil {
		return EmptyCell, err
	}

	return that[index], nil
}

// Place puts mark on an empty cell.
func (that *Board) Place(index int, mark Cell) error {
	if err := validIndex(index); err != nil {
		return err
	}

	if !mark.IsMark() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	if that[index] != EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, index)
	}

	that[index] = mark

	return nil
}

func (that *Board) Reset() {
	for i := range that {
		that[i] = EmptyCell
	}
}

// AvailableIndices returns the empty cells in ascending order.
func (that *Board) AvailableIndices() []int {
	indices := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			indices = append(indices, i)
		}
	}

	return indices
}

// IsEmpty reports whether no cell has been played.
func (that *Board) IsEmpty() bool {
	for _, cell := range that {
		if cell != EmptyCell {
			return false
		}
	}

	return true
}

// Count returns how many cells hold mark.
func (that *Board) Count(mark Cell) int {
	n := 0
	for _, cell := range that {
		if cell == mark {
			n++
		}
	}

	return n
}
