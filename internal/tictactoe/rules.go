package tictactoe

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

// CheckWin reports whether mark owns a complete winning line.
func CheckWin(board entity.Board, mark entity.Cell) bool {
	if !mark.IsMark() {
		return false
	}

	for _, line := range entity.WinningLines {
		if board[line[0]] == mark && board[line[1]] == mark && board[line[2]] == mark {
			return true
		}
	}

	return false
}

// CheckTie only reports a full board. Check both marks with CheckWin first,
// or use Outcome which does it in the right order.
func CheckTie(board entity.Board) bool {
	for _, cell := range board {
		if cell == entity.EmptyCell {
			return false
		}
	}

	return true
}

// Outcome evaluates Win(X), Win(O), Tie, Ongoing in that order, so a win
// completed on the ninth move is a win, not a tie.
func Outcome(board entity.Board) entity.Outcome {
	switch {
	case CheckWin(board, entity.MarkX):
		return entity.Win(entity.MarkX)
	case CheckWin(board, entity.MarkO):
		return entity.Win(entity.MarkO)
	case CheckTie(board):
		return entity.Tie
	default:
		return entity.Ongoing
	}
}
