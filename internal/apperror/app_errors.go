package apperror

import "errors"

var (
	ErrIndexOutOfRange     = errors.New("cell index out of range")
	ErrCellOccupied        = errors.New("cell is already occupied")
	ErrIllegalMove         = errors.New("illegal move")
	ErrNotYourTurn         = errors.New("it's not your turn")
	ErrGameAlreadyFinished = errors.New("game is already finished")
	ErrNoLegalMove         = errors.New("no legal move left on the board")
	ErrInvalidMark         = errors.New("invalid mark")
	ErrUnknownDifficulty   = errors.New("unknown difficulty")
	ErrUnknownPlayer       = errors.New("unknown player")
	ErrDifficultyLocked    = errors.New("difficulty can only be changed between games")
	ErrSessionNotFound     = errors.New("game session not found")
	ErrCorruptedSnapshot   = errors.New("game snapshot is inconsistent with its board")
)
