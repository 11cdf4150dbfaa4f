package session

import (
	"fmt"
	"hash/fnv"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/opponent"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

// Snapshot is the serialisable view of a session. Outcome, CurrentPlayer and
// AvailableIndices are informational; Restore derives them from Board again.
type Snapshot struct {
	ID               string              `json:"id"`
	Board            entity.Board        `json:"board"`
	State            State               `json:"state"`
	Outcome          entity.Outcome      `json:"outcome"`
	CurrentPlayer    entity.PlayerKind   `json:"current_player,omitempty"`
	AvailableIndices []int               `json:"available_indices"`
	Difficulty       opponent.Difficulty `json:"difficulty"`
	StartingPlayer   entity.PlayerKind   `json:"starting_player"`
	Human            entity.Player       `json:"human"`
	Machine          entity.Player       `json:"machine"`
}

func (that *GameSession) Snapshot() Snapshot {
	return Snapshot{
		ID:               that.id,
		Board:            that.board,
		State:            that.state,
		Outcome:          that.Outcome(),
		CurrentPlayer:    that.CurrentPlayer(),
		AvailableIndices: that.AvailableIndices(),
		Difficulty:       that.Difficulty(),
		StartingPlayer:   that.options.StartingPlayer,
		Human:            that.human,
		Machine:          that.machine,
	}
}

// Restore rebuilds a session from a snapshot. The state is re-derived from the
// board and the starting player; a snapshot that disagrees is rejected.
// A non-zero seed is mixed with the session ID and the number of marks played,
// so each restore draws from its own reproducible stream.
func Restore(snapshot Snapshot, seed uint64) (*GameSession, error) {
	options := Options{
		StartingPlayer: snapshot.StartingPlayer,
		Difficulty:     snapshot.Difficulty,
		PlayerMark:     snapshot.Human.Mark,
		Seed:           RestoreSeed(seed, snapshot.ID, snapshot.Board),
	}

	that, err := New(snapshot.ID, options)
	if err != nil {
		return nil, fmt.Errorf("failed to restore session %s: %w", snapshot.ID, err)
	}

	if snapshot.Machine.Mark != "" && snapshot.Machine.Mark != that.machine.Mark {
		return nil, fmt.Errorf("%w: machine mark %q", apperror.ErrCorruptedSnapshot, snapshot.Machine.Mark)
	}

	state, err := that.deriveState(snapshot.Board)
	if err != nil {
		return nil, err
	}

	if snapshot.State != "" && snapshot.State != state {
		return nil, fmt.Errorf("%w: stored state %s, board says %s", apperror.ErrCorruptedSnapshot, snapshot.State, state)
	}

	that.board = snapshot.Board
	that.state = state

	return that, nil
}

func (that *GameSession) deriveState(board entity.Board) (State, error) {
	for i, cell := range board {
		if cell != entity.EmptyCell && !cell.IsMark() {
			return "", fmt.Errorf("%w: cell %d holds %q", apperror.ErrCorruptedSnapshot, i, cell)
		}
	}

	starter, follower := that.human, that.machine
	if that.options.StartingPlayer == entity.Machine {
		starter, follower = that.machine, that.human
	}

	played := entity.BoardSize - len(board.AvailableIndices())
	if board.Count(starter.Mark) != (played+1)/2 || board.Count(follower.Mark) != played/2 {
		return "", fmt.Errorf("%w: mark counts do not match the turn order", apperror.ErrCorruptedSnapshot)
	}

	// Outcome is taken from the restored board, never from the snapshot.
	if tictactoe.Outcome(board).IsFinished() {
		return StateFinished, nil
	}

	if played%2 == 0 {
		return awaiting(starter.Kind), nil
	}

	return awaiting(follower.Kind), nil
}

// RestoreSeed derives the generator seed for a session restored at board.
// Seed 0 stays 0 and keeps meaning "random".
func RestoreSeed(seed uint64, id string, board entity.Board) uint64 {
	if seed == 0 {
		return 0
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(id))

	played := uint64(entity.BoardSize - len(board.AvailableIndices()))
	mixed := seed ^ h.Sum64() ^ (played * 0x9e3779b97f4a7c15)
	if mixed == 0 {
		mixed = seed
	}

	return mixed
}
