// Package session runs one game between a human and the machine.
//
// A GameSession owns its board exclusively and does no I/O, no locking and no
// timing. Any "thinking time" before the machine answers is the caller's
// business: it decides when to call AdvanceMachineMove.
package session

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/opponent"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

// State of the turn-taking machine.
type State string

const (
	StateAwaitingHumanMove   State = "awaiting_human_move"
	StateAwaitingMachineMove State = "awaiting_machine_move"
	StateFinished            State = "finished"
)

type GameSession struct {
	id      string
	options Options

	board entity.Board
	state State

	human   entity.Player
	machine entity.Player

	rng      *rand.Rand
	strategy opponent.Strategy
}

func New(id string, options Options) (*GameSession, error) {
	if err := options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session options: %w", err)
	}

	difficulty, _ := opponent.ParseDifficulty(string(options.Difficulty))
	options.Difficulty = difficulty

	rng := opponent.NewRand(options.Seed)
	strategy, err := opponent.New(difficulty, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to build opponent: %w", err)
	}

	that := &GameSession{
		id:       id,
		options:  options,
		human:    entity.Player{Kind: entity.Human, Mark: options.PlayerMark},
		machine:  entity.Player{Kind: entity.Machine, Mark: options.PlayerMark.Opponent()},
		rng:      rng,
		strategy: strategy,
	}
	that.Reset()

	return that, nil
}

func (that *GameSession) ID() string {
	return that.id
}

// Board returns a copy; callers cannot reach the session's own board.
func (that *GameSession) Board() entity.Board {
	return that.board
}

// Outcome is recomputed from the board on every call.
func (that *GameSession) Outcome() entity.Outcome {
	return tictactoe.Outcome(that.board)
}

func (that *GameSession) State() State {
	return that.state
}

// CurrentPlayer is NoPlayer once the game is finished.
func (that *GameSession) CurrentPlayer() entity.PlayerKind {
	switch that.state {
	case StateAwaitingHumanMove:
		return entity.Human
	case StateAwaitingMachineMove:
		return entity.Machine
	default:
		return entity.NoPlayer
	}
}

func (that *GameSession) AvailableIndices() []int {
	return that.board.AvailableIndices()
}

func (that *GameSession) Human() entity.Player {
	return that.human
}

func (that *GameSession) Machine() entity.Player {
	return that.machine
}

func (that *GameSession) Difficulty() opponent.Difficulty {
	return that.strategy.Difficulty()
}

func (that *GameSession) Options() Options {
	return that.options
}

// SubmitHumanMove plays the human's mark on index.
func (that *GameSession) SubmitHumanMove(index int) error {
	if err := that.expectTurn(StateAwaitingHumanMove); err != nil {
		return err
	}

	if err := that.board.Place(index, that.human.Mark); err != nil {
		if errors.Is(err, apperror.ErrCellOccupied) {
			return fmt.Errorf("%w: %w", apperror.ErrIllegalMove, err)
		}
		return err
	}

	that.settle(entity.Machine)

	return nil
}

// AdvanceMachineMove asks the opponent for a move, plays it and returns the
// chosen index.
func (that *GameSession) AdvanceMachineMove() (int, error) {
	if err := that.expectTurn(StateAwaitingMachineMove); err != nil {
		return -1, err
	}

	index, err := that.strategy.Move(that.board, that.machine.Mark)
	if err != nil {
		return -1, fmt.Errorf("%s opponent failed to move: %w", that.strategy.Difficulty(), err)
	}

	if err = that.board.Place(index, that.machine.Mark); err != nil {
		return -1, fmt.Errorf("%s opponent chose an illegal cell: %w", that.strategy.Difficulty(), err)
	}

	that.settle(entity.Human)

	return index, nil
}

// Reset clears the board and goes back to the initial state. Valid in any state.
func (that *GameSession) Reset() {
	that.board.Reset()
	that.state = initialState(that.options.StartingPlayer)
}

// SetDifficulty swaps the opponent. It is refused while a game is in progress.
func (that *GameSession) SetDifficulty(difficulty opponent.Difficulty) error {
	parsed, err := opponent.ParseDifficulty(string(difficulty))
	if err != nil {
		return err
	}

	if that.state != StateFinished && !that.board.IsEmpty() {
		return apperror.ErrDifficultyLocked
	}

	strategy, err := opponent.New(parsed, that.rng)
	if err != nil {
		return fmt.Errorf("failed to build opponent: %w", err)
	}

	that.strategy = strategy
	that.options.Difficulty = parsed

	return nil
}

func (that *GameSession) expectTurn(want State) error {
	switch that.state {
	case want:
		return nil
	case StateFinished:
		return apperror.ErrGameAlreadyFinished
	default:
		return fmt.Errorf("%w: %w", apperror.ErrIllegalMove, apperror.ErrNotYourTurn)
	}
}

// settle moves to Finished on a terminal board, otherwise hands the turn to next.
func (that *GameSession) settle(next entity.PlayerKind) {
	if that.Outcome().IsFinished() {
		that.state = StateFinished
		return
	}

	that.state = awaiting(next)
}

func initialState(starting entity.PlayerKind) State {
	return awaiting(starting)
}

func awaiting(player entity.PlayerKind) State {
	if player == entity.Machine {
		return StateAwaitingMachineMove
	}

	return StateAwaitingHumanMove
}
