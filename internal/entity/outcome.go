package entity

// OutcomeStatus classifies a board.
type OutcomeStatus string

const (
	StatusOngoing OutcomeStatus = "ongoing"
	StatusWin     OutcomeStatus = "win"
	StatusTie     OutcomeStatus = "tie"
)

// Outcome is derived from a Board and never stored on its own.
// Winner is set only when Status is StatusWin.
type Outcome struct {
	Status OutcomeStatus `json:"status"`
	Winner Cell          `json:"winner,omitempty"`
}

var (
	Ongoing = Outcome{Status: StatusOngoing}
	Tie     = Outcome{Status: StatusTie}
)

func Win(mark Cell) Outcome {
	return Outcome{Status: StatusWin, Winner: mark}
}

func (that Outcome) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that Outcome) IsFinished() bool {
	return that.Status == StatusWin || that.Status == StatusTie
}
