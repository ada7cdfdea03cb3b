package game

// Player identifies a side. The value doubles as the sign used in scoring.
type Player int

const (
	Human Player = -1
	Cpu   Player = 1
)

func (p Player) Sign() float64 {
	return float64(p)
}

func (p Player) Opposing() Player {
	return -p
}

// Opposing returns the other side of a two-player game.
func Opposing(p Player) Player {
	return p.Opposing()
}

func (p Player) String() string {
	switch p {
	case Human:
		return "human"
	case Cpu:
		return "cpu"
	default:
		return "none"
	}
}

// Outcome is the result of a finished game from a strategy's point of view.
type Outcome int

const (
	Win Outcome = iota
	Draw
	Lose
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Draw:
		return "draw"
	case Lose:
		return "lose"
	default:
		return "unknown"
	}
}
