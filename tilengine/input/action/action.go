package action

import "fmt"

// Input identifies one of the arcade style inputs of a player. The player
// number is stored in bits 5 and up, so P2|Left selects player 2's left
// direction.
type Input int

const (
	None Input = iota
	Up
	Down
	Left
	Right
	Button1
	Button2
	Button3
	Button4
	Button5
	Button6
	Start
	Quit
	CRT
	Snapshot

	// Count is the number of inputs per player
	Count
)

// Button aliases
const (
	A = Button1
	B = Button2
	C = Button3
	D = Button4
	E = Button5
	F = Button6
)

// Player selects the player an input belongs to.
type Player int

const (
	Player1 Player = iota
	Player2
	Player3
	Player4

	MaxPlayers = 4
)

const playerShift = 5

// Player selectors, to be or'ed with an input
const (
	P1 Input = Input(Player1) << playerShift
	P2 Input = Input(Player2) << playerShift
	P3 Input = Input(Player3) << playerShift
	P4 Input = Input(Player4) << playerShift
)

// For returns the input in of player p.
func For(p Player, in Input) Input {
	return in.Base() | Input(p)<<playerShift
}

// Player returns the player encoded in the input.
func (in Input) Player() Player {
	return Player(in >> playerShift)
}

// Base strips the player selector.
func (in Input) Base() Input {
	return in & (1<<playerShift - 1)
}

var names = [...]string{
	None:     "none",
	Up:       "up",
	Down:     "down",
	Left:     "left",
	Right:    "right",
	Button1:  "button1",
	Button2:  "button2",
	Button3:  "button3",
	Button4:  "button4",
	Button5:  "button5",
	Button6:  "button6",
	Start:    "start",
	Quit:     "quit",
	CRT:      "crt",
	Snapshot: "snapshot",
}

func (in Input) String() string {
	base := in.Base()
	if base < 0 || base >= Count {
		return fmt.Sprintf("input(%d)", int(in))
	}
	if p := in.Player(); p != Player1 {
		return fmt.Sprintf("p%d.%s", int(p)+1, names[base])
	}
	return names[base]
}

// Parse returns the input named s, as printed by String without the player
// prefix.
func Parse(s string) (Input, bool) {
	for i, name := range names {
		if name == s {
			return Input(i), true
		}
	}
	return None, false
}

// System reports whether the input controls the window rather than the game.
func (in Input) System() bool {
	base := in.Base()
	return base == Quit || base == CRT || base == Snapshot
}
