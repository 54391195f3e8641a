package entity

import (
	"encoding/json"
	"fmt"
)

type Symbol string

const (
	PlayerX Symbol = "X"
	PlayerO Symbol = "O"

	EmptyCell Symbol = ""
)

func (that Symbol) IsValid() bool {
	return that == PlayerX || that == PlayerO
}

// Opposite returns the other player's symbol.
func (that Symbol) Opposite() Symbol {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

type Status string

const (
	StatusInvited   Status = "INVITED"
	StatusPlaying   Status = "PLAYING"
	StatusCompleted Status = "COMPLETED"
	StatusRejected  Status = "REJECTED"
)

func (that Status) IsValid() bool {
	switch that {
	case StatusInvited, StatusPlaying, StatusCompleted, StatusRejected:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further command can change the game.
func (that Status) IsTerminal() bool {
	return that == StatusCompleted || that == StatusRejected
}

const BoardSize = 3

type Coord struct {
	X uint8 `json:"x"`
	Y uint8 `json:"y"`
}

func (that Coord) IsValid() bool {
	return that.X < BoardSize && that.Y < BoardSize
}

func (that Coord) String() string {
	return fmt.Sprintf("(%d,%d)", that.X, that.Y)
}

// Board is indexed as board[x][y], the layout the contract stores.
type Board [BoardSize][BoardSize]Symbol

func (that *Board) At(coord Coord) Symbol {
	return that[coord.X][coord.Y]
}

func (that *Board) Set(coord Coord, symbol Symbol) {
	that[coord.X][coord.Y] = symbol
}

func (that Board) MarshalJSON() ([]byte, error) {
	rows := make([][]*Symbol, BoardSize)
	for x := range that {
		rows[x] = make([]*Symbol, BoardSize)
		for y := range that[x] {
			if that[x][y] != EmptyCell {
				cell := that[x][y]
				rows[x][y] = &cell
			}
		}
	}

	return json.Marshal(rows)
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var rows [][]*Symbol
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	if len(rows) != BoardSize {
		return fmt.Errorf("board must have %d rows, got %d", BoardSize, len(rows))
	}

	var board Board
	for x, row := range rows {
		if len(row) != BoardSize {
			return fmt.Errorf("board row %d must have %d cells, got %d", x, BoardSize, len(row))
		}
		for y, cell := range row {
			if cell != nil {
				board[x][y] = *cell
			}
		}
	}

	*that = board
	return nil
}

// Game is a read-only snapshot of the record the contract keeps for a (host, opponent) pair.
type Game struct {
	Board       Board   `json:"board"`
	HostSymbol  Symbol  `json:"host_symbol"`
	PlayerRound Symbol  `json:"player_round"`
	Prize       Coins   `json:"prize"`
	Status      Status  `json:"status"`
	Winner      *Symbol `json:"winner,omitempty"`
}

func (that *Game) IsFinished() bool {
	return that.Status.IsTerminal()
}

func (that *Game) IsInvited() bool {
	return that.Status == StatusInvited
}

func (that *Game) IsPlaying() bool {
	return that.Status == StatusPlaying
}

func (that *Game) OpponentSymbol() Symbol {
	return that.HostSymbol.Opposite()
}

// IsHostRound reports whether the host is the side expected to act.
func (that *Game) IsHostRound() bool {
	return that.PlayerRound == that.HostSymbol
}

// Clone returns a deep copy, so a provisional board never aliases the fetched record.
func (that *Game) Clone() *Game {
	clone := *that
	clone.Prize = append(Coins(nil), that.Prize...)
	if that.Winner != nil {
		winner := *that.Winner
		clone.Winner = &winner
	}

	return &clone
}

// GameKey identifies a game; there is no numeric id.
type GameKey struct {
	Host     string `json:"host"`
	Opponent string `json:"opponent"`
}

func (that GameKey) String() string {
	return that.Host + "/" + that.Opponent
}

// Other returns the counterpart of address in the game, or "" if address is not a participant.
func (that GameKey) Other(address string) string {
	switch address {
	case that.Host:
		return that.Opponent
	case that.Opponent:
		return that.Host
	default:
		return ""
	}
}

type Match struct {
	Game     Game   `json:"game"`
	Host     string `json:"host,omitempty"`
	Opponent string `json:"opponent,omitempty"`
}

func (that *Match) Key() GameKey {
	return GameKey{Host: that.Host, Opponent: that.Opponent}
}
