package entity

import "encoding/json"

// Query filters the games the contract returns. The zero value lists every game.
type Query struct {
	Key    *GameKey `json:"key,omitempty"`
	Status Status   `json:"status,omitempty"`
}

func AllGames() Query {
	return Query{}
}

func GameByKey(host, opponent string) Query {
	return Query{Key: &GameKey{Host: host, Opponent: opponent}}
}

func GamesByStatus(status Status) Query {
	return Query{Status: status}
}

// Message renders the contract query message {"games": <filter>}.
func (that Query) Message() ([]byte, error) {
	return json.Marshal(struct {
		Games Query `json:"games"`
	}{Games: that})
}

// Matches applies the filter locally, with the contract's semantics.
func (that Query) Matches(match Match) bool {
	if that.Key != nil && (match.Host != that.Key.Host || match.Opponent != that.Key.Opponent) {
		return false
	}

	if that.Status != "" && match.Game.Status != that.Status {
		return false
	}

	return true
}
