package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ledger/internal/apperror"
)

func TestCommand_MarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		command  Command
		expected string
	}{
		{
			name:     "invite",
			command:  NewInvite(Coord{X: 0, Y: 0}, PlayerX, "terra1opponent"),
			expected: `{"invite":{"coord":{"x":0,"y":0},"host_symbol":"X","opponent":"terra1opponent"}}`,
		},
		{
			name:     "reject",
			command:  NewReject(false, "terra1host"),
			expected: `{"reject":{"as_host":false,"opponent":"terra1host"}}`,
		},
		{
			name:     "accept",
			command:  NewAccept(Coord{X: 1, Y: 1}, "terra1host"),
			expected: `{"accept":{"coord":{"x":1,"y":1},"host":"terra1host"}}`,
		},
		{
			name:     "play",
			command:  NewPlay(true, Coord{X: 0, Y: 1}, "terra1opponent"),
			expected: `{"play":{"as_host":true,"coord":{"x":0,"y":1},"opponent":"terra1opponent"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// When: the command is rendered for the contract
			data, err := json.Marshal(tt.command)

			// Then: exactly one branch is on the wire
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))

			// And: it decodes back into the same variant
			var decoded Command
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, tt.command, decoded)
		})
	}
}

func TestCommand_UnknownKind(t *testing.T) {
	t.Run("Marshal fails for an unknown kind", func(t *testing.T) {
		_, err := json.Marshal(Command{Kind: "resign"})

		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrUnknownCommand)
	})

	t.Run("Unmarshal fails for an unknown kind", func(t *testing.T) {
		var cmd Command
		err := json.Unmarshal([]byte(`{"resign":{}}`), &cmd)

		assert.ErrorIs(t, err, apperror.ErrUnknownCommand)
	})

	t.Run("Unmarshal fails for two branches", func(t *testing.T) {
		var cmd Command
		err := json.Unmarshal([]byte(`{"reject":{},"play":{}}`), &cmd)

		assert.ErrorIs(t, err, apperror.ErrUnknownCommand)
	})
}

func TestCommand_Counterpart(t *testing.T) {
	counterpart, err := NewAccept(Coord{}, "terra1host").Counterpart()
	require.NoError(t, err)
	assert.Equal(t, "terra1host", counterpart)

	_, err = Command{Kind: "resign"}.Counterpart()
	assert.ErrorIs(t, err, apperror.ErrUnknownCommand)
}

func TestQuery_Message(t *testing.T) {
	t.Run("Empty filter lists all games", func(t *testing.T) {
		data, err := AllGames().Message()

		require.NoError(t, err)
		assert.JSONEq(t, `{"games":{}}`, string(data))
	})

	t.Run("Key filter", func(t *testing.T) {
		data, err := GameByKey("terra1host", "terra1opponent").Message()

		require.NoError(t, err)
		assert.JSONEq(t, `{"games":{"key":{"host":"terra1host","opponent":"terra1opponent"}}}`, string(data))
	})

	t.Run("Status filter", func(t *testing.T) {
		data, err := GamesByStatus(StatusPlaying).Message()

		require.NoError(t, err)
		assert.JSONEq(t, `{"games":{"status":"PLAYING"}}`, string(data))
	})
}

func TestQuery_Matches(t *testing.T) {
	match := Match{Host: "terra1host", Opponent: "terra1opponent", Game: Game{Status: StatusInvited}}

	assert.True(t, AllGames().Matches(match))
	assert.True(t, GameByKey("terra1host", "terra1opponent").Matches(match))
	assert.False(t, GameByKey("terra1opponent", "terra1host").Matches(match))
	assert.True(t, GamesByStatus(StatusInvited).Matches(match))
	assert.False(t, GamesByStatus(StatusPlaying).Matches(match))
}
