package entity

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ledger/internal/apperror"
)

type CommandKind string

const (
	KindInvite CommandKind = "invite"
	KindReject CommandKind = "reject"
	KindAccept CommandKind = "accept"
	KindPlay   CommandKind = "play"
)

type Invite struct {
	Coord      Coord  `json:"coord"`
	HostSymbol Symbol `json:"host_symbol"`
	Opponent   string `json:"opponent"`
}

type Reject struct {
	AsHost   bool   `json:"as_host"`
	Opponent string `json:"opponent"`
}

type Accept struct {
	Coord Coord  `json:"coord"`
	Host  string `json:"host"`
}

type Play struct {
	AsHost   bool   `json:"as_host"`
	Coord    Coord  `json:"coord"`
	Opponent string `json:"opponent"`
}

// Command is a single state-changing request for the contract. Exactly one payload is set,
// the one named by Kind.
type Command struct {
	Kind CommandKind

	Invite *Invite
	Reject *Reject
	Accept *Accept
	Play   *Play
}

func NewInvite(coord Coord, hostSymbol Symbol, opponent string) Command {
	return Command{Kind: KindInvite, Invite: &Invite{Coord: coord, HostSymbol: hostSymbol, Opponent: opponent}}
}

func NewReject(asHost bool, opponent string) Command {
	return Command{Kind: KindReject, Reject: &Reject{AsHost: asHost, Opponent: opponent}}
}

func NewAccept(coord Coord, host string) Command {
	return Command{Kind: KindAccept, Accept: &Accept{Coord: coord, Host: host}}
}

func NewPlay(asHost bool, coord Coord, opponent string) Command {
	return Command{Kind: KindPlay, Play: &Play{AsHost: asHost, Coord: coord, Opponent: opponent}}
}

// Counterpart returns the address the command names as the other party.
func (that Command) Counterpart() (string, error) {
	switch that.Kind {
	case KindInvite:
		return that.Invite.Opponent, nil
	case KindReject:
		return that.Reject.Opponent, nil
	case KindAccept:
		return that.Accept.Host, nil
	case KindPlay:
		return that.Play.Opponent, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrUnknownCommand, that.Kind)
	}
}

func (that Command) payload() (any, error) {
	switch that.Kind {
	case KindInvite:
		return that.Invite, nil
	case KindReject:
		return that.Reject, nil
	case KindAccept:
		return that.Accept, nil
	case KindPlay:
		return that.Play, nil
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownCommand, that.Kind)
	}
}

// MarshalJSON renders the contract's execute message, e.g. {"play":{"as_host":true,...}}.
func (that Command) MarshalJSON() ([]byte, error) {
	payload, err := that.payload()
	if err != nil {
		return nil, err
	}

	return json.Marshal(map[CommandKind]any{that.Kind: payload})
}

func (that *Command) UnmarshalJSON(data []byte) error {
	var raw map[CommandKind]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal command: %w", err)
	}

	if len(raw) != 1 {
		return fmt.Errorf("%w: expected exactly one command, got %d", apperror.ErrUnknownCommand, len(raw))
	}

	var cmd Command
	for kind, body := range raw {
		cmd.Kind = kind

		var target any
		switch kind {
		case KindInvite:
			cmd.Invite = &Invite{}
			target = cmd.Invite
		case KindReject:
			cmd.Reject = &Reject{}
			target = cmd.Reject
		case KindAccept:
			cmd.Accept = &Accept{}
			target = cmd.Accept
		case KindPlay:
			cmd.Play = &Play{}
			target = cmd.Play
		default:
			return fmt.Errorf("%w: %q", apperror.ErrUnknownCommand, kind)
		}

		if err := json.Unmarshal(body, target); err != nil {
			return fmt.Errorf("failed to unmarshal %s command: %w", kind, err)
		}
	}

	*that = cmd
	return nil
}
