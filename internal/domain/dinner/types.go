package dinner

import (
	"errors"
	"strings"
)

type State string

const (
	StateScheduled State = "SCHEDULED"
	StateAnnounced State = "ANNOUNCED"
	StateConsumed  State = "CONSUMED"
	StateCancelled State = "CANCELLED"
)

var ErrInvalidState = errors.New("invalid dinner state")

func (s State) String() string {
	return string(s)
}

func (s State) IsValid() bool {
	switch s {
	case StateScheduled, StateAnnounced, StateConsumed, StateCancelled:
		return true
	default:
		return false
	}
}

func (s State) IsTerminal() bool {
	return s == StateConsumed || s == StateCancelled
}

func NewState(s string) (State, error) {
	st := State(s)
	if !st.IsValid() {
		return "", ErrInvalidState
	}
	return st, nil
}

type Menu struct {
	Title       string
	Description string
	PictureURL  *string
}

func NewMenu(title, description string, pictureURL *string) (Menu, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Menu{}, ErrEmptyMenuTitle
	}
	return Menu{Title: title, Description: strings.TrimSpace(description), PictureURL: pictureURL}, nil
}
