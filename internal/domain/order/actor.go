package order

import "github.com/google/uuid"

// Actor is who performed a transition. A nil UserID means the system did.
type Actor struct {
	UserID *uuid.UUID
}

func UserActor(id uuid.UUID) Actor {
	return Actor{UserID: &id}
}

func SystemActor() Actor {
	return Actor{}
}

func (a Actor) IsSystem() bool {
	return a.UserID == nil
}

func (a Actor) pick(user, system HistoryAction) HistoryAction {
	if a.IsSystem() {
		return system
	}
	return user
}
