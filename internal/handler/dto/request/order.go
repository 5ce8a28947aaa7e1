package request

import (
	"commons-dinner/internal/usecase/commands"

	"github.com/google/uuid"
)

type BookOrderRequest struct {
	DinnerEventID uuid.UUID `json:"dinner_event_id" binding:"required"`
	InhabitantID  uuid.UUID `json:"inhabitant_id" binding:"required"`
	DinnerMode    string    `json:"dinner_mode" binding:"required"`
	IsGuestTicket bool      `json:"is_guest_ticket"`
}

func (r BookOrderRequest) ToCommand() commands.BookOrderRequest {
	return commands.BookOrderRequest{
		DinnerEventID: r.DinnerEventID,
		InhabitantID:  r.InhabitantID,
		DinnerMode:    r.DinnerMode,
		IsGuestTicket: r.IsGuestTicket,
	}
}

type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type ChangeDiningModeRequest struct {
	DinnerMode string `json:"dinner_mode" binding:"required"`
}

type ClaimOrderRequest struct {
	InhabitantID uuid.UUID `json:"inhabitant_id" binding:"required"`
}
