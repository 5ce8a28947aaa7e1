package request

import (
	"commons-dinner/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateDinnerRequest struct {
	SeasonID        uuid.UUID  `json:"season_id" binding:"required"`
	Date            string     `json:"date" binding:"required,datetime=2006-01-02"`
	MenuTitle       string     `json:"menu_title" binding:"required,max=200"`
	MenuDescription string     `json:"menu_description"`
	MenuPictureURL  *string    `json:"menu_picture_url,omitempty" binding:"omitempty,url"`
	CookingTeamID   *uuid.UUID `json:"cooking_team_id,omitempty"`
	ChefID          *uuid.UUID `json:"chef_id,omitempty"`
}

func (r CreateDinnerRequest) ToCommand() (commands.CreateDinnerRequest, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return commands.CreateDinnerRequest{}, err
	}
	return commands.CreateDinnerRequest{
		SeasonID:        r.SeasonID,
		Date:            date,
		MenuTitle:       r.MenuTitle,
		MenuDescription: r.MenuDescription,
		MenuPictureURL:  r.MenuPictureURL,
		CookingTeamID:   r.CookingTeamID,
		ChefID:          r.ChefID,
	}, nil
}

type AnnounceDinnerRequest struct {
	MenuTitle       string      `json:"menu_title" binding:"required,max=200"`
	MenuDescription string      `json:"menu_description"`
	MenuPictureURL  *string     `json:"menu_picture_url,omitempty" binding:"omitempty,url"`
	TotalCost       int64       `json:"total_cost" binding:"min=0"`
	AllergenIDs     []uuid.UUID `json:"allergen_ids"`
}

func (r AnnounceDinnerRequest) ToCommand() commands.AnnounceDinnerRequest {
	return commands.AnnounceDinnerRequest{
		MenuTitle:       r.MenuTitle,
		MenuDescription: r.MenuDescription,
		MenuPictureURL:  r.MenuPictureURL,
		TotalCost:       r.TotalCost,
		AllergenIDs:     r.AllergenIDs,
	}
}
