package household

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyAddress    = errors.New("household address cannot be empty")
	ErrEmptyName       = errors.New("inhabitant name cannot be empty")
	ErrInvalidResident = errors.New("move-out date is before move-in date")
)

type Household struct {
	id        uuid.UUID
	heynaboID int64
	pbsID     *int64
	name      string
	address   string
	createdAt time.Time
	updatedAt time.Time
}

func NewHousehold(heynaboID int64, pbsID *int64, name, address string, now time.Time) (*Household, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, ErrEmptyAddress
	}
	return &Household{
		id:        uuid.New(),
		heynaboID: heynaboID,
		pbsID:     pbsID,
		name:      strings.TrimSpace(name),
		address:   address,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructHousehold(id uuid.UUID, heynaboID int64, pbsID *int64, name, address string, createdAt, updatedAt time.Time) *Household {
	return &Household{
		id:        id,
		heynaboID: heynaboID,
		pbsID:     pbsID,
		name:      name,
		address:   address,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Refresh applies imported values and reports whether anything changed
func (h *Household) Refresh(pbsID *int64, name, address string, now time.Time) (bool, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return false, ErrEmptyAddress
	}
	name = strings.TrimSpace(name)
	changed := h.name != name || h.address != address || !sameInt64(h.pbsID, pbsID)
	if !changed {
		return false, nil
	}
	h.name = name
	h.address = address
	h.pbsID = pbsID
	h.updatedAt = now
	return true, nil
}

func (h *Household) ID() uuid.UUID        { return h.id }
func (h *Household) HeynaboID() int64     { return h.heynaboID }
func (h *Household) PbsID() *int64        { return h.pbsID }
func (h *Household) Name() string         { return h.name }
func (h *Household) Address() string      { return h.address }
func (h *Household) CreatedAt() time.Time { return h.createdAt }
func (h *Household) UpdatedAt() time.Time { return h.updatedAt }

type Inhabitant struct {
	id          uuid.UUID
	householdID uuid.UUID
	heynaboID   *int64
	userID      *uuid.UUID
	name        string
	lastName    string
	birthDate   *time.Time
	moveInDate  *time.Time
	moveOutDate *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

type InhabitantDetails struct {
	HeynaboID   *int64
	UserID      *uuid.UUID
	Name        string
	LastName    string
	BirthDate   *time.Time
	MoveInDate  *time.Time
	MoveOutDate *time.Time
}

func (d InhabitantDetails) validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	if d.MoveInDate != nil && d.MoveOutDate != nil && d.MoveOutDate.Before(*d.MoveInDate) {
		return ErrInvalidResident
	}
	return nil
}

func NewInhabitant(householdID uuid.UUID, d InhabitantDetails, now time.Time) (*Inhabitant, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	i := &Inhabitant{id: uuid.New(), householdID: householdID, createdAt: now}
	i.apply(d, now)
	return i, nil
}

func ReconstructInhabitant(id, householdID uuid.UUID, d InhabitantDetails, createdAt, updatedAt time.Time) *Inhabitant {
	i := &Inhabitant{id: id, householdID: householdID, createdAt: createdAt}
	i.apply(d, updatedAt)
	return i
}

// Refresh replaces the imported details, keeping identity and household link
func (i *Inhabitant) Refresh(d InhabitantDetails, now time.Time) error {
	if err := d.validate(); err != nil {
		return err
	}
	i.apply(d, now)
	return nil
}

func (i *Inhabitant) apply(d InhabitantDetails, now time.Time) {
	i.heynaboID = d.HeynaboID
	i.userID = d.UserID
	i.name = strings.TrimSpace(d.Name)
	i.lastName = strings.TrimSpace(d.LastName)
	i.birthDate = d.BirthDate
	i.moveInDate = d.MoveInDate
	i.moveOutDate = d.MoveOutDate
	i.updatedAt = now
}

// IsResidentAt reports whether the inhabitant lives in the household on the given date
func (i *Inhabitant) IsResidentAt(date time.Time) bool {
	if i.moveInDate != nil && date.Before(*i.moveInDate) {
		return false
	}
	if i.moveOutDate != nil && date.After(*i.moveOutDate) {
		return false
	}
	return true
}

func (i *Inhabitant) ID() uuid.UUID           { return i.id }
func (i *Inhabitant) HouseholdID() uuid.UUID  { return i.householdID }
func (i *Inhabitant) HeynaboID() *int64       { return i.heynaboID }
func (i *Inhabitant) UserID() *uuid.UUID      { return i.userID }
func (i *Inhabitant) Name() string            { return i.name }
func (i *Inhabitant) LastName() string        { return i.lastName }
func (i *Inhabitant) BirthDate() *time.Time   { return i.birthDate }
func (i *Inhabitant) MoveInDate() *time.Time  { return i.moveInDate }
func (i *Inhabitant) MoveOutDate() *time.Time { return i.moveOutDate }
func (i *Inhabitant) CreatedAt() time.Time    { return i.createdAt }
func (i *Inhabitant) UpdatedAt() time.Time    { return i.updatedAt }

func sameInt64(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
