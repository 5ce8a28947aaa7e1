package queries

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type OrderView struct {
	ID             uuid.UUID  `json:"id"`
	DinnerEventID  uuid.UUID  `json:"dinner_event_id"`
	DinnerDate     time.Time  `json:"dinner_date"`
	InhabitantID   uuid.UUID  `json:"inhabitant_id"`
	InhabitantName string     `json:"inhabitant_name"`
	HouseholdID    uuid.UUID  `json:"household_id"`
	BookedByUserID *uuid.UUID `json:"booked_by_user_id,omitempty"`
	TicketType     *string    `json:"ticket_type,omitempty"`
	PriceAtBooking int64      `json:"price_at_booking"`
	DinnerMode     string     `json:"dinner_mode"`
	State          string     `json:"state"`
	IsGuestTicket  bool       `json:"is_guest_ticket"`
	ReleasedAt     *time.Time `json:"released_at,omitempty"`
	ClosedAt       *time.Time `json:"closed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type OrderHistoryView struct {
	ID                uuid.UUID       `json:"id"`
	OrderID           *uuid.UUID      `json:"order_id,omitempty"`
	Action            string          `json:"action"`
	PerformedByUserID *uuid.UUID      `json:"performed_by_user_id,omitempty"`
	AuditData         json.RawMessage `json:"audit_data"`
	InhabitantID      *uuid.UUID      `json:"inhabitant_id,omitempty"`
	DinnerEventID     *uuid.UUID      `json:"dinner_event_id,omitempty"`
	SeasonID          *uuid.UUID      `json:"season_id,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

type DinnerView struct {
	ID              uuid.UUID   `json:"id"`
	Date            time.Time   `json:"date"`
	MenuTitle       string      `json:"menu_title"`
	MenuDescription string      `json:"menu_description"`
	MenuPictureURL  *string     `json:"menu_picture_url,omitempty"`
	State           string      `json:"state"`
	TotalCost       int64       `json:"total_cost"`
	ChefID          *uuid.UUID  `json:"chef_id,omitempty"`
	CookingTeamID   *uuid.UUID  `json:"cooking_team_id,omitempty"`
	CookingTeamName *string     `json:"cooking_team_name,omitempty"`
	SeasonID        *uuid.UUID  `json:"season_id,omitempty"`
	HeynaboEventID  *int64      `json:"heynabo_event_id,omitempty"`
	AllergenIDs     []uuid.UUID `json:"allergen_ids"`
	BookedCount     int         `json:"booked_count"`
	ReleasedCount   int         `json:"released_count"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type ChefView struct {
	DinnerEventID uuid.UUID  `json:"dinner_event_id"`
	ChefID        *uuid.UUID `json:"chef_id,omitempty"`
	Explicit      bool       `json:"explicit"`
}

type SeasonView struct {
	ID                                uuid.UUID         `json:"id"`
	ShortName                         string            `json:"short_name"`
	PeriodStart                       time.Time         `json:"period_start"`
	PeriodEnd                         time.Time         `json:"period_end"`
	IsActive                          bool              `json:"is_active"`
	CookingDays                       []string          `json:"cooking_days"`
	Holidays                          []DateRangeView   `json:"holidays"`
	TicketIsCancellableDaysBefore     int               `json:"ticket_is_cancellable_days_before"`
	DiningModeIsEditableMinutesBefore int               `json:"dining_mode_is_editable_minutes_before"`
	ConsecutiveCookingDays            int               `json:"consecutive_cooking_days"`
	TicketPrices                      []TicketPriceView `json:"ticket_prices"`
}

type DateRangeView struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type TicketPriceView struct {
	ID              uuid.UUID `json:"id"`
	TicketType      string    `json:"ticket_type"`
	Price           int64     `json:"price"`
	MaximumAgeLimit *int      `json:"maximum_age_limit,omitempty"`
}

type DutyView struct {
	Date     time.Time `json:"date"`
	TeamID   uuid.UUID `json:"team_id"`
	TeamName string    `json:"team_name"`
}

type TeamAllocationView struct {
	TeamID          uuid.UUID `json:"team_id"`
	TeamName        string    `json:"team_name"`
	Members         int       `json:"members"`
	TotalAllocation int       `json:"total_allocation"`
	Chefs           int       `json:"chefs"`
}

type InvoiceView struct {
	ID            uuid.UUID          `json:"id"`
	BillingPeriod string             `json:"billing_period"`
	HouseholdID   *uuid.UUID         `json:"household_id,omitempty"`
	HouseholdName string             `json:"household_name"`
	PbsID         *int64             `json:"pbs_id,omitempty"`
	Address       string             `json:"address"`
	Amount        int64              `json:"amount"`
	CutoffDate    time.Time          `json:"cutoff_date"`
	PaymentDate   time.Time          `json:"payment_date"`
	ExportedAt    *time.Time         `json:"exported_at,omitempty"`
	Transactions  []*TransactionView `json:"transactions,omitempty"`
}

type TransactionView struct {
	ID              uuid.UUID       `json:"id"`
	OrderID         *uuid.UUID      `json:"order_id,omitempty"`
	Amount          int64           `json:"amount"`
	UserEmailHandle string          `json:"user_email_handle"`
	OrderSnapshot   json.RawMessage `json:"order_snapshot"`
	UserSnapshot    json.RawMessage `json:"user_snapshot"`
	CreatedAt       time.Time       `json:"created_at"`
}

type BillingSummaryView struct {
	ID             uuid.UUID `json:"id"`
	BillingPeriod  string    `json:"billing_period"`
	ShareToken     string    `json:"share_token,omitempty"`
	TotalAmount    int64     `json:"total_amount"`
	HouseholdCount int       `json:"household_count"`
	TicketCount    int       `json:"ticket_count"`
	CutoffDate     time.Time `json:"cutoff_date"`
	PaymentDate    time.Time `json:"payment_date"`
}

type BillingPeriodView struct {
	Summary  *BillingSummaryView `json:"summary"`
	Invoices []*InvoiceView      `json:"invoices"`
}

type JobRunView struct {
	ID            uuid.UUID  `json:"id"`
	JobType       string     `json:"job_type"`
	Status        string     `json:"status"`
	StartedAt     time.Time  `json:"started_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	DurationMs    *int64     `json:"duration_ms,omitempty"`
	ResultSummary *string    `json:"result_summary,omitempty"`
	ErrorMessage  *string    `json:"error_message,omitempty"`
	TriggeredBy   string     `json:"triggered_by"`
}

type AuthorizedUserView struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}
