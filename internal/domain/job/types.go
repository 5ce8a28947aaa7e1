package job

import "errors"

type Type string

const (
	TypeDailyMaintenance  Type = "DAILY_MAINTENANCE"
	TypeMonthlyBilling    Type = "MONTHLY_BILLING"
	TypeHeynaboImport     Type = "HEYNABO_IMPORT"
	TypeMaintenanceImport Type = "MAINTENANCE_IMPORT"
	TypeMaintenanceExport Type = "MAINTENANCE_EXPORT"
)

var ErrInvalidType = errors.New("invalid job type")

func AllTypes() []Type {
	return []Type{TypeDailyMaintenance, TypeMonthlyBilling, TypeHeynaboImport, TypeMaintenanceImport, TypeMaintenanceExport}
}

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	for _, v := range AllTypes() {
		if v == t {
			return true
		}
	}
	return false
}

func NewType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", ErrInvalidType
	}
	return t, nil
}

type Status string

const (
	StatusRunning Status = "RUNNING"
	StatusSuccess Status = "SUCCESS"
	StatusPartial Status = "PARTIAL"
	StatusFailed  Status = "FAILED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsTerminal() bool {
	return s == StatusSuccess || s == StatusPartial || s == StatusFailed
}

const (
	TriggeredByScheduler = "SCHEDULER"
	TriggeredByManual    = "MANUAL"
)
