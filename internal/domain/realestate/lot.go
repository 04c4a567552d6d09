package realestate

import (
	"strings"
	"time"

	"github.com/inmobiliaria/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// LotStatus represents where a lot is in its sales lifecycle
type LotStatus string

const (
	LotStatusAvailable LotStatus = "AVAILABLE"
	LotStatusReserved  LotStatus = "RESERVED"
	LotStatusSold      LotStatus = "SOLD"
)

var upper = cases.Upper(language.Und)

// AllLotStatuses returns every valid lot status
func AllLotStatuses() []LotStatus {
	return []LotStatus{LotStatusAvailable, LotStatusReserved, LotStatusSold}
}

// IsValid checks if the status is one of the known values
func (s LotStatus) IsValid() bool {
	switch s {
	case LotStatusAvailable, LotStatusReserved, LotStatusSold:
		return true
	}
	return false
}

// String returns the string representation of LotStatus
func (s LotStatus) String() string {
	return string(s)
}

// ParseLotStatus matches text against the status enum ignoring case
func ParseLotStatus(text string) (LotStatus, error) {
	status := LotStatus(upper.String(strings.TrimSpace(text)))
	if !status.IsValid() {
		return "", shared.NewValidationError("invalid lot status '%s', expected one of AVAILABLE, RESERVED, SOLD", text)
	}
	return status, nil
}

// Lot is a sellable parcel of land
type Lot struct {
	shared.BaseEntity
	Reference        string
	Address          string
	Municipality     string
	Department       string
	Area             decimal.Decimal
	Price            decimal.Decimal
	Description      string
	Status           LotStatus
	RegistrationDate time.Time
}

// LotDetails holds the mutable descriptive fields of a lot
type LotDetails struct {
	Address      string
	Municipality string
	Department   string
	Area         decimal.Decimal
	Price        decimal.Decimal
	Description  string
}

// NewLot registers a lot. An empty status defaults to AVAILABLE.
func NewLot(reference string, details LotDetails, status LotStatus) (*Lot, error) {
	reference = strings.TrimSpace(reference)
	if err := requireText("reference", reference, MaxReferenceLength); err != nil {
		return nil, err
	}
	if status == "" {
		status = LotStatusAvailable
	}
	if !status.IsValid() {
		return nil, shared.NewValidationError("invalid lot status '%s'", status)
	}

	l := &Lot{
		BaseEntity: shared.NewBaseEntity(),
		Reference:  reference,
		Status:     status,
	}
	l.RegistrationDate = l.CreatedAt
	if err := l.setDetails(details); err != nil {
		return nil, err
	}
	return l, nil
}

// Update replaces the descriptive fields. The reference is immutable and the
// status only changes through the LotStateMachine.
func (l *Lot) Update(details LotDetails) error {
	if err := l.setDetails(details); err != nil {
		return err
	}
	l.Touch()
	return nil
}

func (l *Lot) setDetails(d LotDetails) error {
	d.Address = strings.TrimSpace(d.Address)
	d.Municipality = strings.TrimSpace(d.Municipality)
	d.Department = strings.TrimSpace(d.Department)
	d.Description = strings.TrimSpace(d.Description)

	if err := requireText("address", d.Address, MaxAddressLength); err != nil {
		return err
	}
	if err := requireText("municipality", d.Municipality, MaxMunicipalityLength); err != nil {
		return err
	}
	if err := requireText("department", d.Department, MaxDepartmentLength); err != nil {
		return err
	}
	if !d.Area.IsPositive() {
		return shared.NewValidationError("area must be positive")
	}
	if !d.Price.IsPositive() {
		return shared.NewValidationError("price must be positive")
	}

	l.Address = d.Address
	l.Municipality = d.Municipality
	l.Department = d.Department
	l.Area = d.Area.Round(2)
	l.Price = d.Price.Round(2)
	l.Description = d.Description
	return nil
}
