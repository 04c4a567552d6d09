package realestate

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inmobiliaria/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how the buyer pays for a lot
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodCredit   PaymentMethod = "CREDIT"
	PaymentMethodFinanced PaymentMethod = "FINANCED"
)

// IsValid checks if the payment method is one of the known values
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCredit, PaymentMethodFinanced:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// ParsePaymentMethod matches text against the payment methods ignoring case
func ParsePaymentMethod(text string) (PaymentMethod, error) {
	m := PaymentMethod(upper.String(strings.TrimSpace(text)))
	if !m.IsValid() {
		return "", shared.NewValidationError("invalid payment method '%s', expected one of CASH, CREDIT, FINANCED", text)
	}
	return m, nil
}

// Sale binds one client, one lot and one agent.
// Sales are only created and removed by the sales coordinator; the notes are
// the only field that changes afterwards.
type Sale struct {
	shared.BaseEntity
	ClientID      uuid.UUID
	LotID         uuid.UUID
	AgentID       uuid.UUID
	SaleDate      time.Time
	FinalPrice    decimal.Decimal
	PaymentMethod PaymentMethod
	Notes         string
}

// NewSale creates a sale dated now
func NewSale(clientID, lotID, agentID uuid.UUID, finalPrice decimal.Decimal, method PaymentMethod, notes string) (*Sale, error) {
	if clientID == uuid.Nil || lotID == uuid.Nil || agentID == uuid.Nil {
		return nil, shared.NewValidationError("client, lot and agent are required")
	}
	if !finalPrice.IsPositive() {
		return nil, shared.NewValidationError("final price must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewValidationError("invalid payment method '%s'", method)
	}

	s := &Sale{
		BaseEntity:    shared.NewBaseEntity(),
		ClientID:      clientID,
		LotID:         lotID,
		AgentID:       agentID,
		FinalPrice:    finalPrice.Round(2),
		PaymentMethod: method,
		Notes:         strings.TrimSpace(notes),
	}
	s.SaleDate = s.CreatedAt
	return s, nil
}

// UpdateNotes replaces the free-text notes
func (s *Sale) UpdateNotes(notes string) {
	s.Notes = strings.TrimSpace(notes)
	s.Touch()
}
