package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/inmobiliaria/backend/internal/domain/realestate"
	"github.com/shopspring/decimal"
)

// AgentModel is the persistence model for Agent
type AgentModel struct {
	BaseModel
	IdentityNumber string `gorm:"type:varchar(20);not null;uniqueIndex:uq_agents_identity_number"`
	FirstName      string `gorm:"type:varchar(100);not null"`
	LastName       string `gorm:"type:varchar(100);not null;index:idx_agents_last_name"`
	Email          string `gorm:"type:varchar(150);not null;uniqueIndex:uq_agents_email"`
	Phone          string `gorm:"type:varchar(20)"`
	Active         bool   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AgentModel) TableName() string {
	return "agents"
}

// ToDomain converts the persistence model to a domain Agent
func (m *AgentModel) ToDomain() *realestate.Agent {
	return &realestate.Agent{
		BaseEntity:     m.BaseModel.ToDomain(),
		IdentityNumber: m.IdentityNumber,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		Email:          m.Email,
		Phone:          m.Phone,
		Active:         m.Active,
	}
}

// AgentModelFromDomain creates a persistence model from a domain Agent
func AgentModelFromDomain(a *realestate.Agent) *AgentModel {
	m := &AgentModel{
		IdentityNumber: a.IdentityNumber,
		FirstName:      a.FirstName,
		LastName:       a.LastName,
		Email:          a.Email,
		Phone:          a.Phone,
		Active:         a.Active,
	}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}

// ClientModel is the persistence model for Client
type ClientModel struct {
	BaseModel
	IdentityNumber   string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_clients_identity_number"`
	FirstName        string    `gorm:"type:varchar(100);not null"`
	LastName         string    `gorm:"type:varchar(100);not null;index:idx_clients_last_name"`
	Email            string    `gorm:"type:varchar(150);not null;uniqueIndex:uq_clients_email"`
	Phone            string    `gorm:"type:varchar(20)"`
	Address          string    `gorm:"type:varchar(200)"`
	RegistrationDate time.Time `gorm:"not null"`
	Active           bool      `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client
func (m *ClientModel) ToDomain() *realestate.Client {
	return &realestate.Client{
		BaseEntity:       m.BaseModel.ToDomain(),
		IdentityNumber:   m.IdentityNumber,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		Email:            m.Email,
		Phone:            m.Phone,
		Address:          m.Address,
		RegistrationDate: m.RegistrationDate,
		Active:           m.Active,
	}
}

// ClientModelFromDomain creates a persistence model from a domain Client
func ClientModelFromDomain(c *realestate.Client) *ClientModel {
	m := &ClientModel{
		IdentityNumber:   c.IdentityNumber,
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		Email:            c.Email,
		Phone:            c.Phone,
		Address:          c.Address,
		RegistrationDate: c.RegistrationDate,
		Active:           c.Active,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// LotModel is the persistence model for Lot
type LotModel struct {
	BaseModel
	Reference        string               `gorm:"type:varchar(50);not null;uniqueIndex:uq_lots_reference"`
	Address          string               `gorm:"type:varchar(200);not null"`
	Municipality     string               `gorm:"type:varchar(100);not null;index:idx_lots_municipality"`
	Department       string               `gorm:"type:varchar(100);not null"`
	Area             decimal.Decimal      `gorm:"type:numeric(12,2);not null"`
	Price            decimal.Decimal      `gorm:"type:numeric(15,2);not null;index:idx_lots_price"`
	Description      string               `gorm:"type:text"`
	Status           realestate.LotStatus `gorm:"type:varchar(20);not null;index:idx_lots_status"`
	RegistrationDate time.Time            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (LotModel) TableName() string {
	return "lots"
}

// ToDomain converts the persistence model to a domain Lot
func (m *LotModel) ToDomain() *realestate.Lot {
	return &realestate.Lot{
		BaseEntity:       m.BaseModel.ToDomain(),
		Reference:        m.Reference,
		Address:          m.Address,
		Municipality:     m.Municipality,
		Department:       m.Department,
		Area:             m.Area,
		Price:            m.Price,
		Description:      m.Description,
		Status:           m.Status,
		RegistrationDate: m.RegistrationDate,
	}
}

// LotModelFromDomain creates a persistence model from a domain Lot
func LotModelFromDomain(l *realestate.Lot) *LotModel {
	m := &LotModel{
		Reference:        l.Reference,
		Address:          l.Address,
		Municipality:     l.Municipality,
		Department:       l.Department,
		Area:             l.Area,
		Price:            l.Price,
		Description:      l.Description,
		Status:           l.Status,
		RegistrationDate: l.RegistrationDate,
	}
	m.FromDomainBaseEntity(l.BaseEntity)
	return m
}

// SaleModel is the persistence model for Sale. A lot patched back to
// AVAILABLE after a sale can be sold again, so LotID is indexed but not unique.
type SaleModel struct {
	BaseModel
	ClientID      uuid.UUID                `gorm:"type:uuid;not null;index:idx_sales_client_id"`
	LotID         uuid.UUID                `gorm:"type:uuid;not null;index:idx_sales_lot_id"`
	AgentID       uuid.UUID                `gorm:"type:uuid;not null;index:idx_sales_agent_id"`
	SaleDate      time.Time                `gorm:"not null;index:idx_sales_sale_date"`
	FinalPrice    decimal.Decimal          `gorm:"type:numeric(15,2);not null"`
	PaymentMethod realestate.PaymentMethod `gorm:"type:varchar(20);not null"`
	Notes         string                   `gorm:"type:text"`

	Client *ClientModel `gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:RESTRICT"`
	Lot    *LotModel    `gorm:"foreignKey:LotID;references:ID;constraint:OnDelete:RESTRICT"`
	Agent  *AgentModel  `gorm:"foreignKey:AgentID;references:ID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale
func (m *SaleModel) ToDomain() *realestate.Sale {
	return &realestate.Sale{
		BaseEntity:    m.BaseModel.ToDomain(),
		ClientID:      m.ClientID,
		LotID:         m.LotID,
		AgentID:       m.AgentID,
		SaleDate:      m.SaleDate,
		FinalPrice:    m.FinalPrice,
		PaymentMethod: m.PaymentMethod,
		Notes:         m.Notes,
	}
}

// SaleModelFromDomain creates a persistence model from a domain Sale
func SaleModelFromDomain(s *realestate.Sale) *SaleModel {
	m := &SaleModel{
		ClientID:      s.ClientID,
		LotID:         s.LotID,
		AgentID:       s.AgentID,
		SaleDate:      s.SaleDate,
		FinalPrice:    s.FinalPrice,
		PaymentMethod: s.PaymentMethod,
		Notes:         s.Notes,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}

// AllModels lists the models in dependency order, for AutoMigrate in tests
// and the sqlite development mode
func AllModels() []any {
	return []any{&AgentModel{}, &ClientModel{}, &LotModel{}, &SaleModel{}}
}
