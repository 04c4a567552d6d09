package realestate

import (
	"strings"
	"time"

	"github.com/inmobiliaria/backend/internal/domain/shared"
)

// Client is a buyer. Like Agent it is soft-deleted through the Active flag,
// and an inactive client still holds its identity number and email.
type Client struct {
	shared.BaseEntity
	IdentityNumber   string
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	Address          string
	RegistrationDate time.Time
	Active           bool
}

// NewClient creates an active client registered now
func NewClient(identityNumber, firstName, lastName, email, phone, address string) (*Client, error) {
	c := &Client{
		BaseEntity:     shared.NewBaseEntity(),
		IdentityNumber: strings.TrimSpace(identityNumber),
		Active:         true,
	}
	c.RegistrationDate = c.CreatedAt
	if err := validateIdentityNumber(c.IdentityNumber); err != nil {
		return nil, err
	}
	if err := c.setContact(firstName, lastName, email, phone, address); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the name, contact and address fields
func (c *Client) Update(firstName, lastName, email, phone, address string) error {
	if err := c.setContact(firstName, lastName, email, phone, address); err != nil {
		return err
	}
	c.Touch()
	return nil
}

// Deactivate soft-deletes the client
func (c *Client) Deactivate() {
	c.Active = false
	c.Touch()
}

// FullName returns "first last"
func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

func (c *Client) setContact(firstName, lastName, email, phone, address string) error {
	p, err := newPerson(firstName, lastName, email, phone)
	if err != nil {
		return err
	}
	address = strings.TrimSpace(address)
	if err := optionalText("address", address, MaxAddressLength); err != nil {
		return err
	}
	c.FirstName, c.LastName, c.Email, c.Phone = p.firstName, p.lastName, p.email, p.phone
	c.Address = address
	return nil
}
