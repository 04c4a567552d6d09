package realestate

import (
	"strings"

	"github.com/inmobiliaria/backend/internal/domain/shared"
)

// Agent is a salesperson who closes sales.
// Agents are never physically removed: Deactivate clears the Active flag and the
// record keeps its identity number and email reserved.
type Agent struct {
	shared.BaseEntity
	IdentityNumber string
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	Active         bool
}

// NewAgent creates an active agent
func NewAgent(identityNumber, firstName, lastName, email, phone string) (*Agent, error) {
	a := &Agent{
		BaseEntity:     shared.NewBaseEntity(),
		IdentityNumber: strings.TrimSpace(identityNumber),
		Active:         true,
	}
	if err := validateIdentityNumber(a.IdentityNumber); err != nil {
		return nil, err
	}
	if err := a.setContact(firstName, lastName, email, phone); err != nil {
		return nil, err
	}
	return a, nil
}

// Update replaces the name and contact fields. The identity number is immutable.
func (a *Agent) Update(firstName, lastName, email, phone string) error {
	if err := a.setContact(firstName, lastName, email, phone); err != nil {
		return err
	}
	a.Touch()
	return nil
}

// Deactivate soft-deletes the agent
func (a *Agent) Deactivate() {
	a.Active = false
	a.Touch()
}

// FullName returns "first last"
func (a *Agent) FullName() string {
	return a.FirstName + " " + a.LastName
}

func (a *Agent) setContact(firstName, lastName, email, phone string) error {
	p, err := newPerson(firstName, lastName, email, phone)
	if err != nil {
		return err
	}
	a.FirstName, a.LastName, a.Email, a.Phone = p.firstName, p.lastName, p.email, p.phone
	return nil
}
