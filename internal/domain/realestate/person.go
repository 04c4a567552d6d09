package realestate

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/inmobiliaria/backend/internal/domain/shared"
)

// Column limits shared by the persistence schema
const (
	MaxIdentityNumberLength = 20
	MaxNameLength           = 100
	MaxEmailLength          = 150
	MaxPhoneLength          = 20
	MaxAddressLength        = 200
	MaxReferenceLength      = 50
	MaxMunicipalityLength   = 100
	MaxDepartmentLength     = 100
)

// person holds the contact fields agents and clients have in common
type person struct {
	firstName string
	lastName  string
	email     string
	phone     string
}

func newPerson(firstName, lastName, email, phone string) (person, error) {
	p := person{
		firstName: strings.TrimSpace(firstName),
		lastName:  strings.TrimSpace(lastName),
		email:     strings.TrimSpace(email),
		phone:     strings.TrimSpace(phone),
	}
	if err := requireText("first_name", p.firstName, MaxNameLength); err != nil {
		return person{}, err
	}
	if err := requireText("last_name", p.lastName, MaxNameLength); err != nil {
		return person{}, err
	}
	if err := requireText("email", p.email, MaxEmailLength); err != nil {
		return person{}, err
	}
	if _, err := mail.ParseAddress(p.email); err != nil {
		return person{}, shared.NewValidationError("email '%s' is not a valid address", p.email)
	}
	if err := optionalText("phone", p.phone, MaxPhoneLength); err != nil {
		return person{}, err
	}
	return p, nil
}

func validateIdentityNumber(identityNumber string) error {
	return requireText("identity_number", identityNumber, MaxIdentityNumberLength)
}

func requireText(field, value string, max int) error {
	if value == "" {
		return shared.NewValidationError("%s is required", field)
	}
	return optionalText(field, value, max)
}

func optionalText(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return shared.NewValidationError("%s cannot exceed %d characters", field, max)
	}
	return nil
}
