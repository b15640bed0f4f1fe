package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyName    = errors.New("principal name is required")
	ErrInvalidEmail = errors.New("email must contain '@'")
)

// Principal is an authenticated identity: a customer, provider, or admin.
// The Admin flag is authoritative only when freshly read from persistence.
type Principal struct {
	ID     uuid.UUID
	Name   string
	Email  string
	Admin  bool
	Active bool
}

// NewPrincipal builds a principal ensuring required invariants.
func NewPrincipal(name, email string, admin bool) (*Principal, error) {
	principal := &Principal{ID: uuid.New(), Admin: admin, Active: true}
	if err := principal.UpdateProfile(name, email); err != nil {
		return nil, err
	}
	return principal, nil
}

// UpdateProfile applies and validates the profile fields.
func (p *Principal) UpdateProfile(name, email string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	email = strings.TrimSpace(email)
	if email != "" && !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	p.Name = name
	p.Email = email
	return nil
}

// Validate re-applies core invariants for persistence.
func (p *Principal) Validate() error {
	return p.UpdateProfile(p.Name, p.Email)
}
