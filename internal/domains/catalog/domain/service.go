package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName       = errors.New("service name is required")
	ErrNegativePrice   = errors.New("price must not be negative")
	ErrEmptyOptions    = errors.New("service requires at least one option")
	ErrDuplicateSlot   = errors.New("duplicate time slot")
	ErrEmptyOptionName = errors.New("option name is required")
)

// Option is one priced add-on a customer can select when booking a service.
type Option struct {
	ID    uuid.UUID
	Name  string
	Price float64
}

// Service is a catalog entry: a bookable offering with priced options.
type Service struct {
	ID          uuid.UUID
	Name        string
	Description string
	BasePrice   float64
	Options     []Option
	TimeSlots   []string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewService validates and constructs a catalog service.
func NewService(name, description string, basePrice float64, options []Option, timeSlots []string) (*Service, error) {
	service := &Service{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		BasePrice:   basePrice,
		Options:     append([]Option(nil), options...),
		TimeSlots:   append([]string(nil), timeSlots...),
		Active:      true,
	}
	if err := service.Validate(); err != nil {
		return nil, err
	}
	return service, nil
}

// Validate enforces catalog invariants.
func (s *Service) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if s.BasePrice < 0 {
		return ErrNegativePrice
	}
	if len(s.Options) == 0 {
		return ErrEmptyOptions
	}
	for _, option := range s.Options {
		if strings.TrimSpace(option.Name) == "" {
			return ErrEmptyOptionName
		}
		if option.Price < 0 {
			return ErrNegativePrice
		}
	}
	seen := map[string]struct{}{}
	for _, slot := range s.TimeSlots {
		if _, ok := seen[slot]; ok {
			return ErrDuplicateSlot
		}
		seen[slot] = struct{}{}
	}
	return nil
}

// FindOption resolves a raw option identifier against the option set using
// a two-phase lookup: exact identity on the parsed UUID first, then a
// case-insensitive comparison against the canonical string form. Both
// phases resolve stringified identifiers (including braced and URN forms)
// to the same option.
func (s *Service) FindOption(raw string) (Option, bool) {
	raw = strings.TrimSpace(raw)
	if id, err := uuid.Parse(raw); err == nil {
		for _, option := range s.Options {
			if option.ID == id {
				return option, true
			}
		}
	}
	for _, option := range s.Options {
		if strings.EqualFold(option.ID.String(), raw) {
			return option, true
		}
	}
	return Option{}, false
}
