package mapper

import (
	"time"

	"github.com/google/uuid"

	catalogdomain "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/catalog/domain"
)

// Option is the transport-layer shape of a priced add-on.
type Option struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Service is the transport-layer representation of a catalog entry.
type Service struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	BasePrice   float64   `json:"basePrice"`
	Options     []Option  `json:"options"`
	TimeSlots   []string  `json:"timeSlots,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MutationService is the payload accepted on create and update.
type MutationService struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	BasePrice   float64          `json:"basePrice"`
	Options     []MutationOption `json:"options"`
	TimeSlots   []string         `json:"timeSlots"`
	Active      *bool            `json:"active,omitempty"`
}

// MutationOption is one option in a mutation payload. ID is optional; new
// options get a generated identifier.
type MutationOption struct {
	ID    string  `json:"id,omitempty"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// FromDomainService converts a domain catalog service to the transport shape.
func FromDomainService(service *catalogdomain.Service) Service {
	if service == nil {
		return Service{}
	}
	options := make([]Option, 0, len(service.Options))
	for _, option := range service.Options {
		options = append(options, Option{ID: option.ID.String(), Name: option.Name, Price: option.Price})
	}
	return Service{
		ID:          service.ID.String(),
		Name:        service.Name,
		Description: service.Description,
		BasePrice:   service.BasePrice,
		Options:     options,
		TimeSlots:   service.TimeSlots,
		Active:      service.Active,
		CreatedAt:   service.CreatedAt,
		UpdatedAt:   service.UpdatedAt,
	}
}

// FromDomainServices converts a listing result.
func FromDomainServices(services []*catalogdomain.Service) []Service {
	out := make([]Service, 0, len(services))
	for _, service := range services {
		out = append(out, FromDomainService(service))
	}
	return out
}

// ToDomainService converts a mutation payload to the domain shape. Unknown
// or absent option identifiers are replaced with generated ones.
func ToDomainService(payload MutationService) *catalogdomain.Service {
	options := make([]catalogdomain.Option, 0, len(payload.Options))
	for _, option := range payload.Options {
		id, err := uuid.Parse(option.ID)
		if err != nil {
			id = uuid.New()
		}
		options = append(options, catalogdomain.Option{ID: id, Name: option.Name, Price: option.Price})
	}
	active := true
	if payload.Active != nil {
		active = *payload.Active
	}
	return &catalogdomain.Service{
		ID:          uuid.New(),
		Name:        payload.Name,
		Description: payload.Description,
		BasePrice:   payload.BasePrice,
		Options:     options,
		TimeSlots:   payload.TimeSlots,
		Active:      active,
	}
}
