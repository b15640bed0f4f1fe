package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mariusel9911/Proiect-IC-sub001/internal/domains/catalog/domain"
	"github.com/mariusel9911/Proiect-IC-sub001/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists catalog services in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&serviceRecord{})
	}
	return repo
}

type optionRecord struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Price float64   `json:"price"`
}

// serviceRecord maps the catalog service to a relational table. Options are
// a JSONB document, time slots a native text array.
type serviceRecord struct {
	ID          uuid.UUID      `gorm:"primaryKey;column:id;type:uuid"`
	Name        string         `gorm:"column:name;index"`
	Description string         `gorm:"column:description"`
	BasePrice   float64        `gorm:"column:base_price"`
	Options     []optionRecord `gorm:"column:options;type:jsonb;serializer:json"`
	TimeSlots   pq.StringArray `gorm:"column:time_slots;type:text[]"`
	Active      bool           `gorm:"column:active;index"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (serviceRecord) TableName() string { return "services" }

// Save inserts or updates a catalog service.
func (r *Repository) Save(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if service == nil {
		return nil, errors.New("service is nil")
	}
	record := toRecord(service)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":        record.Name,
				"description": record.Description,
				"base_price":  record.BasePrice,
				"options":     record.Options,
				"time_slots":  record.TimeSlots,
				"active":      record.Active,
				"updated_at":  gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a catalog service by identifier.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record serviceRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Delete removes a catalog service by identifier.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&serviceRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns all catalog services.
func (r *Repository) List(ctx context.Context) ([]*domain.Service, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []serviceRecord
	if err := r.db.WithContext(ctx).Order("name").Find(&records).Error; err != nil {
		return nil, err
	}
	services := make([]*domain.Service, 0, len(records))
	for i := range records {
		services = append(services, records[i].toDomain())
	}
	return services, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres catalog repository not configured")
	}
	return nil
}

func toRecord(service *domain.Service) serviceRecord {
	options := make([]optionRecord, 0, len(service.Options))
	for _, option := range service.Options {
		options = append(options, optionRecord{ID: option.ID, Name: option.Name, Price: option.Price})
	}
	return serviceRecord{
		ID:          service.ID,
		Name:        service.Name,
		Description: service.Description,
		BasePrice:   service.BasePrice,
		Options:     options,
		TimeSlots:   pq.StringArray(service.TimeSlots),
		Active:      service.Active,
	}
}

func (r serviceRecord) toDomain() *domain.Service {
	options := make([]domain.Option, 0, len(r.Options))
	for _, option := range r.Options {
		options = append(options, domain.Option{ID: option.ID, Name: option.Name, Price: option.Price})
	}
	return &domain.Service{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		BasePrice:   r.BasePrice,
		Options:     options,
		TimeSlots:   []string(r.TimeSlots),
		Active:      r.Active,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
