package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mariusel9911/Proiect-IC-sub001/internal/domains/principals/domain"
	"github.com/mariusel9911/Proiect-IC-sub001/internal/domains/principals/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists principals in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&principalRecord{})
	}
	return repo
}

type principalRecord struct {
	ID        uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	Name      string    `gorm:"column:name"`
	Email     string    `gorm:"column:email;index"`
	Admin     bool      `gorm:"column:admin"`
	Active    bool      `gorm:"column:active"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (principalRecord) TableName() string { return "principals" }

func (r *Repository) Save(ctx context.Context, principal *domain.Principal) (*domain.Principal, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if principal == nil {
		return nil, errors.New("principal is nil")
	}
	record := principalRecord{
		ID:     principal.ID,
		Name:   principal.Name,
		Email:  principal.Email,
		Admin:  principal.Admin,
		Active: principal.Active,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":       record.Name,
				"email":      record.Email,
				"admin":      record.Admin,
				"active":     record.Active,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Principal, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record principalRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&principalRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres principal repository not configured")
	}
	return nil
}

func (r principalRecord) toDomain() *domain.Principal {
	return &domain.Principal{
		ID:     r.ID,
		Name:   r.Name,
		Email:  r.Email,
		Admin:  r.Admin,
		Active: r.Active,
	}
}
