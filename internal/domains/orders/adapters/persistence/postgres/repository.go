package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/domain"
	"github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{})
	}
	return repo
}

// lineItemRecord is the JSONB shape of one frozen line item.
type lineItemRecord struct {
	OptionID  uuid.UUID `json:"optionId"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unitPrice"`
	Quantity  int       `json:"quantity"`
}

type captureRecord struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type paymentDetailsRecord struct {
	TransactionID  string         `json:"transactionId,omitempty"`
	Timestamp      time.Time      `json:"timestamp,omitempty"`
	GatewayOrderID string         `json:"gatewayOrderId,omitempty"`
	GatewayPayerID string         `json:"gatewayPayerId,omitempty"`
	Capture        *captureRecord `json:"gatewayCapture,omitempty"`
}

// orderRecord maps the order aggregate to a relational table. Line items
// and payment details are stored as JSONB documents.
type orderRecord struct {
	ID             uuid.UUID             `gorm:"primaryKey;column:id;type:uuid"`
	OwnerID        uuid.UUID             `gorm:"column:owner_id;type:uuid;index:idx_orders_owner_fulfillment"`
	ServiceID      uuid.UUID             `gorm:"column:service_id;type:uuid;index"`
	LineItems      []lineItemRecord      `gorm:"column:line_items;type:jsonb;serializer:json"`
	TotalAmount    float64               `gorm:"column:total_amount"`
	Tax            float64               `gorm:"column:tax"`
	GrandTotal     float64               `gorm:"column:grand_total"`
	Fulfillment    string                `gorm:"column:fulfillment_status;type:varchar(32);index:idx_orders_owner_fulfillment"`
	Payment        string                `gorm:"column:payment_status;type:varchar(32);index"`
	Method         string                `gorm:"column:payment_method;type:varchar(32)"`
	PaymentDetails *paymentDetailsRecord `gorm:"column:payment_details;type:jsonb;serializer:json"`
	ScheduledDate  time.Time             `gorm:"column:scheduled_date"`
	TimeSlot       string                `gorm:"column:time_slot"`
	Address        string                `gorm:"column:address"`
	Version        int64                 `gorm:"column:version"`
	CreatedAt      time.Time             `gorm:"column:created_at;index"`
	UpdatedAt      time.Time             `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Create inserts a new order at version 1.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	record.Version = 1
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// Update writes the mutable columns (statuses, payment details) guarded by
// a version compare-and-swap. Line items and pricing are never touched.
func (r *Repository) Update(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	result := r.db.WithContext(ctx).
		Model(&orderRecord{}).
		Where("id = ? AND version = ?", record.ID, order.Version).
		Updates(map[string]any{
			"fulfillment_status": record.Fulfillment,
			"payment_status":     record.Payment,
			"payment_details":    record.PaymentDetails,
			"version":            order.Version + 1,
			"updated_at":         gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, order.ID); err != nil {
			return nil, err
		}
		return nil, ports.ErrConflict
	}
	return r.GetByID(ctx, order.ID)
}

// GetByID fetches an order by identifier.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Delete removes an order by identifier.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&orderRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns a filtered page of orders, newest first, plus the total count.
func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Order, int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, 0, err
	}
	query := r.db.WithContext(ctx).Model(&orderRecord{})
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.Status != nil {
		query = query.Where("fulfillment_status = ?", string(*filter.Status))
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	var records []orderRecord
	if err := query.Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, 0, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, total, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	items := make([]lineItemRecord, 0, len(order.LineItems))
	for _, item := range order.LineItems {
		items = append(items, lineItemRecord{
			OptionID:  item.OptionID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	record := orderRecord{
		ID:            order.ID,
		OwnerID:       order.OwnerID,
		ServiceID:     order.ServiceID,
		LineItems:     items,
		TotalAmount:   order.Pricing.TotalAmount,
		Tax:           order.Pricing.Tax,
		GrandTotal:    order.Pricing.GrandTotal,
		Fulfillment:   string(order.Fulfillment),
		Payment:       string(order.Payment),
		Method:        string(order.Method),
		ScheduledDate: order.Schedule.ScheduledDate,
		TimeSlot:      order.Schedule.TimeSlot,
		Address:       order.Schedule.Address,
		Version:       order.Version,
	}
	if order.Details != nil {
		details := &paymentDetailsRecord{
			TransactionID:  order.Details.TransactionID,
			Timestamp:      order.Details.Timestamp,
			GatewayOrderID: order.Details.GatewayOrderID,
			GatewayPayerID: order.Details.GatewayPayerID,
		}
		if order.Details.Capture != nil {
			details.Capture = &captureRecord{ID: order.Details.Capture.ID, Status: order.Details.Capture.Status}
		}
		record.PaymentDetails = details
	}
	return record
}

func (r orderRecord) toDomain() *domain.Order {
	items := make([]domain.LineItem, 0, len(r.LineItems))
	for _, item := range r.LineItems {
		items = append(items, domain.LineItem{
			OptionID:  item.OptionID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	order := &domain.Order{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		ServiceID:   r.ServiceID,
		LineItems:   items,
		Pricing:     domain.Pricing{TotalAmount: r.TotalAmount, Tax: r.Tax, GrandTotal: r.GrandTotal},
		Fulfillment: domain.FulfillmentStatus(r.Fulfillment),
		Payment:     domain.PaymentStatus(r.Payment),
		Method:      domain.PaymentMethod(r.Method),
		Schedule:    domain.Schedule{ScheduledDate: r.ScheduledDate, TimeSlot: r.TimeSlot, Address: r.Address},
		Version:     r.Version,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.PaymentDetails != nil {
		details := &domain.PaymentDetails{
			TransactionID:  r.PaymentDetails.TransactionID,
			Timestamp:      r.PaymentDetails.Timestamp,
			GatewayOrderID: r.PaymentDetails.GatewayOrderID,
			GatewayPayerID: r.PaymentDetails.GatewayPayerID,
		}
		if r.PaymentDetails.Capture != nil {
			details.Capture = &domain.GatewayCapture{ID: r.PaymentDetails.Capture.ID, Status: r.PaymentDetails.Capture.Status}
		}
		order.Details = details
	}
	return order
}
