package migrations

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&orderRecord{},
		&serviceRecord{},
		&principalRecord{},
	)
}

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID             uuid.UUID        `gorm:"primaryKey;column:id;type:uuid"`
	OwnerID        uuid.UUID        `gorm:"column:owner_id;type:uuid;index:idx_orders_owner_fulfillment"`
	ServiceID      uuid.UUID        `gorm:"column:service_id;type:uuid;index"`
	LineItems      []map[string]any `gorm:"column:line_items;type:jsonb;serializer:json"`
	TotalAmount    float64          `gorm:"column:total_amount"`
	Tax            float64          `gorm:"column:tax"`
	GrandTotal     float64          `gorm:"column:grand_total"`
	Fulfillment    string           `gorm:"column:fulfillment_status;type:varchar(32);index:idx_orders_owner_fulfillment"`
	Payment        string           `gorm:"column:payment_status;type:varchar(32);index"`
	Method         string           `gorm:"column:payment_method;type:varchar(32)"`
	PaymentDetails map[string]any   `gorm:"column:payment_details;type:jsonb;serializer:json"`
	ScheduledDate  time.Time        `gorm:"column:scheduled_date"`
	TimeSlot       string           `gorm:"column:time_slot"`
	Address        string           `gorm:"column:address"`
	Version        int64            `gorm:"column:version"`
	CreatedAt      time.Time        `gorm:"column:created_at;index"`
	UpdatedAt      time.Time        `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Service schema mirrors the catalog Postgres adapter.
type serviceRecord struct {
	ID          uuid.UUID        `gorm:"primaryKey;column:id;type:uuid"`
	Name        string           `gorm:"column:name;index"`
	Description string           `gorm:"column:description"`
	BasePrice   float64          `gorm:"column:base_price"`
	Options     []map[string]any `gorm:"column:options;type:jsonb;serializer:json"`
	TimeSlots   pq.StringArray   `gorm:"column:time_slots;type:text[]"`
	Active      bool             `gorm:"column:active;index"`
	CreatedAt   time.Time        `gorm:"column:created_at"`
	UpdatedAt   time.Time        `gorm:"column:updated_at"`
}

func (serviceRecord) TableName() string { return "services" }

// Principal schema mirrors the principals Postgres adapter.
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
