// Package migrations owns the relational schema for products and orders.
package migrations

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the catalog and orders contexts.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&productRecord{},
		&orderRecord{},
		&idempotencyRecord{},
	)
}

// productRecord mirrors the catalog Postgres adapter. IDs are assigned by the
// adapter as max(id)+1, so there is no sequence.
type productRecord struct {
	ID        int64           `gorm:"primaryKey;autoIncrement:false;column:id"`
	Name      string          `gorm:"column:name;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// orderRecord mirrors the orders Postgres adapter.
type orderRecord struct {
	ID                string          `gorm:"primaryKey;column:id;type:varchar(64)"`
	Seq               int64           `gorm:"column:seq;type:bigserial;uniqueIndex"`
	ProductID         int64           `gorm:"column:product_id;index"`
	ProductName       string          `gorm:"column:product_name;not null"`
	UnitPrice         decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	Quantity          int             `gorm:"column:quantity;not null"`
	CustomerName      string          `gorm:"column:customer_name;not null"`
	Contact           string          `gorm:"column:contact;not null"`
	Email             *string         `gorm:"column:email"`
	Address           string          `gorm:"column:address;not null"`
	Status            string          `gorm:"column:status;type:varchar(32);not null;index"`
	CreatedAt         time.Time       `gorm:"column:created_at;index"`
	EstimatedDelivery *time.Time      `gorm:"column:estimated_delivery"`
	UpdatedAt         time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// idempotencyRecord mirrors the order submission keys table.
type idempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash string    `gorm:"column:request_hash;size:128;not null"`
	OrderID     string    `gorm:"column:order_id;type:varchar(64);not null;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (idempotencyRecord) TableName() string { return "order_idempotency_keys" }
