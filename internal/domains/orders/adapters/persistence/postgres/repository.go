package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/freshharvest/harvest-api/internal/domains/orders/domain"
	"github.com/freshharvest/harvest-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM. Duplicate keys are
// detected through gorm.ErrDuplicatedKey, so the DB must be opened with
// TranslateError enabled.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed order store. Schema comes from migrations.Run.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord maps the order aggregate to a relational table. Seq preserves
// insertion order independently of createdAt.
type orderRecord struct {
	ID                string          `gorm:"primaryKey;column:id;type:varchar(64)"`
	Seq               int64           `gorm:"column:seq;autoIncrement;->;uniqueIndex"`
	ProductID         int64           `gorm:"column:product_id;index"`
	ProductName       string          `gorm:"column:product_name"`
	UnitPrice         decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2)"`
	Quantity          int             `gorm:"column:quantity"`
	CustomerName      string          `gorm:"column:customer_name"`
	Contact           string          `gorm:"column:contact"`
	Email             *string         `gorm:"column:email"`
	Address           string          `gorm:"column:address"`
	Status            string          `gorm:"column:status;type:varchar(32);index"`
	CreatedAt         time.Time       `gorm:"column:created_at;index"`
	EstimatedDelivery *time.Time      `gorm:"column:estimated_delivery"`
	UpdatedAt         time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

func (r *Repository) Insert(ctx context.Context, order *domain.Order) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if order == nil {
		return errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return err
	}
	record := toRecord(order)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ports.ErrDuplicateID
		}
		return err
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
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

func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).Order("seq").Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

func (r *Repository) FindByStatus(ctx context.Context, statuses []domain.Status) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	values := make(pq.StringArray, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).
		Where("status = ANY(?)", values).
		Order("seq").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

// UpdateStatus issues one UPDATE ... RETURNING; concurrent writers are last-write-wins.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	var record orderRecord
	result := r.db.WithContext(ctx).
		Model(&record).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	return orderRecord{
		ID:                order.ID,
		ProductID:         order.ProductID,
		ProductName:       order.ProductName,
		UnitPrice:         order.UnitPrice,
		Quantity:          order.Quantity,
		CustomerName:      order.CustomerName,
		Contact:           order.Contact,
		Email:             order.Email,
		Address:           order.Address,
		Status:            string(order.Status),
		CreatedAt:         order.CreatedAt,
		EstimatedDelivery: order.EstimatedDelivery,
	}
}

func (r orderRecord) toDomain() *domain.Order {
	order := &domain.Order{
		ID:                r.ID,
		ProductID:         r.ProductID,
		ProductName:       r.ProductName,
		UnitPrice:         r.UnitPrice,
		Quantity:          r.Quantity,
		CustomerName:      r.CustomerName,
		Contact:           r.Contact,
		Email:             r.Email,
		Address:           r.Address,
		Status:            domain.Status(r.Status),
		CreatedAt:         r.CreatedAt.UTC(),
		EstimatedDelivery: r.EstimatedDelivery,
	}
	if order.EstimatedDelivery != nil {
		eta := order.EstimatedDelivery.UTC()
		order.EstimatedDelivery = &eta
	}
	return order
}

func toDomainList(records []orderRecord) []*domain.Order {
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders
}
