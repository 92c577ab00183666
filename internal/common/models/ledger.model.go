package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// JSONB stores raw JSON in a jsonb (postgres) or json (mysql) column.
type JSONB json.RawMessage

func (j JSONB) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = JSONB("null")
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*j = append((*j)[0:0], v...)
	case string:
		*j = JSONB(v)
	default:
		return errors.New("unsupported type for JSONB")
	}
	return nil
}

func (j JSONB) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return []byte(j), nil
}

func (j *JSONB) UnmarshalJSON(data []byte) error {
	if j == nil {
		return errors.New("JSONB: UnmarshalJSON on nil pointer")
	}
	*j = append((*j)[0:0], data...)
	return nil
}

// GormDBDataType picks the column type per dialect.
func (JSONB) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "mysql" {
		return "JSON"
	}
	return "JSONB"
}

const (
	HandoffStatusPending = "pending"
	HandoffStatusPaid    = "paid"
)

// PaymentHandoff records an order whose payment continues on the terminal's
// checkout display.
type PaymentHandoff struct {
	ID               string     `json:"id" gorm:"type:varchar(36);primaryKey"`
	OrderID          string     `json:"order_id" gorm:"type:varchar(100);uniqueIndex;not null"`
	SessionID        string     `json:"session_id" gorm:"type:varchar(64);not null"`
	TerminalID       string     `json:"terminal_id" gorm:"type:varchar(100)"`
	Gateway          string     `json:"gateway" gorm:"type:varchar(20);not null"`
	GatewaySessionID string     `json:"gateway_session_id" gorm:"type:varchar(255)"`
	RedirectURL      string     `json:"redirect_url" gorm:"type:text"`
	Amount           float64    `json:"amount" gorm:"not null"`
	Currency         string     `json:"currency" gorm:"type:varchar(10)"`
	Items            JSONB      `json:"items"`
	Status           string     `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt        time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	PaidAt           *time.Time `json:"paid_at"`
}

func (PaymentHandoff) TableName() string {
	return "payment_handoffs"
}

func (h *PaymentHandoff) BeforeCreate(*gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}

// OrphanedOrder is an order created on the backend whose compensating delete
// failed. Operators reconcile these by retrying the delete.
type OrphanedOrder struct {
	ID            string     `json:"id" gorm:"type:varchar(36);primaryKey"`
	OrderID       string     `json:"order_id" gorm:"type:varchar(100);index;not null"`
	SessionID     string     `json:"session_id" gorm:"type:varchar(64)"`
	PaymentMethod string     `json:"payment_method" gorm:"type:varchar(20)"`
	GrandTotal    float64    `json:"grand_total"`
	Reason        string     `json:"reason" gorm:"type:text"`
	Error         string     `json:"error" gorm:"type:text"`
	Attempts      int        `json:"attempts" gorm:"not null;default:1"`
	Resolved      bool       `json:"resolved" gorm:"not null;default:false"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	ResolvedAt    *time.Time `json:"resolved_at"`
}

func (OrphanedOrder) TableName() string {
	return "orphaned_orders"
}

func (o *OrphanedOrder) BeforeCreate(*gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
