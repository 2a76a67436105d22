package models

import "time"

// Order maps to the `orders` table: the persisted audit trail of
// payment attempts. The transaction record of truth lives in the
// store package; these rows exist for reporting and never drive the
// payment flow.
type Order struct {
	ID            uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Reference     string    `gorm:"column:reference;size:50" json:"reference"`
	OrderNo       string    `gorm:"column:order_no;size:100;uniqueIndex" json:"order_no"`
	Amount        string    `gorm:"column:amount;size:50" json:"amount"`
	CustomerName  string    `gorm:"column:customer_name;size:300" json:"customer_name"`
	EmailID       string    `gorm:"column:email_id;size:300" json:"email_id"`
	MobileNo      string    `gorm:"column:mobile_no;size:50" json:"mobile_no"`
	Channel       string    `gorm:"column:channel;size:20" json:"channel"` // "hosted" or "api"
	Status        string    `gorm:"column:status;size:20" json:"status"`
	TransactionID string    `gorm:"column:transaction_id;size:200" json:"transaction_id,omitempty"`
	ErrorCode     string    `gorm:"column:error_code;size:100" json:"error_code,omitempty"`
	ErrorMessage  string    `gorm:"column:error_message;size:500" json:"error_message,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}
