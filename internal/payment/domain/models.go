// Package domain contains persistence models for customer payments.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// PaymentMode is how the money arrived.
type PaymentMode string

const (
	ModeCash     PaymentMode = "CASH"
	ModeCheque   PaymentMode = "CHEQUE"
	ModeUPI      PaymentMode = "UPI"
	ModeTransfer PaymentMode = "TRANSFER"
)

// Payment is money received from a customer. Amount is paise and always
// positive; payments credit the customer ledger. An optional invoice link
// records what the payment settles but never changes the math.
type Payment struct {
	ID         snowflake.ID  `gorm:"primaryKey" json:"id"`
	CustomerID snowflake.ID  `gorm:"not null;index" json:"customer_id"`
	InvoiceID  *snowflake.ID `gorm:"index" json:"invoice_id,omitempty"`
	ReceiptNo  string        `gorm:"type:text;not null;uniqueIndex" json:"receipt_no"`
	Amount     int64         `gorm:"not null" json:"amount"`
	Mode       PaymentMode   `gorm:"type:text;not null" json:"mode"`
	PaidOn     time.Time     `gorm:"not null;index" json:"paid_on"`
	Remarks    string        `gorm:"type:text" json:"remarks"`
	CreatedAt  time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Payment) TableName() string { return "payments" }
