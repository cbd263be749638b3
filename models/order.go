package models

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // placed, awaiting handling
	OrderStatusCompleted OrderStatus = "completed" // handled by an admin
)

type Order struct {
	ID         uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint        `gorm:"index;not null" json:"user_id"`
	User       User        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`
	Items      []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Status     OrderStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	TotalPrice Money       `gorm:"type:decimal(10,2)" json:"total_price"`
	Comment    string      `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// OrderItem is a denormalized snapshot of a product at order time. The copied
// fields never change after creation; only ProductID is nulled out when the
// source product is deleted from the catalog.
type OrderItem struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID       uint   `gorm:"index" json:"-"`
	ProductID     *uint  `json:"product_id"`
	ProductName   string `gorm:"size:255;not null" json:"product_name"`
	ProductImage  string `gorm:"size:512" json:"product_image_path,omitempty"`
	ProductDetail string `gorm:"type:text" json:"product_detail,omitempty"`
	Quantity      int    `gorm:"not null" json:"quantity"`
	UnitPrice     Money  `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	TotalPrice    Money  `gorm:"type:decimal(10,2);not null" json:"total_price"`
}
