package models

// Product is the live catalog row. Orders never reference these fields
// directly; they carry their own snapshot taken at order time.
type Product struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID uint   `gorm:"index;not null" json:"category_id"`
	Name       string `gorm:"size:255;not null" json:"name"`
	Price      Money  `gorm:"type:decimal(10,2);not null" json:"price"`
	Image      string `gorm:"size:512" json:"image_path,omitempty"`
	Detail     string `gorm:"type:text" json:"detail,omitempty"`
}
