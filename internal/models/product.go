package models

// Product represents a product in the catalog.
// Records are hard-deleted, so there is no soft-delete column.
type Product struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	Name         string  `json:"name" gorm:"not null"`
	Price        float64 `json:"price" gorm:"not null;check:price > 0"`
	Availability bool    `json:"availability" gorm:"not null;default:true"`
}
