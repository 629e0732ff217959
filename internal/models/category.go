package models

// Category groups products. The Products back-reference is never serialized
// to avoid cycles in responses.
type Category struct {
	ID       uint      `json:"categoryId" gorm:"primaryKey"`
	Name     string    `json:"name" gorm:"uniqueIndex;size:80"`
	ImageURL string    `json:"imageURL"`
	Products []Product `json:"-"`
}
