package entity

import "time"

// SalesCoordinator is the staff member who owns an order end to end.
type SalesCoordinator struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	Name      string    `json:"name" gorm:"size:128;not null"`
	Email     string    `json:"email" gorm:"size:128;not null"`
	Phone     string    `json:"phone" gorm:"size:32"`
	AvatarURL string    `json:"avatar_url" gorm:"size:512"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SalesCoordinator) TableName() string {
	return "sales_coordinators"
}
