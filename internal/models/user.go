package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Username     string `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email        string `gorm:"size:254;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	FieldOwner   bool   `gorm:"default:false" json:"field_owner"`

	FirstName      string `gorm:"size:50" json:"first_name"`
	LastName       string `gorm:"size:50" json:"last_name"`
	Age            *int   `json:"age"`
	ImageURL       string `gorm:"size:255" json:"image_url"`
	CompanyName    string `gorm:"size:100" json:"company_name"`
	Phone          string `gorm:"size:15" json:"phone"`
	PreferredSport string `gorm:"size:100" json:"preferred_sport"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
