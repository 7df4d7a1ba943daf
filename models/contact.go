package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContactCategory string

const (
	CategoryWork     ContactCategory = "work"
	CategoryClient   ContactCategory = "client"
	CategoryCustomer ContactCategory = "customer"
	CategoryOther    ContactCategory = "other"
)

type Contact struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uint            `gorm:"not null;index" json:"user_id"`
	Name            string          `gorm:"not null" json:"name"`
	Organization    string          `json:"organization"`
	Position        string          `json:"position"`
	Phone           string          `json:"phone"`
	Email           string          `json:"email"`
	Category        ContactCategory `json:"category"`
	ProfileImageURL string          `json:"profile_image_url"`
	Content         string          `json:"content"`
	IsImportant     bool            `gorm:"not null;default:false" json:"is_important"`
	RepeatInterval  *int            `json:"repeat_interval"`
	RepeatBaseDate  *time.Time      `json:"repeat_base_date"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// ContactInput is used for creating/updating contacts
type ContactInput struct {
	Name            string          `json:"name" validate:"required,max=100"`
	Organization    string          `json:"organization" validate:"max=100"`
	Position        string          `json:"position" validate:"max=100"`
	Phone           string          `json:"phone" validate:"max=30"`
	Email           string          `json:"email" validate:"omitempty,email"`
	Category        ContactCategory `json:"category" validate:"omitempty,oneof=work client customer other"`
	ProfileImageURL string          `json:"profile_image_url"`
	Content         string          `json:"content" validate:"max=1000"`
	IsImportant     bool            `json:"is_important"`
	RepeatInterval  *int            `json:"repeat_interval" validate:"omitempty,oneof=1 3 6 12"`
	RepeatBaseDate  *time.Time      `json:"repeat_base_date"`
}

type ContactResponse struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uint            `json:"user_id"`
	Name            string          `json:"name"`
	Organization    string          `json:"organization"`
	Position        string          `json:"position"`
	Phone           string          `json:"phone"`
	Email           string          `json:"email"`
	Category        ContactCategory `json:"category"`
	ProfileImageURL string          `json:"profile_image_url"`
	Content         string          `json:"content"`
	IsImportant     bool            `json:"is_important"`
	RepeatInterval  *int            `json:"repeat_interval"`
	RepeatBaseDate  *time.Time      `json:"repeat_base_date"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (c *Contact) ToResponse() ContactResponse {
	return ContactResponse{
		ID:              c.ID,
		UserID:          c.UserID,
		Name:            c.Name,
		Organization:    c.Organization,
		Position:        c.Position,
		Phone:           c.Phone,
		Email:           c.Email,
		Category:        c.Category,
		ProfileImageURL: c.ProfileImageURL,
		Content:         c.Content,
		IsImportant:     c.IsImportant,
		RepeatInterval:  c.RepeatInterval,
		RepeatBaseDate:  c.RepeatBaseDate,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
