package models

import (
	"time"

	"gorm.io/gorm"
)

type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderKakao  Provider = "kakao"
)

type User struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UID             string         `gorm:"not null;uniqueIndex:idx_users_provider_uid" json:"-"`
	Provider        Provider       `gorm:"not null;uniqueIndex:idx_users_provider_uid" json:"provider"`
	Name            string         `gorm:"not null" json:"name"`
	Email           string         `json:"email"`
	ProfileImageURL string         `json:"profile_image_url"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// UserResponse is the safe response format for users
type UserResponse struct {
	ID              uint      `json:"id"`
	Provider        Provider  `json:"provider"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	ProfileImageURL string    `json:"profile_image_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:              u.ID,
		Provider:        u.Provider,
		Name:            u.Name,
		Email:           u.Email,
		ProfileImageURL: u.ProfileImageURL,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

// UserInput is used for updating a user's profile
type UserInput struct {
	Name            string `json:"name" validate:"required,max=100"`
	Email           string `json:"email" validate:"omitempty,email"`
	ProfileImageURL string `json:"profile_image_url"`
}
