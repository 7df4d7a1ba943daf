package services

import (
	"errors"

	"gorm.io/gorm"

	"keeper/models"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetOrCreate resolves the user for a (provider, uid) pair, creating
// the record on first login.
func (s *UserService) GetOrCreate(provider models.Provider, info ProviderUserInfo) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, "provider = ? AND uid = ?", provider, info.UID).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = models.User{
		UID:             info.UID,
		Provider:        provider,
		Name:            info.Name,
		Email:           info.Email,
		ProfileImageURL: info.Picture,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Get(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Fetch(offset, limit int) ([]models.User, error) {
	var users []models.User
	err := s.db.Offset(offset).Limit(limit).Find(&users).Error
	return users, err
}

func (s *UserService) Update(userID uint, input models.UserInput) (*models.User, error) {
	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		user.Name = input.Name
		user.Email = input.Email
		user.ProfileImageURL = input.ProfileImageURL

		return tx.Select("name", "email", "profile_image_url").Updates(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete soft-deletes a user account. The row itself is retained.
func (s *UserService) Delete(userID uint) error {
	return s.db.Delete(&models.User{}, userID).Error
}
