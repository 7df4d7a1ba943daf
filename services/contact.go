package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"keeper/models"
)

type ContactService struct {
	db *gorm.DB
}

func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{db: db}
}

func (s *ContactService) Get(contactID uuid.UUID) (*models.Contact, error) {
	var contact models.Contact
	if err := s.db.First(&contact, "id = ?", contactID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &contact, nil
}

// Fetch returns a user's contacts, most recently touched first.
func (s *ContactService) Fetch(userID uint, offset, limit int) ([]models.Contact, error) {
	var contacts []models.Contact
	err := s.db.
		Where("user_id = ?", userID).
		Order("updated_at desc").
		Offset(offset).
		Limit(limit).
		Find(&contacts).Error
	return contacts, err
}

func (s *ContactService) Create(userID uint, input models.ContactInput) (*models.Contact, error) {
	contact := models.Contact{
		UserID:          userID,
		Name:            input.Name,
		Organization:    input.Organization,
		Position:        input.Position,
		Phone:           input.Phone,
		Email:           input.Email,
		Category:        input.Category,
		ProfileImageURL: input.ProfileImageURL,
		Content:         input.Content,
		IsImportant:     input.IsImportant,
		RepeatInterval:  input.RepeatInterval,
		RepeatBaseDate:  input.RepeatBaseDate,
	}
	if err := s.db.Create(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

// Update overwrites a contact's fields. The owning user never changes.
func (s *ContactService) Update(contactID uuid.UUID, input models.ContactInput) (*models.Contact, error) {
	var contact models.Contact
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&contact, "id = ?", contactID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		contact.Name = input.Name
		contact.Organization = input.Organization
		contact.Position = input.Position
		contact.Phone = input.Phone
		contact.Email = input.Email
		contact.Category = input.Category
		contact.ProfileImageURL = input.ProfileImageURL
		contact.Content = input.Content
		contact.IsImportant = input.IsImportant
		contact.RepeatInterval = input.RepeatInterval
		contact.RepeatBaseDate = input.RepeatBaseDate

		return tx.Select(
			"name", "organization", "position", "phone", "email", "category",
			"profile_image_url", "content", "is_important",
			"repeat_interval", "repeat_base_date",
		).Updates(&contact).Error
	})
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// Delete soft-deletes a contact. Idempotent.
func (s *ContactService) Delete(contactID uuid.UUID) error {
	return s.db.Delete(&models.Contact{}, "id = ?", contactID).Error
}
