package services

import (
	"gorm.io/gorm"

	"keeper/models"
)

type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// Log creates an audit log entry. Fire and forget - don't block the
// request on audit logging.
func (s *AuditService) Log(userID uint, action models.AuditAction, targetID, details, ipAddress string) {
	entry := models.AuditLog{
		UserID:    userID,
		Action:    action,
		TargetID:  targetID,
		Details:   details,
		IPAddress: ipAddress,
	}

	go func() {
		s.db.Create(&entry)
	}()
}

// LogSync creates an audit log entry synchronously.
func (s *AuditService) LogSync(userID uint, action models.AuditAction, targetID, details, ipAddress string) error {
	entry := models.AuditLog{
		UserID:    userID,
		Action:    action,
		TargetID:  targetID,
		Details:   details,
		IPAddress: ipAddress,
	}
	return s.db.Create(&entry).Error
}

// Fetch returns audit entries, newest first.
func (s *AuditService) Fetch(userID uint, offset, limit int) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	err := s.db.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
