package services

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"keeper/models"
)

// maxOccurrencesPerSeries caps a single recurring creation so a wide
// window with a short frequency cannot flood the table.
const maxOccurrencesPerSeries = 1000

type CalendarService struct {
	db    *gorm.DB
	clock Clock
	log   *slog.Logger
}

func NewCalendarService(db *gorm.DB, clock Clock, log *slog.Logger) *CalendarService {
	return &CalendarService{db: db, clock: clock, log: log}
}

// Get returns a single entry together with the contacts resolved
// through the association table.
func (s *CalendarService) Get(calendarID uuid.UUID) (*models.Calendar, []models.Contact, error) {
	var calendar models.Calendar
	if err := s.db.First(&calendar, "id = ?", calendarID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	var contacts []models.Contact
	err := s.db.
		Joins("JOIN calendar_contacts ON calendar_contacts.contact_id = contacts.id").
		Where("calendar_contacts.calendar_id = ?", calendarID).
		Find(&contacts).Error
	if err != nil {
		return nil, nil, err
	}

	return &calendar, contacts, nil
}

// Fetch returns a contact's entries ordered by start time.
func (s *CalendarService) Fetch(contactID uuid.UUID, offset, limit int) ([]models.Calendar, error) {
	var calendars []models.Calendar
	err := s.db.
		Where("contact_id = ?", contactID).
		Order("start_dt asc").
		Offset(offset).
		Limit(limit).
		Find(&calendars).Error
	return calendars, err
}

// FetchUserCalendars returns a user's entries across all contacts,
// filtered by the year (defaulting to the current one) and optionally
// the month of each entry's start time.
func (s *CalendarService) FetchUserCalendars(userID uint, year, month *int, offset, limit int) ([]models.Calendar, error) {
	q := s.db.
		Joins("JOIN contacts ON contacts.id = calendars.contact_id AND contacts.deleted_at IS NULL").
		Where("contacts.user_id = ?", userID)

	y := s.clock.Now().Year()
	if year != nil {
		y = *year
	}

	var from, to time.Time
	if month != nil {
		from = time.Date(y, time.Month(*month), 1, 0, 0, 0, 0, time.UTC)
		to = from.AddDate(0, 1, 0)
	} else {
		from = time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
		to = from.AddDate(1, 0, 0)
	}
	q = q.Where("calendars.start_dt >= ? AND calendars.start_dt < ?", from, to)

	var calendars []models.Calendar
	err := q.
		Order("calendars.start_dt asc").
		Offset(offset).
		Limit(limit).
		Find(&calendars).Error
	return calendars, err
}

// Create persists a calendar entry for a contact. A non-repeating
// request creates a single entry; a repeating one creates the series
// row plus one entry per generated occurrence, all inside one
// transaction, and returns the first occurrence.
func (s *CalendarService) Create(userID uint, contactID uuid.UUID, input models.CalendarInput) (*models.Calendar, error) {
	if !input.IsRepeat {
		return s.createSingle(contactID, input)
	}
	return s.createRecurring(userID, contactID, input)
}

func (s *CalendarService) createSingle(contactID uuid.UUID, input models.CalendarInput) (*models.Calendar, error) {
	var calendar models.Calendar
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := requireLiveContact(tx, contactID); err != nil {
			return err
		}
		calendar = input.ToCalendar(contactID)
		if err := tx.Create(&calendar).Error; err != nil {
			return err
		}
		link := models.CalendarContact{CalendarID: calendar.ID, ContactID: contactID}
		return tx.Create(&link).Error
	})
	if err != nil {
		return nil, err
	}
	return &calendar, nil
}

func (s *CalendarService) createRecurring(userID uint, contactID uuid.UUID, input models.CalendarInput) (*models.Calendar, error) {
	rec := input.Recurrence
	if rec == nil {
		return nil, NewValidationError("repeating entry requires a recurrence definition")
	}
	if rec.Interval <= 0 {
		return nil, NewValidationError("recurrence interval must be positive")
	}
	switch rec.Frequency {
	case models.FrequencyDay, models.FrequencyWeek, models.FrequencyMonth, models.FrequencyYear:
	default:
		return nil, NewValidationError("unknown recurrence frequency")
	}

	// The series may start before the requested entry; occurrences
	// begin at whichever is later.
	effectiveStart := rec.StartDt
	if input.StartDt.After(effectiveStart) {
		effectiveStart = input.StartDt
	}
	if effectiveStart.After(rec.EndDt) {
		return nil, NewValidationError("recurrence produces no occurrences")
	}

	var first models.Calendar
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := requireLiveContact(tx, contactID); err != nil {
			return err
		}

		series := models.CalendarSeries{
			UserID:    userID,
			StartDt:   rec.StartDt,
			EndDt:     rec.EndDt,
			Interval:  rec.Interval,
			Frequency: rec.Frequency,
		}
		if err := tx.Create(&series).Error; err != nil {
			return err
		}

		count := 0
		for occurrence := range Occurrences(rec.Frequency, rec.Interval, effectiveStart, rec.EndDt) {
			if count >= maxOccurrencesPerSeries {
				return NewValidationError("recurrence produces too many occurrences")
			}
			calendar := input.ToCalendar(contactID)
			calendar.StartDt = occurrence
			calendar.SeriesID = &series.ID
			if err := tx.Create(&calendar).Error; err != nil {
				return err
			}
			link := models.CalendarContact{CalendarID: calendar.ID, ContactID: contactID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
			if count == 0 {
				first = calendar
			}
			count++
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || IsValidation(err) {
			return nil, err
		}
		s.log.Error("recurring calendar creation failed",
			"user_id", userID,
			"contact_id", contactID,
			"frequency", rec.Frequency,
			"interval", rec.Interval,
			"err", err,
		)
		return nil, WrapValidationError("failed to create recurring entries", err)
	}
	return &first, nil
}

// Update overwrites an entry's mutable fields. Concurrent updates here
// are last-write-wins; only the toggles below carry a stronger
// guarantee.
func (s *CalendarService) Update(calendarID uuid.UUID, input models.CalendarInput) (*models.Calendar, error) {
	var calendar models.Calendar
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&calendar, "id = ?", calendarID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		// Keep completed_at in step with the flag.
		var completedAt *time.Time
		if input.IsComplete {
			completedAt = calendar.CompletedAt
			if completedAt == nil {
				now := s.clock.Now()
				completedAt = &now
			}
		}

		calendar.Name = input.Name
		calendar.StartDt = input.StartDt
		calendar.EndDt = input.EndDt
		calendar.IsAllDay = input.IsAllDay
		calendar.RemindInterval = input.RemindInterval
		calendar.IsImportant = input.IsImportant
		calendar.Content = input.Content
		calendar.IsComplete = input.IsComplete
		calendar.CompletedAt = completedAt
		calendar.Tags = input.Tags

		return tx.Select(
			"name", "start_dt", "end_dt", "is_all_day", "remind_interval",
			"is_important", "content", "is_complete", "completed_at", "tags",
		).Updates(&calendar).Error
	})
	if err != nil {
		return nil, err
	}
	return &calendar, nil
}

// ToggleCompletion flips an entry's completion flag. The caller never
// supplies the target state: the flip happens in a single UPDATE whose
// right-hand side reads the pre-update value, so concurrent toggles
// serialize on the row and none is lost. completed_at is stamped on the
// transition to complete and cleared on the way back.
func (s *CalendarService) ToggleCompletion(calendarID uuid.UUID) (*models.Calendar, error) {
	now := s.clock.Now()
	return s.toggle(calendarID, map[string]any{
		"is_complete":  gorm.Expr("NOT is_complete"),
		"completed_at": gorm.Expr("CASE WHEN is_complete THEN NULL ELSE ? END", now),
	})
}

// ToggleImportance flips an entry's importance flag with the same
// serialization guarantee as ToggleCompletion.
func (s *CalendarService) ToggleImportance(calendarID uuid.UUID) (*models.Calendar, error) {
	return s.toggle(calendarID, map[string]any{
		"is_important": gorm.Expr("NOT is_important"),
	})
}

func (s *CalendarService) toggle(calendarID uuid.UUID, updates map[string]any) (*models.Calendar, error) {
	var calendar models.Calendar
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Calendar{}).
			Where("id = ?", calendarID).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.First(&calendar, "id = ?", calendarID).Error
	})
	if err != nil {
		return nil, err
	}
	return &calendar, nil
}

// Delete soft-deletes an entry. Deleting an already-deleted or unknown
// entry is a no-op.
func (s *CalendarService) Delete(calendarID uuid.UUID) error {
	return s.db.Delete(&models.Calendar{}, "id = ?", calendarID).Error
}

// requireLiveContact verifies the owning contact exists and is not
// soft-deleted before any entry rows are written.
func requireLiveContact(tx *gorm.DB, contactID uuid.UUID) error {
	var contact models.Contact
	if err := tx.Select("id").First(&contact, "id = ?", contactID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
