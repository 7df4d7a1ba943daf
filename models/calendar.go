package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Frequency string

const (
	FrequencyDay   Frequency = "day"
	FrequencyWeek  Frequency = "week"
	FrequencyMonth Frequency = "month"
	FrequencyYear  Frequency = "year"
)

// Calendar is a single schedule entry, either standalone or one
// occurrence of a recurring series.
type Calendar struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ContactID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"contact_id"`
	SeriesID       *uuid.UUID     `gorm:"type:uuid;index" json:"series_id"`
	Name           string         `gorm:"not null" json:"name"`
	StartDt        time.Time      `gorm:"not null" json:"start_dt"`
	EndDt          *time.Time     `json:"end_dt"`
	IsAllDay       bool           `gorm:"not null;default:false" json:"is_all_day"`
	RemindInterval *int           `json:"remind_interval"` // minutes; stored only
	IsImportant    bool           `gorm:"not null;default:false" json:"is_important"`
	Content        string         `json:"content"`
	IsComplete     bool           `gorm:"not null;default:false" json:"is_complete"`
	CompletedAt    *time.Time     `json:"completed_at"`
	IsRepeat       bool           `gorm:"not null;default:false" json:"is_repeat"`
	Tags           []string       `gorm:"serializer:json" json:"tags"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Calendar) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CalendarSeries is the immutable recurrence definition shared by a
// batch of generated entries. It is never updated or deleted, even
// after all of its entries are gone.
type CalendarSeries struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	StartDt   time.Time `gorm:"not null" json:"start_dt"`
	EndDt     time.Time `gorm:"not null" json:"end_dt"` // inclusive upper bound
	Interval  int       `gorm:"not null" json:"interval"`
	Frequency Frequency `gorm:"not null" json:"frequency"`
	CreatedAt time.Time `json:"created_at"`
}

func (CalendarSeries) TableName() string { return "calendar_series" }

func (s *CalendarSeries) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// CalendarContact links an entry to a contact. Created atomically with
// the entry, never updated.
type CalendarContact struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CalendarID uuid.UUID `gorm:"type:uuid;not null;index" json:"calendar_id"`
	ContactID  uuid.UUID `gorm:"type:uuid;not null;index" json:"contact_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (cc *CalendarContact) BeforeCreate(tx *gorm.DB) error {
	if cc.ID == uuid.Nil {
		cc.ID = uuid.New()
	}
	return nil
}

// RecurrenceInput is the recurrence definition attached to a repeating
// calendar entry request.
type RecurrenceInput struct {
	StartDt   time.Time `json:"start_dt" validate:"required"`
	EndDt     time.Time `json:"end_dt" validate:"required"`
	Interval  int       `json:"interval" validate:"required,min=1"`
	Frequency Frequency `json:"frequency" validate:"required,oneof=day week month year"`
}

// CalendarInput is used for creating/updating calendar entries. When
// IsRepeat is set, Recurrence must be present.
type CalendarInput struct {
	Name           string           `json:"name" validate:"required,max=100"`
	StartDt        time.Time        `json:"start_dt" validate:"required"`
	EndDt          *time.Time       `json:"end_dt"`
	IsAllDay       bool             `json:"is_all_day"`
	RemindInterval *int             `json:"remind_interval" validate:"omitempty,min=0"`
	IsImportant    bool             `json:"is_important"`
	Content        string           `json:"content" validate:"max=1000"`
	IsComplete     bool             `json:"is_complete"`
	IsRepeat       bool             `json:"is_repeat"`
	Tags           []string         `json:"tags" validate:"omitempty,dive,max=30"`
	Recurrence     *RecurrenceInput `json:"recurrence"`
}

// ToCalendar builds an entry from the template. The orchestrator clones
// one per occurrence, substituting only StartDt and SeriesID.
func (in *CalendarInput) ToCalendar(contactID uuid.UUID) Calendar {
	return Calendar{
		ContactID:      contactID,
		Name:           in.Name,
		StartDt:        in.StartDt,
		EndDt:          in.EndDt,
		IsAllDay:       in.IsAllDay,
		RemindInterval: in.RemindInterval,
		IsImportant:    in.IsImportant,
		Content:        in.Content,
		IsComplete:     in.IsComplete,
		IsRepeat:       in.IsRepeat,
		Tags:           in.Tags,
	}
}

type CalendarResponse struct {
	ID             uuid.UUID  `json:"id"`
	ContactID      uuid.UUID  `json:"contact_id"`
	SeriesID       *uuid.UUID `json:"series_id"`
	Name           string     `json:"name"`
	StartDt        time.Time  `json:"start_dt"`
	EndDt          *time.Time `json:"end_dt"`
	IsAllDay       bool       `json:"is_all_day"`
	RemindInterval *int       `json:"remind_interval"`
	IsImportant    bool       `json:"is_important"`
	Content        string     `json:"content"`
	IsComplete     bool       `json:"is_complete"`
	CompletedAt    *time.Time `json:"completed_at"`
	IsRepeat       bool       `json:"is_repeat"`
	Tags           []string   `json:"tags"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (c *Calendar) ToResponse() CalendarResponse {
	return CalendarResponse{
		ID:             c.ID,
		ContactID:      c.ContactID,
		SeriesID:       c.SeriesID,
		Name:           c.Name,
		StartDt:        c.StartDt,
		EndDt:          c.EndDt,
		IsAllDay:       c.IsAllDay,
		RemindInterval: c.RemindInterval,
		IsImportant:    c.IsImportant,
		Content:        c.Content,
		IsComplete:     c.IsComplete,
		CompletedAt:    c.CompletedAt,
		IsRepeat:       c.IsRepeat,
		Tags:           c.Tags,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// CalendarWithContactsResponse is the single-entry read shape: the
// entry plus every contact resolved through the association table.
type CalendarWithContactsResponse struct {
	Calendar CalendarResponse  `json:"calendar"`
	Contacts []ContactResponse `json:"contacts"`
}
