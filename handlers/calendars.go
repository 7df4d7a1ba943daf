package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"keeper/middleware"
	"keeper/models"
)

// ListUserCalendars returns the current user's entries across all
// contacts, filtered by year (defaults to the current one) and
// optionally month.
func (h *Handler) ListUserCalendars(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 10)

	var year, month *int
	if y := c.QueryInt("year", 0); y != 0 {
		year = &y
	}
	if m := c.QueryInt("month", 0); m != 0 {
		if m < 1 || m > 12 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Month must be between 1 and 12",
			})
		}
		month = &m
	}

	calendars, err := h.Calendars.FetchUserCalendars(userID, year, month, offset, limit)
	if err != nil {
		return err
	}

	return c.JSON(toCalendarResponses(calendars))
}

// ListContactCalendars returns a contact's entries ordered by start
// time.
func (h *Handler) ListContactCalendars(c *fiber.Ctx) error {
	contactID, err := uuid.Parse(c.Params("contactId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid contact ID",
		})
	}
	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 100)

	calendars, err := h.Calendars.Fetch(contactID, offset, limit)
	if err != nil {
		return err
	}

	return c.JSON(toCalendarResponses(calendars))
}

// GetCalendar returns one entry with its associated contacts.
func (h *Handler) GetCalendar(c *fiber.Ctx) error {
	calendarID, err := uuid.Parse(c.Params("calendarId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid calendar ID",
		})
	}

	calendar, contacts, err := h.Calendars.Get(calendarID)
	if err != nil {
		return err
	}

	contactResponses := make([]models.ContactResponse, len(contacts))
	for i, contact := range contacts {
		contactResponses[i] = contact.ToResponse()
	}

	return c.JSON(models.CalendarWithContactsResponse{
		Calendar: calendar.ToResponse(),
		Contacts: contactResponses,
	})
}

// CreateCalendar creates an entry for a contact. A repeating request
// materializes the whole series and responds with its first occurrence.
func (h *Handler) CreateCalendar(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	contactID, err := uuid.Parse(c.Params("contactId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid contact ID",
		})
	}

	var input models.CalendarInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	calendar, err := h.Calendars.Create(userID, contactID, input)
	if err != nil {
		return err
	}

	h.Audit.Log(userID, models.AuditActionCalendarCreate, calendar.ID.String(), "Created calendar: "+calendar.Name, c.IP())

	return c.Status(fiber.StatusCreated).JSON(calendar.ToResponse())
}

// UpdateCalendar updates an existing entry.
func (h *Handler) UpdateCalendar(c *fiber.Ctx) error {
	calendarID, err := uuid.Parse(c.Params("calendarId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid calendar ID",
		})
	}

	var input models.CalendarInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	calendar, err := h.Calendars.Update(calendarID, input)
	if err != nil {
		return err
	}

	h.Audit.Log(middleware.GetUserID(c), models.AuditActionCalendarUpdate, calendar.ID.String(), "Updated calendar: "+calendar.Name, c.IP())

	return c.JSON(calendar.ToResponse())
}

// ToggleCalendarCompletion flips an entry's completion flag.
func (h *Handler) ToggleCalendarCompletion(c *fiber.Ctx) error {
	calendarID, err := uuid.Parse(c.Params("calendarId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid calendar ID",
		})
	}

	calendar, err := h.Calendars.ToggleCompletion(calendarID)
	if err != nil {
		return err
	}

	h.Audit.Log(middleware.GetUserID(c), models.AuditActionCalendarComplete, calendar.ID.String(), "", c.IP())

	return c.JSON(calendar.ToResponse())
}

// ToggleCalendarImportance flips an entry's importance flag.
func (h *Handler) ToggleCalendarImportance(c *fiber.Ctx) error {
	calendarID, err := uuid.Parse(c.Params("calendarId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid calendar ID",
		})
	}

	calendar, err := h.Calendars.ToggleImportance(calendarID)
	if err != nil {
		return err
	}

	h.Audit.Log(middleware.GetUserID(c), models.AuditActionCalendarImportance, calendar.ID.String(), "", c.IP())

	return c.JSON(calendar.ToResponse())
}

// DeleteCalendar soft-deletes an entry.
func (h *Handler) DeleteCalendar(c *fiber.Ctx) error {
	calendarID, err := uuid.Parse(c.Params("calendarId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid calendar ID",
		})
	}

	if err := h.Calendars.Delete(calendarID); err != nil {
		return err
	}

	h.Audit.Log(middleware.GetUserID(c), models.AuditActionCalendarDelete, calendarID.String(), "", c.IP())

	return c.SendStatus(fiber.StatusNoContent)
}

func toCalendarResponses(calendars []models.Calendar) []models.CalendarResponse {
	responses := make([]models.CalendarResponse, len(calendars))
	for i, calendar := range calendars {
		responses[i] = calendar.ToResponse()
	}
	return responses
}
