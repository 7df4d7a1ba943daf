package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"keeper/middleware"
	"keeper/models"
)

// ListContacts returns the current user's contacts, paginated.
func (h *Handler) ListContacts(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 100)

	contacts, err := h.Contacts.Fetch(userID, offset, limit)
	if err != nil {
		return err
	}

	responses := make([]models.ContactResponse, len(contacts))
	for i, contact := range contacts {
		responses[i] = contact.ToResponse()
	}

	return c.JSON(responses)
}

// GetContact returns a single contact by ID
func (h *Handler) GetContact(c *fiber.Ctx) error {
	contactID, err := uuid.Parse(c.Params("contactId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid contact ID",
		})
	}

	contact, err := h.Contacts.Get(contactID)
	if err != nil {
		return err
	}

	return c.JSON(contact.ToResponse())
}

// CreateContact creates a new contact owned by the current user.
func (h *Handler) CreateContact(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var input models.ContactInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	contact, err := h.Contacts.Create(userID, input)
	if err != nil {
		return err
	}

	h.Audit.Log(userID, models.AuditActionContactCreate, contact.ID.String(), "Created contact: "+contact.Name, c.IP())

	return c.Status(fiber.StatusCreated).JSON(contact.ToResponse())
}

// UpdateContact updates an existing contact
func (h *Handler) UpdateContact(c *fiber.Ctx) error {
	contactID, err := uuid.Parse(c.Params("contactId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid contact ID",
		})
	}

	var input models.ContactInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	contact, err := h.Contacts.Update(contactID, input)
	if err != nil {
		return err
	}

	h.Audit.Log(middleware.GetUserID(c), models.AuditActionContactUpdate, contact.ID.String(), "Updated contact: "+contact.Name, c.IP())

	return c.JSON(contact.ToResponse())
}

// DeleteContact soft-deletes a contact.
func (h *Handler) DeleteContact(c *fiber.Ctx) error {
	contactID, err := uuid.Parse(c.Params("contactId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid contact ID",
		})
	}

	if err := h.Contacts.Delete(contactID); err != nil {
		return err
	}

	h.Audit.Log(middleware.GetUserID(c), models.AuditActionContactDelete, contactID.String(), "", c.IP())

	return c.SendStatus(fiber.StatusNoContent)
}
