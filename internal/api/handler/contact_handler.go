package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/v4tech/servicedesk/internal/core/ports"
)

type ContactHandler struct {
	service ports.ContactService
}

func NewContactHandler(service ports.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

// Create stores a contact form message.
//
// @Summary      Send a contact message
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body      contactRequest  true  "Message"
// @Success      200   {object}  domain.ContactMessage
// @Failure      400   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /contact [post]
func (h *ContactHandler) Create(c echo.Context) error {
	var req contactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	rec, err := h.service.Submit(c.Request().Context(), ports.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

// @Summary      List contact messages
// @Tags         contact
// @Produce      json
// @Success      200  {array}   domain.ContactMessage
// @Failure      401  {object}  ErrorResponse
// @Security     SessionCookie
// @Router       /contact [get]
func (h *ContactHandler) List(c echo.Context) error {
	recs, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recs)
}

// @Summary      Delete a contact message
// @Tags         contact
// @Produce      json
// @Param        id   path      string  true  "Record id"
// @Success      200  {object}  successResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Security     SessionCookie
// @Router       /contact/{id} [delete]
func (h *ContactHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse)
}
