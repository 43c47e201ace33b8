package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/v4tech/servicedesk/internal/core/domain"
	"github.com/v4tech/servicedesk/internal/core/ports"
)

// ComplaintHandler handles the /complaints routes. The {key} parameter is a
// ticket code or a record id.
type ComplaintHandler struct {
	service ports.ComplaintService
}

func NewComplaintHandler(service ports.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{service: service}
}

// Create files a complaint and returns it with its ticket code.
//
// @Summary      File a complaint
// @Tags         complaints
// @Accept       json
// @Produce      json
// @Param        body  body      complaintRequest  true  "Complaint"
// @Success      200   {object}  domain.Complaint
// @Failure      400   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /complaints [post]
func (h *ComplaintHandler) Create(c echo.Context) error {
	var req complaintRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	rec, err := h.service.Submit(c.Request().Context(), ports.ComplaintInput{
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Phone:        req.Phone,
		Subject:      req.Subject,
		Description:  req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

// Search finds a complaint by ticket code, then by phone number.
//
// @Summary      Track a complaint
// @Tags         complaints
// @Produce      json
// @Param        term  path      string  true  "Ticket code or phone number"
// @Success      200   {object}  domain.Complaint
// @Failure      404   {object}  ErrorResponse
// @Router       /complaints/search/{term} [get]
func (h *ComplaintHandler) Search(c echo.Context) error {
	rec, err := h.service.Search(c.Request().Context(), c.Param("term"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

// List returns stored complaints.
//
// @Summary      List complaints
// @Tags         complaints
// @Produce      json
// @Success      200  {array}   domain.Complaint
// @Failure      401  {object}  ErrorResponse
// @Security     SessionCookie
// @Router       /complaints [get]
func (h *ComplaintHandler) List(c echo.Context) error {
	recs, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recs)
}

// UpdateStatus changes a complaint's status.
//
// @Summary      Change complaint status
// @Tags         complaints
// @Accept       json
// @Produce      json
// @Param        key   path      string         true  "Ticket code or record id"
// @Param        body  body      statusRequest  true  "New status"
// @Success      200   {object}  successResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Security     SessionCookie
// @Router       /complaints/{key}/status [patch]
func (h *ComplaintHandler) UpdateStatus(c echo.Context) error {
	status, err := statusParam(c)
	if err != nil {
		return err
	}
	if err := h.service.UpdateStatus(c.Request().Context(), c.Param("key"), domain.ComplaintStatus(status)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse)
}

// Delete removes a complaint.
//
// @Summary      Delete a complaint
// @Tags         complaints
// @Produce      json
// @Param        key  path      string  true  "Ticket code or record id"
// @Success      200  {object}  successResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Security     SessionCookie
// @Router       /complaints/{key} [delete]
func (h *ComplaintHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("key")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse)
}
