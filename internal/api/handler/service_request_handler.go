package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/v4tech/servicedesk/internal/core/domain"
	"github.com/v4tech/servicedesk/internal/core/ports"
)

// ServiceRequestHandler handles the /customer-details routes.
type ServiceRequestHandler struct {
	service ports.ServiceRequestService
}

func NewServiceRequestHandler(service ports.ServiceRequestService) *ServiceRequestHandler {
	return &ServiceRequestHandler{service: service}
}

// Create stores a public service request.
//
// @Summary      Submit a service request
// @Tags         customer-details
// @Accept       json
// @Produce      json
// @Param        body  body      serviceRequestRequest  true  "Service request"
// @Success      200   {object}  domain.ServiceRequest
// @Failure      400   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /customer-details [post]
func (h *ServiceRequestHandler) Create(c echo.Context) error {
	var req serviceRequestRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	rec, err := h.service.Submit(c.Request().Context(), req.fields())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

// List returns stored service requests.
//
// @Summary      List service requests
// @Tags         customer-details
// @Produce      json
// @Success      200  {array}   domain.ServiceRequest
// @Failure      401  {object}  ErrorResponse
// @Security     SessionCookie
// @Router       /customer-details [get]
func (h *ServiceRequestHandler) List(c echo.Context) error {
	recs, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recs)
}

// UpdateStatus sets the status from ?status= or a JSON body.
//
// @Summary      Change service request status
// @Tags         customer-details
// @Accept       json
// @Produce      json
// @Param        id      path      string         true   "Record id"
// @Param        status  query     string         false  "New status"
// @Param        body    body      statusRequest  false  "New status"
// @Success      200     {object}  successResponse
// @Failure      401     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Failure      422     {object}  ErrorResponse
// @Security     SessionCookie
// @Router       /customer-details/{id}/status [patch]
func (h *ServiceRequestHandler) UpdateStatus(c echo.Context) error {
	status, err := statusParam(c)
	if err != nil {
		return err
	}
	if err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), domain.ServiceRequestStatus(status)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse)
}

// Update replaces the submitted fields of a service request.
//
// @Summary      Edit a service request
// @Tags         customer-details
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "Record id"
// @Param        body  body      serviceRequestRequest  true  "Service request"
// @Success      200   {object}  successResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Security     SessionCookie
// @Router       /customer-details/{id} [patch]
func (h *ServiceRequestHandler) Update(c echo.Context) error {
	var req serviceRequestRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.Update(c.Request().Context(), c.Param("id"), req.fields()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse)
}

// Delete removes a service request.
//
// @Summary      Delete a service request
// @Tags         customer-details
// @Produce      json
// @Param        id   path      string  true  "Record id"
// @Success      200  {object}  successResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Security     SessionCookie
// @Router       /customer-details/{id} [delete]
func (h *ServiceRequestHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse)
}
