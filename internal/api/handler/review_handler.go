package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/v4tech/servicedesk/internal/core/ports"
)

// ReviewHandler handles the /reviews routes.
type ReviewHandler struct {
	service ports.ReviewService
}

func NewReviewHandler(service ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// Create stores a public review awaiting approval.
//
// @Summary      Submit a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        body  body      reviewRequest  true  "Review"
// @Success      200   {object}  domain.Review
// @Failure      400   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	var req reviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	rec, err := h.service.Submit(c.Request().Context(), req.fields())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

// List returns approved reviews; approved_only=false widens to all reviews.
//
// @Summary      List reviews
// @Tags         reviews
// @Produce      json
// @Param        approved_only  query     bool  false  "Only approved reviews (default true)"
// @Success      200            {array}   domain.Review
// @Failure      400            {object}  ErrorResponse
// @Router       /reviews [get]
func (h *ReviewHandler) List(c echo.Context) error {
	approvedOnly := true
	if raw := c.QueryParam("approved_only"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "approved_only must be a boolean")
		}
		approvedOnly = v
	}

	recs, err := h.service.List(c.Request().Context(), !approvedOnly)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recs)
}

// Approve publishes a review.
//
// @Summary      Approve a review
// @Tags         reviews
// @Produce      json
// @Param        id   path      string  true  "Record id"
// @Success      200  {object}  successResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Security     SessionCookie
// @Router       /reviews/{id}/approve [patch]
func (h *ReviewHandler) Approve(c echo.Context) error {
	if err := h.service.Approve(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse)
}

// Update replaces the submitted fields of a review.
//
// @Summary      Edit a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Record id"
// @Param        body  body      reviewRequest  true  "Review"
// @Success      200   {object}  successResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Security     SessionCookie
// @Router       /reviews/{id} [patch]
func (h *ReviewHandler) Update(c echo.Context) error {
	var req reviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.Update(c.Request().Context(), c.Param("id"), req.fields()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse)
}

// Delete removes a review.
//
// @Summary      Delete a review
// @Tags         reviews
// @Produce      json
// @Param        id   path      string  true  "Record id"
// @Success      200  {object}  successResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Security     SessionCookie
// @Router       /reviews/{id} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse)
}
