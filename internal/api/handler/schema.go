package handler

import (
	"github.com/v4tech/servicedesk/internal/core/domain"
	"github.com/v4tech/servicedesk/internal/core/ports"
)

// ErrorResponse is the error envelope returned on all 4xx/5xx responses.
// detail mirrors error for older clients.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

type successResponse struct {
	Success bool `json:"success"`
}

var okResponse = successResponse{Success: true}

// --- Auth ---

type localLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type localLoginResponse struct {
	Success      bool   `json:"success"`
	SessionToken string `json:"session_token"`
}

type sessionExchangeResponse struct {
	Success bool                    `json:"success"`
	User    *ports.ExternalIdentity `json:"user"`
}

// --- Service requests ---

type serviceRequestRequest struct {
	Name          string  `json:"name"           validate:"required"`
	Address       string  `json:"address"        validate:"required"`
	Email         string  `json:"email"          validate:"required,email"`
	Phone         string  `json:"phone"          validate:"required"`
	ServiceNeeded string  `json:"service_needed" validate:"required"`
	Description   string  `json:"description"    validate:"required"`
	ImageData     *string `json:"image_data"`
}

func (r serviceRequestRequest) fields() domain.ServiceRequestFields {
	return domain.ServiceRequestFields{
		Name:          r.Name,
		Address:       r.Address,
		Email:         r.Email,
		Phone:         r.Phone,
		ServiceNeeded: r.ServiceNeeded,
		Description:   r.Description,
		ImageData:     r.ImageData,
	}
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

// --- Reviews ---

type reviewRequest struct {
	CustomerName string `json:"customer_name" validate:"required"`
	Email        string `json:"email"         validate:"required,email"`
	ServiceTaken string `json:"service_taken" validate:"required"`
	Rating       int    `json:"rating"        validate:"required,min=1,max=5"`
	ReviewText   string `json:"review_text"   validate:"required"`
}

func (r reviewRequest) fields() domain.ReviewFields {
	return domain.ReviewFields{
		CustomerName: r.CustomerName,
		Email:        r.Email,
		ServiceTaken: r.ServiceTaken,
		Rating:       r.Rating,
		ReviewText:   r.ReviewText,
	}
}

// --- Complaints ---

type complaintRequest struct {
	CustomerName string `json:"customer_name" validate:"required"`
	Email        string `json:"email"         validate:"required,email"`
	Phone        string `json:"phone"         validate:"required"`
	Subject      string `json:"subject"       validate:"required"`
	Description  string `json:"description"   validate:"required"`
}

// --- Contact ---

type contactRequest struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
	Message string `json:"message" validate:"required"`
}
