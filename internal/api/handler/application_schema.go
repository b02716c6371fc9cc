package handler

import "strings"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type renterRequest struct {
	FullName     string  `json:"fullName"     validate:"required,min=2,max=120,singleline"`
	Phone        string  `json:"phone"        validate:"required,min=9,max=32,singleline"`
	Location     string  `json:"location"     validate:"required,renterlocation"`
	BudgetRange  string  `json:"budgetRange"  validate:"required,budgetrange"`
	Requirements *string `json:"requirements" validate:"omitempty,max=2000,plaintext"`
}

func (r *renterRequest) normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Requirements = trimOptional(r.Requirements)
}

type landlordRequest struct {
	FullName     string  `json:"fullName"     validate:"required,min=2,max=120,singleline"`
	Phone        string  `json:"phone"        validate:"required,min=9,max=32,singleline"`
	PropertyType string  `json:"propertyType" validate:"required,propertytype"`
	Location     string  `json:"location"     validate:"required,landlordlocation"`
	Message      *string `json:"message"      validate:"omitempty,max=2000,plaintext"`
}

func (r *landlordRequest) normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Message = trimOptional(r.Message)
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

type createApplicationResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}
