package domain

import (
	"errors"
	"time"
)

// Kind identifies which funnel an application came through.
type Kind string

const (
	KindRenter   Kind = "renter"
	KindLandlord Kind = "landlord"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrSubmissionInFlight  = errors.New("submission already in progress")
	ErrDuplicateSubmission = errors.New("submission already exists")
	ErrApplicationNotFound = errors.New("application not found")
)

// RenterApplication is a house seeker's inquiry. Requirements is nil when the
// applicant left the optional field blank.
type RenterApplication struct {
	ID             string    `json:"id"`
	FullName       string    `json:"fullName"`
	Phone          string    `json:"phone"`
	Location       string    `json:"location"`
	BudgetRange    string    `json:"budgetRange"`
	Requirements   *string   `json:"requirements"`
	CreatedAt      time.Time `json:"createdAt"`
	IdempotencyKey string    `json:"-"`
}

// LandlordApplication is a property owner's request for management services.
type LandlordApplication struct {
	ID             string    `json:"id"`
	FullName       string    `json:"fullName"`
	Phone          string    `json:"phone"`
	PropertyType   string    `json:"propertyType"`
	Location       string    `json:"location"`
	Message        *string   `json:"message"`
	CreatedAt      time.Time `json:"createdAt"`
	IdempotencyKey string    `json:"-"`
}

// OptionalText maps the empty string to nil so blank optional fields are
// persisted as null.
func OptionalText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (a *RenterApplication) SubmittedAt() time.Time { return a.CreatedAt }

func (a *LandlordApplication) SubmittedAt() time.Time { return a.CreatedAt }
