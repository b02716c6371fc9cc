package domain

import (
	"fmt"
	"time"
)

// LeadAlert tells the sales team that a new applicant is waiting for a call.
type LeadAlert struct {
	Kind          Kind
	ApplicationID string
	FullName      string
	Phone         string
	Summary       string
	CreatedAt     time.Time
}

// Subject is the one-line headline used by alert senders.
func (a LeadAlert) Subject() string {
	switch a.Kind {
	case KindLandlord:
		return fmt.Sprintf("New property owner: %s", a.FullName)
	default:
		return fmt.Sprintf("New house seeker: %s", a.FullName)
	}
}

// Body renders the alert for plain-text channels (SMS, e-mail, logs).
func (a LeadAlert) Body() string {
	return fmt.Sprintf("%s\nPhone: %s\n%s\nSubmitted: %s\nRef: %s",
		a.Subject(), a.Phone, a.Summary, a.CreatedAt.UTC().Format(time.RFC3339), a.ApplicationID)
}

// NewRenterAlert builds the alert for a freshly stored renter application.
func NewRenterAlert(app *RenterApplication) LeadAlert {
	return LeadAlert{
		Kind:          KindRenter,
		ApplicationID: app.ID,
		FullName:      app.FullName,
		Phone:         app.Phone,
		Summary: fmt.Sprintf("Looking in %s, budget %s",
			LabelFor(RenterLocations, app.Location), LabelFor(BudgetRanges, app.BudgetRange)),
		CreatedAt: app.CreatedAt,
	}
}

// NewLandlordAlert builds the alert for a freshly stored landlord application.
func NewLandlordAlert(app *LandlordApplication) LeadAlert {
	return LeadAlert{
		Kind:          KindLandlord,
		ApplicationID: app.ID,
		FullName:      app.FullName,
		Phone:         app.Phone,
		Summary: fmt.Sprintf("%s in %s",
			LabelFor(PropertyTypes, app.PropertyType), LabelFor(LandlordLocations, app.Location)),
		CreatedAt: app.CreatedAt,
	}
}
