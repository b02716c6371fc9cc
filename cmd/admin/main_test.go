package main

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mercury-homes/lead-funnel/internal/client"
	"github.com/mercury-homes/lead-funnel/internal/core/domain"
	"github.com/mercury-homes/lead-funnel/internal/dashboard"
)

// expiringAPI rejects list calls until Login has been called again.
type expiringAPI struct {
	valid    bool
	logins   int
	loginErr error
}

func (a *expiringAPI) Login(context.Context, string, string) error {
	a.logins++
	if a.loginErr != nil {
		return a.loginErr
	}
	a.valid = true
	return nil
}

func (a *expiringAPI) ListRenters(context.Context) ([]*domain.RenterApplication, error) {
	if !a.valid {
		return nil, &client.APIError{StatusCode: http.StatusUnauthorized, Message: "invalid token"}
	}
	return []*domain.RenterApplication{{ID: "r1", FullName: "Jo", CreatedAt: time.Now()}}, nil
}

func (a *expiringAPI) ListLandlords(context.Context) ([]*domain.LandlordApplication, error) {
	if !a.valid {
		return nil, &client.APIError{StatusCode: http.StatusUnauthorized, Message: "invalid token"}
	}
	return nil, nil
}

func TestRefresh_LogsInAgainAfterExpiry(t *testing.T) {
	api := &expiringAPI{}

	snap, err := refresh(context.Background(), api, "admin", "pass", time.Now())
	require.NoError(t, err)
	require.Equal(t, 1, api.logins)
	require.Equal(t, dashboard.StateLoaded, snap.Renters.State)
	require.Equal(t, dashboard.StateEmpty, snap.Landlords.State)
}

func TestRefresh_ValidTokenDoesNotLogIn(t *testing.T) {
	api := &expiringAPI{valid: true}

	_, err := refresh(context.Background(), api, "admin", "pass", time.Now())
	require.NoError(t, err)
	require.Zero(t, api.logins)
}

func TestRefresh_FailedLoginKeepsFailedSnapshot(t *testing.T) {
	api := &expiringAPI{loginErr: errors.New("invalid credentials")}

	snap, err := refresh(context.Background(), api, "admin", "wrong", time.Now())
	require.Error(t, err)
	require.Equal(t, dashboard.StateFailed, snap.Renters.State)
}
