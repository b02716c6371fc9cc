package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mercury-homes/lead-funnel/internal/core/domain"
	"github.com/mercury-homes/lead-funnel/internal/wizard"
)

func TestSubmit_SendsPayloadAndKey(t *testing.T) {
	var gotKey string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/applications/renter" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotKey = r.Header.Get("Idempotency-Key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"id":"65f0c0ffee"}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", time.Second)
	id, err := c.Submit(context.Background(), wizard.Submission{
		Kind:           domain.KindRenter,
		Values:         wizard.Values{"fullName": "Jo", "requirements": ""},
		IdempotencyKey: "key-1",
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if id != "65f0c0ffee" {
		t.Fatalf("unexpected id %q", id)
	}
	if gotKey != "key-1" {
		t.Fatalf("Idempotency-Key = %q", gotKey)
	}
	if gotBody["fullName"] != "Jo" {
		t.Fatalf("unexpected body %v", gotBody)
	}
}

func TestSubmit_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to submit application"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).Submit(context.Background(), wizard.Submission{Kind: domain.KindLandlord})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError || apiErr.Message != "Failed to submit application" {
		t.Fatalf("unexpected APIError: %+v", apiErr)
	}
}

func TestSubmit_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	if _, err := New(url, time.Second).Submit(context.Background(), wizard.Submission{Kind: domain.KindRenter}); err == nil {
		t.Fatal("expected error for closed server")
	}
}

func TestLoginThenList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/admin/login":
			_, _ = w.Write([]byte(`{"token":"tok"}`))
		case "/api/applications/landlord":
			if r.Header.Get("Authorization") != "Bearer tok" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`[{"id":"b","fullName":"Peter","phone":"0798765432","propertyType":"townhouse","location":"thika","message":null,"createdAt":"2024-05-10T09:00:00Z"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	if _, err := c.ListLandlords(context.Background()); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn before login, got %v", err)
	}
	if err := c.Login(context.Background(), "admin", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	apps, err := c.ListLandlords(context.Background())
	if err != nil {
		t.Fatalf("ListLandlords: %v", err)
	}
	if len(apps) != 1 || apps[0].Message != nil || apps[0].PropertyType != "townhouse" {
		t.Fatalf("unexpected apps: %+v", apps[0])
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid credentials"}`))
	}))
	defer srv.Close()

	err := New(srv.URL, time.Second).Login(context.Background(), "admin", "nope")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 APIError, got %v", err)
	}
}

func TestIsUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid token"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.ListRenters(context.Background())
	if !IsUnauthorized(err) {
		t.Fatalf("expected unauthorized before login, got %v", err)
	}

	c.token = "expired"
	_, err = c.ListLandlords(context.Background())
	if !IsUnauthorized(err) {
		t.Fatalf("expected unauthorized for a rejected token, got %v", err)
	}

	if IsUnauthorized(&APIError{StatusCode: http.StatusInternalServerError}) {
		t.Fatal("a 500 is not an auth failure")
	}
	if IsUnauthorized(errors.New("dial tcp: refused")) {
		t.Fatal("a transport error is not an auth failure")
	}
}
