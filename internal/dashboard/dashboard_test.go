package dashboard

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mercury-homes/lead-funnel/internal/core/domain"
)

type stubLister struct {
	renters     []*domain.RenterApplication
	landlords   []*domain.LandlordApplication
	renterErr   error
	landlordErr error

	// barrier, when set, makes each call wait until both calls have started.
	barrier    chan struct{}
	started    atomic.Int32
	sequential atomic.Bool
}

func (s *stubLister) enter() {
	if s.barrier == nil {
		return
	}
	if s.started.Add(1) == 2 {
		close(s.barrier)
	}
	select {
	case <-s.barrier:
	case <-time.After(2 * time.Second):
		s.sequential.Store(true)
	}
}

func (s *stubLister) ListRenters(context.Context) ([]*domain.RenterApplication, error) {
	s.enter()
	return s.renters, s.renterErr
}

func (s *stubLister) ListLandlords(context.Context) ([]*domain.LandlordApplication, error) {
	s.enter()
	return s.landlords, s.landlordErr
}

var nairobi = time.FixedZone("EAT", 3*60*60)

func renterAt(name string, t time.Time) *domain.RenterApplication {
	return &domain.RenterApplication{
		ID: name, FullName: name, Phone: "0712345678",
		Location: "nairobi-karen", BudgetRange: "30k-50k", CreatedAt: t,
	}
}

func landlordAt(name string, t time.Time) *domain.LandlordApplication {
	msg := "two units vacant"
	return &domain.LandlordApplication{
		ID: name, FullName: name, Phone: "0798765432",
		PropertyType: "townhouse", Location: "thika", Message: &msg, CreatedAt: t,
	}
}

func TestFetch_LoadsBothConcurrently(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, nairobi)
	l := &stubLister{
		renters:   []*domain.RenterApplication{renterAt("a", now)},
		landlords: []*domain.LandlordApplication{landlordAt("b", now)},
		barrier:   make(chan struct{}),
	}

	snap := Fetch(context.Background(), l, now)

	if l.sequential.Load() {
		t.Fatal("expected both lists to be fetched at the same time")
	}
	if snap.Renters.State != StateLoaded || snap.Landlords.State != StateLoaded {
		t.Fatalf("unexpected states: %s / %s", snap.Renters.State, snap.Landlords.State)
	}
}

func TestFetch_EmptyIsNotFailed(t *testing.T) {
	l := &stubLister{}

	snap := Fetch(context.Background(), l, time.Now())

	if snap.Renters.State != StateEmpty || snap.Landlords.State != StateEmpty {
		t.Fatalf("expected empty sections, got %s / %s", snap.Renters.State, snap.Landlords.State)
	}
	if snap.Summary != (Summary{}) {
		t.Fatalf("expected zero summary, got %+v", snap.Summary)
	}
}

func TestFetch_OneFailureKeepsTheOtherList(t *testing.T) {
	now := time.Now()
	l := &stubLister{
		renterErr: errors.New("500"),
		landlords: []*domain.LandlordApplication{landlordAt("b", now)},
	}

	snap := Fetch(context.Background(), l, now)

	if snap.Renters.State != StateFailed || snap.Renters.Err == nil {
		t.Fatalf("renters should be failed, got %s", snap.Renters.State)
	}
	if snap.Landlords.State != StateLoaded || len(snap.Landlords.Items) != 1 {
		t.Fatalf("landlords should be loaded, got %s", snap.Landlords.State)
	}
	if snap.Summary.PropertyOwners != 1 || snap.Summary.HouseSeekers != 0 {
		t.Fatalf("unexpected summary: %+v", snap.Summary)
	}
}

func TestSummarize_CountsToday(t *testing.T) {
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, nairobi)
	renters := []*domain.RenterApplication{
		renterAt("today-early", time.Date(2024, 5, 9, 22, 30, 0, 0, time.UTC)), // 01:30 EAT on the 10th
		renterAt("yesterday", time.Date(2024, 5, 9, 20, 0, 0, 0, time.UTC)),    // 23:00 EAT on the 9th
	}
	landlords := []*domain.LandlordApplication{
		landlordAt("today", now.Add(-time.Hour)),
	}

	got := Summarize(renters, landlords, now)
	want := Summary{HouseSeekers: 2, PropertyOwners: 1, Today: 2, ToContact: 3}
	if got != want {
		t.Fatalf("Summarize = %+v, want %+v", got, want)
	}
}

func TestSubmittedOn_KeepsOrder(t *testing.T) {
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	items := []*domain.RenterApplication{
		renterAt("c", day.Add(3*time.Hour)),
		renterAt("x", day.Add(-time.Hour)),
		renterAt("a", day.Add(time.Hour)),
	}

	got := SubmittedOn(items, day)
	if len(got) != 2 || got[0].ID != "c" || got[1].ID != "a" {
		t.Fatalf("unexpected filter result: %v", got)
	}
}

func TestRender_DistinguishesEmptyAndFailed(t *testing.T) {
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Renters:   newSection[*domain.RenterApplication](nil, errors.New("status 500")),
		Landlords: newSection[*domain.LandlordApplication](nil, nil),
	}

	var buf bytes.Buffer
	if err := Render(&buf, snap, time.UTC); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "failed to load: status 500") {
		t.Fatalf("missing failure notice:\n%s", out)
	}
	if !strings.Contains(out, "no property owners yet") {
		t.Fatalf("missing empty notice:\n%s", out)
	}

	snap = Snapshot{
		Renters:   newSection([]*domain.RenterApplication{renterAt("Amina Otieno", now)}, nil),
		Landlords: newSection([]*domain.LandlordApplication{landlordAt("Peter Kamau", now)}, nil),
	}
	buf.Reset()
	if err := Render(&buf, snap, time.UTC); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	out = buf.String()
	for _, want := range []string{"Amina Otieno", "Karen", "KES 30,000 - 50,000", "Townhouse", "Thika", "two units vacant", "10 May 2024 09:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRender_NeutralisesControlCharacters(t *testing.T) {
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	hostile := "\x1b[2J\x1b[31mPWNED\nfake\trow\u202e"
	r := renterAt("Eve\x1b]0;title\x07", now)
	r.Requirements = &hostile
	l := landlordAt("Mallory\r\n", now)
	l.Message = &hostile

	snap := Snapshot{
		Renters:   newSection([]*domain.RenterApplication{r}, nil),
		Landlords: newSection([]*domain.LandlordApplication{l}, nil),
	}

	var buf bytes.Buffer
	if err := Render(&buf, snap, time.UTC); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	out := buf.String()

	if strings.ContainsAny(out, "\x1b\x07\r\u202e") {
		t.Fatalf("output contains raw control characters: %q", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "fake") {
			t.Fatalf("applicant text started a new row: %q", line)
		}
	}
	if !strings.Contains(out, "PWNED") {
		t.Fatalf("printable text should survive cleaning:\n%s", out)
	}

	// A failed section prints its error through the same filter.
	snap.Landlords = newSection[*domain.LandlordApplication](nil, errors.New("boom\x1b[0m\nnext"))
	buf.Reset()
	if err := Render(&buf, snap, time.UTC); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if strings.Contains(buf.String(), "\x1b") {
		t.Fatalf("error text printed raw: %q", buf.String())
	}
}

func TestWhatsAppLink(t *testing.T) {
	cases := map[string]string{
		"0712345678":       "https://wa.me/254712345678",
		"0712 345 678":     "https://wa.me/254712345678",
		"712345678":        "https://wa.me/254712345678",
		"+254 712 345 678": "https://wa.me/254712345678",
		"n/a":              "-",
	}
	for in, want := range cases {
		if got := WhatsAppLink(in); got != want {
			t.Errorf("WhatsAppLink(%q) = %q, want %q", in, got, want)
		}
	}
}
