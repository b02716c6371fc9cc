package dashboard

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
	"unicode"

	"github.com/mercury-homes/lead-funnel/internal/core/domain"
)

const (
	dateLayout = "2 Jan 2006 15:04"
	// countryCode is prefixed to local numbers in WhatsApp links.
	countryCode = "254"
)

// Render writes the snapshot as plain-text tables. Times are shown in loc.
// Applicant text is passed through clean, so it cannot move the cursor,
// recolour the terminal or add rows and columns.
func Render(w io.Writer, snap Snapshot, loc *time.Location) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	s := snap.Summary
	fmt.Fprintf(tw, "House Seekers\tProperty Owners\tToday\tTo Contact\n")
	fmt.Fprintf(tw, "%d\t%d\t%d\t%d\n\n", s.HouseSeekers, s.PropertyOwners, s.Today, s.ToContact)

	fmt.Fprintf(tw, "HOUSE SEEKERS (%d)\n", len(snap.Renters.Items))
	switch snap.Renters.State {
	case StateFailed:
		fmt.Fprintf(tw, "  failed to load: %s\n", clean(fmt.Sprint(snap.Renters.Err)))
	case StateEmpty:
		fmt.Fprintln(tw, "  no house seekers yet")
	default:
		fmt.Fprintln(tw, "Submitted\tName\tPhone\tWhatsApp\tLocation\tBudget\tRequirements")
		for _, a := range snap.Renters.Items {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				a.CreatedAt.In(loc).Format(dateLayout),
				clean(a.FullName),
				clean(a.Phone),
				WhatsAppLink(a.Phone),
				domain.LabelFor(domain.RenterLocations, a.Location),
				domain.LabelFor(domain.BudgetRanges, a.BudgetRange),
				clean(deref(a.Requirements)),
			)
		}
	}
	fmt.Fprintln(tw)

	fmt.Fprintf(tw, "PROPERTY OWNERS (%d)\n", len(snap.Landlords.Items))
	switch snap.Landlords.State {
	case StateFailed:
		fmt.Fprintf(tw, "  failed to load: %s\n", clean(fmt.Sprint(snap.Landlords.Err)))
	case StateEmpty:
		fmt.Fprintln(tw, "  no property owners yet")
	default:
		fmt.Fprintln(tw, "Submitted\tName\tPhone\tWhatsApp\tProperty\tLocation\tMessage")
		for _, a := range snap.Landlords.Items {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				a.CreatedAt.In(loc).Format(dateLayout),
				clean(a.FullName),
				clean(a.Phone),
				WhatsAppLink(a.Phone),
				domain.LabelFor(domain.PropertyTypes, a.PropertyType),
				domain.LabelFor(domain.LandlordLocations, a.Location),
				clean(deref(a.Message)),
			)
		}
	}

	return tw.Flush()
}

// WhatsAppLink builds a wa.me link for a Kenyan phone number. A leading 0
// is replaced by the country code, and everything but digits is dropped.
// It returns "-" when no digits remain.
func WhatsAppLink(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)

	switch {
	case digits == "":
		return "-"
	case strings.HasPrefix(digits, countryCode) && len(digits) > 10:
	case strings.HasPrefix(digits, "0"):
		digits = countryCode + digits[1:]
	default:
		digits = countryCode + digits
	}
	return "https://wa.me/" + digits
}

// clean replaces control and format characters with spaces.
func clean(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || unicode.Is(unicode.Cf, r) {
			return ' '
		}
		return r
	}, s)
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
