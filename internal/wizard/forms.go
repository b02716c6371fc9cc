package wizard

import (
	"fmt"

	"github.com/mercury-homes/lead-funnel/internal/core/domain"
)

// Field names double as JSON keys of the submission payload.
const (
	FieldFullName     = "fullName"
	FieldPhone        = "phone"
	FieldLocation     = "location"
	FieldBudgetRange  = "budgetRange"
	FieldRequirements = "requirements"
	FieldPropertyType = "propertyType"
	FieldMessage      = "message"
)

func nameStep() Step {
	return Step{
		Field:       FieldFullName,
		Title:       title("What's your full name?"),
		Hint:        "Enter at least 2 characters",
		Placeholder: "Your full name",
		Valid:       MinLength(2),
	}
}

func phoneStep(question string) Step {
	return Step{
		Field: FieldPhone,
		Title: func(v Values) string {
			if name := firstName(v); name != "" {
				return fmt.Sprintf("Nice to meet you, %s! %s", name, question)
			}
			return question
		},
		Hint:        "Enter a phone number with at least 9 digits",
		Placeholder: "0712 345 678",
		Valid:       MinLength(9),
	}
}

func choiceStep(field, question, hint string, options []domain.Option) Step {
	return Step{
		Field:   field,
		Title:   title(question),
		Hint:    hint,
		Options: options,
		Valid:   OneOf(options),
	}
}

// RenterForm is the five-step funnel for house seekers.
func RenterForm() Form {
	return Form{
		Kind:  domain.KindRenter,
		Title: "Find Your Home",
		Steps: []Step{
			nameStep(),
			phoneStep("What number should we call you on?"),
			choiceStep(FieldLocation, "Where would you like to live?",
				"Pick a preferred location", domain.RenterLocations),
			choiceStep(FieldBudgetRange, "What's your monthly budget?",
				"Pick a budget range", domain.BudgetRanges),
			{
				Field:       FieldRequirements,
				Title:       title("Anything else we should know? (optional)"),
				Placeholder: "E.g., 2 bedrooms, parking needed, pet-friendly, moving in next month...",
				Optional:    true,
				Valid:       Always,
			},
		},
		Done: "We'll contact you within 2 hours with real options!",
	}
}

// LandlordForm is the five-step funnel for property owners.
func LandlordForm() Form {
	return Form{
		Kind:  domain.KindLandlord,
		Title: "Partner With Us",
		Steps: []Step{
			nameStep(),
			phoneStep("We'll call to arrange a visit. What's your number?"),
			choiceStep(FieldPropertyType, "What kind of property do you own?",
				"Pick a property type", domain.PropertyTypes),
			choiceStep(FieldLocation, "Where is the property?",
				"Pick a location", domain.LandlordLocations),
			{
				Field:       FieldMessage,
				Title:       title("Tell us more about it (optional)"),
				Placeholder: "E.g., I have 5 apartments in Kilimani, currently 2 are vacant...",
				Optional:    true,
				Valid:       Always,
			},
		},
		Done: "We'll call you to arrange a visit to your property!",
	}
}
