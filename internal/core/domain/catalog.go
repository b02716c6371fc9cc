package domain

import "strings"

// Option is one selectable value in a fixed enumeration together with the
// label shown to people.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// OptionOther is accepted by every location and property type enumeration.
const OptionOther = "other"

var RenterLocations = []Option{
	{Value: "nairobi-westlands", Label: "Westlands"},
	{Value: "nairobi-kilimani", Label: "Kilimani"},
	{Value: "nairobi-lavington", Label: "Lavington"},
	{Value: "nairobi-karen", Label: "Karen"},
	{Value: "nairobi-kileleshwa", Label: "Kileleshwa"},
	{Value: "nairobi-parklands", Label: "Parklands"},
	{Value: "nairobi-south-b", Label: "South B/C"},
	{Value: "nairobi-cbd", Label: "Nairobi CBD"},
	{Value: "mombasa", Label: "Mombasa"},
	{Value: "kisumu", Label: "Kisumu"},
	{Value: "eldoret", Label: "Eldoret"},
	{Value: "nakuru", Label: "Nakuru"},
	{Value: OptionOther, Label: "Other Location"},
}

// BudgetRanges is ordered from cheapest to most expensive.
var BudgetRanges = []Option{
	{Value: "under-15k", Label: "Under KES 15,000"},
	{Value: "15k-30k", Label: "KES 15,000 - 30,000"},
	{Value: "30k-50k", Label: "KES 30,000 - 50,000"},
	{Value: "50k-80k", Label: "KES 50,000 - 80,000"},
	{Value: "80k-150k", Label: "KES 80,000 - 150,000"},
	{Value: "above-150k", Label: "Above KES 150,000"},
}

var PropertyTypes = []Option{
	{Value: "apartment-building", Label: "Apartment Building"},
	{Value: "single-units", Label: "Single Units"},
	{Value: "residential-house", Label: "Residential House"},
	{Value: "townhouse", Label: "Townhouse"},
	{Value: "commercial", Label: "Commercial"},
	{Value: OptionOther, Label: "Other"},
}

var LandlordLocations = []Option{
	{Value: "nairobi", Label: "Nairobi"},
	{Value: "mombasa", Label: "Mombasa"},
	{Value: "kisumu", Label: "Kisumu"},
	{Value: "eldoret", Label: "Eldoret"},
	{Value: "nakuru", Label: "Nakuru"},
	{Value: "thika", Label: "Thika"},
	{Value: OptionOther, Label: "Other"},
}

// HasOption reports whether value is one of the options.
func HasOption(options []Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// LabelFor returns the label of value, or value with dashes turned into
// spaces when it is not part of the enumeration.
func LabelFor(options []Option, value string) string {
	for _, o := range options {
		if o.Value == value {
			return o.Label
		}
	}
	return strings.ReplaceAll(value, "-", " ")
}
