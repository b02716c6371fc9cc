package handler

import "github.com/mercury-homes/lead-funnel/internal/core/ports"

func toSubmitRenterInput(req renterRequest, idempotencyKey string) ports.SubmitRenterInput {
	return ports.SubmitRenterInput{
		FullName:       req.FullName,
		Phone:          req.Phone,
		Location:       req.Location,
		BudgetRange:    req.BudgetRange,
		Requirements:   deref(req.Requirements),
		IdempotencyKey: idempotencyKey,
	}
}

func toSubmitLandlordInput(req landlordRequest, idempotencyKey string) ports.SubmitLandlordInput {
	return ports.SubmitLandlordInput{
		FullName:       req.FullName,
		Phone:          req.Phone,
		PropertyType:   req.PropertyType,
		Location:       req.Location,
		Message:        deref(req.Message),
		IdempotencyKey: idempotencyKey,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// nonNil makes empty lists encode as [] rather than null.
func nonNil[T any](items []*T) []*T {
	if items == nil {
		return []*T{}
	}
	return items
}
