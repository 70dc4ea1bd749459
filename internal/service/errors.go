package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrRequestNotFound is returned when a parts request is not found
	ErrRequestNotFound = errors.New("parts request not found")

	// ErrQuoteNotFound is returned when a quote is not found
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrSupplierNotFound is returned when a supplier is not found
	ErrSupplierNotFound = errors.New("supplier not found")

	// ErrOrderNotFound is returned when a purchase order is not found
	ErrOrderNotFound = errors.New("purchase order not found")

	// ErrPartyNotFound is returned when a party is not found
	ErrPartyNotFound = errors.New("party not found")

	// ErrOrganizationNotFound is returned when no organization is registered
	ErrOrganizationNotFound = errors.New("organization not found")

	// ErrDescriptionRequired is returned when a parts request has no part description
	ErrDescriptionRequired = errors.New("part description is required")

	// ErrNoActiveSuppliers is returned when a fan-out finds no suppliers to ask
	ErrNoActiveSuppliers = errors.New("no active suppliers to send inquiries to")

	// ErrQuoteRequestMismatch is returned when the approved quote belongs to a different request
	ErrQuoteRequestMismatch = errors.New("quote does not belong to this parts request")

	// ErrRequestAlreadyClosed is returned when acting on an ordered or cancelled request
	ErrRequestAlreadyClosed = errors.New("parts request is already ordered or cancelled")

	// ErrQuoteUnpriced is returned when approving a quote that has no price
	ErrQuoteUnpriced = errors.New("quote has no price and cannot be approved")
)
