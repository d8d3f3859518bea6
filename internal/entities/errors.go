package entities

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrLocationNotFound = errors.New("location not found")

	// ErrEmailTaken maps the users.email unique constraint.
	ErrEmailTaken = errors.New("email already registered")

	// Reference-policy violations: the record is still linked to orders
	// and the configured policy forbids deleting it.
	ErrUserReferenced    = errors.New("user referenced by orders")
	ErrProductReferenced = errors.New("product referenced by orders")

	ErrSameBuyerSeller  = errors.New("buyer and seller are the same user")
	ErrAlreadyDelivered = errors.New("order already delivered")
)
