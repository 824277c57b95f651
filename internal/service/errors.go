package service

import "errors"

// Sentinel errors the API layer maps onto HTTP statuses.
var (
	// ErrNotFound is returned when a record does not exist or is not owned
	// by the requesting user. The two cases are indistinguishable on purpose.
	ErrNotFound = errors.New("record not found")

	// ErrCategoryInUse blocks deletion of a category that transactions
	// still reference.
	ErrCategoryInUse = errors.New("cannot delete category with existing transactions")

	// ErrCategoryNotOwned rejects a transaction write whose category does
	// not exist or belongs to another user.
	ErrCategoryNotOwned = errors.New("category not found or doesn't belong to user")

	// ErrDuplicateName rejects a category whose name the user already took.
	ErrDuplicateName = errors.New("category name already exists")
)
