package domain

import "errors"

var (
	// Lookup errors
	ErrUserNotFound      = errors.New("user not found")
	ErrAccountNotFound   = errors.New("account not found")
	ErrAssetNotFound     = errors.New("asset not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrPortfolioNotFound = errors.New("portfolio not found")

	// Uniqueness errors
	ErrUserExists     = errors.New("user with this email already exists")
	ErrAssetExists    = errors.New("asset with this symbol already exists")
	ErrCategoryExists = errors.New("category already exists")

	// Transaction errors
	ErrInvalidAmount     = errors.New("amount must be a non-negative magnitude")
	ErrInvalidKind       = errors.New("unknown transaction kind")
	ErrMissingFromLeg    = errors.New("transaction requires a source asset and amount")
	ErrMissingToLeg      = errors.New("transaction requires a destination asset and amount")
	ErrUnexpectedFromLeg = errors.New("transaction kind does not allow a source leg")
	ErrUnexpectedToLeg   = errors.New("transaction kind does not allow a destination leg")

	// Price errors
	ErrInvalidPrice = errors.New("price must be positive")

	// Allocation errors
	ErrInvalidWeight = errors.New("target weight must be between 0 and 1")
)
