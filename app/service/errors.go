package service

import "errors"

var (
	ErrInvalidRequest  = errors.New("invalid request")
	ErrInvalidUser     = errors.New("invalid user")
	ErrPaymentNotFound = errors.New("payment not found")
	ErrInvalidStatus   = errors.New("invalid status")

	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrPlanNotFound      = errors.New("plan not found")
	ErrPlanAlreadyExists = errors.New("plan already exists")
	ErrReceiptNotFound   = errors.New("receipt not found")
)
