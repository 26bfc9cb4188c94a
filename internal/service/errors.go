package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("user already exists with this email")
	ErrInvalidOTP         = errors.New("invalid or expired OTP")
	ErrOTPDelivery        = errors.New("failed to send OTP email")

	ErrUserNotFound = errors.New("user not found")
	ErrBookNotFound = errors.New("book not found")

	ErrAlreadyLiked   = errors.New("book already liked")
	ErrAlreadyOnShelf = errors.New("book already in your collection")

	ErrInsufficientStock = errors.New("not enough stock available")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrNotInCart         = errors.New("book not in cart")

	ErrDuplicateISBN = errors.New("book already exists with this ISBN")
)
