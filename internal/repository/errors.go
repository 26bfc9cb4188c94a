package repository

import "errors"

var (
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")
	ErrUpdateFailed  = errors.New("update failed")
	ErrQueryFailed   = errors.New("database query failed")
)
