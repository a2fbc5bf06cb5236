package model

import "errors"

var (
	ErrNotFound     = errors.New("model: object not found")
	ErrInvalidTable = errors.New("model: table name cannot be empty")
)
