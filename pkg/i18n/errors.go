package i18n

import "errors"

var (
	ErrEmptyLanguage = errors.New("i18n: language cannot be empty")
	ErrInvalidFile   = errors.New("i18n: invalid message file")
)
