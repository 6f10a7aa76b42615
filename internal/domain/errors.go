package domain

import "errors"

var (
	ErrRecordNotFound  = errors.New("record not found")
	ErrSettingNotFound = errors.New("setting not found")
	ErrStoreNotOpen    = errors.New("store not open")
	ErrSessionExpired  = errors.New("session expired")
	ErrInvalidID       = errors.New("invalid record id")
)
