package services

import "errors"

var (
	ErrEmptyOrder      = errors.New("order has no items")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrUnknownMenuItem = errors.New("unknown menu item")
	ErrItemUnavailable = errors.New("menu item unavailable")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrNotFound        = errors.New("not found")
	ErrInvalidRecord   = errors.New("invalid record")
	ErrFlushPartial    = errors.New("flush stopped before the queue was drained")
	ErrOffline         = errors.New("ledger unreachable")
)
