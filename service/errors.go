package service

import "errors"

var (
	// ErrCartNotFound is returned for an unknown cart id
	ErrCartNotFound = errors.New("cart not found")
	// ErrStoreClosed is returned by checkout while the store is closed
	ErrStoreClosed = errors.New("store is closed")
	// ErrEmptyCart is returned by checkout of a cart without lines
	ErrEmptyCart = errors.New("cart is empty")
	// ErrBelowMinimumOrder is returned by checkout when the total is under the store minimum
	ErrBelowMinimumOrder = errors.New("order total is below the minimum order value")
)
