package domain

import (
	"fmt"
	"time"
)

// WishlistEntry links a signed-in user to a saved product. A (UserID,
// ProductID) pair is stored at most once.
type WishlistEntry struct {
	UserID    string    `json:"user_id"`
	ProductID ProductID `json:"product_id"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// StoreError is returned by remote wishlist stores. Message is the store's
// own description of the failure, when it supplied one.
type StoreError struct {
	Op      string
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
