package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ProductID identifies a catalog product. Clients send it either as a JSON
// number or a JSON string; both decode to the same value.
type ProductID string

// UnmarshalJSON accepts 7, "7" and null.
func (id *ProductID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("product id: %w", err)
		}
		*id = ProductID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("product id must be a number or string: %w", err)
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return fmt.Errorf("product id must be an integer: %s", n)
	}
	*id = ProductID(n.String())
	return nil
}

// String implements fmt.Stringer.
func (id ProductID) String() string { return string(id) }

// Product is the snapshot of a catalog item the storefront saves for later.
// UserID is set only when the shopper is signed in.
type Product struct {
	ID         ProductID `json:"id" validate:"required"`
	UserID     string    `json:"user_id,omitempty"`
	Name       string    `json:"name,omitempty" validate:"max=500"`
	Brand      string    `json:"brand,omitempty"`
	PartNumber string    `json:"part_number,omitempty"`
	Price      int64     `json:"price,omitempty" validate:"gte=0"`
	Currency   string    `json:"currency,omitempty"`
	ImageURL   string    `json:"image_url,omitempty"`
}

// Authenticated reports whether the product is being saved by a signed-in user.
func (p *Product) Authenticated() bool {
	return p.UserID != ""
}
