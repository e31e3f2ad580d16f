// Package cart holds the cart state machine: pure transition functions over
// an immutable snapshot of line items. Each transition returns the next
// snapshot plus the effects the caller must perform afterwards (persistence),
// keeping the state logic testable without any storage in place.
package cart

import (
	"encoding/json"

	"github.com/thebagdis/storefront/internal/models"
)

type EffectKind int

const (
	// EffectPersist asks the caller to write the new snapshot to storage.
	// A failed write must not undo the in-memory transition.
	EffectPersist EffectKind = iota
)

type Effect struct {
	Kind EffectKind
}

// State is an ordered collection of line items, at most one per product.
type State struct {
	Items []models.LineItem
}

// Empty returns the zero cart.
func Empty() State {
	return State{Items: []models.LineItem{}}
}

func (s State) clone() State {
	items := make([]models.LineItem, len(s.Items))
	copy(items, s.Items)

	return State{Items: items}
}

func (s State) indexOf(productID string) int {
	for i, item := range s.Items {
		if item.ProductID == productID {
			return i
		}
	}

	return -1
}

// Find returns the line item for a product, if present.
func (s State) Find(productID string) (models.LineItem, bool) {
	if i := s.indexOf(productID); i >= 0 {
		return s.Items[i], true
	}

	return models.LineItem{}, false
}

// Add merges an item into the cart. An existing product's quantity is
// incremented rather than overwritten, so insertion order is preserved and
// adds commute in the final quantity.
func Add(s State, item models.LineItem) (State, []Effect) {

	next := s.clone()

	if i := next.indexOf(item.ProductID); i >= 0 {
		next.Items[i].Quantity += item.Quantity
	} else {
		next.Items = append(next.Items, item)
	}

	return next, []Effect{{Kind: EffectPersist}}
}

// SetQuantity replaces a product's quantity. Anything below 1 is a removal.
func SetQuantity(s State, productID string, quantity int) (State, []Effect) {

	if quantity < 1 {
		return Remove(s, productID)
	}

	i := s.indexOf(productID)
	if i < 0 {
		return s, nil
	}

	next := s.clone()
	next.Items[i].Quantity = quantity

	return next, []Effect{{Kind: EffectPersist}}
}

// Remove deletes a product's line item. Removing an absent product is a
// no-op, not an error.
func Remove(s State, productID string) (State, []Effect) {

	i := s.indexOf(productID)
	if i < 0 {
		return s, nil
	}

	next := s.clone()
	next.Items = append(next.Items[:i], next.Items[i+1:]...)

	return next, []Effect{{Kind: EffectPersist}}
}

// Clear empties the cart. Invoked after a successful checkout and on logout.
func Clear(s State) (State, []Effect) {

	if len(s.Items) == 0 {
		return s, nil
	}

	return Empty(), []Effect{{Kind: EffectPersist}}
}

// Encode renders the snapshot in its persistence format: a JSON array of
// line items.
func Encode(s State) ([]byte, error) {
	return json.Marshal(s.Items)
}

// Decode parses a persisted snapshot. Absent or malformed data loads as an
// empty cart rather than failing startup.
func Decode(raw []byte) State {

	if len(raw) == 0 {
		return Empty()
	}

	var items []models.LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return Empty()
	}

	// Quantities below 1 cannot come from a valid transition; drop them.
	valid := items[:0]

	for _, item := range items {
		if item.ProductID == "" || item.Quantity < 1 {
			continue
		}

		valid = append(valid, item)
	}

	return State{Items: valid}
}
