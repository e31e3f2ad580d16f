package cart_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/thebagdis/storefront/internal/cart"
	"github.com/thebagdis/storefront/internal/models"
)

func lineItem(productID string, qty int) models.LineItem {
	return models.LineItem{
		ProductID: productID,
		Name:      "Item " + productID,
		UnitPrice: decimal.NewFromInt(100),
		Quantity:  qty,
	}
}

func TestAdd(t *testing.T) {
	t.Run("Success - New Product Appends", func(t *testing.T) {
		state, effects := cart.Add(cart.Empty(), lineItem("a", 1))

		assert.Len(t, state.Items, 1)
		assert.Equal(t, []cart.Effect{{Kind: cart.EffectPersist}}, effects)
	})

	t.Run("Success - Existing Product Increments Quantity", func(t *testing.T) {
		state, _ := cart.Add(cart.Empty(), lineItem("a", 1))
		state, _ = cart.Add(state, lineItem("b", 1))
		state, _ = cart.Add(state, lineItem("a", 2))

		assert.Len(t, state.Items, 2)
		assert.Equal(t, 3, state.Items[0].Quantity)

		// Insertion order is preserved.
		assert.Equal(t, "a", state.Items[0].ProductID)
		assert.Equal(t, "b", state.Items[1].ProductID)
	})

	t.Run("Success - Adds Commute In Final Quantity", func(t *testing.T) {
		oneTwo, _ := cart.Add(cart.Empty(), lineItem("a", 1))
		oneTwo, _ = cart.Add(oneTwo, lineItem("a", 2))

		twoOne, _ := cart.Add(cart.Empty(), lineItem("a", 2))
		twoOne, _ = cart.Add(twoOne, lineItem("a", 1))

		assert.Equal(t, oneTwo.Items[0].Quantity, twoOne.Items[0].Quantity)
	})

	t.Run("Success - Input State Unchanged", func(t *testing.T) {
		initial, _ := cart.Add(cart.Empty(), lineItem("a", 1))

		_, _ = cart.Add(initial, lineItem("a", 5))

		assert.Equal(t, 1, initial.Items[0].Quantity)
	})
}

func TestSetQuantity(t *testing.T) {
	t.Run("Success - Replaces Quantity", func(t *testing.T) {
		state, _ := cart.Add(cart.Empty(), lineItem("a", 1))

		state, effects := cart.SetQuantity(state, "a", 7)

		assert.Equal(t, 7, state.Items[0].Quantity)
		assert.NotEmpty(t, effects)
	})

	t.Run("Success - Below One Removes", func(t *testing.T) {
		state, _ := cart.Add(cart.Empty(), lineItem("a", 2))

		state, _ = cart.SetQuantity(state, "a", 0)

		assert.Empty(t, state.Items)
	})

	t.Run("Success - Absent Product Is No-Op", func(t *testing.T) {
		state, _ := cart.Add(cart.Empty(), lineItem("a", 2))

		next, effects := cart.SetQuantity(state, "missing", 3)

		assert.Equal(t, state, next)
		assert.Nil(t, effects)
	})
}

func TestRemove(t *testing.T) {
	t.Run("Success - Removes Line Item", func(t *testing.T) {
		state, _ := cart.Add(cart.Empty(), lineItem("a", 1))
		state, _ = cart.Add(state, lineItem("b", 1))

		state, _ = cart.Remove(state, "a")

		assert.Len(t, state.Items, 1)
		assert.Equal(t, "b", state.Items[0].ProductID)
	})

	t.Run("Success - Absent Product Is No-Op", func(t *testing.T) {
		state, _ := cart.Add(cart.Empty(), lineItem("a", 1))

		next, effects := cart.Remove(state, "missing")

		assert.Equal(t, state, next)
		assert.Nil(t, effects)
	})
}

func TestClear(t *testing.T) {
	t.Run("Success - Empties Cart", func(t *testing.T) {
		state, _ := cart.Add(cart.Empty(), lineItem("a", 1))

		state, effects := cart.Clear(state)

		assert.Empty(t, state.Items)
		assert.NotEmpty(t, effects)
	})

	t.Run("Success - Clearing Empty Cart Is No-Op", func(t *testing.T) {
		_, effects := cart.Clear(cart.Empty())

		assert.Nil(t, effects)
	})
}

func TestEncodeDecode(t *testing.T) {
	t.Run("Success - Round Trip Restores State", func(t *testing.T) {
		state, _ := cart.Add(cart.Empty(), lineItem("a", 2))
		state, _ = cart.Add(state, lineItem("b", 1))

		raw, err := cart.Encode(state)
		assert.NoError(t, err)

		restored := cart.Decode(raw)

		assert.Len(t, restored.Items, 2)
		assert.Equal(t, "a", restored.Items[0].ProductID)
		assert.Equal(t, 2, restored.Items[0].Quantity)
		assert.True(t, restored.Items[0].UnitPrice.Equal(decimal.NewFromInt(100)))
	})

	t.Run("Success - Malformed Snapshot Loads Empty", func(t *testing.T) {
		assert.Empty(t, cart.Decode([]byte("{not json")).Items)
		assert.Empty(t, cart.Decode(nil).Items)
		assert.Empty(t, cart.Decode([]byte("")).Items)
	})

	t.Run("Success - Invalid Quantities Dropped", func(t *testing.T) {
		raw := []byte(`[{"productId":"a","name":"A","price":"10","quantity":0},{"productId":"b","name":"B","price":"10","quantity":2},{"productId":"","name":"","price":"10","quantity":1}]`)

		restored := cart.Decode(raw)

		assert.Len(t, restored.Items, 1)
		assert.Equal(t, "b", restored.Items[0].ProductID)
	})
}
