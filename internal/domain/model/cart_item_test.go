package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartKey(t *testing.T) {
	assert.Equal(t, "42-green", CartKey("42", "green"))
	assert.Equal(t, "42-Black/Red", CartLineItem{ProductID: "42", Color: "Black/Red"}.Key())
}

func TestParseLineItem(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want CartLineItem
		ok   bool
	}{
		{"number quantity", `{"id":"1","color":"red","quantity":2}`, CartLineItem{"1", "red", 2}, true},
		{"string quantity", `{"id":"1","color":"red","quantity":"3"}`, CartLineItem{"1", "red", 3}, true},
		{"missing quantity", `{"id":"1","color":"red"}`, CartLineItem{"1", "red", 0}, true},
		{"null quantity", `{"id":"1","color":"red","quantity":null}`, CartLineItem{"1", "red", 0}, true},
		{"not json", `hello`, CartLineItem{}, false},
		{"json string", `"1-red"`, CartLineItem{}, false},
		{"null", `null`, CartLineItem{}, false},
		{"other shape", `{"theme":"dark"}`, CartLineItem{}, false},
		{"empty color", `{"id":"1","color":"","quantity":1}`, CartLineItem{}, false},
		{"negative quantity", `{"id":"1","color":"red","quantity":-1}`, CartLineItem{}, false},
		{"bad quantity", `{"id":"1","color":"red","quantity":"lots"}`, CartLineItem{}, false},
		{"integral float quantity", `{"id":"1","color":"red","quantity":5.0}`, CartLineItem{"1", "red", 5}, true},
		{"exponent quantity", `{"id":"1","color":"red","quantity":1e2}`, CartLineItem{"1", "red", 100}, true},
		{"fraction truncated", `{"id":"1","color":"red","quantity":1.5}`, CartLineItem{"1", "red", 1}, true},
		{"string float quantity", `{"id":"1","color":"red","quantity":"5.0"}`, CartLineItem{"1", "red", 5}, true},
		{"huge float quantity", `{"id":"1","color":"red","quantity":1e30}`, CartLineItem{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLineItem(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseQuantity(t *testing.T) {
	q, err := ParseQuantity(" 4 ")
	require.NoError(t, err)
	assert.Equal(t, Quantity(4), q)

	_, err = ParseQuantity("abc")
	assert.ErrorIs(t, err, ErrInvalidLineItem)

	_, err = ParseQuantity("-2")
	assert.ErrorIs(t, err, ErrInvalidLineItem)

	q, err = ParseQuantity("100")
	require.NoError(t, err)
	assert.Equal(t, MaxAddQuantity, q)

	_, err = ParseQuantity("101")
	assert.ErrorIs(t, err, ErrInvalidLineItem)

	_, err = ParseQuantity("9223372036854775807")
	assert.ErrorIs(t, err, ErrInvalidLineItem)
}

func TestAddQuantity(t *testing.T) {
	q, err := AddQuantity(3, 4)
	require.NoError(t, err)
	assert.Equal(t, Quantity(7), q)

	q, err = AddQuantity(math.MaxInt64-1, 1)
	require.NoError(t, err)
	assert.Equal(t, Quantity(math.MaxInt64), q)

	_, err = AddQuantity(math.MaxInt64, 1)
	assert.ErrorIs(t, err, ErrInvalidLineItem)
}

func TestCartLineItem_MarshalWritesNumber(t *testing.T) {
	b, err := json.Marshal(CartLineItem{ProductID: "42", Color: "green", Quantity: 5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"42","color":"green","quantity":5}`, string(b))
}
