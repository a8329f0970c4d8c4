package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidLineItem = errors.New("invalid cart line item")

// カートの明細（商品ID＋カラーごとに1件）
// 保存時のJSONは {"id":..., "color":..., "quantity":...}
type CartLineItem struct {
	ProductID string   `json:"id"`
	Color     string   `json:"color"`
	Quantity  Quantity `json:"quantity"`
}

// CartKey は "{productId}-{color}" の複合キー。
func CartKey(productID, color string) string {
	return productID + "-" + color
}

func (i CartLineItem) Key() string {
	return CartKey(i.ProductID, i.Color)
}

// 必須チェック（ID・カラーは空不可、数量は0以上）
func (i CartLineItem) Validate() error {
	if strings.TrimSpace(i.ProductID) == "" {
		return ErrInvalidLineItem
	}
	if strings.TrimSpace(i.Color) == "" {
		return ErrInvalidLineItem
	}
	if i.Quantity < 0 {
		return ErrInvalidLineItem
	}
	return nil
}

// ParseLineItem は保存済みの値を明細として読む。
// JSONでない・形が違う・必須が欠けている値は ok=false（他のデータとして扱う）
func ParseLineItem(raw string) (CartLineItem, bool) {
	var item CartLineItem

	dec := json.NewDecoder(strings.NewReader(raw))
	if err := dec.Decode(&item); err != nil {
		return CartLineItem{}, false
	}
	if item.Validate() != nil {
		return CartLineItem{}, false
	}
	return item, true
}

// 数量
// 数値 5 と文字列 "5" のどちらも読める（<input> の値がそのまま保存されていることがある）
// 書き込みは常に数値
type Quantity int64

// 1回に追加できる数量の上限（ページの入力欄は1-100）
const MaxAddQuantity Quantity = 100

// ParseQuantity は画面入力の数量を整数にする（0〜MaxAddQuantity）。
func ParseQuantity(s string) (Quantity, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, ErrInvalidLineItem
	}
	if n < 0 || Quantity(n) > MaxAddQuantity {
		return 0, ErrInvalidLineItem
	}
	return Quantity(n), nil
}

// AddQuantity は a+b を返す。int64 を超える場合はエラー
func AddQuantity(a, b Quantity) (Quantity, error) {
	if a < 0 || b < 0 || a > math.MaxInt64-b {
		return 0, ErrInvalidLineItem
	}
	return a + b, nil
}

// 保存済みの値は parseInt と同じく小数部を切り捨てて読む（5.0, 1e2 も可）
func parseStoredQuantity(s string) (Quantity, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Quantity(n), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrInvalidLineItem
	}
	f = math.Trunc(f)
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, ErrInvalidLineItem
	}
	return Quantity(int64(f)), nil
}

func (q *Quantity) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n, err := parseStoredQuantity(s)
		if err != nil {
			return err
		}
		*q = n
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return ErrInvalidLineItem
	}
	n, err := parseStoredQuantity(num.String())
	if err != nil {
		return err
	}
	*q = n
	return nil
}
