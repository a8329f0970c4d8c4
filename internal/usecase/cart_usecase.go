package usecase

import (
	"context"
	"errors"
	"hash/fnv"
	"net/http"
	"strings"
	"sync"

	"kanap/internal/domain/model"
	repo "kanap/internal/repository"

	"go.uber.org/zap"
)

// CartUsecase は商品ページの「カートに追加」とカート表示の業務ロジックです。
// 保存領域はセッションごと（ブラウザ1つ分）に分かれています。
type CartUsecase struct {
	stores   repo.KVStoreFactory
	products repo.ProductFetcher
	log      *zap.Logger

	// セッション内の追加は直列にする（セッションIDのハッシュで固定数に振り分け）
	locks [lockStripes]sync.Mutex
}

const lockStripes = 64

// AddToCart の 400 の理由
const (
	MsgInvalidQuantity  = "invalid quantity"
	MsgInvalidProductID = "invalid product id"
	MsgInvalidCartItem  = "invalid cart item"
)

func NewCartUsecase(stores repo.KVStoreFactory, products repo.ProductFetcher, log *zap.Logger) *CartUsecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &CartUsecase{
		stores:   stores,
		products: products,
		log:      log,
	}
}

// フォームの値そのまま
type AddToCartInput struct {
	ProductID string
	Color     string
	Quantity  string
}

// CartItemResponse はカート1行（商品情報つき）
type CartItemResponse struct {
	ProductID string `json:"id"`
	Color     string `json:"color"`
	Quantity  int64  `json:"quantity"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	ImageURL  string `json:"imageUrl"`
	AltTxt    string `json:"altTxt"`
}

type CartResponse struct {
	Items         []CartItemResponse `json:"items"`
	TotalQuantity int64              `json:"totalQuantity"`
	Total         int64              `json:"total"`
}

// AddToCart はカラーと数量が両方選ばれているときだけ追加する。
// 追加した場合 true（呼び出し側はカートページへ移動）
func (u *CartUsecase) AddToCart(ctx context.Context, sessionID string, in AddToCartInput) (bool, error) {
	if sessionID == "" {
		return false, NewHTTPError(http.StatusUnauthorized, "no cart session")
	}

	// 未選択は何もしない
	qtyStr := strings.TrimSpace(in.Quantity)
	if in.Color == "" || qtyStr == "" || qtyStr == "0" {
		return false, nil
	}

	qty, err := model.ParseQuantity(qtyStr)
	if err != nil {
		return false, NewHTTPError(http.StatusBadRequest, MsgInvalidQuantity)
	}
	if qty == 0 {
		return false, nil
	}
	if strings.TrimSpace(in.ProductID) == "" {
		return false, NewHTTPError(http.StatusBadRequest, MsgInvalidProductID)
	}

	item := model.CartLineItem{
		ProductID: in.ProductID,
		Color:     in.Color,
		Quantity:  qty,
	}

	mu := u.lockFor(sessionID)
	mu.Lock()
	defer mu.Unlock()

	store := NewCartStore(u.stores.ForNamespace(sessionID), u.log)
	if err := store.Upsert(ctx, item); err != nil {
		if errors.Is(err, model.ErrInvalidLineItem) {
			return false, NewHTTPError(http.StatusBadRequest, MsgInvalidCartItem)
		}
		u.log.Error("cart upsert failed", zap.String("session", sessionID), zap.Error(err))
		return false, NewHTTPError(http.StatusInternalServerError, "storage error")
	}

	u.log.Info("added to cart",
		zap.String("session", sessionID),
		zap.String("key", item.Key()),
		zap.Int64("quantity", int64(qty)),
	)
	return true, nil
}

// GetCart はセッションのカートを商品情報つきで返す。
// カタログから取れない商品は合計に含めない。
func (u *CartUsecase) GetCart(ctx context.Context, sessionID string) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "no cart session")
	}

	lines, err := NewCartStore(u.stores.ForNamespace(sessionID), u.log).Lines(ctx)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}

	out := CartResponse{Items: make([]CartItemResponse, 0, len(lines))}
	cache := make(map[string]model.Product)

	for _, it := range lines {
		row := CartItemResponse{
			ProductID: it.ProductID,
			Color:     it.Color,
			Quantity:  int64(it.Quantity),
		}
		out.TotalQuantity += row.Quantity

		p, ok := cache[it.ProductID]
		if !ok && u.products != nil {
			fetched, err := u.products.FetchProduct(ctx, it.ProductID)
			if err != nil {
				u.log.Warn("cart product unavailable", zap.String("id", it.ProductID), zap.Error(err))
			} else {
				p, ok = fetched, true
				cache[it.ProductID] = fetched
			}
		}
		if ok {
			row.Name = p.Name
			row.Price = p.Price
			row.ImageURL = p.ImageURL
			row.AltTxt = p.AltTxt
			out.Total += p.Price * row.Quantity
		}

		out.Items = append(out.Items, row)
	}
	return out, nil
}

func (u *CartUsecase) lockFor(sessionID string) *sync.Mutex {
	return &u.locks[lockStripe(sessionID)]
}

func lockStripe(sessionID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return int(h.Sum32() % lockStripes)
}
