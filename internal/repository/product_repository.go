package repository

import (
	"context"
	"errors"

	"kanap/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id string) (model.Product, error)
	Create(ctx context.Context, p model.Product) (model.Product, error)
	Count(ctx context.Context) (int64, error)
}

// カタログAPIから商品を取ってくる約束（商品ページ側）
type ProductFetcher interface {
	FetchProduct(ctx context.Context, id string) (model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
}
