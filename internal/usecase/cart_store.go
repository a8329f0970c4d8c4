package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"kanap/internal/domain/model"
	repo "kanap/internal/repository"

	"go.uber.org/zap"
)

// CartStore は1つの保存領域にカート明細を保存する。
// 明細は "{productId}-{color}" のキーで1件だけ持つ。
type CartStore struct {
	kv  repo.KVStore
	log *zap.Logger
}

func NewCartStore(kv repo.KVStore, log *zap.Logger) *CartStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &CartStore{kv: kv, log: log}
}

// Upsert は明細を追加する（同じ商品・カラーは数量加算）。
// 読めない値（他のデータ・壊れたJSON）は無視して続ける。
func (s *CartStore) Upsert(ctx context.Context, item model.CartLineItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	key := item.Key()

	entries, err := s.kv.Entries(ctx)
	if err != nil {
		// 読めない場合は既存なしとして書き込む
		s.log.Warn("cart scan failed", zap.String("key", key), zap.Error(err))
		entries = nil
	}

	for _, e := range entries {
		existing, ok := model.ParseLineItem(e.Value)
		if !ok {
			s.log.Debug("skip foreign cart entry", zap.String("key", e.Key))
			continue
		}
		if existing.Key() == key {
			sum, err := model.AddQuantity(existing.Quantity, item.Quantity)
			if err != nil {
				return fmt.Errorf("merge %s: %w", key, err)
			}
			item.Quantity = sum
			break
		}
	}

	b, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode cart item: %w", err)
	}
	if err := s.kv.Set(ctx, key, string(b)); err != nil {
		return fmt.Errorf("store cart item %s: %w", key, err)
	}
	return nil
}

// Lines は保存済みの明細をキー順に返す。
// 保存キーと中身のキーが一致しないものは明細として扱わない。
func (s *CartStore) Lines(ctx context.Context) ([]model.CartLineItem, error) {
	entries, err := s.kv.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cart entries: %w", err)
	}

	out := make([]model.CartLineItem, 0, len(entries))
	for _, e := range entries {
		item, ok := model.ParseLineItem(e.Value)
		if !ok || item.Key() != e.Key {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out, nil
}
