package kvstore

import (
	"context"
	"errors"

	"kanap/internal/domain/model"
	repo "kanap/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// kv_entries テーブルを namespace で区切って使うストア
type GormStore struct {
	db        *gorm.DB
	namespace string
}

// DI
func NewGormStore(db *gorm.DB, namespace string) *GormStore {
	return &GormStore{db: db, namespace: namespace}
}

func (s *GormStore) Get(ctx context.Context, key string) (string, bool, error) {
	var e model.KVEntry

	err := s.db.WithContext(ctx).
		Where("namespace = ? AND key = ?", s.namespace, key).
		First(&e).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return e.Value, true, nil
}

// 同じ (namespace, key) は上書き
func (s *GormStore) Set(ctx context.Context, key string, value string) error {
	e := model.KVEntry{
		Namespace: s.namespace,
		Key:       key,
		Value:     value,
	}

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "namespace"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&e).Error
}

func (s *GormStore) Entries(ctx context.Context) ([]repo.KVPair, error) {
	var rows []model.KVEntry

	if err := s.db.WithContext(ctx).
		Where("namespace = ?", s.namespace).
		Order("key asc").
		Find(&rows).Error; err != nil {
		return []repo.KVPair{}, err
	}

	out := make([]repo.KVPair, 0, len(rows))
	for _, r := range rows {
		out = append(out, repo.KVPair{Key: r.Key, Value: r.Value})
	}
	return out, nil
}

type GormFactory struct {
	db *gorm.DB
}

func NewGormFactory(db *gorm.DB) *GormFactory {
	return &GormFactory{db: db}
}

func (f *GormFactory) ForNamespace(namespace string) repo.KVStore {
	return NewGormStore(f.db, namespace)
}
