package repository

import "context"

// 保存領域の1件
type KVPair struct {
	Key   string
	Value string
}

// キー/値ストアの約束（ブラウザの localStorage 相当）
// 他のデータが同じ領域に入っていることがある
type KVStore interface {
	// 無ければ ok=false
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// 同じキーは上書き
	Set(ctx context.Context, key string, value string) error
	// 全件（キー順）
	Entries(ctx context.Context) ([]KVPair, error)
}

// セッションごとのストアを払い出す
type KVStoreFactory interface {
	ForNamespace(namespace string) KVStore
}
