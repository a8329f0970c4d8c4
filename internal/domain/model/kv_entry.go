package model

// キー/値ストアの1行
// Namespace はカートセッションごとに分ける（ブラウザ1つ分の保存領域）
type KVEntry struct {
	Namespace string `gorm:"primaryKey;type:varchar(64)"`
	Key       string `gorm:"primaryKey;type:varchar(255)"`
	Value     string `gorm:"type:text;not null"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
