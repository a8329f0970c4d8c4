package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// New はenvに合わせたzapロガーを作る（devは読みやすい形式、それ以外はJSON）
// levelが空ならinfo
func New(env string, level string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "dev" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	lvl, err := zap.ParseAtomicLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.Level = lvl

	return cfg.Build()
}
