package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Configはアプリ全体の設定
type Config struct {
	Port        string // 商品ページのポート（8080）
	CatalogPort string // カタログAPIのポート（3000）

	CatalogBaseURL string        // 商品ページが商品を取りに行くURL
	CatalogTimeout time.Duration // 商品取得のタイムアウト

	PageLang     string // ページの言語（fr）
	CartPagePath string // カート追加後の移動先

	SessionSecret string // カートセッションcookieの署名シークレット
	CartStore     string // postgres / memory

	GoEnv    string // dev/prod
	LogLevel string
}

const (
	CartStorePostgres = "postgres"
	CartStoreMemory   = "memory"
)

// devだけで使う署名シークレット
const devSessionSecret = "dev_secret_change_me"

// Loadは環境変数
func Load() (Config, error) {
	timeoutMS, err := atoiDefault("CATALOG_TIMEOUT_MS", 5000)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:        getenv("PORT", "8080"),
		CatalogPort: getenv("CATALOG_PORT", "3000"),

		CatalogBaseURL: getenv("CATALOG_BASE_URL", "http://localhost:3000"),
		CatalogTimeout: time.Duration(timeoutMS) * time.Millisecond,

		PageLang:     getenv("PAGE_LANG", "fr"),
		CartPagePath: getenv("CART_PAGE_PATH", "/cart.html"),

		SessionSecret: os.Getenv("SESSION_SECRET"),
		CartStore:     getenv("CART_STORE", CartStorePostgres),

		GoEnv:    getenv("GO_ENV", "dev"),
		LogLevel: getenv("LOG_LEVEL", "info"),
	}

	//必須チェック
	if cfg.SessionSecret == "" {
		if cfg.GoEnv != "dev" {
			return Config{}, fmt.Errorf("SESSION_SECRET is required")
		}
		cfg.SessionSecret = devSessionSecret
	}
	if timeoutMS <= 0 {
		return Config{}, fmt.Errorf("CATALOG_TIMEOUT_MS must be positive")
	}
	switch cfg.CartStore {
	case CartStorePostgres, CartStoreMemory:
	default:
		return Config{}, fmt.Errorf("CART_STORE must be %s or %s", CartStorePostgres, CartStoreMemory)
	}

	return cfg, nil
}

func (c Config) Addr() string {
	return listenAddr(c.Port)
}

func (c Config) CatalogAddr() string {
	return listenAddr(c.CatalogPort)
}

// "8080" でも ":8080" でも受ける
func listenAddr(port string) string {
	if port != "" && port[0] == ':' {
		return port
	}
	return ":" + port
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
