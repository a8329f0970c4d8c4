package main

import (
	"context"
	"os/signal"
	"syscall"

	"kanap/internal/colors"
	"kanap/internal/config"
	"kanap/internal/handler"
	"kanap/internal/infra/catalog"
	"kanap/internal/infra/db"
	"kanap/internal/infra/kvstore"
	"kanap/internal/logger"
	repo "kanap/internal/repository"
	"kanap/internal/server"
	"kanap/internal/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	//.envは無くてもよい
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.GoEnv, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	//カートの保存先
	var stores repo.KVStoreFactory
	switch cfg.CartStore {
	case config.CartStoreMemory:
		stores = kvstore.NewMemoryFactory()
	default:
		gormDB, err := db.Connect()
		if err != nil {
			log.Fatal("db connect", zap.Error(err))
		}
		if err := db.Migrate(gormDB); err != nil {
			log.Fatal("db migrate", zap.Error(err))
		}
		stores = kvstore.NewGormFactory(gormDB)
	}

	//カタログAPIクライアント
	client := catalog.NewClient(cfg.CatalogBaseURL, cfg.CatalogTimeout)
	table := colors.Default()

	//Usecase生成
	pageUC := usecase.NewProductPageUsecase(client, table, log)
	cartUC := usecase.NewCartUsecase(stores, client, log)

	//Handler生成
	renderer, err := handler.NewTemplateRenderer()
	if err != nil {
		log.Fatal("templates", zap.Error(err))
	}
	e := server.NewPageServer(server.PageServerDeps{
		Products:      handler.NewProductPageHandler(pageUC, cartUC, client, cfg.PageLang, cfg.CartPagePath),
		Cart:          handler.NewCartHandler(cartUC, table, cfg.PageLang),
		Renderer:      renderer,
		SessionSecret: cfg.SessionSecret,
		SecureCookie:  cfg.GoEnv != "dev",
	}, log)

	//Server起動
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(ctx, e, cfg.Addr(), log)
	})
	//起動時にカタログへ届くか1回だけ確認（届かなくてもページは通知つきで返す）
	g.Go(func() error {
		ps, err := client.ListProducts(ctx)
		if err != nil {
			log.Warn("catalog unreachable at startup", zap.String("url", cfg.CatalogBaseURL), zap.Error(err))
			return nil
		}
		log.Info("catalog reachable", zap.String("url", cfg.CatalogBaseURL), zap.Int("products", len(ps)))
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Fatal("server", zap.Error(err))
	}
	client.Close()
}
