package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"kanap/internal/config"
	"kanap/internal/handler"
	"kanap/internal/infra/db"
	infraRepo "kanap/internal/infra/repository"
	"kanap/internal/logger"
	"kanap/internal/server"
	"kanap/internal/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
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

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal("db connect", zap.Error(err))
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal("db migrate", zap.Error(err))
	}

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e := server.NewCatalogServer(handler.NewCatalogHandler(usecase.NewProductUsecase(productRepo)), log)
	e.Static("/images", "images")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(ctx, e, cfg.CatalogAddr(), log)
	})
	//空なら初期カタログを投入（失敗したらサーバーも止める）
	g.Go(func() error {
		n, err := db.Seed(ctx, productRepo)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		if n > 0 {
			log.Info("catalog seeded", zap.Int("products", n))
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Fatal("server", zap.Error(err))
	}
}
