package server

import (
	"kanap/internal/handler"
	"kanap/internal/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type PageServerDeps struct {
	Products      *handler.ProductPageHandler
	Cart          *handler.CartHandler
	Renderer      echo.Renderer
	SessionSecret string
	SecureCookie  bool
}

// 商品ページ・カートページ
func NewPageServer(deps PageServerDeps, log *zap.Logger) *echo.Echo {
	e := newEcho(log)
	e.Renderer = deps.Renderer
	e.Use(middleware.CartSession(deps.SessionSecret, deps.SecureCookie))

	deps.Products.RegisterRoutes(e)
	deps.Cart.RegisterRoutes(e)
	return e
}

// カタログAPI（/api/products）
func NewCatalogServer(catalog *handler.CatalogHandler, log *zap.Logger) *echo.Echo {
	e := newEcho(log)
	catalog.RegisterRoutes(e)
	return e
}
