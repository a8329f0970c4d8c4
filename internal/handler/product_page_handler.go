package handler

import (
	"net/http"
	"net/url"

	"kanap/internal/middleware"
	repo "kanap/internal/repository"
	"kanap/internal/usecase"

	"github.com/labstack/echo/v4"
)

const (
	noticeCatalogUnreachable = "Impossible de contacter le serveur, les produits ne pourront pas être affichés."
	noticeInvalidQuantity    = "La quantité doit être comprise entre 1 et 100."
	noticeInvalidItem        = "Impossible d'ajouter cet article au panier, vérifiez la couleur et la quantité."
)

// 商品ページ（/product.html）と一覧（/index.html）
type ProductPageHandler struct {
	pages    *usecase.ProductPageUsecase
	cart     *usecase.CartUsecase
	products repo.ProductFetcher
	lang     string
	cartPath string
}

// DI
func NewProductPageHandler(
	pages *usecase.ProductPageUsecase,
	cart *usecase.CartUsecase,
	products repo.ProductFetcher,
	lang string,
	cartPath string,
) *ProductPageHandler {
	return &ProductPageHandler{
		pages:    pages,
		cart:     cart,
		products: products,
		lang:     lang,
		cartPath: cartPath,
	}
}

func (h *ProductPageHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.home)
	e.GET("/index.html", h.index)
	e.GET("/product.html", h.show)
	e.POST("/product.html", h.addToCart)
}

func (h *ProductPageHandler) home(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/index.html")
}

func (h *ProductPageHandler) index(c echo.Context) error {
	data := pageData{Lang: h.lang, PageTitle: "Kanap"}

	ps, err := h.products.ListProducts(c.Request().Context())
	if err != nil {
		data.Notice = noticeCatalogUnreachable
		return c.Render(http.StatusBadGateway, "index.html", data)
	}
	data.Products = ps
	return c.Render(http.StatusOK, "index.html", data)
}

// GET /product.html?id=...
func (h *ProductPageHandler) show(c echo.Context) error {
	return h.renderProduct(c, c.QueryParam("id"), 0, "")
}

// POST /product.html（id, colors, quantity）
// 追加できたらカートページへ、未選択なら商品ページへ戻す
func (h *ProductPageHandler) addToCart(c echo.Context) error {
	sid, ok := middleware.SessionID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no cart session"})
	}

	productID := c.FormValue("id")
	added, err := h.cart.AddToCart(c.Request().Context(), sid, usecase.AddToCartInput{
		ProductID: productID,
		Color:     c.FormValue("colors"),
		Quantity:  c.FormValue("quantity"),
	})
	if err != nil {
		he, ok := usecase.AsHTTPError(err)
		if ok && he.Status == http.StatusBadRequest && productID != "" {
			return h.renderProduct(c, productID, http.StatusBadRequest, addToCartNotice(he.Message))
		}
		return writeError(c, err)
	}

	if !added {
		return c.Redirect(http.StatusSeeOther, productURL(productID))
	}
	return c.Redirect(http.StatusSeeOther, h.cartPath)
}

func addToCartNotice(msg string) string {
	if msg == usecase.MsgInvalidQuantity {
		return noticeInvalidQuantity
	}
	return noticeInvalidItem
}

// status=0 はページの状態に従う
func (h *ProductPageHandler) renderProduct(c echo.Context, productID string, status int, notice string) error {
	page, err := h.pages.GetProductPage(c.Request().Context(), productID, h.lang)
	if err != nil {
		he, ok := usecase.AsHTTPError(err)
		if !ok {
			return writeError(c, err)
		}
		return c.Render(he.Status, "product.html", pageData{
			Lang:      h.lang,
			PageTitle: "Kanap",
			Notice:    he.Message,
		})
	}

	if status == 0 {
		status = page.Status
	}
	if notice == "" {
		notice = page.Notice
	}

	return c.Render(status, "product.html", pageData{
		Lang:      h.lang,
		PageTitle: page.Title,
		Notice:    notice,
		Page:      page,
	})
}

func productURL(id string) string {
	if id == "" {
		return "/index.html"
	}
	return "/product.html?id=" + url.QueryEscape(id)
}
