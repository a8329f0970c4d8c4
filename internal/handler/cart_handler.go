package handler

import (
	"net/http"

	"kanap/internal/colors"
	"kanap/internal/middleware"
	"kanap/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cart.html と /api/cart
type CartHandler struct {
	uc     *usecase.CartUsecase
	colors *colors.Table
	lang   string
}

// DI
func NewCartHandler(uc *usecase.CartUsecase, table *colors.Table, lang string) *CartHandler {
	if table == nil {
		table = colors.Default()
	}
	return &CartHandler{uc: uc, colors: table, lang: lang}
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/cart.html", h.page)
	e.GET("/api/cart", h.getCart)
}

func (h *CartHandler) page(c echo.Context) error {
	sid, ok := middleware.SessionID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no cart session"})
	}

	out, err := h.uc.GetCart(c.Request().Context(), sid)
	if err != nil {
		return writeError(c, err)
	}

	view := cartView{
		Items:         make([]cartItemView, 0, len(out.Items)),
		TotalQuantity: out.TotalQuantity,
		Total:         out.Total,
	}
	for _, it := range out.Items {
		view.Items = append(view.Items, cartItemView{
			CartItemResponse: it,
			ColorLabel:       h.colors.Translate(it.Color, "eng", h.lang),
		})
	}

	return c.Render(http.StatusOK, "cart.html", pageData{
		Lang:      h.lang,
		PageTitle: "Panier",
		Cart:      view,
	})
}

func (h *CartHandler) getCart(c echo.Context) error {
	sid, ok := middleware.SessionID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no cart session"})
	}

	out, err := h.uc.GetCart(c.Request().Context(), sid)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
