package handler

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"kanap/internal/domain/model"
	"kanap/internal/usecase"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"product.html", "cart.html", "index.html"}

// echo.Renderer（ページごとにlayoutと組み合わせる）
type TemplateRenderer struct {
	pages map[string]*template.Template
}

func NewTemplateRenderer() (*TemplateRenderer, error) {
	r := &TemplateRenderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}
	return t.ExecuteTemplate(w, name, data)
}

// テンプレートに渡す値
type pageData struct {
	Lang      string
	PageTitle string
	Notice    string

	Page     usecase.ProductPage
	Cart     cartView
	Products []model.Product
}

type cartView struct {
	Items         []cartItemView
	TotalQuantity int64
	Total         int64
}

type cartItemView struct {
	usecase.CartItemResponse
	ColorLabel string
}
