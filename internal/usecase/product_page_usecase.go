package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"kanap/internal/colors"
	repo "kanap/internal/repository"

	"go.uber.org/zap"
)

// カタログの色名は英語
const catalogColorLang = "eng"

const (
	NoticeUnreachable = "Impossible de contacter le serveur, le produit ne pourra pas être affiché."
	NoticeNotFound    = "Ce produit n'existe pas."
)

// 商品ページの表示内容
type ProductPage struct {
	ProductID   string
	Lang        string
	Title       string
	Price       int64
	Description string
	ImageURL    string
	AltTxt      string
	Colors      []ColorOption

	// 取得に失敗したとき（各項目は空）
	Notice string
	Status int
}

// <option value="Value">Label</option>
type ColorOption struct {
	Value string
	Label string
}

type ProductPageUsecase struct {
	products repo.ProductFetcher
	colors   *colors.Table
	log      *zap.Logger
}

func NewProductPageUsecase(products repo.ProductFetcher, table *colors.Table, log *zap.Logger) *ProductPageUsecase {
	if table == nil {
		table = colors.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ProductPageUsecase{products: products, colors: table, log: log}
}

// GetProductPage はカタログから商品を取り、ページの各項目を作る。
// 取得失敗はエラーにせず Notice つきの空ページを返す。
func (u *ProductPageUsecase) GetProductPage(ctx context.Context, productID string, lang string) (ProductPage, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return ProductPage{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	page := ProductPage{ProductID: productID, Lang: lang, Status: http.StatusOK}

	p, err := u.products.FetchProduct(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		page.Notice = NoticeNotFound
		page.Status = http.StatusNotFound
		return page, nil
	}
	if err != nil {
		u.log.Warn("product fetch failed", zap.String("id", productID), zap.Error(err))
		page.Notice = NoticeUnreachable
		page.Status = http.StatusBadGateway
		return page, nil
	}

	page.Title = p.Name
	page.Price = p.Price
	page.Description = p.Description
	page.ImageURL = p.ImageURL
	page.AltTxt = p.AltTxt

	page.Colors = make([]ColorOption, 0, len(p.Colors))
	for _, c := range p.Colors {
		page.Colors = append(page.Colors, ColorOption{
			Value: c,
			Label: u.colors.Translate(c, catalogColorLang, lang),
		})
	}
	return page, nil
}
