package db

import (
	"context"
	_ "embed"
	"fmt"

	"kanap/internal/domain/model"
	repo "kanap/internal/repository"

	"gopkg.in/yaml.v3"
)

//go:embed products.yaml
var seedProducts []byte

type seedProduct struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Price       int64    `yaml:"price"`
	Description string   `yaml:"description"`
	ImageURL    string   `yaml:"imageUrl"`
	AltTxt      string   `yaml:"altTxt"`
	Colors      []string `yaml:"colors"`
}

// SeedProducts は埋め込みのカタログを読む。
func SeedProducts() ([]model.Product, error) {
	var rows []seedProduct
	if err := yaml.Unmarshal(seedProducts, &rows); err != nil {
		return nil, fmt.Errorf("parse products.yaml: %w", err)
	}

	out := make([]model.Product, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.Product{
			ID:          r.ID,
			Name:        r.Name,
			Price:       r.Price,
			Description: r.Description,
			ImageURL:    r.ImageURL,
			AltTxt:      r.AltTxt,
			Colors:      r.Colors,
		})
	}
	return out, nil
}

// Seed は商品が1件も無いときだけカタログを投入する。
func Seed(ctx context.Context, products repo.ProductRepository) (int, error) {
	n, err := products.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	rows, err := SeedProducts()
	if err != nil {
		return 0, err
	}
	for _, p := range rows {
		if _, err := products.Create(ctx, p); err != nil {
			return 0, fmt.Errorf("seed product %s: %w", p.ID, err)
		}
	}
	return len(rows), nil
}
