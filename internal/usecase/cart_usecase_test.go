package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"kanap/internal/domain/model"
	"kanap/internal/infra/kvstore"
	"kanap/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func assertHTTPStatus(t *testing.T, err error, status int) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "want HTTPError, got %v", err)
	assert.Equal(t, status, he.Status)
}

func TestCartUsecase_AddToCart_Success(t *testing.T) {
	ctx := context.Background()
	stores := kvstore.NewMemoryFactory()
	uc := usecase.NewCartUsecase(stores, new(ProductFetcherMock), nil)

	added, err := uc.AddToCart(ctx, "s1", usecase.AddToCartInput{ProductID: "42", Color: "green", Quantity: "1"})
	require.NoError(t, err)
	assert.True(t, added)

	added, err = uc.AddToCart(ctx, "s1", usecase.AddToCartInput{ProductID: "42", Color: "green", Quantity: "4"})
	require.NoError(t, err)
	assert.True(t, added)

	v, ok, err := stores.ForNamespace("s1").Get(ctx, "42-green")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"id":"42","color":"green","quantity":5}`, v)

	// 別セッションには入らない
	_, ok, _ = stores.ForNamespace("s2").Get(ctx, "42-green")
	assert.False(t, ok)
}

func TestCartUsecase_AddToCart_RejectsTooLargeQuantity(t *testing.T) {
	ctx := context.Background()
	stores := kvstore.NewMemoryFactory()
	uc := usecase.NewCartUsecase(stores, new(ProductFetcherMock), nil)

	for _, q := range []string{"101", "9223372036854775807"} {
		_, err := uc.AddToCart(ctx, "s1", usecase.AddToCartInput{ProductID: "42", Color: "Green", Quantity: q})
		assertHTTPStatus(t, err, http.StatusBadRequest)
	}
	_, ok, err := stores.ForNamespace("s1").Get(ctx, "42-Green")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCartUsecase_AddToCart_KeepsStoredQuantityOnOverflow(t *testing.T) {
	ctx := context.Background()
	stores := kvstore.NewMemoryFactory()
	stored := `{"id":"42","color":"Green","quantity":9223372036854775807}`
	require.NoError(t, stores.ForNamespace("s1").Set(ctx, "42-Green", stored))
	uc := usecase.NewCartUsecase(stores, new(ProductFetcherMock), nil)

	_, err := uc.AddToCart(ctx, "s1", usecase.AddToCartInput{ProductID: "42", Color: "Green", Quantity: "1"})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	v, _, _ := stores.ForNamespace("s1").Get(ctx, "42-Green")
	assert.Equal(t, stored, v)
}

func TestCartUsecase_AddToCart_NoOpWhenNotSelected(t *testing.T) {
	ctx := context.Background()
	stores := kvstore.NewMemoryFactory()
	uc := usecase.NewCartUsecase(stores, new(ProductFetcherMock), nil)

	cases := []usecase.AddToCartInput{
		{ProductID: "42", Color: "", Quantity: "3"},
		{ProductID: "42", Color: "green", Quantity: "0"},
		{ProductID: "42", Color: "green", Quantity: ""},
		{ProductID: "42", Color: "green", Quantity: "00"},
	}
	for _, in := range cases {
		added, err := uc.AddToCart(ctx, "s1", in)
		assert.NoError(t, err)
		assert.False(t, added)
	}

	entries, err := stores.ForNamespace("s1").Entries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCartUsecase_AddToCart_InvalidInput(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCartUsecase(kvstore.NewMemoryFactory(), new(ProductFetcherMock), nil)

	_, err := uc.AddToCart(ctx, "s1", usecase.AddToCartInput{ProductID: "42", Color: "green", Quantity: "abc"})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	_, err = uc.AddToCart(ctx, "s1", usecase.AddToCartInput{ProductID: "42", Color: "green", Quantity: "-3"})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	_, err = uc.AddToCart(ctx, "s1", usecase.AddToCartInput{ProductID: " ", Color: "green", Quantity: "1"})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	_, err = uc.AddToCart(ctx, "", usecase.AddToCartInput{ProductID: "42", Color: "green", Quantity: "1"})
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestCartUsecase_AddToCart_ConcurrentSameSession(t *testing.T) {
	ctx := context.Background()
	stores := kvstore.NewMemoryFactory()
	uc := usecase.NewCartUsecase(stores, new(ProductFetcherMock), nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.AddToCart(ctx, "s1", usecase.AddToCartInput{ProductID: "1", Color: "Blue", Quantity: "2"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	v, _, err := stores.ForNamespace("s1").Get(ctx, "1-Blue")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","color":"Blue","quantity":100}`, v)
}

func TestCartUsecase_GetCart(t *testing.T) {
	ctx := context.Background()
	stores := kvstore.NewMemoryFactory()
	fetcher := new(ProductFetcherMock)
	uc := usecase.NewCartUsecase(stores, fetcher, nil)

	fetcher.On("FetchProduct", mock.Anything, "1").
		Return(model.Product{ID: "1", Name: "Kanap Sinopé", Price: 1849}, nil).Once()
	fetcher.On("FetchProduct", mock.Anything, "gone").
		Return(model.Product{}, errors.New("unreachable")).Once()

	for _, in := range []usecase.AddToCartInput{
		{ProductID: "1", Color: "Blue", Quantity: "2"},
		{ProductID: "1", Color: "White", Quantity: "1"},
		{ProductID: "gone", Color: "Red", Quantity: "3"},
	} {
		_, err := uc.AddToCart(ctx, "s1", in)
		require.NoError(t, err)
	}

	out, err := uc.GetCart(ctx, "s1")
	require.NoError(t, err)

	require.Len(t, out.Items, 3)
	assert.Equal(t, "1", out.Items[0].ProductID)
	assert.Equal(t, "Blue", out.Items[0].Color)
	assert.Equal(t, "Kanap Sinopé", out.Items[0].Name)
	assert.Equal(t, "", out.Items[2].Name)
	assert.Equal(t, int64(6), out.TotalQuantity)
	assert.Equal(t, int64(1849*3), out.Total)

	// 同じ商品は1回だけ取得
	fetcher.AssertExpectations(t)
}

func TestCartUsecase_GetCart_Empty(t *testing.T) {
	uc := usecase.NewCartUsecase(kvstore.NewMemoryFactory(), new(ProductFetcherMock), nil)

	out, err := uc.GetCart(context.Background(), "fresh")
	require.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Equal(t, int64(0), out.Total)
}
