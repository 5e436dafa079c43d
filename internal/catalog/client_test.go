package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ListProducts(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/products", r.URL.Path)
			assert.Equal(t, "Bearer cms-token", r.Header.Get("Authorization"))
			w.Write([]byte(`{"products":[
				{"id":"samoosa","title":"Chicken Samoosa","price_by_region":{"durban":10,"joburg":12},"unit":"dozen","category":"Savouries","regions":["durban","joburg"],"active":true},
				{"id":"roti","title":"Roti","price_by_region":{"durban":5},"category":"Breads","regions":["durban"],"active":true}
			]}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "cms-token")
		products, err := client.ListProducts(context.Background())

		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "Chicken Samoosa", products[0].Title)
		assert.Equal(t, "Savouries", products[0].Category)
	})

	t.Run("Non-200 surfaces error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "")
		_, err := client.ListProducts(context.Background())
		assert.Error(t, err)
	})
}

func TestClient_GetProduct(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "")
		_, err := client.GetProduct(context.Background(), "ghost")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/products/samoosa", r.URL.Path)
			w.Write([]byte(`{"id":"samoosa","title":"Chicken Samoosa","price_by_region":{"durban":10},"category":"Savouries","active":true}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "")
		p, err := client.GetProduct(context.Background(), "samoosa")
		require.NoError(t, err)
		assert.Equal(t, "Chicken Samoosa", p.Title)
	})
}

func TestClient_CategoriesByTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products":[
			{"id":"samoosa","title":"Chicken Samoosa","category":"Savouries"},
			{"id":"roti","title":"Roti","category":"Breads"}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	categories, err := client.CategoriesByTitle(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Savouries", categories["Chicken Samoosa"])
	assert.Equal(t, "Breads", categories["Roti"])
}

func TestProduct_PriceFor(t *testing.T) {
	p := &Product{Prices: map[string]float64{"durban": 10, "joburg": 12}}

	price, ok := p.PriceFor("durban")
	assert.True(t, ok)
	assert.Equal(t, 10.0, price)

	_, ok = p.PriceFor("capetown")
	assert.False(t, ok)

	single := &Product{Prices: map[string]float64{"durban": 5}}
	price, ok = single.PriceFor("capetown")
	assert.True(t, ok)
	assert.Equal(t, 5.0, price)
}
