package shopapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techcart/storefront/internal/adapter/shopapi"
	"github.com/techcart/storefront/internal/core/domain"
)

const reqTimeout = 2 * time.Second

func newClient(t *testing.T, handler http.Handler) *shopapi.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return shopapi.New(srv.URL, reqTimeout)
}

func TestFetchCategories(t *testing.T) {
	cl := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/categories", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]map[string]string{
			{"slug": "cpu", "name": "Processors"},
			{"slug": "gpu", "name": "Graphics"},
		})
	}))

	cs, err := cl.FetchCategories(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []domain.Category{
		{Slug: "cpu", Name: "Processors"},
		{Slug: "gpu", Name: "Graphics"},
	}, cs)
}

func TestFetchProducts(t *testing.T) {
	t.Run("SendsBothParams", func(t *testing.T) {
		cl := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/products", r.URL.Path)
			q := r.URL.Query()
			assert.Equal(t, "Ryzen", q.Get("q"))
			assert.Equal(t, "cpu", q.Get("category"))
			_ = json.NewEncoder(w).Encode([]map[string]any{
				{"id": 1, "name": "Ryzen 7", "price": 299.99, "category": "cpu"},
			})
		}))

		ps, err := cl.FetchProducts(t.Context(), domain.CatalogQuery{
			Term: "Ryzen", Category: "cpu",
		})
		require.NoError(t, err)
		require.Len(t, ps, 1)
		assert.Equal(t, domain.Product{
			ID: 1, Name: "Ryzen 7", Price: 299.99, Category: "cpu",
		}, ps[0])
	})

	t.Run("OmitsEmptyParams", func(t *testing.T) {
		cl := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.False(t, q.Has("q"))
			assert.False(t, q.Has("category"))
			_ = json.NewEncoder(w).Encode([]map[string]any{})
		}))

		_, err := cl.FetchProducts(t.Context(), domain.CatalogQuery{})
		require.NoError(t, err)
	})

	t.Run("OmitsAllCategory", func(t *testing.T) {
		cl := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.False(t, r.URL.Query().Has("category"))
			_ = json.NewEncoder(w).Encode([]map[string]any{})
		}))

		_, err := cl.FetchProducts(t.Context(), domain.CatalogQuery{
			Category: domain.CategoryAll,
		})
		require.NoError(t, err)
	})

	t.Run("RetriesServerErrors", func(t *testing.T) {
		var attempts atomic.Int32
		cl := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if attempts.Add(1) == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_ = json.NewEncoder(w).Encode([]map[string]any{
				{"id": 1, "name": "Ryzen 7"},
			})
		}))

		ps, err := cl.FetchProducts(t.Context(), domain.CatalogQuery{})
		require.NoError(t, err)
		assert.Len(t, ps, 1)
		assert.Equal(t, int32(2), attempts.Load())
	})

	t.Run("NoRetryOnClientError", func(t *testing.T) {
		var attempts atomic.Int32
		cl := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts.Add(1)
			w.WriteHeader(http.StatusBadRequest)
		}))

		_, err := cl.FetchProducts(t.Context(), domain.CatalogQuery{})
		require.Error(t, err)

		var se shopapi.StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusBadRequest, se.Code)
		assert.Equal(t, int32(1), attempts.Load())
	})
}

func TestCreateCartItem(t *testing.T) {
	t.Run("CarriesBearerToken", func(t *testing.T) {
		cl := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/cart", r.URL.Path)
			assert.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]int
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, 7, body["product_id"])
			assert.Equal(t, 2, body["quantity"])

			w.WriteHeader(http.StatusCreated)
		}))

		err := cl.CreateCartItem(t.Context(),
			domain.CartRequest{ProductID: 7, Quantity: 2}, "tok-abc")
		require.NoError(t, err)
	})

	t.Run("RejectedStatus", func(t *testing.T) {
		cl := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))

		err := cl.CreateCartItem(t.Context(),
			domain.CartRequest{ProductID: 7, Quantity: 1}, "stale-token")
		require.Error(t, err)

		var se shopapi.StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusUnauthorized, se.Code)
	})
}

func TestLoginUser(t *testing.T) {
	t.Run("FormEncodedSuccess", func(t *testing.T) {
		cl := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/auth/login", r.URL.Path)
			assert.Equal(t,
				"application/x-www-form-urlencoded",
				r.Header.Get("Content-Type"),
			)
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "alice", r.PostForm.Get("username"))
			assert.Equal(t, "secret", r.PostForm.Get("password"))

			_ = json.NewEncoder(w).Encode(map[string]string{
				"access_token": "tok-xyz",
			})
		}))

		token, err := cl.LoginUser(t.Context(), "alice", "secret")
		require.NoError(t, err)
		assert.Equal(t, "tok-xyz", token)
	})

	t.Run("ServerDetailSurfaced", func(t *testing.T) {
		cl := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"detail": "Incorrect credentials",
			})
		}))

		_, err := cl.LoginUser(t.Context(), "alice", "wrong")
		require.Error(t, err)

		var ae domain.AuthError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, "Incorrect credentials", ae.Detail)
	})

	t.Run("GenericFallbackDetail", func(t *testing.T) {
		cl := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))

		_, err := cl.LoginUser(t.Context(), "alice", "")
		require.Error(t, err)

		var ae domain.AuthError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, "login failed", ae.Detail)
	})

	t.Run("EmptyTokenRejected", func(t *testing.T) {
		cl := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{})
		}))

		_, err := cl.LoginUser(t.Context(), "alice", "secret")
		require.Error(t, err)
		assert.ErrorIs(t, err, shopapi.ErrEmptyToken)
	})
}

func TestRegisterUser(t *testing.T) {
	t.Run("JSONBody", func(t *testing.T) {
		cl := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/auth/register", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "bob", body["username"])
			assert.Equal(t, "bob@example.com", body["email"])
			assert.Equal(t, "pw", body["password"])

			w.WriteHeader(http.StatusCreated)
		}))

		err := cl.RegisterUser(t.Context(), "bob", "bob@example.com", "pw")
		require.NoError(t, err)
	})

	t.Run("DetailSurfaced", func(t *testing.T) {
		cl := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"detail": "username taken",
			})
		}))

		err := cl.RegisterUser(t.Context(), "bob", "bob@example.com", "pw")
		require.Error(t, err)

		var ae domain.AuthError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, "username taken", ae.Detail)
	})
}
