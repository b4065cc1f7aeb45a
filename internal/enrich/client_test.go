package enrich

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefolioapp/storefolio-server/internal/domain"
)

func testStore(name string) *domain.Store {
	s := &domain.Store{Name: name}
	s.ID = "store-1"
	return s
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(ClientOptions{BaseURL: srv.URL, RequestsPerSecond: 1000})
}

func TestClient_Enrich(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/stores", r.URL.Path)
		assert.Equal(t, "Acme Supply", r.URL.Query().Get("name"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"description": "Small-batch workwear from Porto.",
			"website": "https://acme.example",
			"city": "Porto",
			"country": "Portugal",
			"tags": ["workwear"],
			"price_range": "$$"
		}`))
	})

	got, err := c.Enrich(context.Background(), testStore("Acme Supply"))
	require.NoError(t, err)
	assert.Equal(t, "Small-batch workwear from Porto.", got.Description)
	assert.Equal(t, "https://acme.example", got.Website)
	assert.Equal(t, "Porto", got.City)
	assert.Equal(t, []string{"workwear"}, got.Tags)
	assert.Equal(t, "$$", got.PriceRange)
}

func TestClient_EnrichConvertsHTMLDescriptions(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"description": "<p>Hand-made <strong>boots</strong>.</p>"}`))
	})

	got, err := c.Enrich(context.Background(), testStore("Acme"))
	require.NoError(t, err)
	assert.NotContains(t, got.Description, "<p>")
	assert.Contains(t, got.Description, "**boots**")
}

func TestClient_EnrichNoMatch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.Enrich(context.Background(), testStore("Unknown"))
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestClient_EnrichStatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
		{"bad request", http.StatusBadRequest, ErrBadRequest},
		{"server error", http.StatusInternalServerError, ErrServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			})
			_, err := c.Enrich(context.Background(), testStore("Acme"))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClient_EnrichWrapsWithOperation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.Enrich(context.Background(), testStore("Acme"))
	var enrichErr *Error
	require.ErrorAs(t, err, &enrichErr)
	assert.Equal(t, "enrich", enrichErr.Op)
	assert.Equal(t, "store-1", enrichErr.StoreID)
}

func TestClient_GenerateImage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/stores/image", r.URL.Path)
		_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
	})

	got, err := c.GenerateImage(context.Background(), testStore("Acme"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, got)
}

func TestClient_EnrichHonorsContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Enrich(ctx, testStore("Acme"))
	assert.Error(t, err)
}

func TestStubProvider(t *testing.T) {
	stub := NewStubProvider()
	stub.Add("Acme", domain.PartialStore{Website: "https://acme.example"})

	got, err := stub.Enrich(context.Background(), testStore("acme"))
	require.NoError(t, err)
	assert.Equal(t, "https://acme.example", got.Website)

	_, err = stub.Enrich(context.Background(), testStore("Unknown"))
	assert.ErrorIs(t, err, ErrNoMatch)

	stub.Err = errors.New("provider down")
	_, err = stub.Enrich(context.Background(), testStore("acme"))
	assert.EqualError(t, err, "provider down")
}
