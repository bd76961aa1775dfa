package skipapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DukeRupert/skipwizard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c, err := New(Config{
		BaseURL:  baseURL,
		Postcode: "NR32",
		Area:     "Lowestoft",
		Timeout:  2 * time.Second,
	}, logger)
	require.NoError(t, err)
	return c
}

func TestNew_RequiresPostcode(t *testing.T) {
	_, err := New(Config{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}

func TestNew_Defaults(t *testing.T) {
	c, err := New(Config{Postcode: "NR32"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.config.BaseURL)
	assert.Equal(t, DefaultTimeout, c.client.Timeout)
}

func TestListSkips_Success(t *testing.T) {
	var gotQuery, gotAccept, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQuery = r.URL.RawQuery
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":1,"size":4,"hire_period_days":7,"price_before_vat":200,"vat":20,"allowed_on_road":true}]`)
	}))
	defer srv.Close()

	skips, err := newTestClient(t, srv.URL).ListSkips(context.Background())
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "area=Lowestoft&postcode=NR32", gotQuery)
	assert.Equal(t, "application/json", gotAccept)

	require.Len(t, skips, 1)
	assert.Equal(t, int64(1), skips[0].ID)
	assert.Equal(t, 4, skips[0].Size)
	assert.Equal(t, 240, skips[0].FinalPrice())
}

func TestListSkips_EmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `null`)
	}))
	defer srv.Close()

	skips, err := newTestClient(t, srv.URL).ListSkips(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, skips)
	assert.Empty(t, skips)
}

func TestListSkips_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, `{"skips": "nope"`)
			},
		},
		{
			name: "object instead of list",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, `{"id": 1}`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			skips, err := newTestClient(t, srv.URL).ListSkips(context.Background())
			assert.Nil(t, skips)
			require.Error(t, err)
			assert.Equal(t, domain.EUNAVAILABLE, domain.ErrorCode(err))
		})
	}
}

func TestListSkips_NetworkRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(t, url).ListSkips(context.Background())
	require.Error(t, err)
	assert.Equal(t, domain.EUNAVAILABLE, domain.ErrorCode(err))
}

func TestListSkips_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(t, srv.URL).ListSkips(ctx)
	require.Error(t, err)
	assert.Equal(t, domain.EUNAVAILABLE, domain.ErrorCode(err))
	assert.ErrorIs(t, err, context.Canceled)
}
