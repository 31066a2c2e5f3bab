package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
			var in map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			_ = json.NewEncoder(w).Encode(map[string]any{"echo": in["msg"]})
		case "/fail":
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte("slow down"))
		case "/garbage":
			_, _ = w.Write([]byte("{not json"))
		}
	}))
	defer srv.Close()

	cli := NewClient(time.Second)
	ctx := context.Background()

	var out struct {
		Echo string `json:"echo"`
	}
	err := DoJSON(ctx, cli, Request{Method: http.MethodPost, URL: srv.URL + "/ok", Bearer: "secret", Body: map[string]string{"msg": "hi"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, "hi", out.Echo)

	err = DoJSON(ctx, cli, Request{Method: http.MethodGet, URL: srv.URL + "/fail"}, &out)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusTooManyRequests, statusErr.Code)
	assert.Equal(t, "slow down", statusErr.Body)

	err = DoJSON(ctx, cli, Request{Method: http.MethodGet, URL: srv.URL + "/garbage"}, &out)
	assert.Error(t, err)

	assert.NoError(t, DoJSON(ctx, cli, Request{Method: http.MethodGet, URL: srv.URL + "/garbage"}, nil))
}

func TestDoJSON_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	err := DoJSON(context.Background(), NewClient(20*time.Millisecond), Request{Method: http.MethodGet, URL: srv.URL}, nil)
	assert.Error(t, err)
}
