package visits

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// fakeBin mimics a jsonbin document holding {"visits": N}.
type fakeBin struct {
	mu      sync.Mutex
	visits  int64
	keys    []string
	methods []string
}

func (b *fakeBin) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.keys = append(b.keys, r.Header.Get(MasterKeyHeader))
	b.methods = append(b.methods, r.Method)

	switch r.Method {
	case http.MethodGet:
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"record":{"visits":`+strconv.FormatInt(b.visits, 10)+`},"metadata":{"id":"bin"}}`)
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		v := gjson.GetBytes(body, "visits")
		if r.Header.Get("Content-Type") != "application/json" || v.Type != gjson.Number {
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}
		b.visits = v.Int()
		_, _ = io.WriteString(w, `{"record":{"visits":`+strconv.FormatInt(b.visits, 10)+`}}`)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func TestRemoteCounterIncrement(t *testing.T) {
	bin := &fakeBin{visits: 41}
	server := httptest.NewServer(bin)
	defer server.Close()

	counter := NewRemoteCounter(server.Client(), server.URL, "secret")

	n, err := counter.Increment(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
	assert.Equal(t, int64(42), bin.visits)
	assert.Equal(t, []string{http.MethodGet, http.MethodPut}, bin.methods)
	assert.Equal(t, []string{"secret", "secret"}, bin.keys)

	n, err = counter.Increment(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(43), n)
}

func TestRemoteCounterErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "fetch status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			},
		},
		{
			name: "missing visits field",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, `{"record":{}}`)
			},
		},
		{
			name: "non-numeric visits",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, `{"record":{"visits":"many"}}`)
			},
		},
		{
			name: "store status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if r.Method == http.MethodPut {
					http.Error(w, "boom", http.StatusInternalServerError)
					return
				}
				_, _ = io.WriteString(w, `{"record":{"visits":1}}`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := NewRemoteCounter(server.Client(), server.URL, "k").Increment(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestRemoteCounterUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewRemoteCounter(nil, url, "k").Increment(context.Background())
	assert.Error(t, err)
}
