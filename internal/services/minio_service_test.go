package services

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedPut struct {
	path        string
	contentType string
	body        []byte
}

func newObjectStoreServer(t *testing.T) (*httptest.Server, func() []recordedPut) {
	t.Helper()
	var (
		mu   sync.Mutex
		puts []recordedPut
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			body, _ := io.ReadAll(r.Body)
			mu.Lock()
			puts = append(puts, recordedPut{path: r.URL.Path, contentType: r.Header.Get("Content-Type"), body: body})
			mu.Unlock()
			w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	return srv, func() []recordedPut {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedPut(nil), puts...)
	}
}

func TestMinioService_UploadSendsObject(t *testing.T) {
	srv, puts := newObjectStoreServer(t)
	store, err := NewMinioService(strings.TrimPrefix(srv.URL, "http://"), "access", "secret", "us-east-1", false)
	require.NoError(t, err)

	data := []byte("Item Name,SKU\n")
	err = store.Upload(context.Background(), "stockroom-reports", "reports/inventory_summary/a.csv",
		bytes.NewReader(data), int64(len(data)), "text/csv; charset=utf-8")
	require.NoError(t, err)

	recorded := puts()
	require.Len(t, recorded, 1)
	assert.Equal(t, "/stockroom-reports/reports/inventory_summary/a.csv", recorded[0].path)
	assert.Equal(t, "text/csv; charset=utf-8", recorded[0].contentType)
	assert.Contains(t, string(recorded[0].body), "Item Name,SKU")
}

func TestMinioService_PresignedURL(t *testing.T) {
	store, err := NewMinioService("objects.example.com:9000", "access", "secret", "us-east-1", false)
	require.NoError(t, err)

	raw, err := store.GetPresignedURL(context.Background(), "stockroom-reports", "reports/reorder_list/r.pdf", 15*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "objects.example.com:9000", u.Host)
	assert.Equal(t, "/stockroom-reports/reports/reorder_list/r.pdf", u.Path)
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}
