package odata

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_UnwrapsCollectionEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Catalog_Организации", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("$format"))

		username, password, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "reader", username)
		assert.Equal(t, "secret", password)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"odata.metadata": "http://host/base/$metadata#Catalog_Организации",
			"value": [{"Ref_Key": "a2edb898-b4db-11eb-7297-000c298d5e5b", "Description": "АО ЧТЭ"}]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "reader", "secret").WithRateLimit(0)
	payload, err := client.Get(context.Background(), "Catalog_Организации", nil)
	require.NoError(t, err)

	var items []struct {
		Ref  Ref    `json:"Ref_Key"`
		Name string `json:"Description"`
	}
	require.NoError(t, json.Unmarshal(payload, &items))
	require.Len(t, items, 1)
	assert.Equal(t, Ref("a2edb898-b4db-11eb-7297-000c298d5e5b"), items[0].Ref)
	assert.Equal(t, "АО ЧТЭ", items[0].Name)
}

func TestGet_KeepsCallerParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "json", r.URL.Query().Get("$format"))
		assert.Equal(t, "Number eq '0000-000045'", r.URL.Query().Get("$filter"))
		_, _ = w.Write([]byte(`{"value": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "reader", "secret").WithRateLimit(0)
	params := url.Values{}
	params.Set("$filter", "Number eq '0000-000045'")
	payload, err := client.Get(context.Background(), "Document_ТабельУчетаРабочегоВремени", params)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(payload))
}

func TestGet_ReturnsSingleEntityAsIs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Ref_Key": "b398cab2-6ae7-11eb-8358-080027d91ffd", "Description": "Рабочее время"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "reader", "secret").WithRateLimit(0)
	payload, err := client.Get(context.Background(), "Catalog_ВидыИспользованияРабочегоВремени(guid'b398cab2-6ae7-11eb-8358-080027d91ffd')", nil)
	require.NoError(t, err)

	var item struct {
		Name string `json:"Description"`
	}
	require.NoError(t, json.Unmarshal(payload, &item))
	assert.Equal(t, "Рабочее время", item.Name)
}

func TestPost_SendsJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "АО ЧТЭ", body["Description"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"Ref_Key": "new-ref", "Description": "АО ЧТЭ"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "writer", "secret").WithRateLimit(0)
	payload, err := client.Post(context.Background(), "Catalog_Организации", map[string]any{"Description": "АО ЧТЭ"})
	require.NoError(t, err)
	assert.Contains(t, string(payload), "new-ref")
}

func TestGet_APIErrorIsTyped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"odata.error": {"code": 26, "message": {"lang": "ru", "value": "Неверный параметр запроса"}}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "reader", "secret").WithRateLimit(0)
	_, err := client.Get(context.Background(), "Catalog_Организации", nil)
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "26", apiErr.Code)
	assert.Equal(t, "Неверный параметр запроса", apiErr.Message)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestGet_NotFoundIsDetectable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"odata.error": {"code": 404, "message": {"lang": "ru", "value": "Объект не найден"}}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "reader", "secret").WithRateLimit(0)
	_, err := client.Get(context.Background(), "Catalog_Организации(guid'missing')", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestGet_NonJSONResponseIsParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>IIS error page</html>`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "reader", "secret").WithRateLimit(0)
	_, err := client.Get(context.Background(), "Catalog_Организации", nil)
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Body, "IIS error page")
}

func TestGet_ErrorBodyWithoutMessageIsParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"odata.error": {"code": 500}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "reader", "secret").WithRateLimit(0)
	_, err := client.Get(context.Background(), "Catalog_Организации", nil)
	require.Error(t, err)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestGet_ConnectionErrorIsWrapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := NewClient(server.URL, "reader", "secret").WithRateLimit(0)
	_, err := client.Get(context.Background(), "Catalog_Организации", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1C connection error")
}

func TestRateLimit_SpacesRequests(t *testing.T) {
	var mu sync.Mutex
	var arrivals []time.Time
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		arrivals = append(arrivals, time.Now())
		mu.Unlock()
		_, _ = w.Write([]byte(`{"value": []}`))
	}))
	defer server.Close()

	// burst of 1, so the second request has to wait 1/20 s
	client := NewClient(server.URL, "reader", "secret").WithRateLimit(20)
	_, err := client.Get(context.Background(), "Catalog_Организации", nil)
	require.NoError(t, err)
	_, err = client.Get(context.Background(), "Catalog_Организации", nil)
	require.NoError(t, err)

	require.Len(t, arrivals, 2)
	assert.GreaterOrEqual(t, arrivals[1].Sub(arrivals[0]), 40*time.Millisecond)
}

func TestRateLimit_CanceledContextSkipsRequest(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte(`{"value": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "reader", "secret")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Get(ctx, "Catalog_Организации", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), requests.Load())
}

func TestWithTimeout_AbortsSlowRequests(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(server.URL, "reader", "secret").
		WithRateLimit(0).
		WithTimeout(50 * time.Millisecond)
	_, err := client.Get(context.Background(), "Catalog_Организации", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1C connection error")
}
