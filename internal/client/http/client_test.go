package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Jalpan25/sweetshop-management-system/internal/client"
	"github.com/Jalpan25/sweetshop-management-system/internal/inventory"
	"github.com/Jalpan25/sweetshop-management-system/internal/session"
)

// newFakeShop поднимает фейковый API магазина на chi-роутере
func newFakeShop(t *testing.T) (*httptest.Server, *fakeShopState) {
	t.Helper()

	state := &fakeShopState{}

	router := chi.NewRouter()
	router.Get("/api/sweets", func(w http.ResponseWriter, r *http.Request) {
		state.lastAuth = r.Header.Get("Authorization")
		state.lastRequestID = r.Header.Get("X-Request-Id")
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": 1, "name": "Barfi", "category": "Milk", "price": 20.5, "quantity": 7},
			{"id": 2, "name": "Jalebi", "category": "Fried", "price": 10, "quantity": 0},
		})
	})
	router.Get("/api/sweets/search", func(w http.ResponseWriter, r *http.Request) {
		state.lastQuery = r.URL.Query()
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": 2, "name": "Jalebi", "category": "Fried", "price": 10, "quantity": 0},
		})
	})
	router.Post("/api/sweets/{id}/purchase", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Quantity int `json:"quantity"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		state.lastQuantity = body.Quantity

		if state.purchaseStatus != 0 {
			writeJSON(w, state.purchaseStatus, map[string]string{"message": state.purchaseMessage})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"id": 1, "name": "Barfi", "category": "Milk", "price": 20.5, "quantity": 5,
		})
	})
	router.Post("/api/sweets/{id}/restock", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"id": 1, "name": "Barfi", "category": "Milk", "price": 20.5, "quantity": 57,
		})
	})
	router.Delete("/api/sweets/{id}", func(w http.ResponseWriter, r *http.Request) {
		state.deletedID = chi.URLParam(r, "id")
		w.WriteHeader(http.StatusNoContent)
	})
	router.Post("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"token": "jwt-abc", "id": 7, "email": body.Email, "name": "Ravi", "role": "ROLE_ADMIN",
		})
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, state
}

type fakeShopState struct {
	lastAuth        string
	lastRequestID   string
	lastQuery       map[string][]string
	lastQuantity    int
	deletedID       string
	purchaseStatus  int
	purchaseMessage string
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(baseURL, token string) *Client {
	return New(baseURL+"/api", 5*time.Second, func() string { return token }, zap.NewNop())
}

func TestClient_FetchAll(t *testing.T) {
	server, state := newFakeShop(t)
	c := newTestClient(server.URL, "tok-1")

	sweets, err := c.FetchAll(context.Background())
	require.NoError(t, err)

	require.Equal(t, []inventory.Sweet{
		{ID: "1", Name: "Barfi", Category: "Milk", Price: 20.5, Quantity: 7},
		{ID: "2", Name: "Jalebi", Category: "Fried", Price: 10, Quantity: 0},
	}, sweets)

	require.Equal(t, "Bearer tok-1", state.lastAuth)
	require.NotEmpty(t, state.lastRequestID)
}

func TestClient_Search_ParamPassthrough(t *testing.T) {
	server, state := newFakeShop(t)
	c := newTestClient(server.URL, "tok-1")

	_, err := c.Search(context.Background(), map[string]string{
		"category": "Choc",
		"minPrice": "50",
	})
	require.NoError(t, err)

	// Передаются только заданные параметры, лишних ключей нет
	require.Len(t, state.lastQuery, 2)
	require.Equal(t, []string{"Choc"}, state.lastQuery["category"])
	require.Equal(t, []string{"50"}, state.lastQuery["minPrice"])
}

func TestClient_Purchase(t *testing.T) {
	server, state := newFakeShop(t)
	c := newTestClient(server.URL, "tok-1")

	sweet, err := c.Purchase(context.Background(), "1", 2)
	require.NoError(t, err)
	require.Equal(t, 5, sweet.Quantity)
	require.Equal(t, 2, state.lastQuantity)
}

func TestClient_Purchase_ServerRejectedVerbatim(t *testing.T) {
	server, state := newFakeShop(t)
	state.purchaseStatus = http.StatusBadRequest
	state.purchaseMessage = "Sweet is out of stock"

	c := newTestClient(server.URL, "tok-1")

	_, err := c.Purchase(context.Background(), "1", 2)
	require.Error(t, err)

	var serverErr *client.ServerError
	require.ErrorAs(t, err, &serverErr)
	// Сообщение сервера доходит до пользователя дословно
	require.Equal(t, "Sweet is out of stock", serverErr.Message)
	require.Equal(t, http.StatusBadRequest, serverErr.StatusCode)
}

func TestClient_AuthExpired(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/sweets", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	c := newTestClient(server.URL, "expired-token")

	_, err := c.FetchAll(context.Background())
	require.ErrorIs(t, err, client.ErrAuthExpired)
}

func TestClient_TransportError(t *testing.T) {
	server, _ := newFakeShop(t)
	c := newTestClient(server.URL, "tok-1")
	server.Close() // сервер недоступен

	_, err := c.FetchAll(context.Background())
	require.Error(t, err)

	var transportErr *client.TransportError
	require.ErrorAs(t, err, &transportErr)
}

func TestClient_Delete(t *testing.T) {
	server, state := newFakeShop(t)
	c := newTestClient(server.URL, "tok-1")

	require.NoError(t, c.Delete(context.Background(), "42"))
	require.Equal(t, "42", state.deletedID)
}

func TestClient_Login(t *testing.T) {
	server, _ := newFakeShop(t)
	c := newTestClient(server.URL, "")

	sess, err := c.Login(context.Background(), "ravi@example.com", "secret")
	require.NoError(t, err)
	require.Equal(t, "jwt-abc", sess.Token)
	require.Equal(t, "Ravi", sess.User.Name)
	require.Equal(t, session.RoleManager, sess.User.Role)
	require.True(t, sess.Active())
}

func TestClient_Login_InvalidCredentials(t *testing.T) {
	server, _ := newFakeShop(t)
	c := newTestClient(server.URL, "")

	_, err := c.Login(context.Background(), "ravi@example.com", "wrong")
	require.Error(t, err)

	// Неверный пароль - это отказ сервера, а не протухшая сессия
	require.NotErrorIs(t, err, client.ErrAuthExpired)
	var serverErr *client.ServerError
	require.ErrorAs(t, err, &serverErr)
}

func TestClient_RequestLogsCarryTraceID(t *testing.T) {
	server, _ := newFakeShop(t)

	core, logs := observer.New(zap.DebugLevel)
	c := New(server.URL+"/api", 5*time.Second, func() string { return "tok-1" }, zap.New(core))

	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	ctx, span := tp.Tracer("test").Start(context.Background(), "load-dashboard")
	defer span.End()

	_, err := c.FetchAll(ctx)
	require.NoError(t, err)

	entries := logs.FilterMessage("API request").All()
	require.Len(t, entries, 1)

	// Логи запроса коррелируются с активным трейсом вызывающего
	fields := entries[0].ContextMap()
	require.Equal(t, span.SpanContext().TraceID().String(), fields["trace_id"])
	require.Equal(t, span.SpanContext().SpanID().String(), fields["span_id"])
}
