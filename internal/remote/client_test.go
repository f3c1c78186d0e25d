package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Domenick1991/skywings/internal/domain"
)

func newTestClient(handler http.Handler, tokens TokenSource) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(server.URL, time.Second, tokens), server
}

// Тест 1: Вход разбирает конверт с токеном и пользователем
func TestClient_Login(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/login", r.URL.Path)

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ivan@example.com", body["email"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"token":   "tok-1",
			"user":    map[string]string{"_id": "u1", "name": "Ivan", "role": "customer"},
		})
	})
	client, server := newTestClient(handler, nil)
	defer server.Close()

	token, user, err := client.Login(context.Background(), "ivan@example.com", "secret1")

	assert.NoError(t, err)
	assert.Equal(t, "tok-1", token)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, domain.RoleCustomer, user.Role)
}

// Тест 2: Ответ без токена считается искаженным
func TestClient_Login_MalformedResponse(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	})
	client, server := newTestClient(handler, nil)
	defer server.Close()

	_, _, err := client.Login(context.Background(), "ivan@example.com", "secret1")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "malformed")
}

// Тест 3: 401 превращается в ошибку авторизации
func TestClient_AuthErrorMapping(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "invalid or expired token"})
	})
	client, server := newTestClient(handler, TokenFunc(func() string { return "expired" }))
	defer server.Close()

	_, err := client.MyReservations(context.Background())

	assert.True(t, IsAuth(err))
	assert.False(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "invalid or expired token")
}

// Тест 4: 404 превращается в ошибку "не найдено"
func TestClient_NotFoundMapping(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "reservation not found"})
	})
	client, server := newTestClient(handler, nil)
	defer server.Close()

	_, err := client.ReservationByReference(context.Background(), "SWMISSING1")

	assert.True(t, IsNotFound(err))
	assert.False(t, IsAuth(err))
}

// Тест 5: Сообщение сервера доносится до пользователя как есть
func TestClient_ServerMessagePassthrough(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "no seats available on this flight"})
	})
	client, server := newTestClient(handler, TokenFunc(func() string { return "tok" }))
	defer server.Close()

	_, err := client.AddReservation(context.Background(), ReservationInput{FlightID: "f1"})

	assert.Equal(t, "no seats available on this flight", ServerMessage(err))
}

// Тест 6: Токен читается в момент отправки запроса
func TestClient_BearerReadAtDispatch(t *testing.T) {
	var seen []string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": []interface{}{}})
	})

	current := "tok-1"
	client, server := newTestClient(handler, TokenFunc(func() string { return current }))
	defer server.Close()

	ctx := context.Background()
	_, err := client.MyReservations(ctx)
	assert.NoError(t, err)

	// после смены сессии следующий запрос несет новый токен
	current = "tok-2"
	_, err = client.MyReservations(ctx)
	assert.NoError(t, err)

	assert.Equal(t, []string{"Bearer tok-1", "Bearer tok-2"}, seen)
}

// Тест 7: Пустой токен не добавляет заголовок Authorization
func TestClient_NoTokenNoHeader(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": []interface{}{}})
	})
	client, server := newTestClient(handler, TokenFunc(func() string { return "" }))
	defer server.Close()

	_, err := client.MyReservations(context.Background())
	assert.NoError(t, err)
}

// Тест 8: Параметры поиска уходят в строку запроса
func TestClient_SearchFlights_QueryParams(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/flights/search", r.URL.Path)
		assert.Equal(t, "Delhi", r.URL.Query().Get("departure"))
		assert.Equal(t, "Mumbai", r.URL.Query().Get("destination"))
		assert.Equal(t, "2024-05-01", r.URL.Query().Get("date"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    []map[string]interface{}{{"_id": "f1", "flightNumber": "SW101"}},
		})
	})
	client, server := newTestClient(handler, nil)
	defer server.Close()

	flights, err := client.SearchFlights(context.Background(), domain.FlightFilter{
		Departure:   "Delhi",
		Destination: "Mumbai",
		Date:        "2024-05-01",
	})

	assert.NoError(t, err)
	assert.Len(t, flights, 1)
	assert.Equal(t, "SW101", flights[0].FlightNumber)
}

// Тест 9: Частично заполненный фильтр не отправляет пустых параметров
func TestClient_SearchFlights_PartialFilter(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Delhi", q.Get("departure"))
		_, hasDestination := q["destination"]
		_, hasDate := q["date"]
		assert.False(t, hasDestination)
		assert.False(t, hasDate)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": []interface{}{}})
	})
	client, server := newTestClient(handler, nil)
	defer server.Close()

	_, err := client.SearchFlights(context.Background(), domain.FlightFilter{Departure: "Delhi"})
	assert.NoError(t, err)
}

// Тест 10: Обновление статуса отправляет PUT с телом
func TestClient_UpdateStatus(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/updateStatus/r1", r.URL.Path)

		var body map[string]bool
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.True(t, body["status"])

		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	})
	client, server := newTestClient(handler, TokenFunc(func() string { return "tok" }))
	defer server.Close()

	err := client.UpdateStatus(context.Background(), "r1", true)
	assert.NoError(t, err)
}
