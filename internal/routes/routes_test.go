package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Cri010101/toelettatura-system/internal/config"
	dbpkg "github.com/Cri010101/toelettatura-system/internal/db"
	"github.com/Cri010101/toelettatura-system/internal/models"
	"github.com/Cri010101/toelettatura-system/internal/notify"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		AppEnv:          "test",
		DBTimeout:       5 * time.Second,
		LoginRatePerSec: 100,
		LoginBurst:      100,
		TZName:          "Europe/Rome",
	}
}

type testServer struct {
	router   *gin.Engine
	db       *gorm.DB
	notifier *notify.Dispatcher
}

func setupServer(t *testing.T, opts ...func(*config.Config)) *testServer {
	t.Helper()

	cfg := testConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, dbpkg.Bootstrap(context.Background(), db, dbpkg.Seed{
		AdminEmail:    "admin@toelettatura.com",
		AdminPassword: "admin123",
	}))

	notifier := NewNotifier(db)
	t.Cleanup(notifier.Close)

	r := gin.New()
	RegisterRoutes(r, Deps{DB: db, Config: cfg, Notifier: notifier})

	return &testServer{router: r, db: db, notifier: notifier}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()

	w := s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "admin@toelettatura.com",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "Login effettuato con successo", body["message"])
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// ======================================================
// SCENARIOS
// ======================================================

func TestBookingReviewFlow(t *testing.T) {
	s := setupServer(t)

	w := s.do(t, http.MethodPost, "/api/appointments", "", gin.H{
		"clientName":      "Mario Rossi",
		"petName":         "Fido",
		"serviceId":       1,
		"appointmentDate": "2024-06-01",
		"appointmentTime": "10:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	created := decode(t, w)
	assert.Equal(t, "Appuntamento creato con successo", created["message"])
	ap := created["appointment"].(map[string]any)
	assert.Equal(t, "pending", ap["status"])
	assert.Nil(t, ap["rejection_reason"])
	assert.Nil(t, ap["proposed_changes"])
	id := int(ap["id"].(float64))

	token := s.login(t)

	w = s.do(t, http.MethodPut, "/api/appointments/"+strconv.Itoa(id)+"/status", token, gin.H{"status": "confirmed"})
	require.Equal(t, http.StatusOK, w.Code)

	updated := decode(t, w)
	assert.Equal(t, "confirmed", updated["status"])
	assert.Nil(t, updated["rejection_reason"])
	assert.Nil(t, updated["proposed_changes"])

	// admin list carries the service columns
	w = s.do(t, http.MethodGet, "/api/appointments", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Bagno e asciugatura", list[0]["service_name"])
	assert.EqualValues(t, 60, list[0]["duration"])

	// one broadcast on create, one row for the reviewing admin
	s.notifier.Close()
	var count int64
	require.NoError(t, s.db.Model(&models.Notification{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestLoginWrongPassword(t *testing.T) {
	s := setupServer(t)

	w := s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "admin@toelettatura.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Credenziali non valide"}`, w.Body.String())
}

func TestProposeChanges(t *testing.T) {
	s := setupServer(t)
	token := s.login(t)

	w := s.do(t, http.MethodPost, "/api/appointments", "", gin.H{
		"clientName":      "Lucia",
		"petName":         "Micia",
		"serviceId":       3,
		"appointmentDate": "2024-06-01",
		"appointmentTime": "10:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := int(decode(t, w)["appointment"].(map[string]any)["id"].(float64))

	w = s.do(t, http.MethodPut, "/api/appointments/"+strconv.Itoa(id)+"/status", token, gin.H{
		"status":          "modified",
		"rejectionReason": "Mattina piena",
		"proposedChanges": gin.H{"date": "2024-06-02", "time": "15:00"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "modified", body["status"])
	assert.Equal(t, "Mattina piena", body["rejection_reason"])
	assert.Equal(t, map[string]any{"date": "2024-06-02", "time": "15:00"}, body["proposed_changes"])
	assert.Equal(t, "2024-06-01", body["appointment_date"])

	w = s.do(t, http.MethodGet, "/api/appointments/"+strconv.Itoa(id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "modified", decode(t, w)["status"])
}

// ======================================================
// ERRORS
// ======================================================

func TestErrorResponses(t *testing.T) {
	s := setupServer(t)
	token := s.login(t)

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
		status int
		msg    string
	}{
		{"missing fields", http.MethodPost, "/api/appointments", "", gin.H{"clientName": "Mario"}, http.StatusBadRequest, "Campi obbligatori mancanti"},
		{"login missing password", http.MethodPost, "/api/auth/login", "", gin.H{"email": "admin@toelettatura.com"}, http.StatusBadRequest, "Email e password sono obbligatori"},
		{"list without token", http.MethodGet, "/api/appointments", "", nil, http.StatusUnauthorized, "Token di accesso richiesto"},
		{"list with bad token", http.MethodGet, "/api/appointments", "nope", nil, http.StatusForbidden, "Token non valido"},
		{"update unknown id", http.MethodPut, "/api/appointments/9999/status", token, gin.H{"status": "confirmed"}, http.StatusNotFound, "Appuntamento non trovato"},
		{"update non numeric id", http.MethodPut, "/api/appointments/abc/status", token, gin.H{"status": "confirmed"}, http.StatusNotFound, "Appuntamento non trovato"},
		{"update invalid status", http.MethodPut, "/api/appointments/1/status", token, gin.H{"status": "archived"}, http.StatusBadRequest, "Stato non valido"},
		{"unknown route", http.MethodGet, "/api/nothing", "", nil, http.StatusNotFound, "Endpoint non trovato"},
		{"unknown method", http.MethodDelete, "/api/services", "", nil, http.StatusNotFound, "Endpoint non trovato"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := s.do(t, tc.method, tc.path, tc.token, tc.body)
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, gin.H{"error": tc.msg}, gin.H(decode(t, w)))
		})
	}

	var count int64
	require.NoError(t, s.db.Model(&models.Appointment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestServicesAndHealth(t *testing.T) {
	s := setupServer(t)

	require.NoError(t, s.db.Model(&models.Service{}).Where("name = ?", "Taglio unghie").Update("active", false).Error)

	w := s.do(t, http.MethodGet, "/api/services", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var services []models.Service
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &services))
	require.Len(t, services, 4)
	for i, svc := range services {
		assert.True(t, svc.Active)
		assert.NotEqual(t, "Taglio unghie", svc.Name)
		if i > 0 {
			assert.LessOrEqual(t, services[i-1].Name, svc.Name)
		}
	}

	w = s.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	health := decode(t, w)
	assert.Equal(t, "OK", health["status"])
	assert.Equal(t, "test", health["env"])
	assert.NotEmpty(t, health["timestamp"])

	w = s.do(t, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/test", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode(t, w)["server_time"])

	token := s.login(t)
	w = s.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"id": float64(1), "email": "admin@toelettatura.com", "role": "admin"}, decode(t, w)["user"])
}

func setupMockServer(t *testing.T, cfg *config.Config) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	notifier := NewNotifier(db)
	t.Cleanup(notifier.Close)

	r := gin.New()
	RegisterRoutes(r, Deps{DB: db, Config: cfg, Notifier: notifier})
	return r, mock
}

func TestStoreFailureIsGeneric(t *testing.T) {
	r, mock := setupMockServer(t, testConfig())

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "services"`)).
		WillReturnError(errors.New("pq: password authentication failed"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/services", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Errore interno del server"}`, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreDeadlineIsGeneric(t *testing.T) {
	cfg := testConfig()
	cfg.DBTimeout = 50 * time.Millisecond
	r, mock := setupMockServer(t, cfg)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "services"`)).
		WillDelayFor(2 * time.Second).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	start := time.Now()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/services", nil))

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Errore interno del server"}`, w.Body.String())
}

func TestLoginRateLimitIgnoresForwardedFor(t *testing.T) {
	s := setupServer(t, func(c *config.Config) {
		c.LoginRatePerSec = 0.001
		c.LoginBurst = 2
	})

	var codes []int
	for i := 0; i < 6; i++ {
		body, err := json.Marshal(gin.H{"email": "admin@toelettatura.com", "password": "wrong"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", "10.9.0."+strconv.Itoa(i))
		req.RemoteAddr = "203.0.113.9:40000"

		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{401, 401, 429, 429, 429, 429}, codes)
}

func TestLoginRateLimitTrustedProxy(t *testing.T) {
	s := setupServer(t, func(c *config.Config) {
		c.LoginRatePerSec = 0.001
		c.LoginBurst = 1
		c.TrustedProxies = []string{"203.0.113.9"}
	})

	for i := 0; i < 3; i++ {
		body, err := json.Marshal(gin.H{"email": "admin@toelettatura.com", "password": "wrong"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", "10.9.0."+strconv.Itoa(i))
		req.RemoteAddr = "203.0.113.9:40000"

		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "client %d", i)
	}
}

func TestCreateAppointmentServiceIDAsString(t *testing.T) {
	s := setupServer(t)

	w := s.do(t, http.MethodPost, "/api/appointments", "", gin.H{
		"clientName":      "Mario Rossi",
		"petName":         "Fido",
		"serviceId":       "2",
		"appointmentDate": "2024-06-01",
		"appointmentTime": "10:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 2, decode(t, w)["appointment"].(map[string]any)["service_id"])

	w = s.do(t, http.MethodPost, "/api/appointments", "", gin.H{
		"clientName":      "Mario Rossi",
		"petName":         "Fido",
		"serviceId":       "due",
		"appointmentDate": "2024-06-01",
		"appointmentTime": "10:00",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterRoutesRequiresNotifier(t *testing.T) {
	assert.Panics(t, func() {
		RegisterRoutes(gin.New(), Deps{Config: testConfig()})
	})
}
