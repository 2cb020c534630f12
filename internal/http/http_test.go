package http

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	accountDomain "github.com/allisson/mealguard/internal/account/domain"
	accountHTTP "github.com/allisson/mealguard/internal/account/http"
	accountMocks "github.com/allisson/mealguard/internal/account/usecase/mocks"
	authDomain "github.com/allisson/mealguard/internal/auth/domain"
	authHTTP "github.com/allisson/mealguard/internal/auth/http"
	authMocks "github.com/allisson/mealguard/internal/auth/usecase/mocks"
	"github.com/allisson/mealguard/internal/config"
	cryptoHTTP "github.com/allisson/mealguard/internal/crypto/http"
	cryptoService "github.com/allisson/mealguard/internal/crypto/service"
	"github.com/allisson/mealguard/internal/metrics"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createTestServer creates a test server without a database.
func createTestServer() *Server {
	return NewServer(nil, "localhost", 8080, createTestLogger())
}

func TestHealthHandler(t *testing.T) {
	server := createTestServer()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	server.healthHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
}

func TestReadinessHandler(t *testing.T) {
	t.Run("not ready without database", func(t *testing.T) {
		server := createTestServer()

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		var response map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "not_ready", response["status"])
		assert.Equal(t, map[string]any{"database": "error"}, response["components"])
	})

	t.Run("ready when database answers ping", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		sqlMock.ExpectPing()

		server := NewServer(db, "localhost", 8080, createTestLogger())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"ready"`)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}

func TestCustomLoggerMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(createTestLogger()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "test"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	requestID, err := uuid.Parse(w.Header().Get("X-Request-Id"))
	require.NoError(t, err, "X-Request-Id should be a valid UUID")
	assert.NotEqual(t, uuid.Nil, requestID)
}

func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(createTestLogger()))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// routerFixture is a fully configured router with mocked use cases.
type routerFixture struct {
	router        http.Handler
	authenticator *authMocks.MockAuthenticator
	login         *authMocks.MockLoginUseCase
	accounts      *accountMocks.MockAccountUseCase
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	logger := createTestLogger()

	raw := make([]byte, 32)
	_, err := rand.Read(raw)
	require.NoError(t, err)
	keys := cryptoService.NewKeyStore(
		cryptoService.StaticKeySource{1: base64.StdEncoding.EncodeToString(raw)},
		1,
		logger,
	)

	f := &routerFixture{
		authenticator: &authMocks.MockAuthenticator{},
		login:         &authMocks.MockLoginUseCase{},
		accounts:      &accountMocks.MockAccountUseCase{},
	}

	server := createTestServer()
	server.SetupRouter(&config.Config{MetricsNamespace: "test"}, Handlers{
		Authenticator: f.authenticator,
		Auth:          authHTTP.NewAuthHandler(f.login, logger),
		Account:       accountHTTP.NewAccountHandler(f.accounts, logger),
		Key:           cryptoHTTP.NewKeyHandler(keys, logger),
	}, nil)
	f.router = server.GetHandler()
	return f
}

func (f *routerFixture) do(method, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	f.router.ServeHTTP(w, req)
	return w
}

func (f *routerFixture) authenticateAs(token string, role authDomain.Role) *authDomain.Identity {
	identity := &authDomain.Identity{
		ID:       uuid.Must(uuid.NewV7()),
		Email:    "someone@example.com",
		TenantID: uuid.Must(uuid.NewV7()),
		Role:     role,
	}
	f.authenticator.On("Authenticate", mock.Anything, token).Return(identity, nil)
	return identity
}

func TestRouter_PublicEndpoints(t *testing.T) {
	f := newRouterFixture(t)

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, f.do(http.MethodGet, "/ready", "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/nonexistent", "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/metrics", "").Code)
}

func TestRouter_RequiresAuthentication(t *testing.T) {
	f := newRouterFixture(t)
	f.authenticator.On("Authenticate", mock.Anything, "").Return(nil, authDomain.ErrTokenMissing)

	for _, path := range []string{"/v1/me", "/v1/admin/keys"} {
		w := f.do(http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.JSONEq(t, `{"error":"Authentication required"}`, w.Body.String(), path)
	}
}

func TestRouter_KeysRequireSuperAdmin(t *testing.T) {
	f := newRouterFixture(t)
	f.authenticateAs("admin-token", authDomain.RoleAdmin)
	f.authenticateAs("root-token", authDomain.RoleSuperAdmin)

	w := f.do(http.MethodGet, "/v1/admin/keys", "admin-token")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t,
		`{"error":"Insufficient permissions","required":["super_admin"],"current":"admin"}`,
		w.Body.String(),
	)

	w = f.do(http.MethodGet, "/v1/admin/keys", "root-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"current_version":1`)
}

func TestRouter_AccountAdminRequiresAdmin(t *testing.T) {
	f := newRouterFixture(t)
	f.authenticateAs("employee-token", authDomain.RoleEmployee)
	admin := f.authenticateAs("admin-token", authDomain.RoleAdmin)

	id := uuid.Must(uuid.NewV7())
	w := f.do(http.MethodDelete, "/v1/admin/accounts/"+id.String(), "employee-token")
	assert.Equal(t, http.StatusForbidden, w.Code)

	f.accounts.On("Deactivate", mock.Anything, admin, id).Return(nil).Once()
	w = f.do(http.MethodDelete, "/v1/admin/accounts/"+id.String(), "admin-token")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(http.MethodGet, "/v1/admin/accounts", "employee-token")
	assert.Equal(t, http.StatusForbidden, w.Code)

	f.accounts.On("List", mock.Anything, admin, admin.TenantID, 0, 50).Return([]*accountDomain.Account{}, nil).Once()
	w = f.do(http.MethodGet, "/v1/admin/accounts", "admin-token")
	assert.Equal(t, http.StatusOK, w.Code)
	f.accounts.AssertExpectations(t)
}

func TestServer_StartRequiresRouter(t *testing.T) {
	server := createTestServer()
	assert.Error(t, server.Start(context.Background()))
}

func TestServer_ShutdownGracefully(t *testing.T) {
	server := NewServer(nil, "127.0.0.1", 0, createTestLogger())
	server.router = gin.New()

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(context.Background())
	}()

	time.Sleep(100 * time.Millisecond)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, server.Shutdown(shutdownCtx))
	assert.NoError(t, <-errChan)
}

func TestMetricsServer_Endpoints(t *testing.T) {
	provider, err := metrics.NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	metricsServer := NewMetricsServer("localhost", 8081, createTestLogger(), provider)
	require.NotNil(t, metricsServer)

	w := httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

	w = httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/me", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
