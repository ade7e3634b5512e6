package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ledgerly/ledgerly/internal/adapter/http/handler"
	apimiddleware "github.com/ledgerly/ledgerly/internal/adapter/http/middleware"
	"github.com/ledgerly/ledgerly/internal/infrastructure/auth"
	"github.com/ledgerly/ledgerly/internal/usecase"
	"github.com/ledgerly/ledgerly/internal/usecase/mocks"
)

// newRouterConfig wires a full router over in-memory repositories.
func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	familyRepo := mocks.NewMockFamilyRepository()
	accountRepo := mocks.NewMockAccountRepository()
	transactionRepo := mocks.NewMockTransactionRepository()
	transferRepo := mocks.NewMockTransferRepository()
	categoryRepo := mocks.NewMockCategoryRepository()
	merchantRepo := mocks.NewMockMerchantRepository()
	tagRepo := mocks.NewMockTagRepository()
	budgetRepo := mocks.NewMockBudgetRepository()

	txManager := mocks.NewMockTransactionManager()
	retrier := mocks.NewMockRetrier()
	idGen := mocks.NewMockIDGenerator()

	transferUC := usecase.NewTransferUseCase(txManager, retrier, accountRepo, transactionRepo, transferRepo, categoryRepo, idGen, nil)
	matcherUC := usecase.NewMatcherUseCase(txManager, transactionRepo, transferRepo, idGen, 0, nil)

	cfg := RouterConfig{
		FamilyHandler:      handler.NewFamilyHandler(usecase.NewFamilyUseCase(familyRepo, idGen)),
		AccountHandler:     handler.NewAccountHandler(usecase.NewAccountUseCase(accountRepo, familyRepo, idGen)),
		TransactionHandler: handler.NewTransactionHandler(usecase.NewTransactionUseCase(txManager, accountRepo, transactionRepo, categoryRepo, idGen), matcherUC),
		TransferHandler:    handler.NewTransferHandler(transferUC),
		CategoryHandler:    handler.NewCategoryHandler(usecase.NewCategoryUseCase(categoryRepo, mocks.NewMockCache(), idGen)),
		MerchantHandler:    handler.NewMerchantHandler(usecase.NewMerchantUseCase(merchantRepo, idGen)),
		TagHandler:         handler.NewTagHandler(usecase.NewTagUseCase(tagRepo, idGen)),
		BudgetHandler:      handler.NewBudgetHandler(usecase.NewBudgetUseCase(budgetRepo, categoryRepo, familyRepo, idGen)),
		HealthHandler:      handler.NewHealthHandler(nil, nil),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_DevFamilyHeaderRequired(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without family header, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	req.Header.Set(apimiddleware.DevFamilyHeader, "fam-1")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with family header, got %d", rec.Code)
	}
}

func TestNewRouter_AuthRequired(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Minute)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.AuthEnabled = true
		cfg.JWTManager = jwtManager
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	token, err := jwtManager.Generate("fam-1", []string{auth.ScopeRead, auth.ScopeWrite})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d", rec.Code)
	}
}

func TestNewRouter_ReadScopeCannotWrite(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Minute)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.AuthEnabled = true
		cfg.JWTManager = jwtManager
	}))

	token, err := jwtManager.Generate("fam-1", []string{auth.ScopeRead})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	body, _ := json.Marshal(map[string]string{"name": "Checking", "currency": "USD", "type": "depository"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for read-only token on POST, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected read to succeed with read scope, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1, nil)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_FamilyLifecycle(t *testing.T) {
	router := NewRouter(newRouterConfig())

	body, _ := json.Marshal(map[string]string{"name": "Smith", "currency": "USD"})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/families", bytes.NewReader(body))
	req.Header.Set(apimiddleware.DevFamilyHeader, "bootstrap")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating family, got %d: %s", rec.Code, rec.Body.String())
	}

	var created map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode family response: %v", err)
	}

	id, _ := created["id"].(string)
	if id == "" {
		t.Fatalf("expected family ID in response, got %+v", created)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/families/"+id, nil)
	req.Header.Set(apimiddleware.DevFamilyHeader, id)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching family, got %d", rec.Code)
	}
}
