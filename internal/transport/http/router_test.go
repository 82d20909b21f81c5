package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain/services"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/queries/get_price"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/queries/list_events"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/queries/list_import_logs"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/queries/list_skipped_imports"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/usecases/import_prices"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/usecases/reset_deal_prices"
	"github.com/light-bringer/catalog-pricing-service/internal/pkg/lock"
	"github.com/light-bringer/catalog-pricing-service/tests/testutil"
)

type server struct {
	store  *testutil.MemStore
	locker *lock.LocalLocker
	router *gin.Engine
}

func newServer(t *testing.T, health map[string]HealthCheck) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clk := testutil.NewMockClock()
	store := testutil.NewMemStore(clk.Now)
	locker := lock.NewLocalLocker()
	engine := services.NewPriceEngine(services.NewPromotionResolver(store, store, clk), clk)
	importer := import_prices.NewInteractor(store, store, store, engine, reset_deal_prices.NewInteractor(store, clk), locker, time.Minute, clk)

	router := NewRouter(Handlers{
		Imports: NewImportHandler(importer, list_skipped_imports.NewQuery(store, store), list_import_logs.NewQuery(store), ImportOptions{MaxUploadBytes: 1024}),
		Prices:  NewPriceHandler(get_price.NewQuery(store, engine)),
		Events:  NewEventsHandler(list_events.NewQuery(store)),
		Health:  health,
	}, false)
	return &server{store: store, locker: locker, router: router}
}

func (s *server) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func upload(t *testing.T, name, content string, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if name != "" {
		fw, err := mw.CreateFormFile("file", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/price-imports", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

const sheet = "SKU,Product Name,Category,Sub-category,MRP,Net Price\n" +
	"P-1,Phone,Electronics,Mobiles,1000,899\n" +
	"P-2,,Electronics,Mobiles,500,450\n"

func TestUploadAndAuditTrail(t *testing.T) {
	s := newServer(t, nil)

	w := s.do(upload(t, "prices.csv", sheet, nil))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	res := decode[ImportResponse](t, w)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 1, res.Skipped)

	w = s.do(httptest.NewRequest(http.MethodGet, "/api/v1/price-imports/"+res.UploadID+"/skipped", nil))
	require.Equal(t, http.StatusOK, w.Code)
	skipped := decode[SkippedResponse](t, w)
	assert.Equal(t, "completed", skipped.Status)
	require.Len(t, skipped.Skipped, 1)
	assert.Equal(t, 3, skipped.Skipped[0].RowNumber)
	assert.Equal(t, "missing required column: Product Name", skipped.Skipped[0].Reason)

	w = s.do(httptest.NewRequest(http.MethodGet, "/api/v1/price-imports/logs?limit=5", nil))
	require.Equal(t, http.StatusOK, w.Code)
	logs := decode[struct {
		Logs []ImportLog `json:"logs"`
	}](t, w)
	require.Len(t, logs.Logs, 1)
	assert.Equal(t, res.UploadID, logs.Logs[0].UploadID)

	w = s.do(httptest.NewRequest(http.MethodGet, "/api/v1/products/P-1/price", nil))
	require.Equal(t, http.StatusOK, w.Code)
	price := decode[map[string]any](t, w)
	assert.Equal(t, "899.00", price["final_price"])
	assert.Equal(t, "deal", price["source"])
	assert.Equal(t, "Special Promotion", price["label"])

	w = s.do(httptest.NewRequest(http.MethodGet, "/api/v1/events?event_type=product.created", nil))
	require.Equal(t, http.StatusOK, w.Code)
	events := decode[ListEventsResponse](t, w)
	assert.Equal(t, 1, events.TotalCount)
}

func TestUploadRejections(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		s := newServer(t, nil)
		w := s.do(upload(t, "", "", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "FILE_REQUIRED", decode[ErrorBody](t, w).Error.Code)
	})

	t.Run("wrong extension", func(t *testing.T) {
		s := newServer(t, nil)
		w := s.do(upload(t, "prices.pdf", sheet, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_FILE_TYPE", decode[ErrorBody](t, w).Error.Code)
	})

	t.Run("too large", func(t *testing.T) {
		s := newServer(t, nil)
		w := s.do(upload(t, "prices.csv", string(bytes.Repeat([]byte("a"), 2048)), nil))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("bad reset policy", func(t *testing.T) {
		s := newServer(t, nil)
		w := s.do(upload(t, "prices.csv", sheet, map[string]string{"reset_policy": "weekly"}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad validation flag", func(t *testing.T) {
		s := newServer(t, nil)
		w := s.do(upload(t, "prices.csv", sheet, map[string]string{"consider_price_validation": "maybe"}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty sheet", func(t *testing.T) {
		s := newServer(t, nil)
		w := s.do(upload(t, "prices.csv", "", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "EMPTY_FILE", decode[ErrorBody](t, w).Error.Code)
	})

	t.Run("import in progress", func(t *testing.T) {
		s := newServer(t, nil)
		hold, err := s.locker.Acquire(context.Background(), import_prices.LockKey, time.Minute)
		require.NoError(t, err)
		defer hold.Release(context.Background())

		w := s.do(upload(t, "prices.csv", sheet, nil))
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "IMPORT_IN_PROGRESS", decode[ErrorBody](t, w).Error.Code)
	})

	t.Run("validation flag is honoured", func(t *testing.T) {
		s := newServer(t, nil)
		w := s.do(upload(t, "prices.csv", sheet, map[string]string{"consider_price_validation": "true"}))
		require.Equal(t, http.StatusCreated, w.Code)
		res := decode[ImportResponse](t, w)
		assert.Equal(t, 0, res.Imported)
		assert.Equal(t, 2, res.Skipped)
	})
}

func TestTemplate(t *testing.T) {
	s := newServer(t, nil)

	w := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/price-imports/template", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "SKU,Product Name,Category,Sub-category,MRP,Net Price")

	w = s.do(httptest.NewRequest(http.MethodGet, "/api/v1/price-imports/template?format=xlsx", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "PK", w.Body.String()[:2])

	w = s.do(httptest.NewRequest(http.MethodGet, "/api/v1/price-imports/template?format=ods", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotFound(t *testing.T) {
	s := newServer(t, nil)

	w := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/products/nope/price", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PRODUCT_NOT_FOUND", decode[ErrorBody](t, w).Error.Code)

	w = s.do(httptest.NewRequest(http.MethodGet, "/api/v1/price-imports/nope/skipped", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	s := newServer(t, map[string]HealthCheck{
		"spanner": func(context.Context) error { return nil },
	})
	w := s.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	s = newServer(t, map[string]HealthCheck{
		"redis": func(context.Context) error { return errors.New("down") },
	})
	w = s.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "error", decode[map[string]any](t, w)["redis"])
}

func TestMapDomainError(t *testing.T) {
	status, info := mapDomainError(domain.ErrUploadNotFound)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "UPLOAD_NOT_FOUND", info.Code)

	status, info = mapDomainError(fmt.Errorf("%w: lease gone", import_prices.ErrImportLockLost))
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "IMPORT_LOCK_LOST", info.Code)

	status, _ = mapDomainError(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
}

func TestErrorEnvelope(t *testing.T) {
	s := newServer(t, nil)

	w := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/products/NOPE/price", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	body := decode[map[string]any](t, w)
	assert.NotContains(t, body, "success")
	require.Contains(t, body, "error")
	info, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "PRODUCT_NOT_FOUND", info["code"])
	assert.NotEmpty(t, info["message"])
}
