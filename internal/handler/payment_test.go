package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cartflow/internal/config"
	"cartflow/internal/middleware"
	"cartflow/internal/router"
	"cartflow/internal/store"
	"cartflow/internal/yagoutpay"
)

var testKey = []byte("yagout-secret-key-32-bytes-long!")

type testServer struct {
	echo *echo.Echo
	txns *store.MemoryStore
}

func newTestServer(t *testing.T, apiURL string) *testServer {
	t.Helper()

	creds := &yagoutpay.Credentials{
		MerchantID:   "TEST_MERCHANT",
		AggregatorID: "yagout",
		Key:          testKey,
		PostURL:      "https://uat.example.com/checksumGatewayPage",
		APIURL:       "https://uat.example.com/apiIntegration",
	}
	if apiURL != "" {
		creds.APIURL = apiURL
	}

	txns := store.NewMemoryStore()
	gateway, err := yagoutpay.NewGateway(creds,
		yagoutpay.PGDefaults{PGID: "pg-1", Paymode: "WA", SchemeID: "7", WalletType: "telebirr"},
		yagoutpay.NewClient(5*time.Second), txns, zap.NewNop())
	require.NoError(t, err)

	deduper, err := middleware.NewCallbackDeduper("", "", 0, time.Minute)
	require.NoError(t, err)

	checkout := &config.CheckoutConfig{
		SuccessRedirectURL: "https://shop.example.com/checkout/success",
		FailureRedirectURL: "https://shop.example.com/checkout/failure",
		PendingTTL:         30 * time.Minute,
	}

	e := echo.New()
	router.Setup(e, nil, gateway, deduper, nil, checkout, zap.NewNop())
	return &testServer{echo: e, txns: txns}
}

func (s *testServer) postJSON(target string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(string(raw)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) postForm(target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func initiateBody(orderNo string) map[string]string {
	return map[string]string{
		"order_no":    orderNo,
		"amount":      "100.00",
		"email_id":    "test@example.com",
		"mobile_no":   "251911223344",
		"success_url": "https://shop.example.com/success",
		"failure_url": "https://shop.example.com/failure",
	}
}

func TestInitiateEndpoint(t *testing.T) {
	s := newTestServer(t, "")

	rec := s.postJSON("/payments/initiate", initiateBody("ORD-100"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result struct {
		MerchantID      string `json:"me_id"`
		MerchantRequest string `json:"merchant_request"`
		Hash            string `json:"hash"`
		PostURL         string `json:"post_url"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "TEST_MERCHANT", result.MerchantID)
	assert.Equal(t, "https://uat.example.com/checksumGatewayPage", result.PostURL)
	assert.NotEmpty(t, result.Hash)

	plain, err := yagoutpay.Decrypt(result.MerchantRequest, testKey)
	require.NoError(t, err)
	assert.Contains(t, plain, "ORD-100")

	txn, err := s.txns.Get(context.Background(), "ORD-100")
	require.NoError(t, err)
	assert.Equal(t, store.StatusInitiated, txn.Status)
}

func TestInitiateEndpointValidation(t *testing.T) {
	s := newTestServer(t, "")

	cases := []struct {
		name   string
		mutate func(map[string]string)
	}{
		{"missing order_no", func(b map[string]string) { delete(b, "order_no") }},
		{"integer amount", func(b map[string]string) { b["amount"] = "100" }},
		{"one decimal place", func(b map[string]string) { b["amount"] = "100.0" }},
		{"three decimal places", func(b map[string]string) { b["amount"] = "100.001" }},
		{"bad email", func(b map[string]string) { b["email_id"] = "not-an-email" }},
		{"non-numeric mobile", func(b map[string]string) { b["mobile_no"] = "phone" }},
		{"bad success url", func(b map[string]string) { b["success_url"] = "not a url" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := initiateBody("ORD-V")
			tc.mutate(body)
			rec := s.postJSON("/payments/initiate", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAPIInitiateEndpoint(t *testing.T) {
	encryptedResp, err := yagoutpay.Encrypt(`{"transactionId":"TXN-77"}`, testKey)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":        "Success",
			"statusMessage": "ok",
			"response":      encryptedResp,
		})
	}))
	defer srv.Close()

	s := newTestServer(t, srv.URL)

	body := initiateBody("ORD-API")
	delete(body, "success_url")
	delete(body, "failure_url")
	rec := s.postJSON("/payments/api/initiate", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var outcome yagoutpay.Outcome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcome))
	assert.Equal(t, "Success", outcome.Status)
	assert.Equal(t, "TXN-77", outcome.TransactionID)

	txn, err := s.txns.Get(context.Background(), "ORD-API")
	require.NoError(t, err)
	assert.Equal(t, store.StatusSuccess, txn.Status)
}

func TestAPIInitiateGatewayDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := newTestServer(t, srv.URL)

	rec := s.postJSON("/payments/api/initiate", initiateBody("ORD-DOWN"))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestCallbackSuccessRedirects(t *testing.T) {
	s := newTestServer(t, "")
	require.Equal(t, http.StatusOK, s.postJSON("/payments/initiate", initiateBody("ORD-CB")).Code)

	rec := s.postForm("/payments/callback/success",
		"order_no=ORD-CB&amount=100.00&transaction_id=TXN-5")
	require.Equal(t, http.StatusFound, rec.Code)

	loc, err := url.Parse(rec.Header().Get(echo.HeaderLocation))
	require.NoError(t, err)
	assert.Equal(t, "shop.example.com", loc.Host)
	assert.Equal(t, "/checkout/success", loc.Path)
	assert.Equal(t, "ORD-CB", loc.Query().Get("order_id"))
	assert.Equal(t, "TXN-5", loc.Query().Get("transaction_id"))

	txn, err := s.txns.Get(context.Background(), "ORD-CB")
	require.NoError(t, err)
	assert.Equal(t, store.StatusSuccess, txn.Status)
	assert.Equal(t, "TXN-5", txn.TransactionID)
}

func TestCallbackFailureRedirects(t *testing.T) {
	s := newTestServer(t, "")
	require.Equal(t, http.StatusOK, s.postJSON("/payments/initiate", initiateBody("ORD-FAIL")).Code)

	rec := s.postForm("/payments/callback/failure",
		"order_no=ORD-FAIL&error_code=E42&error_message=declined")
	require.Equal(t, http.StatusFound, rec.Code)

	loc, err := url.Parse(rec.Header().Get(echo.HeaderLocation))
	require.NoError(t, err)
	assert.Equal(t, "/checkout/failure", loc.Path)
	assert.Equal(t, "E42", loc.Query().Get("error_code"))

	txn, err := s.txns.Get(context.Background(), "ORD-FAIL")
	require.NoError(t, err)
	assert.Equal(t, store.StatusFailed, txn.Status)
}

func TestCallbackDuplicateDropped(t *testing.T) {
	s := newTestServer(t, "")
	require.Equal(t, http.StatusOK, s.postJSON("/payments/initiate", initiateBody("ORD-DUP")).Code)

	first := s.postForm("/payments/callback/success", "order_no=ORD-DUP&amount=100.00")
	assert.Equal(t, http.StatusFound, first.Code)

	second := s.postForm("/payments/callback/success", "order_no=ORD-DUP&amount=100.00")
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Contains(t, second.Body.String(), "duplicate")
}

func TestCallbackUndecryptableStillRedirects(t *testing.T) {
	s := newTestServer(t, "")
	require.Equal(t, http.StatusOK, s.postJSON("/payments/initiate", initiateBody("ORD-JUNK")).Code)

	blob, err := yagoutpay.Encrypt("garbage", []byte("another-32-byte-key-for-testing!"))
	require.NoError(t, err)

	rec := s.postForm("/payments/callback/success",
		"order_no=ORD-JUNK&amount=100.00&merchant_response="+url.QueryEscape(blob))
	assert.Equal(t, http.StatusFound, rec.Code)

	txn, lookupErr := s.txns.Get(context.Background(), "ORD-JUNK")
	require.NoError(t, lookupErr)
	assert.Equal(t, store.StatusSuccess, txn.Status)
}

func TestGetTransactionEndpoint(t *testing.T) {
	s := newTestServer(t, "")
	require.Equal(t, http.StatusOK, s.postJSON("/payments/initiate", initiateBody("ORD-GET")).Code)

	req := httptest.NewRequest(http.MethodGet, "/payments/transaction/ORD-GET", nil)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var txn store.TransactionRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &txn))
	assert.Equal(t, "ORD-GET", txn.OrderNo)
	assert.Equal(t, store.StatusInitiated, txn.Status)

	req = httptest.NewRequest(http.MethodGet, "/payments/transaction/NOPE", nil)
	rec = httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
