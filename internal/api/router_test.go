package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seojinp/point-ledger/internal/api"
	"github.com/seojinp/point-ledger/internal/config"
	"github.com/seojinp/point-ledger/internal/keyed"
	"github.com/seojinp/point-ledger/internal/models"
	"github.com/seojinp/point-ledger/internal/repository/memory"
	"github.com/seojinp/point-ledger/internal/services"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	repos := memory.NewRepositories(0, 0)
	svc := services.NewPointService(repos.Ledger, repos.History, keyed.NewSerializer())
	srv := httptest.NewServer(api.NewRouter(config.Config{RateRPS: 0}, svc))
	t.Cleanup(srv.Close)
	return srv
}

func patchJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPatch, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestRouter_ChargeUseAndHistories(t *testing.T) {
	srv := newTestServer(t)

	resp := patchJSON(t, srv.URL+"/point/1/charge", `{"amount":1000}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	up := decode[models.UserPoint](t, resp)
	assert.Equal(t, int64(1000), up.Point)

	resp = patchJSON(t, srv.URL+"/point/1/use", `{"amount":300}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	up = decode[models.UserPoint](t, resp)
	assert.Equal(t, int64(700), up.Point)

	resp, err := http.Get(srv.URL + "/point/1/histories")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	hs := decode[[]models.PointHistory](t, resp)
	require.Len(t, hs, 2)
	assert.Equal(t, models.TxnCharge, hs[0].Type)
	assert.Equal(t, models.TxnUse, hs[1].Type)
}

func TestRouter_GetPoint_NewUser_ZeroBalance(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/point/55")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	up := decode[models.UserPoint](t, resp)
	assert.Equal(t, int64(55), up.UserID)
	assert.Equal(t, int64(0), up.Point)
}

func TestRouter_GetHistories_NewUser_EmptyArray(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/point/9/histories")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	hs := decode[[]models.PointHistory](t, resp)
	assert.Empty(t, hs)
}

func TestRouter_Charge_NegativeAmount_BadRequest(t *testing.T) {
	srv := newTestServer(t)

	resp := patchJSON(t, srv.URL+"/point/2/charge", `{"amount":-10}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	assert.Equal(t, "invalid_amount", body["code"])

	resp, err := http.Get(srv.URL + "/point/2/histories")
	require.NoError(t, err)
	hs := decode[[]models.PointHistory](t, resp)
	assert.Empty(t, hs)
}

func TestRouter_Use_BeyondBalance_BadRequest(t *testing.T) {
	srv := newTestServer(t)

	resp := patchJSON(t, srv.URL+"/point/3/charge", `{"amount":700}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = patchJSON(t, srv.URL+"/point/3/use", `{"amount":701}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	assert.Equal(t, "insufficient_balance", body["code"])

	resp, err := http.Get(srv.URL + "/point/3")
	require.NoError(t, err)
	up := decode[models.UserPoint](t, resp)
	assert.Equal(t, int64(700), up.Point)
}

func TestRouter_NonNumericUserID_BadRequest(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/point/abc")
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	assert.Equal(t, "invalid_user_id", body["code"])
}

func TestRouter_MalformedBody_BadRequest(t *testing.T) {
	srv := newTestServer(t)

	resp := patchJSON(t, srv.URL+"/point/4/charge", `{"amount":`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
