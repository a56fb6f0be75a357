package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/penalties-go/internal/api"
	"github.com/mcoot/penalties-go/internal/api/apierr"
	"github.com/mcoot/penalties-go/internal/api/response"
	"github.com/mcoot/penalties-go/internal/factory"
	"github.com/mcoot/penalties-go/internal/testutil"
)

const (
	milan  = "AC Milan"
	dynamo = "FC Dynamo Kyiv"
)

// testServer wraps the API router over a fresh application
type testServer struct {
	handler http.Handler
	app     *factory.App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	// API tests are integration tests - use production factory with real random/clock
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:             testutil.NopLogger(),
		AuthService:        app.AuthService,
		ShootoutController: app.ShootoutController,
		PricingService:     app.PricingService,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func assertErrorCode(t *testing.T, rr *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	assert.Equal(t, status, rr.Code)
	assert.Equal(t, code, decode[apierr.ErrorResponse](t, rr).Error.Code)
}

func registerReferee(t *testing.T, ts *testServer, username string) string {
	t.Helper()
	body := map[string]string{
		"username":     username,
		"password":     "secret123",
		"display_name": username,
	}
	rr := ts.request(http.MethodPost, "/api/v1/referees/register", body, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[response.AuthResponse](t, rr).SessionToken
}

func createShootout(t *testing.T, ts *testServer, token string) string {
	t.Helper()
	body := map[string]any{"team_a": milan, "team_b": dynamo}
	rr := ts.request(http.MethodPost, "/api/v1/shootouts", body, token)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[response.Shootout](t, rr).ID
}

func kick(t *testing.T, ts *testServer, token, id string, success bool) response.KickResponse {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/v1/shootouts/"+id+"/kicks", map[string]any{"success": success}, token)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[response.KickResponse](t, rr)
}

func kickBy(ts *testServer, token, id, player, team string, success bool) *httptest.ResponseRecorder {
	body := map[string]any{"player": player, "team": team, "success": success}
	return ts.request(http.MethodPost, "/api/v1/shootouts/"+id+"/kicks", body, token)
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

// Referee tests

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	registerBody := map[string]string{
		"username":     "collina",
		"password":     "secret123",
		"display_name": "Pierluigi Collina",
	}
	rr := ts.request(http.MethodPost, "/api/v1/referees/register", registerBody, "")
	require.Equal(t, http.StatusCreated, rr.Code)
	registerResp := decode[response.AuthResponse](t, rr)
	assert.Equal(t, "Pierluigi Collina", registerResp.Referee.DisplayName)

	loginBody := map[string]string{"username": "collina", "password": "secret123"}
	rr = ts.request(http.MethodPost, "/api/v1/referees/login", loginBody, "")
	require.Equal(t, http.StatusOK, rr.Code)
	loginResp := decode[response.AuthResponse](t, rr)
	assert.Equal(t, registerResp.Referee.ID, loginResp.Referee.ID)
	assert.NotEqual(t, registerResp.SessionToken, loginResp.SessionToken)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ts := newTestServer(t)
	registerReferee(t, ts, "collina")

	body := map[string]string{"username": "collina", "password": "secret123", "display_name": "Other"}
	rr := ts.request(http.MethodPost, "/api/v1/referees/register", body, "")
	assertErrorCode(t, rr, http.StatusConflict, apierr.CodeUsernameExists)
}

func TestRegisterValidation(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/referees/register", map[string]string{"password": "secret123", "display_name": "X"}, "")
	assertErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInvalidRequest)
	assert.Contains(t, rr.Body.String(), "username is required")

	rr = ts.request(http.MethodPost, "/api/v1/referees/register", map[string]string{"username": "x", "password": "short", "display_name": "X"}, "")
	assertErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInvalidRequest)
	assert.Contains(t, rr.Body.String(), "password must be at least 8")
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)
	registerReferee(t, ts, "collina")

	rr := ts.request(http.MethodPost, "/api/v1/referees/login", map[string]string{"username": "collina", "password": "wrong-password"}, "")
	assertErrorCode(t, rr, http.StatusUnauthorized, apierr.CodeInvalidCredentials)
}

func TestGetMeAndLogout(t *testing.T) {
	ts := newTestServer(t)
	token := registerReferee(t, ts, "collina")

	rr := ts.request(http.MethodGet, "/api/v1/referees/me", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "collina", decode[response.Referee](t, rr).DisplayName)

	rr = ts.request(http.MethodPost, "/api/v1/referees/logout", nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/referees/me", nil, token)
	assertErrorCode(t, rr, http.StatusUnauthorized, apierr.CodeUnauthorized)
}

func TestUnauthorizedWithoutToken(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/referees/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/shootouts", map[string]string{"team_a": milan, "team_b": dynamo}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodPut, "/api/v1/valuations/Sheva", map[string]int{"price": 100}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

// Shootout tests

func TestCreateShootout(t *testing.T) {
	ts := newTestServer(t)
	token := registerReferee(t, ts, "collina")

	body := map[string]any{"team_a": milan, "team_b": dynamo, "regulation_rounds": 3}
	rr := ts.request(http.MethodPost, "/api/v1/shootouts", body, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	resp := decode[response.Shootout](t, rr)
	assert.Len(t, resp.ID, 12)
	assert.Equal(t, "0-0", resp.Score)
	assert.Equal(t, 3, resp.Rules.RegulationRounds)
	assert.Equal(t, 14, resp.Rules.ExtendedScoreAfterKicks)
	require.NotNil(t, resp.DueTeam)
	assert.Equal(t, milan, *resp.DueTeam)
	assert.Nil(t, resp.Winner)
	assert.Empty(t, resp.Kicks)
}

func TestCreateShootoutValidation(t *testing.T) {
	ts := newTestServer(t)
	token := registerReferee(t, ts, "collina")

	rr := ts.request(http.MethodPost, "/api/v1/shootouts", map[string]any{"team_a": milan, "team_b": milan}, token)
	assertErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInvalidRequest)
	assert.Contains(t, rr.Body.String(), "team_b must differ from team_a")

	rr = ts.request(http.MethodPost, "/api/v1/shootouts", map[string]any{"team_a": milan}, token)
	assertErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInvalidRequest)
	assert.Contains(t, rr.Body.String(), "team_b is required")

	rr = ts.request(http.MethodPost, "/api/v1/shootouts", map[string]any{"team_a": milan, "team_b": dynamo, "regulation_rounds": 50}, token)
	assertErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInvalidRequest)
}

func TestGetShootoutNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/shootouts/MISSING", nil, "")
	assertErrorCode(t, rr, http.StatusNotFound, apierr.CodeShootoutNotFound)
}

func TestImplicitKicksAlternateTeams(t *testing.T) {
	ts := newTestServer(t)
	token := registerReferee(t, ts, "collina")
	id := createShootout(t, ts, token)

	resp := kick(t, ts, token, id, true)
	assert.Equal(t, "1-0", resp.Shootout.Score)
	assert.Nil(t, resp.History)
	require.Len(t, resp.Shootout.Kicks, 1)
	assert.Equal(t, milan, resp.Shootout.Kicks[0].Team)
	assert.Empty(t, resp.Shootout.Kicks[0].Player)

	resp = kick(t, ts, token, id, true)
	assert.Equal(t, "1-1", resp.Shootout.Score)
	assert.Equal(t, dynamo, resp.Shootout.Kicks[1].Team)
	assert.Equal(t, 2, resp.Shootout.Round)
}

func TestExplicitKickReturnsHistory(t *testing.T) {
	ts := newTestServer(t)
	token := registerReferee(t, ts, "collina")
	id := createShootout(t, ts, token)

	rr := kickBy(ts, token, id, "Sheva", milan, true)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, []bool{true}, decode[response.KickResponse](t, rr).History)

	kick(t, ts, token, id, false)

	rr = kickBy(ts, token, id, "Sheva", milan, false)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, []bool{true, false}, decode[response.KickResponse](t, rr).History)

	rr = ts.request(http.MethodGet, "/api/v1/shootouts/"+id+"/players/Sheva/history", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	history := decode[response.HistoryResponse](t, rr)
	assert.Equal(t, "Sheva", history.Player)
	assert.Equal(t, []bool{true, false}, history.History)
}

func TestHistoryForUnknownPlayerIsEmptyList(t *testing.T) {
	ts := newTestServer(t)
	token := registerReferee(t, ts, "collina")
	id := createShootout(t, ts, token)

	rr := ts.request(http.MethodGet, "/api/v1/shootouts/"+id+"/players/Nobody/history", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"history":[]`)
}

func TestKickOnWrongTurn(t *testing.T) {
	ts := newTestServer(t)
	token := registerReferee(t, ts, "collina")
	id := createShootout(t, ts, token)

	rr := kickBy(ts, token, id, "Sheva", dynamo, true)
	assertErrorCode(t, rr, http.StatusConflict, apierr.CodeKickOnWrongTurn)

	rr = ts.request(http.MethodGet, "/api/v1/shootouts/"+id, nil, "")
	assert.Empty(t, decode[response.Shootout](t, rr).Kicks)
}

func TestKickAfterFinished(t *testing.T) {
	ts := newTestServer(t)
	token := registerReferee(t, ts, "collina")
	id := createShootout(t, ts, token)

	var last response.KickResponse
	for _, o := range []bool{true, false, true, false, true, false} {
		last = kick(t, ts, token, id, o)
	}
	assert.True(t, last.Shootout.Finished)
	require.NotNil(t, last.Shootout.Winner)
	assert.Equal(t, milan, *last.Shootout.Winner)
	assert.Nil(t, last.Shootout.DueTeam)

	rr := ts.request(http.MethodPost, "/api/v1/shootouts/"+id+"/kicks", map[string]any{"success": true}, token)
	assertErrorCode(t, rr, http.StatusConflict, apierr.CodeKickAfterFinished)

	// Finished wins over a wrong-turn claim
	rr = kickBy(ts, token, id, "Sheva", milan, true)
	assertErrorCode(t, rr, http.StatusConflict, apierr.CodeKickAfterFinished)
}

func TestKickValidation(t *testing.T) {
	ts := newTestServer(t)
	token := registerReferee(t, ts, "collina")
	id := createShootout(t, ts, token)

	rr := ts.request(http.MethodPost, "/api/v1/shootouts/"+id+"/kicks", map[string]any{}, token)
	assertErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInvalidRequest)
	assert.Contains(t, rr.Body.String(), "success is required")

	rr = ts.request(http.MethodPost, "/api/v1/shootouts/"+id+"/kicks", map[string]any{"player": "Sheva", "success": true}, token)
	assertErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInvalidRequest)
	assert.Contains(t, rr.Body.String(), "team is required")
}

func TestKickByOtherRefereeForbidden(t *testing.T) {
	ts := newTestServer(t)
	owner := registerReferee(t, ts, "collina")
	other := registerReferee(t, ts, "merk")
	id := createShootout(t, ts, owner)

	rr := ts.request(http.MethodPost, "/api/v1/shootouts/"+id+"/kicks", map[string]any{"success": true}, other)
	assertErrorCode(t, rr, http.StatusForbidden, apierr.CodeNotReferee)

	rr = ts.request(http.MethodDelete, "/api/v1/shootouts/"+id, nil, other)
	assertErrorCode(t, rr, http.StatusForbidden, apierr.CodeNotReferee)
}

func TestDeleteShootout(t *testing.T) {
	ts := newTestServer(t)
	token := registerReferee(t, ts, "collina")
	id := createShootout(t, ts, token)

	rr := ts.request(http.MethodDelete, "/api/v1/shootouts/"+id, nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/shootouts/"+id, nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// Score and valuation tests

func TestScoreIsPricedAfterSevenRounds(t *testing.T) {
	ts := newTestServer(t)
	token := registerReferee(t, ts, "collina")
	id := createShootout(t, ts, token)

	rr := ts.request(http.MethodPut, "/api/v1/valuations/Seedorf", map[string]int64{"price": 500}, token)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = ts.request(http.MethodPut, "/api/v1/valuations/Rebrov", map[string]int64{"price": 700}, token)
	require.Equal(t, http.StatusOK, rr.Code)

	require.Equal(t, http.StatusCreated, kickBy(ts, token, id, "Seedorf", milan, false).Code)
	require.Equal(t, http.StatusCreated, kickBy(ts, token, id, "Rebrov", dynamo, false).Code)
	for i := 0; i < 12; i++ {
		kick(t, ts, token, id, false)
	}

	rr = ts.request(http.MethodGet, "/api/v1/shootouts/"+id+"/score", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	score := decode[response.ScoreResponse](t, rr)
	assert.Equal(t, "0-0", score.Score)
	assert.False(t, score.Extended)

	kick(t, ts, token, id, true)
	kick(t, ts, token, id, true)

	rr = ts.request(http.MethodGet, "/api/v1/shootouts/"+id+"/score", nil, "")
	score = decode[response.ScoreResponse](t, rr)
	assert.Equal(t, "AC Milan [500] (1)-(1) [700] FC Dynamo Kyiv", score.Score)
	assert.True(t, score.Extended)
	assert.False(t, score.Finished)
}

func TestValuations(t *testing.T) {
	ts := newTestServer(t)
	token := registerReferee(t, ts, "collina")

	rr := ts.request(http.MethodGet, "/api/v1/valuations/Sheva", nil, "")
	assertErrorCode(t, rr, http.StatusNotFound, apierr.CodeValuationNotFound)

	rr = ts.request(http.MethodPut, "/api/v1/valuations/Sheva", map[string]int64{"price": 1200}, token)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/valuations/Sheva", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	v := decode[response.Valuation](t, rr)
	assert.Equal(t, "Sheva", v.Player)
	assert.Equal(t, int64(1200), v.Price)

	rr = ts.request(http.MethodPut, "/api/v1/valuations/Sheva", map[string]int64{"price": -1}, token)
	assertErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInvalidRequest)
}
