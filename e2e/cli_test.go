package e2e_test

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/penalties-go/internal/api"
	"github.com/mcoot/penalties-go/internal/factory"
	"github.com/mcoot/penalties-go/internal/testutil"
	"github.com/mcoot/penalties-go/internal/web"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	projectRoot := findProjectRoot(t)

	binaryPath := filepath.Join(t.TempDir(), "penalties-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/penalties")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token"),
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	logger := testutil.NopLogger()

	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:             logger,
		AuthService:        app.AuthService,
		ShootoutController: app.ShootoutController,
		PricingService:     app.PricingService,
	})

	webRouter := web.NewRouter(web.RouterConfig{
		Logger:             logger,
		ShootoutController: app.ShootoutController,
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type authResponse struct {
	Referee struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
	} `json:"referee"`
	SessionToken string `json:"session_token"`
}

type shootoutResponse struct {
	ID       string  `json:"id"`
	TeamA    string  `json:"team_a"`
	TeamB    string  `json:"team_b"`
	Score    string  `json:"score"`
	Round    int     `json:"round"`
	DueTeam  *string `json:"due_team"`
	Finished bool    `json:"finished"`
	Winner   *string `json:"winner"`
	Kicks    []struct {
		Team    string `json:"team"`
		Player  string `json:"player"`
		Success bool   `json:"success"`
	} `json:"kicks"`
}

type kickResponse struct {
	Shootout shootoutResponse `json:"shootout"`
	History  []bool           `json:"history"`
}

type scoreResponse struct {
	Score    string `json:"score"`
	Extended bool   `json:"extended"`
}

type historyResponse struct {
	Player  string `json:"player"`
	History []bool `json:"history"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func mustDecode[T any](t *testing.T, output string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(output), &v), "output: %s", output)
	return v
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)
	assert.Equal(t, "ok", mustDecode[healthResponse](t, output).Status)
}

func TestCLI_RefereeCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("referee", "register", "--name", "Pierluigi Collina", "--user", "collina", "--pass", "secret123")
	require.NoError(t, err, "output: %s", output)
	registered := mustDecode[authResponse](t, output)
	assert.Equal(t, "Pierluigi Collina", registered.Referee.DisplayName)
	assert.NotEmpty(t, registered.SessionToken)

	// Token is read back from the token file
	output, err = cli.run("referee", "me")
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, "Pierluigi Collina")

	output, err = cli.run("referee", "login", "--user", "collina", "--pass", "secret123")
	require.NoError(t, err, "output: %s", output)
	assert.Equal(t, registered.Referee.ID, mustDecode[authResponse](t, output).Referee.ID)

	output, err = cli.run("referee", "logout")
	require.NoError(t, err, "output: %s", output)
	assert.Equal(t, "Logged out", mustDecode[messageResponse](t, output).Message)

	_, err = cli.run("referee", "me")
	assert.Error(t, err)
}

func TestCLI_ShootoutToSuddenDeath(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	_, err := cli.run("referee", "register", "--name", "Collina", "--user", "collina", "--pass", "secret123")
	require.NoError(t, err)

	output, err := cli.run("shootout", "create", "AC Milan", "FC Dynamo Kyiv")
	require.NoError(t, err, "output: %s", output)
	id := mustDecode[shootoutResponse](t, output).ID
	require.NotEmpty(t, id)

	// Five rounds all scored
	for i := 0; i < 10; i++ {
		output, err = cli.run("shootout", "kick", id, "goal")
		require.NoError(t, err, "output: %s", output)
	}
	state := mustDecode[kickResponse](t, output).Shootout
	assert.Equal(t, "5-5", state.Score)
	assert.False(t, state.Finished)

	// Sudden death: Milan score, Dynamo miss
	output, err = cli.run("shootout", "kick", id, "goal", "--player", "Shevchenko", "--team", "AC Milan")
	require.NoError(t, err, "output: %s", output)
	assert.Equal(t, []bool{true}, mustDecode[kickResponse](t, output).History)

	output, err = cli.run("shootout", "kick", id, "miss", "--player", "Rebrov", "--team", "FC Dynamo Kyiv")
	require.NoError(t, err, "output: %s", output)
	state = mustDecode[kickResponse](t, output).Shootout
	assert.True(t, state.Finished)
	require.NotNil(t, state.Winner)
	assert.Equal(t, "AC Milan", *state.Winner)

	output, err = cli.run("shootout", "kick", id, "goal")
	assert.Error(t, err)
	assert.Contains(t, output, "KICK_AFTER_FINISHED")

	output, err = cli.run("shootout", "history", id, "Shevchenko")
	require.NoError(t, err, "output: %s", output)
	assert.Equal(t, []bool{true}, mustDecode[historyResponse](t, output).History)

	// The public scoreboard shows the result
	resp, err := http.Get(ts.addr + "/shootouts/" + id)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "6-5")
	assert.Contains(t, string(body), "Shevchenko")
}

func TestCLI_WrongTurnRejected(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	_, err := cli.run("referee", "register", "--name", "Collina", "--user", "collina", "--pass", "secret123")
	require.NoError(t, err)

	output, err := cli.run("shootout", "create", "AC Milan", "FC Dynamo Kyiv")
	require.NoError(t, err, "output: %s", output)
	id := mustDecode[shootoutResponse](t, output).ID

	output, err = cli.run("shootout", "kick", id, "goal", "--player", "Rebrov", "--team", "FC Dynamo Kyiv")
	assert.Error(t, err)
	assert.Contains(t, output, "KICK_ON_WRONG_TURN")

	output, err = cli.run("shootout", "score", id)
	require.NoError(t, err, "output: %s", output)
	assert.Equal(t, "0-0", mustDecode[scoreResponse](t, output).Score)
}

func TestCLI_OtherRefereeCannotKick(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	_, err := cli.run("referee", "register", "--name", "Collina", "--user", "collina", "--pass", "secret123")
	require.NoError(t, err)
	output, err := cli.run("shootout", "create", "AC Milan", "FC Dynamo Kyiv")
	require.NoError(t, err, "output: %s", output)
	id := mustDecode[shootoutResponse](t, output).ID

	other := newCLIRunner(t, ts.addr)
	output, err = other.run("referee", "register", "--name", "Merk", "--user", "merk", "--pass", "secret123")
	require.NoError(t, err, "output: %s", output)
	token := mustDecode[authResponse](t, output).SessionToken

	output, err = cli.runWithToken(token, "shootout", "kick", id, "goal")
	assert.Error(t, err)
	assert.Contains(t, output, "NOT_REFEREE")
}

func TestCLI_PricedScore(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	_, err := cli.run("referee", "register", "--name", "Collina", "--user", "collina", "--pass", "secret123")
	require.NoError(t, err)

	_, err = cli.run("valuation", "set", "Seedorf", "500")
	require.NoError(t, err)
	_, err = cli.run("valuation", "set", "Rebrov", "700")
	require.NoError(t, err)

	output, err := cli.run("shootout", "create", "AC Milan", "FC Dynamo Kyiv")
	require.NoError(t, err, "output: %s", output)
	id := mustDecode[shootoutResponse](t, output).ID

	_, err = cli.run("shootout", "kick", id, "miss", "--player", "Seedorf", "--team", "AC Milan")
	require.NoError(t, err)
	_, err = cli.run("shootout", "kick", id, "miss", "--player", "Rebrov", "--team", "FC Dynamo Kyiv")
	require.NoError(t, err)
	for i := 0; i < 12; i++ {
		_, err = cli.run("shootout", "kick", id, "miss")
		require.NoError(t, err)
	}
	for i := 0; i < 2; i++ {
		_, err = cli.run("shootout", "kick", id, "goal")
		require.NoError(t, err)
	}

	output, err = cli.run("shootout", "score", id)
	require.NoError(t, err, "output: %s", output)
	score := mustDecode[scoreResponse](t, output)
	assert.True(t, score.Extended)
	assert.Equal(t, "AC Milan [500] (1)-(1) [700] FC Dynamo Kyiv", score.Score)
}

func TestCLI_TextOutput(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	cmd := exec.Command(cli.binaryPath, "--server", ts.addr, "health")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(output), "Server status: ok"))
}
