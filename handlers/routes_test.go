package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netwin-platform/models"
	"netwin-platform/services"
	"netwin-platform/store"
)

type testEnv struct {
	app         *fiber.App
	auth        *services.AuthService
	wallet      *services.WalletService
	tournaments *services.TournamentService
	store       store.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st := store.NewMemory()
	notifications := services.NewNotificationService(st)
	wallet := services.NewWalletService(st, notifications)
	tournaments := services.NewTournamentService(st, wallet, notifications)
	auth := services.NewAuthService(st)
	kyc := services.NewKycService(st, notifications)
	// The ranking storage is not faked here; leaderboard routes are
	// registered only to pin their access rules.
	leaderboard := services.NewLeaderboardService(redis.NewClient(&redis.Options{Addr: "localhost:0"}))

	require.NoError(t, tournaments.Seed())

	app := fiber.New()
	SetupAuthRoutes(app, auth)
	SetupTournamentRoutes(app, tournaments, wallet, auth)
	SetupWalletRoutes(app, wallet, auth)
	SetupNotificationRoutes(app, notifications, auth)
	SetupKycRoutes(app, kyc, auth)
	SetupLeaderboardRoutes(app, leaderboard)

	return &testEnv{app: app, auth: auth, wallet: wallet, tournaments: tournaments, store: st}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("X-Session-Token", token)
	}
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

// openSession signs a user up through the service layer and returns the
// session token the HTTP surface expects.
func (e *testEnv) openSession(t *testing.T) (*models.User, string) {
	t.Helper()
	_, err := e.auth.Signup(models.SignupData{
		Username:    "HandlerTester",
		PhoneNumber: "9876543210",
		CountryCode: "+91",
		GameMode:    models.GamePUBG,
	})
	require.NoError(t, err)
	user, token, err := e.auth.VerifyOTP(models.OtpVerification{Otp: "123456"})
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) promoteToAdmin(t *testing.T) {
	t.Helper()
	user, ok, err := store.GetJSON[models.User](e.store, store.KeyUser)
	require.NoError(t, err)
	require.True(t, ok)
	user.Role = models.RoleAdmin
	require.NoError(t, store.SetJSON(e.store, store.KeyUser, user))
}

func TestCatalogIsPublic(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, fiber.MethodGet, "/tournaments", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	list := decodeBody[[]models.Tournament](t, resp)
	require.Len(t, list, 5)

	resp = env.request(t, fiber.MethodGet, fmt.Sprintf("/tournaments/%d", list[0].ID), "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Filters ride the same public route.
	resp = env.request(t, fiber.MethodGet, "/tournaments?mode=SOLO", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	filtered := decodeBody[[]models.Tournament](t, resp)
	assert.Len(t, filtered, 2)
}

func TestLeaderboardIsPublic(t *testing.T) {
	env := newTestEnv(t)

	// No ranking backend in this harness, so the route may fail — but never
	// with a session demand.
	resp := env.request(t, fiber.MethodGet, "/leaderboard", "", nil)
	assert.NotEqual(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = env.request(t, fiber.MethodGet, "/leaderboard/rank/1", "", nil)
	assert.NotEqual(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthFlowIsPublic(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, fiber.MethodPost, "/auth/otp/request", "", models.LoginCredentials{
		PhoneNumber: "9876543210",
		CountryCode: "+91",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.request(t, fiber.MethodPost, "/auth/otp/verify", "", models.OtpVerification{
		PhoneNumber: "9876543210",
		CountryCode: "+91",
		Otp:         "654321",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestSecuredRoutesRejectMissingToken(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		method string
		path   string
	}{
		{fiber.MethodPost, "/tournaments/1/join"},
		{fiber.MethodGet, "/matches"},
		{fiber.MethodGet, "/matches/1"},
		{fiber.MethodPost, "/matches/1/result"},
		{fiber.MethodGet, "/users/me"},
		{fiber.MethodPost, "/auth/logout"},
		{fiber.MethodPost, "/wallet/deposit"},
		{fiber.MethodPost, "/wallet/withdraw"},
		{fiber.MethodGet, "/wallet/transactions"},
		{fiber.MethodGet, "/notifications"},
		{fiber.MethodGet, "/kyc/documents"},
		{fiber.MethodPatch, "/admin/tournaments/1/status"},
		{fiber.MethodPost, "/admin/matches/1/approve"},
	}
	for _, tc := range cases {
		resp := env.request(t, tc.method, tc.path, "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "%s %s", tc.method, tc.path)
	}
}

func TestSecuredRoutesRejectWrongToken(t *testing.T) {
	env := newTestEnv(t)
	env.openSession(t)

	resp := env.request(t, fiber.MethodGet, "/users/me", "not-the-issued-token", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSessionFlowOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.openSession(t)

	resp := env.request(t, fiber.MethodGet, "/users/me", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	me := decodeBody[models.User](t, resp)
	assert.Equal(t, user.ID, me.ID)

	resp = env.request(t, fiber.MethodPost, "/wallet/deposit", token, fiber.Map{"amount": 1000})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	list, err := env.tournaments.List()
	require.NoError(t, err)
	resp = env.request(t, fiber.MethodPost, fmt.Sprintf("/tournaments/%d/join", list[0].ID), token, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = env.request(t, fiber.MethodGet, "/matches", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	matches := decodeBody[[]models.Match](t, resp)
	require.Len(t, matches, 1)
	assert.Equal(t, list[0].ID, matches[0].TournamentID)

	// Entry fee was debited off the deposit.
	resp = env.request(t, fiber.MethodGet, "/users/me", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	me = decodeBody[models.User](t, resp)
	assert.Equal(t, 1000-list[0].EntryFee, me.WalletBalance)
}

func TestAdminRoutesRequireRole(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.openSession(t)

	list, err := env.tournaments.List()
	require.NoError(t, err)
	target := fmt.Sprintf("/admin/tournaments/%d/status", list[0].ID)

	resp := env.request(t, fiber.MethodPatch, target, token, fiber.Map{"status": "live"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	env.promoteToAdmin(t)
	resp = env.request(t, fiber.MethodPatch, target, token, fiber.Map{"status": "live"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestApproveReportsSkippedPrizeCredit(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.openSession(t)
	env.promoteToAdmin(t)

	list, err := env.tournaments.List()
	require.NoError(t, err)

	// A match owned by a different player: the approval stands but the prize
	// cannot land in any wallet the store holds.
	rival := &models.User{ID: 777, Username: "Rival", Currency: models.CurrencyINR, WalletBalance: 1000}
	rivalMatch, err := env.tournaments.JoinTournament(list[0].ID, rival, nil)
	require.NoError(t, err)

	resp := env.request(t, fiber.MethodPost, fmt.Sprintf("/admin/matches/%d/approve", rivalMatch.ID), token,
		fiber.Map{"position": 1, "kills": 5, "prize": 450})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody[map[string]bool](t, resp)
	assert.True(t, body["approved"])
	assert.False(t, body["prizeCredited"])

	// The admin's own match does get the credit.
	admin, ok, err := env.auth.CurrentUser()
	require.NoError(t, err)
	require.True(t, ok)
	_, err = env.wallet.AddMoney(admin, 1000, "Card")
	require.NoError(t, err)
	ownMatch, err := env.tournaments.JoinTournament(list[1].ID, admin, nil)
	require.NoError(t, err)

	resp = env.request(t, fiber.MethodPost, fmt.Sprintf("/admin/matches/%d/approve", ownMatch.ID), token,
		fiber.Map{"position": 2, "kills": 3, "prize": 200})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body = decodeBody[map[string]bool](t, resp)
	assert.True(t, body["approved"])
	assert.True(t, body["prizeCredited"])
}
