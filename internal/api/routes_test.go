package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coachassist/backend/internal/cache"
	"github.com/coachassist/backend/internal/config"
	"github.com/coachassist/backend/internal/middleware"
	"github.com/coachassist/backend/internal/workspace"
	"github.com/coachassist/backend/internal/ws"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	t      *testing.T
	router *gin.Engine
	token  string
	cfg    *config.Config
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Environment:            "test",
		FrontendURL:            "https://coach.example.org",
		JWTSecret:              "test-secret",
		SessionTimeoutMin:      10,
		MaxUploadBytes:         4096,
		CLangEnableShooting:    true,
		CLangFreedomRadius:     -1,
		CLangPositioningRadius: -1,
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := ws.NewHub()
	go hub.Run(ctx)

	exports, err := cache.New(nil, time.Minute)
	require.NoError(t, err)
	t.Cleanup(exports.Close)

	router := gin.New()
	SetupRoutes(router, Services{
		Exports:    exports,
		Workspaces: workspace.NewManager(ws.NewNotifier(hub, nil)),
		Hub:        hub,
	}, cfg)

	token, _, err := middleware.IssueToken(cfg, 1, "coach")
	require.NoError(t, err)
	return &testServer{t: t, router: router, token: token, cfg: cfg}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	s.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" && !strings.HasSuffix(path, "/cas") {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) createWorkspace(name string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/workspaces", `{"name":"`+name+`"}`)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var info struct {
		ID string `json:"id"`
	}
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &info))
	return info.ID
}

func TestHealthIsPublic(t *testing.T) {
	s := newTestServer(t)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.Contains(t, w.Body.String(), `"database":"disabled"`)
}

func TestWorkspacesRequireToken(t *testing.T) {
	s := newTestServer(t)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/workspaces", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEditAndGenerate(t *testing.T) {
	s := newTestServer(t)
	id := s.createWorkspace("defence")
	base := "/api/v1/workspaces/" + id

	w := s.do(http.MethodPut, base+"/regions/Def", `{"x1":0,"y1":34,"x2":-52.5,"y2":-34}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"name":"Def","rect":{"x1":-52.5,"y1":-34,"x2":0,"y2":34}}`, w.Body.String())

	w = s.do(http.MethodPut, base+"/partitions/Def", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPut, base+"/players/1/coefs/Def", `{"c1":1,"c2":1,"o1":0,"o2":0}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"active":true`)

	w = s.do(http.MethodGet, base+"/players/1/coefs/Def", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, base+"/clang", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "generated", w.Header().Get("X-Cache"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `defence.clang`)
	assert.Contains(t, w.Body.String(), `(say (define (definerule RULE_Def01 direc ((bpos "Def")(do our {1} (pos (((pt ball) * (pt  1.0  1.0)) + (pt  0.0  0.0)) )) ))))`)
	assert.Contains(t, w.Body.String(), "CACR_ShootingReg")

	w = s.do(http.MethodPost, base+"/clang", "")
	assert.Equal(t, "l1", w.Header().Get("X-Cache"))

	w = s.do(http.MethodPost, base+"/clang", `{"enable_shooting":false,"add_play_on":true,"rule_prefix":"T_"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "generated", w.Header().Get("X-Cache"))
	assert.NotContains(t, w.Body.String(), "CACR_ShootingReg")
	assert.Contains(t, w.Body.String(), `RULE_T_Def01 direc ((and (playm play_on)(bpos "Def")) `)

	w = s.do(http.MethodGet, base+"/cas", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "[REGIONS]\nDef -52.5 -34.0 0.0 34.0\n[PARTITIONS]\nDef\n[PLAYER1]\nDef 1.0 1.0 0.0 0.0\n"), w.Body.String())
}

func TestGenerateRejectsBadOptions(t *testing.T) {
	s := newTestServer(t)
	id := s.createWorkspace("x")

	w := s.do(http.MethodPost, "/api/v1/workspaces/"+id+"/clang", `{"rule_prefix":"bad prefix"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/v1/workspaces/"+id+"/clang", `{"freedom_radius":"far"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEditErrors(t *testing.T) {
	s := newTestServer(t)
	id := s.createWorkspace("errors")
	base := "/api/v1/workspaces/" + id

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPut, base+"/partitions/Ghost", "").Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPut, base+"/regions/Def", `{"x1":1}`).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPut, base+"/regions/bad%20name", `{"x1":0,"y1":0,"x2":1,"y2":1}`).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPut, base+"/players/C/coefs/Def", `{"c1":1,"c2":1,"o1":0,"o2":0}`).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, base+"/players/B/coefs/Def", "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v1/workspaces/unknown", "").Code)
	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, base+"/regions/Ghost", "").Code)
}

func TestCoefsForMissingPartitionAreInactive(t *testing.T) {
	s := newTestServer(t)
	id := s.createWorkspace("later")

	w := s.do(http.MethodPut, "/api/v1/workspaces/"+id+"/players/b/coefs/Att", `{"c1":0.5,"c2":0.5,"o1":1,"o2":2}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"player":10`)
	assert.Contains(t, w.Body.String(), `"active":false`)
}

func TestRemoveRegionCascades(t *testing.T) {
	s := newTestServer(t)
	id := s.createWorkspace("cascade")
	base := "/api/v1/workspaces/" + id

	s.do(http.MethodPut, base+"/regions/Mid", `{"x1":-20,"y1":-20,"x2":20,"y2":20}`)
	s.do(http.MethodPut, base+"/partitions/Mid", "")
	require.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, base+"/regions/Mid", "").Code)

	w := s.do(http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Strategy struct {
			Regions    []any    `json:"regions"`
			Partitions []string `json:"partitions"`
		} `json:"strategy"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body.Strategy.Regions)
	assert.Empty(t, body.Strategy.Partitions)
}

func TestLoadDocumentWithDiagnostics(t *testing.T) {
	s := newTestServer(t)
	id := s.createWorkspace("upload")
	base := "/api/v1/workspaces/" + id

	doc := strings.Join([]string{
		"[REGIONS]",
		"Mid -20 -20 20 20",
		"Broken 1 2 three 4",
		"[PARTITIONS]",
		"Mid",
		"[PLAYER5]",
		"Mid 0.5 0.5 -10 0",
		"",
	}, "\n")
	w := s.do(http.MethodPut, base+"/cas", doc)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Diagnostics []struct {
			Line   int    `json:"line"`
			Reason string `json:"reason"`
		} `json:"diagnostics"`
		Strategy struct {
			Partitions []string `json:"partitions"`
		} `json:"strategy"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Diagnostics, 1)
	assert.Equal(t, 3, body.Diagnostics[0].Line)
	assert.Equal(t, []string{"Mid"}, body.Strategy.Partitions)

	w = s.do(http.MethodGet, base+"/position?player=5&x=10&y=4", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"player":4,"partition":"Mid","position":{"x":-5,"y":2}}`, w.Body.String())

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, base+"/position?player=5&x=40&y=0", "").Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, base+"/position?player=5&x=NaN&y=0", "").Code)
}

func TestLoadDocumentTooLarge(t *testing.T) {
	s := newTestServer(t)
	id := s.createWorkspace("huge")

	doc := "[REGIONS]\n" + strings.Repeat("R 1 2 3 4\n", 1000)
	w := s.do(http.MethodPut, "/api/v1/workspaces/"+id+"/cas", doc)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestClearAndClose(t *testing.T) {
	s := newTestServer(t)
	id := s.createWorkspace("temp")
	base := "/api/v1/workspaces/" + id

	s.do(http.MethodPut, base+"/regions/Def", `{"x1":0,"y1":0,"x2":1,"y2":1}`)
	assert.Equal(t, http.StatusNoContent, s.do(http.MethodPost, base+"/clear", "").Code)

	w := s.do(http.MethodGet, base+"/cas", "")
	assert.NotContains(t, w.Body.String(), "Def")

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, base, "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, base, "").Code)
}

func TestLibraryWithoutDatabase(t *testing.T) {
	s := newTestServer(t)
	id := s.createWorkspace("nodb")

	assert.Equal(t, http.StatusServiceUnavailable, s.do(http.MethodPost, "/api/v1/workspaces/"+id+"/library", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, s.do(http.MethodGet, "/api/v1/library", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, s.do(http.MethodGet, "/api/v1/exports", "").Code)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"a","token":"b"}`))
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestOtherCoachCannotSeeWorkspace(t *testing.T) {
	s := newTestServer(t)
	id := s.createWorkspace("private")

	other, _, err := middleware.IssueToken(s.cfg, 2, "rival")
	require.NoError(t, err)
	s.token = other

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v1/workspaces/"+id, "").Code)
}
