package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coachassist/backend/internal/geometry"
	"github.com/coachassist/backend/internal/strategy"
	"github.com/coachassist/backend/internal/workspace"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*Hub, *workspace.Manager, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub()
	go hub.Run(ctx)
	mgr := workspace.NewManager(NewNotifier(hub, nil))

	r := gin.New()
	r.GET("/workspaces/:id/ws", func(c *gin.Context) {
		c.Set("coach_id", 1)
		c.Next()
	}, HandleWebSocket(hub, mgr))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, mgr, srv
}

func dial(t *testing.T, srv *httptest.Server, id string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/workspaces/" + id + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestSnapshotThenEvents(t *testing.T) {
	hub, mgr, srv := setup(t)
	w, err := mgr.Create(1, "live")
	require.NoError(t, err)

	conn := dial(t, srv, w.ID)
	first := read(t, conn)
	assert.Equal(t, "snapshot", first.Type)
	assert.Equal(t, w.ID, first.WorkspaceID)

	require.Eventually(t, func() bool { return hub.RoomSize(w.ID) == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, w.Do(func(m *strategy.Model) error {
		return m.AddRegion("Def", geometry.NewRect(0, 0, 70, 70))
	}))

	msg := read(t, conn)
	assert.Equal(t, string(strategy.RegionsChanged), msg.Type)
	assert.Equal(t, "Def", msg.Name)
	assert.Nil(t, msg.Player)

	msg = read(t, conn)
	assert.Equal(t, string(strategy.StrategyChanged), msg.Type)

	require.NoError(t, w.Do(func(m *strategy.Model) error {
		return m.SetPlayerCoefs(10, "Def", geometry.NewCoefs(1, 1, 0, 0))
	}))
	msg = read(t, conn)
	assert.Equal(t, string(strategy.CoefsChanged), msg.Type)
	require.NotNil(t, msg.Player)
	assert.Equal(t, 10, *msg.Player)
}

func TestClosedWorkspaceNotifiesEditors(t *testing.T) {
	hub, mgr, srv := setup(t)
	w, _ := mgr.Create(1, "short")

	conn := dial(t, srv, w.ID)
	read(t, conn)
	require.Eventually(t, func() bool { return hub.RoomSize(w.ID) == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, mgr.Close(w.ID, 1))
	msg := read(t, conn)
	assert.Equal(t, "workspace_closed", msg.Type)
	assert.Equal(t, "closed", msg.Reason)
}

func TestUnknownWorkspaceIsRejected(t *testing.T) {
	_, _, srv := setup(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/workspaces/nope/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBroadcastOnlyReachesRoom(t *testing.T) {
	hub, mgr, srv := setup(t)
	a, _ := mgr.Create(1, "a")
	b, _ := mgr.Create(1, "b")

	connA := dial(t, srv, a.ID)
	read(t, connA)
	connB := dial(t, srv, b.ID)
	read(t, connB)
	require.Eventually(t, func() bool { return hub.RoomSize(a.ID) == 1 && hub.RoomSize(b.ID) == 1 }, time.Second, 5*time.Millisecond)

	hub.Broadcast(Message{Type: "ping", WorkspaceID: b.ID})

	assert.Equal(t, "ping", read(t, connB).Type)
	connA.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _, err := connA.ReadMessage()
	assert.Error(t, err)
}
