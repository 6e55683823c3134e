package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/placementhub/internal/app/models"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub
}

// newServer mounts the handler behind a fake auth step that trusts the query string.
func newServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(hub, []string{"http://localhost:5173"}, zerolog.Nop())
	r.GET("/ws/notifications", func(c *gin.Context) {
		if role := c.Query("role"); role != "" {
			c.Set("userID", int64(1))
			c.Set("role", models.Role(role))
		}
		c.Next()
	}, h.HandleConnection)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, role string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/notifications?role=" + role
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, role models.Role, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ClientsCount(role) == n }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_DeliversToAudienceOnly(t *testing.T) {
	hub := startHub(t)
	srv := newServer(t, hub)

	student := dial(t, srv, "student")
	faculty := dial(t, srv, "faculty")
	waitForClients(t, hub, models.RoleStudent, 1)
	waitForClients(t, hub, models.RoleFaculty, 1)

	hub.Notify(models.Notification{
		Type:     models.NotificationResourceAdded,
		Title:    "New resource",
		Body:     "Aptitude notes",
		Audience: []models.Role{models.RoleStudent},
	})

	_ = student.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := student.ReadMessage()
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "resource_added", got["type"])
	assert.Equal(t, "New resource", got["title"])
	assert.NotEmpty(t, got["timestamp"])
	assert.NotContains(t, got, "Audience")

	_ = faculty.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err = faculty.ReadMessage()
	assert.Error(t, err, "faculty is not in the audience")
}

func TestHandler_RequiresAuthenticatedUser(t *testing.T) {
	hub := startHub(t)
	srv := newServer(t, hub)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/notifications"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandler_RejectsForeignOrigin(t *testing.T) {
	hub := startHub(t)
	srv := newServer(t, hub)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/notifications?role=student"
	header := http.Header{"Origin": []string{"http://evil.test"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestHub_UnregistersClosedClients(t *testing.T) {
	hub := startHub(t)
	srv := newServer(t, hub)

	conn := dial(t, srv, "student")
	waitForClients(t, hub, models.RoleStudent, 1)

	conn.Close()
	waitForClients(t, hub, models.RoleStudent, 0)
	assert.Equal(t, 0, hub.ClientsCount(""))
}

func TestHub_ListenersAndTimestamp(t *testing.T) {
	hub := startHub(t)
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	hub.now = func() time.Time { return fixed }

	ch := make(chan models.Notification, 1)
	hub.AddListener(ch)

	hub.Notify(models.Notification{Type: models.NotificationExamCreated, Audience: []models.Role{models.RoleStudent}})

	select {
	case n := <-ch:
		assert.Equal(t, fixed, n.Timestamp)
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not receive notification")
	}

	hub.RemoveListener(ch)
	hub.Notify(models.Notification{Type: models.NotificationExamCreated})
	select {
	case <-ch:
		t.Fatal("removed listener still receives notifications")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHub_NotifyNeverBlocks(t *testing.T) {
	// Not running: the queue fills up and further notifications are dropped
	hub := NewHub(zerolog.Nop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < cap(hub.broadcast)+10; i++ {
			hub.Notify(models.Notification{Type: models.NotificationDriveCreated})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Notify blocked on a full queue")
	}
	assert.Len(t, hub.broadcast, cap(hub.broadcast))
}

func TestMessageHandler_RecentByRole(t *testing.T) {
	hub := startHub(t)
	mh := NewMessageHandler(hub, 2, zerolog.Nop())
	stop := mh.Start()
	defer stop()

	everyone := []models.Role{models.RoleStudent, models.RoleFaculty}
	hub.Notify(models.Notification{Type: "first", Audience: everyone})
	hub.Notify(models.Notification{Type: "second", Audience: []models.Role{models.RoleStudent}})
	hub.Notify(models.Notification{Type: "third", Audience: everyone})

	require.Eventually(t, func() bool {
		recent := mh.Recent(models.RoleStudent)
		return len(recent) > 0 && recent[0].Type == "third"
	}, 2*time.Second, 10*time.Millisecond)

	student := mh.Recent(models.RoleStudent)
	require.Len(t, student, 2)
	assert.Equal(t, "third", student[0].Type)
	assert.Equal(t, "second", student[1].Type)

	faculty := mh.Recent(models.RoleFaculty)
	require.Len(t, faculty, 1)
	assert.Equal(t, "third", faculty[0].Type)
}
