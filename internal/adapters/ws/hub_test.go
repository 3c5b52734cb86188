package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/fairwaylabs/swingsense/internal/domain/model"
	"github.com/fairwaylabs/swingsense/pkg/logger"
)

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	return conn
}

func TestHubBroadcast(t *testing.T) {
	_ = logger.Init()

	Convey("Given a hub with one connected client", t, func() {
		h := NewHub()
		server := httptest.NewServer(h.Handler())
		defer server.Close()
		defer h.Close()

		conn := dial(t, server)
		defer conn.Close()

		// Wait for the hub to register the connection.
		for i := 0; i < 100 && h.ClientCount() == 0; i++ {
			time.Sleep(5 * time.Millisecond)
		}
		So(h.ClientCount(), ShouldEqual, 1)

		Convey("When a detection is broadcast", func() {
			result := model.SwingDetectionResult{
				ID:         "swing-1",
				IsSwing:    true,
				Confidence: 88.0,
			}
			h.Broadcast(result)

			Convey("Then the client receives it as JSON", func() {
				_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
				_, payload, err := conn.ReadMessage()
				So(err, ShouldBeNil)

				var got model.SwingDetectionResult
				So(json.Unmarshal(payload, &got), ShouldBeNil)
				So(got.ID, ShouldEqual, "swing-1")
				So(got.Confidence, ShouldEqual, 88.0)
			})
		})
	})
}

func TestHubMultipleClients(t *testing.T) {
	_ = logger.Init()

	Convey("Given a hub with two connected clients", t, func() {
		h := NewHub()
		server := httptest.NewServer(h.Handler())
		defer server.Close()
		defer h.Close()

		first := dial(t, server)
		defer first.Close()
		second := dial(t, server)
		defer second.Close()

		for i := 0; i < 100 && h.ClientCount() < 2; i++ {
			time.Sleep(5 * time.Millisecond)
		}
		So(h.ClientCount(), ShouldEqual, 2)

		Convey("When a detection is broadcast", func() {
			h.Broadcast(model.SwingDetectionResult{ID: "swing-2", IsSwing: true, Confidence: 75.0})

			Convey("Then both clients receive it", func() {
				for _, conn := range []*websocket.Conn{first, second} {
					_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
					_, payload, err := conn.ReadMessage()
					So(err, ShouldBeNil)
					So(string(payload), ShouldContainSubstring, "swing-2")
				}
			})
		})

		Convey("When one client disconnects", func() {
			So(first.Close(), ShouldBeNil)
			for i := 0; i < 100 && h.ClientCount() > 1; i++ {
				time.Sleep(5 * time.Millisecond)
			}

			Convey("Then the hub forgets it", func() {
				So(h.ClientCount(), ShouldEqual, 1)
			})
		})
	})
}

func TestHubClose(t *testing.T) {
	_ = logger.Init()

	Convey("Given a closed hub", t, func() {
		h := NewHub()
		server := httptest.NewServer(h.Handler())
		defer server.Close()

		conn := dial(t, server)
		defer conn.Close()
		for i := 0; i < 100 && h.ClientCount() == 0; i++ {
			time.Sleep(5 * time.Millisecond)
		}

		h.Close()

		Convey("Then existing clients are dropped", func() {
			So(h.ClientCount(), ShouldEqual, 0)
		})

		Convey("Then closing again is a no-op", func() {
			So(h.Close, ShouldNotPanic)
		})

		Convey("Then broadcasting is safe", func() {
			So(func() {
				h.Broadcast(model.SwingDetectionResult{ID: "after-close"})
			}, ShouldNotPanic)
		})
	})
}
