package realtime_test

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/talenthub/talent-hub/internal/auth"
	"github.com/talenthub/talent-hub/internal/realtime"
)

func TestRealtime(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Realtime Suite")
}

// wsPair upgrades one server-side connection and dials it, returning both
// ends.
func wsPair() (server *websocket.Conn, client *websocket.Conn, cleanup func()) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	serverConns := make(chan *websocket.Conn, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		serverConns <- conn
	}))

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	Expect(err).NotTo(HaveOccurred())

	server = <-serverConns
	cleanup = func() {
		client.Close()
		server.Close()
		srv.Close()
	}
	return server, client, cleanup
}

func readPayload(conn *websocket.Conn) realtime.PushPayload {
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	Expect(err).NotTo(HaveOccurred())

	var payload realtime.PushPayload
	Expect(json.Unmarshal(data, &payload)).To(Succeed())
	return payload
}

var _ = Describe("Hub", func() {
	var hub *realtime.Hub

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		hub = realtime.NewHub(logger)
	})

	Describe("Register and Unregister", func() {
		It("should track connections per user", func() {
			server, _, cleanup := wsPair()
			defer cleanup()

			hub.Register(10, server)
			Expect(hub.Connections(10)).To(Equal(1))

			hub.Unregister(10, server)
			Expect(hub.Connections(10)).To(Equal(0))
		})
	})

	Describe("Push", func() {
		It("should deliver the payload to the user's connection", func() {
			server, client, cleanup := wsPair()
			defer cleanup()
			hub.Register(10, server)

			err := hub.Push(10, realtime.PushPayload{ID: 1, Title: "t", Message: "hello"})
			Expect(err).NotTo(HaveOccurred())

			payload := readPayload(client)
			Expect(payload.ID).To(Equal(int64(1)))
			Expect(payload.Message).To(Equal("hello"))
		})

		It("should deliver to every simultaneous connection of the user", func() {
			serverA, clientA, cleanupA := wsPair()
			defer cleanupA()
			serverB, clientB, cleanupB := wsPair()
			defer cleanupB()

			hub.Register(10, serverA)
			hub.Register(10, serverB)
			Expect(hub.Connections(10)).To(Equal(2))

			Expect(hub.Push(10, realtime.PushPayload{ID: 2, Message: "both"})).To(Succeed())

			Expect(readPayload(clientA).Message).To(Equal("both"))
			Expect(readPayload(clientB).Message).To(Equal("both"))
		})

		It("should not fail for a user with no connections", func() {
			Expect(hub.Push(99, realtime.PushPayload{ID: 3})).To(Succeed())
		})

		It("should not deliver to other users", func() {
			serverA, _, cleanupA := wsPair()
			defer cleanupA()
			serverB, clientB, cleanupB := wsPair()
			defer cleanupB()

			hub.Register(10, serverA)
			hub.Register(11, serverB)

			Expect(hub.Push(10, realtime.PushPayload{ID: 4, Message: "private"})).To(Succeed())

			clientB.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
			_, _, err := clientB.ReadMessage()
			Expect(err).To(HaveOccurred())
		})

		It("should serialize overlapping pushes to one connection", func() {
			server, client, cleanup := wsPair()
			defer cleanup()
			hub.Register(10, server)

			const pushes = 32
			var wg sync.WaitGroup
			for i := 0; i < pushes; i++ {
				wg.Add(1)
				go func(id int64) {
					defer wg.Done()
					defer GinkgoRecover()
					Expect(hub.Push(10, realtime.PushPayload{ID: id, Message: "burst"})).To(Succeed())
				}(int64(i))
			}
			wg.Wait()

			seen := make(map[int64]bool)
			for i := 0; i < pushes; i++ {
				seen[readPayload(client).ID] = true
			}
			Expect(seen).To(HaveLen(pushes))
		})

		It("should drop a connection whose write fails", func() {
			server, client, cleanup := wsPair()
			defer cleanup()

			hub.Register(10, server)
			client.Close()
			server.Close()

			Expect(hub.Push(10, realtime.PushPayload{ID: 5})).To(Succeed())
			Expect(hub.Connections(10)).To(Equal(0))
		})
	})
})

type staticResolver struct {
	user *auth.User
}

func (s *staticResolver) ResolveUser(token string) (*auth.User, error) {
	if s.user != nil && token == "good" {
		return s.user, nil
	}
	return nil, errors.New("bad token")
}

var _ = Describe("Handler", func() {
	var (
		hub     *realtime.Hub
		handler *realtime.Handler
		srv     *httptest.Server
	)

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		hub = realtime.NewHub(logger)
		handler = realtime.NewHandler(hub, &staticResolver{user: &auth.User{ID: 10}}, logger)
		srv = httptest.NewServer(http.HandlerFunc(handler.Serve))
	})

	AfterEach(func() {
		srv.Close()
	})

	It("should reject a handshake without a token", func() {
		resp, err := http.Get(srv.URL)
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()
		Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
	})

	It("should reject an invalid token before upgrading", func() {
		resp, err := http.Get(srv.URL + "?token=bad")
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()
		Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
	})

	It("should upgrade and register a valid token from the query string", func() {
		url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?token=good"
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		Expect(err).NotTo(HaveOccurred())
		defer conn.Close()

		Eventually(func() int { return hub.Connections(10) }).Should(Equal(1))

		conn.Close()
		Eventually(func() int { return hub.Connections(10) }).Should(Equal(0))
	})
})
