package handler_test

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"chem.app/api/internal/http/handler"
	"chem.app/api/internal/notify"
)

var _ = Describe("NotificationHandler", func() {
	var (
		hub    *notify.Hub
		server *httptest.Server
		orgID  int64
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		hub = notify.NewHub(4)
		orgID = 7
		h := handler.NewNotificationHandler(hub, []string{"http://app.example.org"}, 50*time.Millisecond)

		router := gin.New()
		router.GET("/notifications/ws", h.WebSocket)
		router.GET("/notifications/stream", h.Stream)
		server = httptest.NewServer(router)
	})

	AfterEach(func() {
		server.Close()
	})

	It("streams events and keep-alive pings over SSE", func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/notifications/stream", nil)
		Expect(err).NotTo(HaveOccurred())
		resp, err := http.DefaultClient.Do(req)
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()

		Expect(resp.Header.Get("Content-Type")).To(Equal("text/event-stream"))
		reader := bufio.NewReader(resp.Body)
		readUntil := func(prefix string) string {
			for {
				line, err := reader.ReadString('\n')
				Expect(err).NotTo(HaveOccurred())
				if strings.HasPrefix(line, prefix) {
					return line
				}
			}
		}

		Expect(readUntil("data: ")).To(Equal("data: ready\n"))

		Expect(hub.Publish(ctx, notify.Event{Type: notify.EventCreated, Resource: "organization", ID: 7, OrganizationID: &orgID})).To(Succeed())
		Expect(readUntil("event: created")).To(Equal("event: created\n"))
		data := readUntil("data: ")
		Expect(data).To(ContainSubstring(`"resource":"organization"`))
		Expect(data).To(ContainSubstring(`"organizationId":"7"`))

		Expect(readUntil("event: ")).To(Equal("event: ping\n"))
	})

	It("delivers events over WebSocket and detaches on close", func() {
		url := "ws" + strings.TrimPrefix(server.URL, "http") + "/notifications/ws"
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		Expect(err).NotTo(HaveOccurred())

		Eventually(hub.Len).Should(Equal(1))
		Expect(hub.Publish(context.Background(), notify.Event{Type: notify.EventDeleted, Resource: "contributor", ID: 3})).To(Succeed())

		var evt notify.Event
		Expect(conn.SetReadDeadline(time.Now().Add(2 * time.Second))).To(Succeed())
		Expect(conn.ReadJSON(&evt)).To(Succeed())
		Expect(evt.Type).To(Equal(notify.EventDeleted))
		Expect(evt.ID).To(Equal(int64(3)))

		Expect(conn.Close()).To(Succeed())
		Eventually(hub.Len).Should(BeZero())
	})

	It("refuses WebSocket upgrades from unknown origins", func() {
		url := "ws" + strings.TrimPrefix(server.URL, "http") + "/notifications/ws"
		header := http.Header{"Origin": {"http://evil.example.com"}}

		_, resp, err := websocket.DefaultDialer.Dial(url, header)

		Expect(err).To(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusForbidden))
		Expect(hub.Len()).To(BeZero())
	})
})
