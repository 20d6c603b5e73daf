package notify

import (
	"context"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"
)

var _ = Describe("Hub", func() {
	var (
		hub *Hub
		ctx context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		hub = NewHub(2)
	})

	It("delivers every event to every subscriber", func() {
		a := hub.Subscribe()
		b := hub.Subscribe()
		defer a.Close()
		defer b.Close()

		evt := Event{Type: EventCreated, Resource: "organization", ID: 1}
		Expect(hub.Publish(ctx, evt)).To(Succeed())

		Expect(a.Events()).To(Receive(Equal(evt)))
		Expect(b.Events()).To(Receive(Equal(evt)))
	})

	It("drops events for a subscriber whose buffer is full", func() {
		slow := hub.Subscribe()
		defer slow.Close()

		for i := int64(1); i <= 5; i++ {
			Expect(hub.Publish(ctx, Event{Type: EventUpdated, Resource: "transaction", ID: i})).To(Succeed())
		}

		var got []int64
		for len(slow.Events()) > 0 {
			got = append(got, (<-slow.Events()).ID)
		}
		Expect(got).To(Equal([]int64{1, 2}))
	})

	It("removes closed subscriptions and closes their channel", func() {
		s := hub.Subscribe()
		Expect(hub.Len()).To(Equal(1))

		s.Close()
		s.Close()
		Expect(hub.Len()).To(BeZero())
		Eventually(s.Events()).Should(BeClosed())

		Expect(hub.Publish(ctx, Event{Type: EventDeleted})).To(Succeed())
	})
})

var _ = Describe("RedisBroker", func() {
	It("relays decoded payloads into the local hub", func() {
		hub := NewHub(4)
		broker := NewRedisBroker(nil, "chem:test", hub)
		sub := broker.Subscribe()
		defer sub.Close()

		broker.relay(context.Background(), `{"type":"linked","resource":"contributor","id":"42","organizationId":"7","occurredAt":"2024-01-01T00:00:00Z"}`)
		broker.relay(context.Background(), `not json`)

		var evt Event
		Expect(sub.Events()).To(Receive(&evt))
		Expect(evt.Type).To(Equal(EventLinked))
		Expect(evt.ID).To(Equal(int64(42)))
		Expect(*evt.OrganizationID).To(Equal(int64(7)))
		Expect(sub.Events()).NotTo(Receive())
	})

	It("round-trips through a live Redis", func() {
		url := os.Getenv("CHEM_TEST_REDIS_URL")
		if url == "" {
			Skip("CHEM_TEST_REDIS_URL not set")
		}
		opts, err := redis.ParseURL(url)
		Expect(err).NotTo(HaveOccurred())
		client := redis.NewClient(opts)
		defer client.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		broker := NewRedisBroker(client, "chem:test:"+time.Now().Format(time.RFC3339Nano), NewHub(4))
		sub := broker.Subscribe()
		defer sub.Close()
		go func() { _ = broker.Run(ctx) }()

		evt := Event{Type: EventCreated, Resource: "organization", ID: 9, OccurredAt: time.Now().UTC().Truncate(time.Second)}
		// The relay may not be subscribed yet, so keep publishing until one arrives.
		Eventually(func() bool {
			_ = broker.Publish(ctx, evt)
			select {
			case got := <-sub.Events():
				return got.ID == 9
			case <-time.After(100 * time.Millisecond):
				return false
			}
		}, 5*time.Second).Should(BeTrue())
	})
})
