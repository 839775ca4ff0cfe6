package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"agency-configurator-be/internal/pkg/logger"
	"agency-configurator-be/pkg/events"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcastsLeadEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil, logger.NewNopLogger())
	go hub.Run(ctx)

	client := &Client{Hub: hub, AdminID: "admin-1", Send: make(chan []byte, 4)}
	hub.register <- client

	occurred := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, hub.Publish(ctx, events.BaseEvent{
		Type:       events.TypeLeadCreated,
		Data:       map[string]interface{}{"reference": "DEV-20240301-ABCDEF"},
		OccurredAt: occurred,
	}))
	// session events stay off the feed
	require.NoError(t, hub.Publish(ctx, events.BaseEvent{Type: events.TypeConfigurationComplete}))

	select {
	case raw := <-client.Send:
		var frame Frame
		require.NoError(t, json.Unmarshal(raw, &frame))
		assert.Equal(t, events.TypeLeadCreated, frame.Type)
		assert.Equal(t, "DEV-20240301-ABCDEF", frame.Data["reference"])
		assert.True(t, occurred.Equal(frame.OccurredAt))
	case <-time.After(time.Second):
		t.Fatal("no frame delivered")
	}

	assert.Never(t, func() bool { return len(client.Send) > 0 }, 100*time.Millisecond, 10*time.Millisecond)
}

func TestHubClosesClientsOnShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil, logger.NewNopLogger())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	client := &Client{Hub: hub, AdminID: "admin-1", Send: make(chan []byte, 1)}
	hub.register <- client
	cancel()
	<-stopped

	_, open := <-client.Send
	assert.False(t, open)
}

func TestHubFansOutThroughRedis(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mr := miniredis.RunT(t)
	newInstance := func() (*Hub, *Client) {
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })
		hub := NewHub(rdb, logger.NewNopLogger())
		go hub.Run(ctx)
		client := &Client{Hub: hub, AdminID: "admin", Send: make(chan []byte, 4)}
		hub.register <- client
		return hub, client
	}
	publisher, local := newInstance()
	_, remote := newInstance()

	require.Eventually(t, func() bool {
		return mr.PubSubNumSub(FeedChannel)[FeedChannel] == 2
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, publisher.Publish(ctx, events.BaseEvent{
		Type: events.TypeLeadStatusChanged,
		Data: map[string]interface{}{"status": "contacte"},
	}))

	for _, client := range []*Client{local, remote} {
		select {
		case raw := <-client.Send:
			var frame Frame
			require.NoError(t, json.Unmarshal(raw, &frame))
			assert.Equal(t, events.TypeLeadStatusChanged, frame.Type)
			assert.Equal(t, "contacte", frame.Data["status"])
		case <-time.After(time.Second):
			t.Fatal("frame not delivered through redis")
		}
	}

	assert.Never(t, func() bool {
		return len(local.Send) > 0 || len(remote.Send) > 0
	}, 100*time.Millisecond, 10*time.Millisecond)
}

func TestHubIgnoresMalformedRedisFrames(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	hub := NewHub(rdb, logger.NewNopLogger())
	go hub.Run(ctx)
	client := &Client{Hub: hub, AdminID: "admin", Send: make(chan []byte, 4)}
	hub.register <- client

	require.Eventually(t, func() bool {
		return mr.PubSubNumSub(FeedChannel)[FeedChannel] == 1
	}, time.Second, 10*time.Millisecond)

	mr.Publish(FeedChannel, "not json")
	assert.Never(t, func() bool { return len(client.Send) > 0 }, 100*time.Millisecond, 10*time.Millisecond)
}
