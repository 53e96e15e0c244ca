package events_test

import (
	"context"
	"encoding/json"
	"testing"

	"Corebank/internal/events"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRedisPublisherAppendsToStream(t *testing.T) {
	s, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer s.Close()

	client := redislib.NewClient(&redislib.Options{Addr: s.Addr()})
	publisher := events.NewRedisPublisher(client)

	err = publisher.Publish(context.Background(), "transfer.settled", map[string]any{"reference": "abc-123"})
	require.NoError(t, err)

	entries, err := client.XRange(context.Background(), events.Stream, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	raw, ok := entries[0].Values["event"].(string)
	require.True(t, ok)

	var event events.Event
	require.NoError(t, json.Unmarshal([]byte(raw), &event))
	require.Equal(t, "transfer.settled", event.Type)
	require.False(t, event.Timestamp.IsZero())

	data, ok := event.Data.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "abc-123", data["reference"])
}

func TestRedisPublisherUnreachableServer(t *testing.T) {
	client := redislib.NewClient(&redislib.Options{Addr: "127.0.0.1:1"})
	publisher := events.NewRedisPublisher(client)

	err := publisher.Publish(context.Background(), "transfer.settled", nil)
	require.Error(t, err)
}

func TestNopPublisherDiscards(t *testing.T) {
	var p events.NopPublisher
	require.NoError(t, p.Publish(context.Background(), "anything", nil))
}
