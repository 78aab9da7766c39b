package mq_test

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/csvvault/pkg/configs"
	"github.com/yeisme/csvvault/pkg/internal/storage/mq"
)

func goChannelConfig() configs.EventsConfig {
	return configs.EventsConfig{Enabled: true, Type: configs.MQTypeGoChannel, ChannelBufferSize: 8}
}

func TestRegisteredTypes(t *testing.T) {
	types := mq.GetRegisteredMQTypes()
	assert.Contains(t, types, configs.MQTypeGoChannel)
	assert.Contains(t, types, configs.MQTypeNATS)

	_, err := mq.New(context.Background(), configs.EventsConfig{Type: "kafka"}, mq.Options{})
	require.Error(t, err)
}

func TestGoChannel_SubscribePublish(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mq.New(ctx, goChannelConfig(), mq.Options{})
	require.NoError(t, err)

	defer client.Close()

	ch, err := client.Subscribe(ctx, "csv.test")
	require.NoError(t, err)

	require.NoError(t, client.Publish(ctx, "csv.test", message.NewMessage(watermill.NewUUID(), []byte("hello"))))

	select {
	case msg := <-ch:
		assert.Equal(t, "hello", string(msg.Payload))
		msg.Ack()
	case <-ctx.Done():
		t.Fatal("message not delivered")
	}
}

func TestGoChannel_RouterHandler(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mq.New(ctx, goChannelConfig(), mq.Options{Registry: prometheus.NewRegistry(), Metrics: "test"})
	require.NoError(t, err)

	defer client.Close()

	got := make(chan string, 1)

	client.AddHandler("collect", "csv.routed", func(msg *message.Message) error {
		got <- string(msg.Payload)
		return nil
	})
	assert.True(t, client.HasHandlers())

	go func() { _ = client.Run(ctx) }()

	<-client.Running()
	require.NoError(t, client.HealthCheck(ctx))

	require.NoError(t, client.Publish(ctx, "csv.routed", message.NewMessage(watermill.NewUUID(), []byte("routed"))))

	select {
	case payload := <-got:
		assert.Equal(t, "routed", payload)
	case <-ctx.Done():
		t.Fatal("handler not invoked")
	}

	require.NoError(t, client.Close())
	require.Error(t, client.HealthCheck(ctx))
}
