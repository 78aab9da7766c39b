package mq

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/yeisme/csvvault/pkg/configs"
)

func init() {
	RegisterFactory(configs.MQTypeGoChannel, goChannelFactory)
}

// goChannelFactory 进程内 pub/sub，同一个 GoChannel 同时作为 Publisher 与 Subscriber.
func goChannelFactory(
	_ context.Context,
	cfg *configs.EventsConfig,
	logger watermill.LoggerAdapter) (
	message.Publisher, message.Subscriber, error) {
	buffer := cfg.ChannelBufferSize
	if buffer <= 0 {
		buffer = configs.DefaultChannelBufferSize
	}

	ch := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: buffer}, logger)

	return ch, &noCloseSubscriber{Subscriber: ch}, nil
}

// noCloseSubscriber 避免 Client.Close 对同一个 GoChannel 关闭两次.
type noCloseSubscriber struct {
	message.Subscriber
}

func (s *noCloseSubscriber) Close() error { return nil }
