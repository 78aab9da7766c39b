// Package mq 提供基于 Watermill 的发布/订阅客户端.
//
// 支持的 MQ 类型：
//   - gochannel（进程内，默认）
//   - NATS（可选 JetStream）
//
// Client 封装 Publisher、Subscriber 和一个 message.Router，订阅处理函数通过 AddHandler 挂到 router 上.
package mq

import (
	"context"
	"fmt"
	"sort"

	watermill "github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/yeisme/csvvault/pkg/configs"
)

// Factory 定义创建 Publisher + Subscriber 的工厂函数.
type Factory func(ctx context.Context, cfg *configs.EventsConfig, logger watermill.LoggerAdapter) (message.Publisher, message.Subscriber, error)

var factories = map[configs.MQType]Factory{}

// RegisterFactory 注册指定 MQType 的工厂.
func RegisterFactory(t configs.MQType, f Factory) {
	factories[t] = f
}

// GetRegisteredMQTypes 返回已注册的 MQ 类型.
func GetRegisteredMQTypes() []configs.MQType {
	types := make([]configs.MQType, 0, len(factories))
	for t := range factories {
		types = append(types, t)
	}

	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	return types
}

// Client 封装 watermill Publisher、Subscriber 与 Router.
type Client struct {
	Type       configs.MQType
	publisher  message.Publisher
	subscriber message.Subscriber
	router     *message.Router
	logger     watermill.LoggerAdapter
	handlers   int
}

// Options 创建客户端的可选项.
type Options struct {
	Logger   *zerolog.Logger
	Registry prometheus.Registerer // 非空时为 publisher/subscriber/router 挂载 watermill 指标
	Metrics  string                // 指标命名空间
}

// New 按事件配置创建 MQ 客户端.
func New(ctx context.Context, cfg configs.EventsConfig, opts Options) (*Client, error) {
	factory, ok := factories[cfg.Type]
	if !ok {
		return nil, fmt.Errorf("unsupported mq type: %s", cfg.Type)
	}

	zl := opts.Logger
	if zl == nil {
		nop := zerolog.Nop()
		zl = &nop
	}

	logger := NewLoggerAdapter(zl)

	pub, sub, err := factory(ctx, &cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init mq (%s): %w", cfg.Type, err)
	}

	router, err := message.NewRouter(message.RouterConfig{}, logger)
	if err != nil {
		_ = pub.Close()
		_ = sub.Close()

		return nil, fmt.Errorf("create router: %w", err)
	}

	if opts.Registry != nil {
		builder := metrics.NewPrometheusMetricsBuilder(opts.Registry, opts.Metrics, "mq")
		builder.AddPrometheusRouterMetrics(router)

		if pub, err = builder.DecoratePublisher(pub); err != nil {
			return nil, fmt.Errorf("decorate publisher with metrics: %w", err)
		}

		if sub, err = builder.DecorateSubscriber(sub); err != nil {
			return nil, fmt.Errorf("decorate subscriber with metrics: %w", err)
		}
	}

	zl.Info().Str("type", string(cfg.Type)).Msg("mq client initialized")

	return &Client{Type: cfg.Type, publisher: pub, subscriber: sub, router: router, logger: logger}, nil
}

// Publish 发布消息到指定主题.
func (c *Client) Publish(_ context.Context, topic string, msgs ...*message.Message) error {
	if c == nil || c.publisher == nil {
		return fmt.Errorf("mq publisher not initialized")
	}

	return c.publisher.Publish(topic, msgs...)
}

// Publisher 返回底层 Publisher，供 queue 包发布强类型事件.
func (c *Client) Publisher() message.Publisher {
	return c.publisher
}

// Subscribe 直接订阅主题，调用方负责 Ack/Nack.
func (c *Client) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	if c == nil || c.subscriber == nil {
		return nil, fmt.Errorf("mq subscriber not initialized")
	}

	return c.subscriber.Subscribe(ctx, topic)
}

// AddHandler 在 router 上注册只消费不转发的处理函数，需在 Run 之前调用.
func (c *Client) AddHandler(name, topic string, handler message.NoPublishHandlerFunc) {
	c.router.AddNoPublisherHandler(name, topic, c.subscriber, handler)
	c.handlers++
}

// HasHandlers 是否注册过处理函数.
func (c *Client) HasHandlers() bool {
	return c.handlers > 0
}

// Run 启动 router，阻塞直到 ctx 结束或 router 关闭.
func (c *Client) Run(ctx context.Context) error {
	return c.router.Run(ctx)
}

// Running 在 router 启动后关闭返回的 channel.
func (c *Client) Running() chan struct{} {
	return c.router.Running()
}

// HealthCheck 检查 router 是否已关闭.
func (c *Client) HealthCheck(_ context.Context) error {
	if c == nil || c.router == nil {
		return fmt.Errorf("mq not initialized")
	}

	if c.router.IsClosed() {
		return fmt.Errorf("mq router closed")
	}

	return nil
}

// Close 关闭 router、publisher 与 subscriber.
func (c *Client) Close() error {
	var err error

	if c.router != nil {
		if e := c.router.Close(); e != nil {
			err = e
		}
	}

	if c.publisher != nil {
		if e := c.publisher.Close(); e != nil {
			err = e
		}
	}

	if c.subscriber != nil {
		if e := c.subscriber.Close(); e != nil {
			err = e
		}
	}

	return err
}
