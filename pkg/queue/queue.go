// Package queue 定义入库事件的消息信封、主题与负载.
//
// 消息信封 JSON 结构:
//
//	{
//	  "header": {
//	    "id": "01J9Z3QK3W8M2V7X5R4T6Y8P0N",
//	    "topic": "csv.file.ingested",
//	    "trace_id": "optional-trace-id",
//	    "producer": "csvvault",
//	    "occurred_at": "2025-01-02T03:04:05.123456Z",
//	    "version": "v1"
//	  },
//	  "payload": { ... 取决于具体主题 ... }
//	}
//
// 事件 ID 是 ULID，消费端可按 ID 去重. 解码时校验信封主题与期望主题一致.
package queue

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/bytedance/sonic"
	"github.com/oklog/ulid"
)

// PayloadVersionV1 当前负载版本.
const PayloadVersionV1 = "v1"

// ErrTopicMismatch 信封主题与期望主题不一致.
var ErrTopicMismatch = errors.New("event topic mismatch")

// NewEventID 生成 ULID 事件 ID.
func NewEventID() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}

// NewEventHeader 创建事件头.
func NewEventHeader(topic string, opts ...func(*EventHeader)) EventHeader {
	hdr := EventHeader{
		ID:         NewEventID(),
		Topic:      topic,
		OccurredAt: time.Now().UTC(),
		Version:    PayloadVersionV1,
	}
	for _, opt := range opts {
		opt(&hdr)
	}

	return hdr
}

// WithTraceID 设置 TraceID.
func WithTraceID(id string) func(*EventHeader) { return func(h *EventHeader) { h.TraceID = id } }

// WithProducer 设置 Producer.
func WithProducer(p string) func(*EventHeader) { return func(h *EventHeader) { h.Producer = p } }

// metadata 返回写入 watermill 消息的元数据，空值不写.
func (h EventHeader) metadata() message.Metadata {
	md := message.Metadata{
		"topic":       h.Topic,
		"occurred_at": h.OccurredAt.Format(time.RFC3339Nano),
		"version":     h.Version,
	}

	if h.TraceID != "" {
		md["trace_id"] = h.TraceID
	}

	if h.Producer != "" {
		md["producer"] = h.Producer
	}

	return md
}

// NewWatermillMessage 构造 watermill 消息，消息 UUID 即事件 ID.
func NewWatermillMessage[T any](topic string, payload T, opts ...func(*EventHeader)) (*message.Message, error) {
	header := NewEventHeader(topic, opts...)

	data, err := sonic.Marshal(Message[T]{Header: header, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("encode %s event: %w", topic, err)
	}

	msg := message.NewMessage(header.ID, data)
	msg.Metadata = header.metadata()

	return msg, nil
}

// decode 解出信封并校验主题. 主题为空的旧消息按期望主题处理.
func decode[T any](topic string, msg *message.Message) (Message[T], error) {
	var env Message[T]

	if err := sonic.Unmarshal(msg.Payload, &env); err != nil {
		return env, fmt.Errorf("decode %s event %s: %w", topic, msg.UUID, err)
	}

	if env.Header.Topic != "" && env.Header.Topic != topic {
		return env, fmt.Errorf("%w: want %s, got %s", ErrTopicMismatch, topic, env.Header.Topic)
	}

	return env, nil
}
