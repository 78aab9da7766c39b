package queue

import "github.com/ThreeDotsLabs/watermill/message"

// Publisher 发布接口，*mq.Client 与 message.Publisher 适配后均可满足.
type Publisher interface {
	Publish(topic string, messages ...*message.Message) error
}

func publish[T any](pub Publisher, topic string, payload T, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(topic, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(topic, msg)
}

// PublishFileIngested 发布 csv.file.ingested 事件.
func PublishFileIngested(pub Publisher, payload FileIngestedPayload, opts ...func(*EventHeader)) error {
	return publish(pub, TopicFileIngested, payload, opts...)
}

// ParseFileIngested 解析 csv.file.ingested 事件.
func ParseFileIngested(msg *message.Message) (Message[FileIngestedPayload], error) {
	return decode[FileIngestedPayload](TopicFileIngested, msg)
}

// PublishFileArchived 发布 csv.file.archived 事件.
func PublishFileArchived(pub Publisher, payload FileArchivedPayload, opts ...func(*EventHeader)) error {
	return publish(pub, TopicFileArchived, payload, opts...)
}

// ParseFileArchived 解析 csv.file.archived 事件.
func ParseFileArchived(msg *message.Message) (Message[FileArchivedPayload], error) {
	return decode[FileArchivedPayload](TopicFileArchived, msg)
}

// PublishFileDeleted 发布 csv.file.deleted 事件.
func PublishFileDeleted(pub Publisher, payload FileDeletedPayload, opts ...func(*EventHeader)) error {
	return publish(pub, TopicFileDeleted, payload, opts...)
}

// ParseFileDeleted 解析 csv.file.deleted 事件.
func ParseFileDeleted(msg *message.Message) (Message[FileDeletedPayload], error) {
	return decode[FileDeletedPayload](TopicFileDeleted, msg)
}
