package queue

import "time"

// EventHeader 所有事件的通用头部.
type EventHeader struct {
	// ID ULID 事件 ID.
	ID string `json:"id"`
	// Topic 冗余记录消息主题，便于离线处理定位来源.
	Topic    string `json:"topic"`
	TraceID  string `json:"trace_id,omitempty"`
	Producer string `json:"producer,omitempty"`
	// OccurredAt 事件发生时间（UTC）.
	OccurredAt time.Time `json:"occurred_at"`
	Version    string    `json:"version,omitempty"`
}

// Message 统一的消息封装，T 为主题对应的负载.
type Message[T any] struct {
	Header  EventHeader `json:"header"`
	Payload T           `json:"payload"`
}

// ColumnRef 事件中携带的列描述.
type ColumnRef struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Type  string `json:"type"`
}

// FileIngestedPayload 文件入库完成.
type FileIngestedPayload struct {
	FileID   uint        `json:"file_id"`
	Name     string      `json:"name"`
	Path     string      `json:"path"`
	Size     int64       `json:"size"`
	Checksum string      `json:"checksum,omitempty"`
	Columns  []ColumnRef `json:"columns"`
}

// FileArchivedPayload 原文件已上传到对象存储.
type FileArchivedPayload struct {
	FileID    uint   `json:"file_id"`
	Bucket    string `json:"bucket"`
	ObjectKey string `json:"object_key"`
	ETag      string `json:"etag,omitempty"`
	Size      int64  `json:"size"`
}

// FileDeletedPayload 文件已删除.
type FileDeletedPayload struct {
	FileID uint   `json:"file_id"`
	Name   string `json:"name"`
	Path   string `json:"path"`
}
