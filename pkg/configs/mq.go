package configs

import (
	"time"
)

// MQType 消息队列类型.
type MQType string

const (
	MQTypeGoChannel MQType = "gochannel"
	MQTypeNATS      MQType = "nats"

	DefaultMQURL             = "nats://localhost:4222"
	DefaultMQClientID        = "csvvault"
	DefaultMaxReconnects     = 5     // 默认最大重连次数.
	DefaultReconnectWait     = 5     // 默认重连等待时间（秒）.
	DefaultPingInterval      = 20    // 默认ping间隔 (秒)
	DefaultBufferSize        = 32768 // 默认重连缓冲区大小 (32KB)
	DefaultChannelBufferSize = 64    // gochannel 输出缓冲
)

// NATSConfig NATS 连接与 JetStream 配置.
type NATSConfig struct {
	URL                    string   `mapstructure:"url"                      json:"url"                      yaml:"url"`
	ClusterURLs            []string `mapstructure:"cluster_urls"             json:"cluster_urls"             yaml:"cluster_urls"`
	User                   string   `mapstructure:"user"                     json:"user"                     yaml:"user"`
	Password               string   `mapstructure:"password"                 json:"-"                        yaml:"-"`
	Token                  string   `mapstructure:"token"                    json:"-"                        yaml:"-"`
	ClientID               string   `mapstructure:"client_id"                json:"client_id"                yaml:"client_id"`
	MaxReconnects          int      `mapstructure:"max_reconnects"           json:"max_reconnects"           yaml:"max_reconnects"           rule:"min=-1,max=100"`
	ReconnectWait          int      `mapstructure:"reconnect_wait"           json:"reconnect_wait"           yaml:"reconnect_wait"           rule:"min=0,max=300"`
	PingInterval           int      `mapstructure:"ping_interval"            json:"ping_interval"            yaml:"ping_interval"            rule:"min=0,max=300"`
	BufferSize             int      `mapstructure:"buffer_size"              json:"buffer_size"              yaml:"buffer_size"              rule:"min=0"`
	JetStreamEnabled       bool     `mapstructure:"jetstream_enabled"        json:"jetstream_enabled"        yaml:"jetstream_enabled"`
	JetStreamAutoProvision bool     `mapstructure:"jetstream_auto_provision" json:"jetstream_auto_provision" yaml:"jetstream_auto_provision"`
	JetStreamTrackMsgID    bool     `mapstructure:"jetstream_track_msg_id"   json:"jetstream_track_msg_id"   yaml:"jetstream_track_msg_id"`
	JetStreamAckAsync      bool     `mapstructure:"jetstream_ack_async"      json:"jetstream_ack_async"      yaml:"jetstream_ack_async"`
	DurablePrefix          string   `mapstructure:"durable_prefix"           json:"durable_prefix"           yaml:"durable_prefix"`
	QueueGroupPrefix       string   `mapstructure:"queue_group_prefix"       json:"queue_group_prefix"       yaml:"queue_group_prefix"`
}

// GetReconnectWait 返回重连等待时间.
func (c *NATSConfig) GetReconnectWait() time.Duration {
	return time.Duration(c.ReconnectWait) * time.Second
}

// GetPingInterval 返回 ping 间隔.
func (c *NATSConfig) GetPingInterval() time.Duration {
	return time.Duration(c.PingInterval) * time.Second
}
