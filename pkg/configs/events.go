package configs

import "github.com/spf13/viper"

// EventsConfig 控制文件入库事件的发布与订阅.
type EventsConfig struct {
	Enabled           bool       `mapstructure:"enabled"             json:"enabled"             yaml:"enabled"` // 总开关
	Type              MQType     `mapstructure:"type"                json:"type"                yaml:"type"                rule:"oneof=gochannel nats"`
	Producer          string     `mapstructure:"producer"            json:"producer"            yaml:"producer"`
	ChannelBufferSize int64      `mapstructure:"channel_buffer_size" json:"channel_buffer_size" yaml:"channel_buffer_size" rule:"min=0"`
	LogEvents         bool       `mapstructure:"log_events"          json:"log_events"          yaml:"log_events"` // 订阅并记录每条事件
	NATS              NATSConfig `mapstructure:"nats"                json:"nats"                yaml:"nats"`
}

func (c *EventsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("events.enabled", true)
	v.SetDefault("events.type", MQTypeGoChannel)
	v.SetDefault("events.producer", AppName)
	v.SetDefault("events.channel_buffer_size", DefaultChannelBufferSize)
	v.SetDefault("events.log_events", true)

	v.SetDefault("events.nats.url", DefaultMQURL)
	v.SetDefault("events.nats.cluster_urls", []string{})
	v.SetDefault("events.nats.user", "")
	v.SetDefault("events.nats.password", "")
	v.SetDefault("events.nats.token", "")
	v.SetDefault("events.nats.client_id", DefaultMQClientID)
	v.SetDefault("events.nats.max_reconnects", DefaultMaxReconnects)
	v.SetDefault("events.nats.reconnect_wait", DefaultReconnectWait)
	v.SetDefault("events.nats.ping_interval", DefaultPingInterval)
	v.SetDefault("events.nats.buffer_size", DefaultBufferSize)
	v.SetDefault("events.nats.jetstream_enabled", false)
	v.SetDefault("events.nats.jetstream_auto_provision", true)
	v.SetDefault("events.nats.jetstream_track_msg_id", true)
	v.SetDefault("events.nats.jetstream_ack_async", false)
	v.SetDefault("events.nats.durable_prefix", "csvvault-durable")
	v.SetDefault("events.nats.queue_group_prefix", "csvvault")
}
