package config

// Config 配置主体
type Config struct {
	DB     DBConfig     `mapstructure:"database"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Parser ParserConfig `mapstructure:"parser"`
	Sync   SyncConfig   `mapstructure:"sync"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn" validate:"required"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr" validate:"required"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// ParserConfig 页面抓取与提取配置。InfoSchema/FeedSchema 为 JSON 提取模式，
// 通常经环境变量注入，缺失属于启动期致命错误。
type ParserConfig struct {
	UserAgent  string `mapstructure:"user_agent"`
	TimeoutMs  int    `mapstructure:"timeout_ms" validate:"gt=0"`
	InfoSchema string `mapstructure:"info_schema" validate:"required"`
	FeedSchema string `mapstructure:"feed_schema" validate:"required"`
}

// SyncConfig 同步批次调参
type SyncConfig struct {
	BatchSize             int    `mapstructure:"batch_size" validate:"gt=0"`
	ChannelRunTimeLimitMs int    `mapstructure:"channel_run_time_limit_ms" validate:"gt=0"`
	OverallRunTimeLimitMs int    `mapstructure:"overall_run_time_limit_ms" validate:"gt=0"`
	LookbackDays          int    `mapstructure:"lookback_days" validate:"gte=0"`
	WindowScope           string `mapstructure:"window_scope" validate:"oneof=channel global"`
	// Schedule 为空表示单次运行，否则按 cron 表达式周期执行
	Schedule string `mapstructure:"schedule"`
}
