package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"Tgspace/internal/pkg/util"
)

// LoadConfig 从文件与环境变量加载配置。环境变量以 TGSPACE_ 为前缀，
// 覆盖同名文件配置项（如 TGSPACE_PARSER_FEED_SCHEMA）。
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")

	v.SetEnvPrefix("TGSPACE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// 配置文件缺省时允许纯环境变量运行
	}

	// AutomaticEnv 不参与 Unmarshal，显式绑定各键
	for _, key := range []string{
		"database.dsn", "database.max_idle", "database.max_open", "database.max_lifetime",
		"redis.addr", "redis.password", "redis.db", "redis.pool_size",
		"parser.user_agent", "parser.timeout_ms", "parser.info_schema", "parser.feed_schema",
		"sync.batch_size", "sync.channel_run_time_limit_ms", "sync.overall_run_time_limit_ms",
		"sync.lookback_days", "sync.window_scope", "sync.schedule",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := util.ValidateStruct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.max_idle", 4)
	v.SetDefault("database.max_open", 16)
	v.SetDefault("database.max_lifetime", 30)
	v.SetDefault("redis.pool_size", 8)
	v.SetDefault("parser.timeout_ms", 20000)
	v.SetDefault("parser.user_agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	v.SetDefault("sync.batch_size", 20)
	v.SetDefault("sync.channel_run_time_limit_ms", 300000)
	v.SetDefault("sync.overall_run_time_limit_ms", 300000)
	v.SetDefault("sync.lookback_days", 2)
	v.SetDefault("sync.window_scope", "channel")
}
