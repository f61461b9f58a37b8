package config

import (
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultGenEdCatalog 内置的通识教育要求目录（22 项），未配置外部文件时使用
//
//go:embed gened_catalog.yaml
var DefaultGenEdCatalog []byte

// Config 应用全局配置结构体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port      int             `mapstructure:"port"`
	BodyLimit int64           `mapstructure:"body_limit"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// RateLimitConfig 查询类接口的限流配置（依赖 Redis，不可用时放行）
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// DatabaseConfig PostgreSQL 数据库配置
type DatabaseConfig struct {
	URL             string `mapstructure:"url"` // 非空时优先于分项配置（兼容 DATABASE_URL）
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // 连接最大生命周期（分钟）
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // 空闲连接最大存活时间（分钟）
	AutoMigrate     bool   `mapstructure:"auto_migrate"`
}

// DSN 生成 PostgreSQL 连接字符串
func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis 配置（仅用于限流计数）
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CatalogConfig 课程目录与规划相关参数
type CatalogConfig struct {
	GenEdCatalogPath   string `mapstructure:"gened_catalog_path"` // 为空时使用内置目录
	DefaultTotalHours  int    `mapstructure:"default_total_hours"`
	SearchDefaultLimit int    `mapstructure:"search_default_limit"`
	SearchMaxLimit     int    `mapstructure:"search_max_limit"`
	SearchMinQueryLen  int    `mapstructure:"search_min_query_len"`
	GenEdAvailable     int    `mapstructure:"gened_available_limit"`
	ProgramSearchLimit int    `mapstructure:"program_search_limit"`
	GraphDefaultDepth  int    `mapstructure:"graph_default_depth"`
	GraphMaxDepth      int    `mapstructure:"graph_max_depth"`
}

// Load 从配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.body_limit", 1<<20)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.rate_limit.enabled", true)
	v.SetDefault("server.rate_limit.requests", 120)
	v.SetDefault("server.rate_limit.window", "1m")

	v.SetDefault("db.url", "")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "pathfinder")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "America/New_York")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)
	v.SetDefault("db.conn_max_idle_time", 30)
	v.SetDefault("db.auto_migrate", true)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("catalog.gened_catalog_path", "")
	v.SetDefault("catalog.default_total_hours", 120)
	v.SetDefault("catalog.search_default_limit", 20)
	v.SetDefault("catalog.search_max_limit", 100)
	v.SetDefault("catalog.search_min_query_len", 2)
	v.SetDefault("catalog.gened_available_limit", 10)
	v.SetDefault("catalog.program_search_limit", 50)
	v.SetDefault("catalog.graph_default_depth", 2)
	v.SetDefault("catalog.graph_max_depth", 5)

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("PATHFINDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// 部署平台普遍只注入 DATABASE_URL
	_ = v.BindEnv("db.url", "PATHFINDER_DB_URL", "DATABASE_URL")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}
	if c.Catalog.DefaultTotalHours <= 0 {
		return fmt.Errorf("配置校验失败: catalog.default_total_hours 必须大于 0")
	}
	if c.Catalog.SearchDefaultLimit <= 0 || c.Catalog.SearchMaxLimit < c.Catalog.SearchDefaultLimit {
		return fmt.Errorf("配置校验失败: catalog.search_default_limit 必须在 1-search_max_limit 之间")
	}
	if c.Catalog.GraphMaxDepth <= 0 || c.Catalog.GraphDefaultDepth > c.Catalog.GraphMaxDepth {
		return fmt.Errorf("配置校验失败: catalog.graph_default_depth 不能超过 graph_max_depth")
	}
	if c.Server.RateLimit.Enabled && (c.Server.RateLimit.Requests <= 0 || c.Server.RateLimit.Window <= 0) {
		return fmt.Errorf("配置校验失败: server.rate_limit 需要正的 requests 与 window")
	}
	return nil
}
