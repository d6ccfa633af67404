// Package config 提供调用管道的配置加载.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Tsukikage7/rpc-kit/filter"
	"github.com/Tsukikage7/rpc-kit/logger"
	"github.com/Tsukikage7/rpc-kit/protocol"
)

// Config 调用管道配置.
type Config struct {
	// SyncWait 同步调用的等待上限.
	SyncWait time.Duration `mapstructure:"sync_wait"`
	// ProviderFilters 服务端点名的过滤器.
	ProviderFilters []string `mapstructure:"provider_filters"`
	// ConsumerFilters 消费端点名的过滤器.
	ConsumerFilters []string `mapstructure:"consumer_filters"`
	// Log 日志配置.
	Log logger.Config `mapstructure:"log"`
}

// ApplyDefaults 填充默认值.
func (c *Config) ApplyDefaults() {
	if c.SyncWait <= 0 {
		c.SyncWait = protocol.DefaultSyncWait
	}
	c.Log.ApplyDefaults()
}

// Validate 验证配置.
func (c *Config) Validate() error {
	if c.SyncWait < 0 {
		return ErrInvalidSyncWait
	}
	return nil
}

// FilterParams 返回点名过滤器的 URL 参数.
//
// 构造端点 URL 时合入这些参数，链构建器据此选择过滤器.
func (c *Config) FilterParams() map[string]string {
	params := make(map[string]string, 2)
	if len(c.ProviderFilters) > 0 {
		params[filter.ServiceFilterKey] = strings.Join(c.ProviderFilters, ",")
	}
	if len(c.ConsumerFilters) > 0 {
		params[filter.ReferenceFilterKey] = strings.Join(c.ConsumerFilters, ",")
	}
	return params
}

// Load 从文件加载配置.
// 支持 yaml, json, toml 等格式（根据文件扩展名自动识别）.
func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, configPath)
	}

	v := viper.New()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}
	return unmarshalAndValidate(v)
}

// MustLoad 加载配置，失败时 panic.
func MustLoad(configPath string) *Config {
	config, err := Load(configPath)
	if err != nil {
		panic(err)
	}
	return config
}

// LoadFromBytes 从字节数组加载配置.
func LoadFromBytes(data []byte, configType string) (*Config, error) {
	v := viper.New()
	v.SetConfigType(configType)

	if err := v.ReadConfig(strings.NewReader(string(data))); err != nil {
		return nil, fmt.Errorf("读取配置失败: %w", err)
	}
	return unmarshalAndValidate(v)
}

// unmarshalAndValidate 解析并验证配置.
func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	config.ApplyDefaults()
	return &config, nil
}
