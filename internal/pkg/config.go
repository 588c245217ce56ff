package pkg

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultSourcePath is where the Geneanet extraction leaves the base info file.
	DefaultSourcePath = "output/pb_base_info.dat"
	// EnvPrefix prefixes every environment override, e.g. BASEINFO_SOURCE_PATH.
	EnvPrefix = "BASEINFO"
	// KeyDelimiter separates nested config keys.
	KeyDelimiter = "::"
)

type LogConfig struct {
	LogPath    string `mapstructure:"log_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
	Level      string `mapstructure:"level"`
}

type SourceConfig struct {
	Path string `mapstructure:"path"`
}

type OutputConfig struct {
	// PadHex prints every byte as two hex digits instead of the bare %x form.
	PadHex bool `mapstructure:"pad_hex"`
}

// StrategyConfig is kept loose on purpose so each strategy decodes its own part.
type StrategyConfig struct {
	Enable bool                   `mapstructure:"enable"`
	Para   map[string]interface{} `mapstructure:",remain"`
}

type Config struct {
	Version string         `mapstructure:"version"`
	Source  SourceConfig   `mapstructure:"source"`
	Output  OutputConfig   `mapstructure:"output"`
	Log     LogConfig      `mapstructure:"log"`
	Metrics StrategyConfig `mapstructure:"metrics"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("version", "dev")
	v.SetDefault("source::path", DefaultSourcePath)
	v.SetDefault("output::pad_hex", false)
	v.SetDefault("log::level", "info")
	v.SetDefault("log::max_size", 10)
	v.SetDefault("log::max_backups", 3)
	v.SetDefault("log::max_age", 7)
	v.SetDefault("metrics::enable", false)
}

// NewViper 创建一个带默认值的 viper 实例，但不读取任何文件
func NewViper() *viper.Viper {
	v := viper.NewWithOptions(viper.KeyDelimiter(KeyDelimiter))
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(KeyDelimiter, "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// InitCommon 读取 configDir 下所有 yaml 文件并合并到 v 中.
// configDir 不存在时只使用默认值和环境变量.
func InitCommon(v *viper.Viper, configDir string) (*Config, error) {
	if configDir != "" {
		if _, err := os.Stat(configDir); err == nil {
			if err := mergeDir(v, configDir); err != nil {
				return nil, err
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("访问配置目录 %s 失败: %w", configDir, err)
		}
	}

	var common Config
	if err := v.Unmarshal(&common); err != nil {
		return nil, fmt.Errorf("反序列化配置失败: %w", err)
	}
	if common.Source.Path == "" {
		common.Source.Path = DefaultSourcePath
	}
	return &common, nil
}

func mergeDir(v *viper.Viper, configDir string) error {
	return filepath.WalkDir(configDir, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("访问路径 %s 失败: %w", filePath, err)
		}
		if d.IsDir() {
			return nil
		}

		ext := filepath.Ext(filePath)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		v.SetConfigFile(filePath)
		// 后读取的文件覆盖先读取的
		if err := v.MergeInConfig(); err != nil {
			return fmt.Errorf("读取配置文件失败 %s: %w", filePath, err)
		}
		return nil
	})
}
