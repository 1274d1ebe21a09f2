package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var Conf *Config

type Config struct {
	Log        LogConf  `mapstructure:"log"`
	MetricPort int      `mapstructure:"metricPort"`
	AppName    string   `mapstructure:"appName"`
	Grpc       GrpcConf `mapstructure:"grpc"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
}

// GrpcConf 调用超时必须显式配置 不依赖grpc框架的默认值
type GrpcConf struct {
	Timeout     time.Duration `mapstructure:"timeout"`     //单次predict调用超时
	GracePeriod time.Duration `mapstructure:"gracePeriod"` //关闭连接时等待在途请求的时间
	DialTimeout time.Duration `mapstructure:"dialTimeout"`
	Block       bool          `mapstructure:"block"` //connect时是否等待连接就绪
}

// flagKeys 命令行参数名 -> 配置key
var flagKeys = map[string]string{
	"timeout":     "grpc.timeout",
	"grace":       "grpc.gracePeriod",
	"dialTimeout": "grpc.dialTimeout",
	"block":       "grpc.block",
	"logLevel":    "log.level",
	"metricPort":  "metricPort",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("appName", "grps-client")
	v.SetDefault("log.level", "info")
	v.SetDefault("metricPort", 0)
	v.SetDefault("grpc.timeout", 5*time.Second)
	v.SetDefault("grpc.gracePeriod", 5*time.Second)
	v.SetDefault("grpc.dialTimeout", 3*time.Second)
	v.SetDefault("grpc.block", false)
}

// Load 加载配置 confFile为空时只使用默认值和命令行参数
// 优先级：命令行参数 > 配置文件 > 默认值
// 进程只做一次调用 不监听配置文件变化，返回的 Config 之后不会再被修改
func Load(confFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}
	conf := new(Config)
	if confFile != "" {
		v.SetConfigFile(confFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", confFile, err)
		}
	}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if conf.Grpc.Timeout <= 0 {
		return nil, fmt.Errorf("grpc.timeout must be positive, got %v", conf.Grpc.Timeout)
	}
	return conf, nil
}

// InitConfig 加载配置到全局 Conf
func InitConfig(confFile string, flags *pflag.FlagSet) error {
	conf, err := Load(confFile, flags)
	if err != nil {
		return err
	}
	Conf = conf
	return nil
}
