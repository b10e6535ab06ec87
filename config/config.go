package config

import (
	"os"
	"path"
	"strings"

	"github.com/spf13/viper"
)

type SysConfig struct {
	Appid    string `yaml:"appid" mapstructure:"appid" json:"appid"`
	Location string `yaml:"location" mapstructure:"location" json:"location"`
	Workdir  string `yaml:"workdir" mapstructure:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" mapstructure:"debug" json:"debug"`
}

type WebConfig struct {
	Host           string `yaml:"host" mapstructure:"host" json:"host"`
	Port           int    `yaml:"port" mapstructure:"port" json:"port"`
	JwtPrivateKey  string `yaml:"jwt_private_key" mapstructure:"jwt_private_key" json:"jwt_private_key"`
	JwtPublicKey   string `yaml:"jwt_public_key" mapstructure:"jwt_public_key" json:"jwt_public_key"`
	JwtTTLMinutes  int    `yaml:"jwt_ttl_minutes" mapstructure:"jwt_ttl_minutes" json:"jwt_ttl_minutes"`
	LoginRateLimit int    `yaml:"login_rate_limit" mapstructure:"login_rate_limit" json:"login_rate_limit"`
	RateLimit      int    `yaml:"rate_limit" mapstructure:"rate_limit" json:"rate_limit"`
}

type DBConfig struct {
	Type     string `yaml:"type" mapstructure:"type" json:"type"`
	Host     string `yaml:"host" mapstructure:"host" json:"host"`
	Port     int    `yaml:"port" mapstructure:"port" json:"port"`
	Name     string `yaml:"name" mapstructure:"name" json:"name"`
	User     string `yaml:"user" mapstructure:"user" json:"user"`
	Passwd   string `yaml:"passwd" mapstructure:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" mapstructure:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" mapstructure:"debug" json:"debug"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" mapstructure:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" mapstructure:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" mapstructure:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig `yaml:"system" mapstructure:"system" json:"system"`
	Web      WebConfig `yaml:"web" mapstructure:"web" json:"web"`
	Database DBConfig  `yaml:"database" mapstructure:"database" json:"database"`
	Logger   LogConfig `yaml:"logger" mapstructure:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "frostkeep",
		Location: "Europe/Paris",
		Workdir:  "/var/frostkeep",
		Debug:    true,
	},
	Web: WebConfig{
		Host:           "0.0.0.0",
		Port:           8080,
		JwtTTLMinutes:  120,
		LoginRateLimit: 5,
		RateLimit:      0,
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "frostkeep",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/frostkeep/frostkeep.log",
	},
}

// LoadConfig reads the yaml configuration file and applies FROSTKEEP_ environment
// overrides on top of the built-in defaults.
func LoadConfig(cfile string) *AppConfig {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("FROSTKEEP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{
		"system.workdir", "system.debug", "system.location",
		"web.host", "web.port", "web.jwt_private_key", "web.jwt_public_key",
		"database.type", "database.host", "database.port",
		"database.name", "database.user", "database.passwd",
		"logger.mode", "logger.file_enable", "logger.filename",
	} {
		_ = v.BindEnv(key)
	}

	cfg := *DefaultAppConfig
	if cfile != "" {
		if _, err := os.Stat(cfile); err == nil {
			v.SetConfigFile(cfile)
			if err := v.ReadInConfig(); err == nil {
				_ = v.Unmarshal(&cfg)
			}
		}
	}
	if cfg.Logger.Filename == "" {
		cfg.Logger.Filename = path.Join(cfg.System.Workdir, "frostkeep.log")
	}
	return &cfg
}
