package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type RecoveryConfig struct {
	Env            string `yaml:"env"`
	GRPCServer     `yaml:"grpc_server"`
	RecoveryDB     `yaml:"recovery_db"`
	LogConfig      `yaml:"log_config"`
	KafkaService   `yaml:"kafka-service"`
	AccountService `yaml:"account-service"`
	RecoveryPolicy `yaml:"recovery_policy"`
	Scheduler      `yaml:"scheduler"`
	MetricsServer  `yaml:"metrics_server"`
}

type GRPCServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type RecoveryDB struct {
	Dsn string `yaml:"dsn"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type KafkaService struct {
	Host  string `yaml:"host"`
	Port  string `yaml:"port"`
	Topic string `yaml:"topic" env-default:"recovery-events"`
}

type AccountService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type RecoveryPolicy struct {
	DefaultCureDays    int    `yaml:"default_cure_days" env-default:"7"`
	SubmissionsPerHour int    `yaml:"submissions_per_hour" env-default:"10"`
	NotifyCallbackURL  string `yaml:"notify_callback_url"`
}

type Scheduler struct {
	SweepIntervalSeconds int `yaml:"sweep_interval_seconds" env-default:"3600"`
	ArchiveHour          int `yaml:"archive_hour" env-default:"3"`
}

type MetricsServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

func MustLoad() *RecoveryConfig {

	// Processing env config variable and file
	configPath := os.Getenv("RECOVERY_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("RECOVERY_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg RecoveryConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
