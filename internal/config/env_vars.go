package config

import (
	"fmt"
	"strings"
)

const (
	EnvDevelopment = "DEV"
	EnvProduction  = "PROD"
)

// legacy name -> current name
var legacyEnvVars = map[string]string{
	"ANLIST_CLIENT_CODE": clientIDEnvVar,
}

type EnvVars struct {
	Port     string `env:"PORT" envDefault:"3000"`
	AppName  string `env:"APP_NAME" envDefault:"AniList Tracker"`
	Env      string `env:"ENV" envDefault:"DEV"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	port := e.Port
	if port == "" {
		port = "3000"
	}
	if port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetEnv() string {
	env := strings.ToUpper(e.Env)
	if env == "" {
		return EnvDevelopment
	}
	return env
}

func (e EnvVars) GetLogLevel() string {
	return strings.ToLower(e.LogLevel)
}
