// Package config handles input from etc/main.toml, the environment and an optional JSON override.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment override, e.g. MEDIBOARD_AUTH_ADMINPASSWORD.
	EnvPrefix = "MEDIBOARD"

	// EnvJSONOverride holds a JSON document merged over the file based config.
	EnvJSONOverride = "MEDIBOARD_CONFIG_JSON"

	configName = "main"
	masked     = "***"
)

// ReadConfig from config file.
// A missing main.toml is not an error: serverless deployments configure
// through the environment only.
func ReadConfig(path string) (Config, error) {
	var (
		c   Config
		err error
	)

	if path == "" {
		path = "./etc/"
	}

	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.AddConfigPath(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, errors.Wrap(err, "failed to read main config file")
		}
	}

	if err = v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode config")
	}

	// override it from env
	if configAsJSON := os.Getenv(EnvJSONOverride); configAsJSON != "" {
		c, err = decodeAndMergeConfig(c, configAsJSON)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("devmode", false)
	v.SetDefault("title", "MediBoard")

	v.SetDefault("webserver.disablerecover", false)
	v.SetDefault("webserver.port", 8080)
	v.SetDefault("webserver.shutdowntime", 5)
	v.SetDefault("webserver.url", "http://localhost:8080")
	v.SetDefault("webserver.allowedorigins", []string{"http://localhost:5173", "http://localhost:3000"})
	v.SetDefault("webserver.pathprefixes", []string{"/.netlify/functions/api", "/api"})
	v.SetDefault("webserver.requesttimeout", 15*time.Second)
	v.SetDefault("webserver.checkaliveuri", "/checkalive")

	v.SetDefault("auth.adminpassword", "")
	v.SetDefault("auth.cookiename", "adminAuth")
	v.SetDefault("auth.cookiemaxage", 24*time.Hour)

	v.SetDefault("settings.acceptlegacymappayload", false)

	v.SetDefault("db.gormengine", EnginePostgres)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "mediboard")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "mediboard")
	v.SetDefault("db.extras", "")
	v.SetDefault("db.maxopenconns", 10)
	v.SetDefault("db.maxidleconns", 5)
	v.SetDefault("db.connmaxlifetime", 30*time.Minute)

	v.SetDefault("log.loglevel", "info")
	v.SetDefault("log.appname", "mediboard")
	v.SetDefault("log.servicename", "api")
	v.SetDefault("log.enableaccesslogtoconsole", true)
	v.SetDefault("log.console.enabled", true)
	v.SetDefault("log.console.useconsolewriter", false)

	v.SetDefault("notification.enabled", false)
	v.SetDefault("notification.url", "https://onesignal.com/api/v1/notifications")
	v.SetDefault("notification.appid", "")
	v.SetDefault("notification.apikey", "")
	v.SetDefault("notification.targetsegment", "Subscribed Users")
	v.SetDefault("notification.timeout", 10*time.Second)

	v.SetDefault("upload.url", "")
	v.SetDefault("upload.apikey", "")
	v.SetDefault("upload.apisecret", "")
	v.SetDefault("upload.folder", "mediboard")
	v.SetDefault("upload.timeout", 30*time.Second)
	v.SetDefault("upload.maxbytes", 10<<20)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to decode "+EnvJSONOverride)
	}

	return c, nil
}

// DumpConfig config as TOML String. Secrets are masked.
func DumpConfig(c Config) (string, error) {
	out, err := toml.Marshal(maskSecrets(c))
	if err != nil {
		return "", err //nolint: wrapcheck
	}

	return string(out), nil
}

// DumpConfigJSON config as JSON String. Secrets are masked.
func DumpConfigJSON(c Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(maskSecrets(c)); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

func maskSecrets(c Config) Config {
	for _, s := range []*string{
		&c.Auth.AdminPassword,
		&c.DB.Password,
		&c.Notification.APIKey,
		&c.Upload.APISecret,
	} {
		if *s != "" {
			*s = masked
		}
	}

	return c
}

// defaultExtras are the connection parameters used when none are configured.
var defaultExtras = map[string]string{
	EnginePostgres: "sslmode=disable",
	EngineMySQL:    "charset=utf8mb4&parseTime=True&loc=Local",
	EngineSQLite:   "",
}

// validate minimal config settings and fill in runtime defaults.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Auth.AdminPassword == "" {
		return errors.Wrap(ErrEmptyAdminPassword, invalidErrMessage)
	}

	switch c.DB.GormEngine {
	case EnginePostgres, EngineMySQL, EngineSQLite:
	default:
		return errors.Wrap(ErrUnknownGormEngine, invalidErrMessage)
	}

	if c.DB.Extras == "" {
		c.DB.Extras = defaultExtras[c.DB.GormEngine]
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = 5 // set default of 5 seconds
	}

	if c.Webserver.RequestTimeout <= 0 {
		c.Webserver.RequestTimeout = 15 * time.Second
	}

	if c.Auth.CookieName == "" {
		c.Auth.CookieName = "adminAuth"
	}

	if c.Auth.CookieMaxAge <= 0 {
		c.Auth.CookieMaxAge = 24 * time.Hour
	}

	return nil
}
