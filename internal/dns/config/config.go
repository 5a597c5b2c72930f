// Package config loads the relay configuration from RELAY_* environment
// variables on top of built-in defaults, and validates the result.
package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// AppConfig holds configuration values parsed from environment variables.
type AppConfig struct {
	// BlocklistDB is the path of the blocklist index database. Only used
	// when BlocklistFile is set.
	BlocklistDB string `koanf:"blocklist_db"`

	// BlocklistFile is a domain list file to block. Empty disables
	// blocking entirely.
	BlocklistFile string `koanf:"blocklist_file"`

	CacheSize uint `koanf:"cache_size" validate:"required,gte=1"`

	// DisableCache disables response caching when set to true.
	DisableCache bool `koanf:"disable_cache"`

	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// Port is the network port the relay will bind to.
	Port int `koanf:"port" validate:"required,gte=1,lt=65535"`

	// Servers is a list of upstream DNS servers in ip:port format.
	Servers []string `koanf:"servers" validate:"required,dive,ip_port"`

	// UpstreamTimeout is the per-exchange upstream timeout in seconds.
	UpstreamTimeout uint `koanf:"upstream_timeout" validate:"required,gte=1,lte=60"`
}

// DEFAULT_APP_CONFIG defines the default relay configuration.
var DEFAULT_APP_CONFIG = AppConfig{
	BlocklistDB:     "/var/lib/dnsrelay/blocklist.db",
	BlocklistFile:   "",
	CacheSize:       1000,
	DisableCache:    false,
	Env:             "prod",
	LogLevel:        "info",
	Port:            53,
	Servers:         []string{"8.8.8.8:53", "8.8.4.4:53"},
	UpstreamTimeout: 5,
}

// validIPPort validates whether the provided field value is a valid IP
// address and port combination in "IP:Port" format.
func validIPPort(fl validator.FieldLevel) bool {
	addr := fl.Field().String()
	ip, port, err := net.SplitHostPort(addr)
	if err != nil || ip == "" || port == "" {
		return false
	}
	if net.ParseIP(ip) == nil {
		return false
	}
	portNum, err := strconv.ParseUint(port, 10, 16)
	return err == nil && portNum > 0 && portNum < 65536
}

// envLoader loads environment variables with the prefix "RELAY_",
// lowercasing keys and splitting list values on spaces or commas.
// It is a variable so tests can substitute it.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "RELAY_",
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, "RELAY_"))
			value = strings.TrimSpace(value)

			if value == "" {
				return key, value
			}

			if strings.Contains(value, " ") || strings.Contains(value, ",") {
				parts := strings.FieldsFunc(value, func(r rune) bool {
					return r == ' ' || r == ','
				})
				return key, parts
			}

			return key, value
		},
	}), nil)
}

// defaultLoader loads DEFAULT_APP_CONFIG into the Koanf instance via the
// structs provider.
var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DEFAULT_APP_CONFIG, "koanf"), nil)
}

// registerValidation registers the custom "ip_port" rule.
var registerValidation = func(v *validator.Validate) error {
	return v.RegisterValidation("ip_port", validIPPort)
}

// Load parses environment variables on top of the defaults and returns a
// validated AppConfig.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	if err := defaultLoader(k); err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}

	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := registerValidation(validate); err != nil {
		return nil, fmt.Errorf("error registering validation: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
