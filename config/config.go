package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath = "."

	defaultAPITimeout         = 15 * time.Second
	defaultHistoryLimit       = 50
	defaultShippingFee        = 75.0
	defaultStoreDriver        = StoreDriverMemory
	defaultDiscountTopic      = "discounts"
	defaultUserTopicPrefix    = "user_"
	defaultQRCodeSize         = 256
	defaultQRCodeRecoverLevel = "M"
)

// Store drivers understood by the persistence provider.
const (
	StoreDriverMemory   = "memory"
	StoreDriverSQLite   = "sqlite"
	StoreDriverRedis    = "redis"
	StoreDriverPostgres = "postgres"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	// HTTP configures the local gateway that screens talk to.
	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout  time.Duration `json:"readTimeout" yaml:"readTimeout"`
			WriteTimeout time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout  time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	API *APIConfig `json:"api" yaml:"api"`

	Store *StoreConfig `json:"store" yaml:"store"`

	Notification *NotificationConfig `json:"notification" yaml:"notification"`

	Checkout *CheckoutConfig `json:"checkout" yaml:"checkout"`

	// QRCode configuration for discount share codes
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// APIConfig points the client at the remote storefront API.
type APIConfig struct {
	BaseURL string        `json:"baseUrl" yaml:"baseUrl"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// Outbound throttle; zero disables it.
	RequestsPerSecond float64 `json:"requestsPerSecond" yaml:"requestsPerSecond"`
	Burst             int     `json:"burst" yaml:"burst"`
}

// StoreConfig selects the key-value backend holding session, cart and notification lists.
type StoreConfig struct {
	Driver string `json:"driver" yaml:"driver"`

	SQLite struct {
		Path string `json:"path" yaml:"path"`
	} `json:"sqlite" yaml:"sqlite"`

	Redis struct {
		Addr     string `json:"addr" yaml:"addr"`
		Password string `json:"password" yaml:"password"`
		DB       int    `json:"db" yaml:"db"`
		Prefix   string `json:"prefix" yaml:"prefix"`
	} `json:"redis" yaml:"redis"`

	Postgres struct {
		DSN string `json:"dsn" yaml:"dsn"`
	} `json:"postgres" yaml:"postgres"`
}

// NotificationConfig defines local staging and push publishing behaviour.
type NotificationConfig struct {
	HistoryLimit int        `json:"historyLimit" yaml:"historyLimit"`
	Push         PushConfig `json:"push" yaml:"push"`
}

// PushConfig defines Firebase configuration for push publishing
type PushConfig struct {
	Enabled         bool   `json:"enabled" yaml:"enabled"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`
	DiscountTopic   string `json:"discountTopic" yaml:"discountTopic"`
	UserTopicPrefix string `json:"userTopicPrefix" yaml:"userTopicPrefix"`
}

type CheckoutConfig struct {
	DefaultShippingFee float64 `json:"defaultShippingFee" yaml:"defaultShippingFee"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Environment overrides, e.g. API_BASEURL -> api.baseUrl
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()

	if strings.TrimSpace(cfg.API.BaseURL) == "" {
		return nil, errors.New("api.baseUrl must be configured")
	}

	return cfg, nil
}

// ApplyDefaults fills every optional section so that consumers never see nil sections.
func (c *Config) ApplyDefaults() {
	if c.API == nil {
		c.API = &APIConfig{}
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = defaultAPITimeout
	}
	if c.API.RequestsPerSecond > 0 && c.API.Burst <= 0 {
		c.API.Burst = 1
	}

	if c.Store == nil {
		c.Store = &StoreConfig{}
	}
	if c.Store.Driver == "" {
		c.Store.Driver = defaultStoreDriver
	}

	if c.Notification == nil {
		c.Notification = &NotificationConfig{}
	}
	if c.Notification.HistoryLimit <= 0 {
		c.Notification.HistoryLimit = defaultHistoryLimit
	}
	if c.Notification.Push.DiscountTopic == "" {
		c.Notification.Push.DiscountTopic = defaultDiscountTopic
	}
	if c.Notification.Push.UserTopicPrefix == "" {
		c.Notification.Push.UserTopicPrefix = defaultUserTopicPrefix
	}

	if c.Checkout == nil {
		c.Checkout = &CheckoutConfig{}
	}
	if c.Checkout.DefaultShippingFee <= 0 {
		c.Checkout.DefaultShippingFee = defaultShippingFee
	}

	if c.QRCode == nil {
		c.QRCode = &QRCodeConfig{}
	}
	if c.QRCode.Size <= 0 {
		c.QRCode.Size = defaultQRCodeSize
	}
	if c.QRCode.ErrorCorrectionLevel == "" {
		c.QRCode.ErrorCorrectionLevel = defaultQRCodeRecoverLevel
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
