package config

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`
	// PublicBaseURL is the externally reachable base URL, used when
	// composing tracking links for receipts and notification emails.
	PublicBaseURL string `mapstructure:"PUBLIC_BASE_URL" default:"http://localhost:8080"`

	// Redis holds the shipment store connection details.
	Redis RedisConfig `mapstructure:",squash"`

	// Auth holds the admin identity and token signing settings.
	Auth AuthConfig `mapstructure:",squash"`

	// SMTP holds the outbound mail transport settings. All fields are
	// optional: with no host/user/pass the notification dispatcher
	// reports "not sent" instead of attempting a connection.
	SMTP SMTPConfig `mapstructure:",squash"`

	// Uploads holds the proof-of-delivery storage settings.
	Uploads UploadConfig `mapstructure:",squash"`
}

// RedisConfig holds the Redis connection details.
type RedisConfig struct {
	// URL is the connection string, e.g. redis://[:password@]host[:port][/db].
	URL string `mapstructure:"REDIS_URL" required:"true"`
}

// AuthConfig holds the single admin identity and the token secret.
// The admin identity is fixed at process start and never stored in the
// shipment store.
type AuthConfig struct {
	// JWTSecret signs session tokens. Required; there is no shipped default.
	JWTSecret string `mapstructure:"JWT_SECRET" required:"true"`
	// AdminEmail is the only identity accepted by the login endpoint.
	AdminEmail string `mapstructure:"ADMIN_EMAIL" required:"true"`
	// AdminPassword is the plaintext admin secret, bcrypt-hashed once at startup.
	AdminPassword string `mapstructure:"ADMIN_PASSWORD" required:"true"`
}

// SMTPConfig holds the outbound mail transport credentials.
type SMTPConfig struct {
	// Host is the SMTP server hostname.
	Host string `mapstructure:"SMTP_HOST"`
	// Port is the SMTP submission port.
	Port int `mapstructure:"SMTP_PORT" default:"587"`
	// User is the SMTP account, also used as the From address.
	User string `mapstructure:"SMTP_USER"`
	// Pass is the SMTP account password.
	Pass string `mapstructure:"SMTP_PASS"`
	// TimeoutSeconds bounds the whole dial-and-send exchange.
	TimeoutSeconds int `mapstructure:"SMTP_TIMEOUT_SECONDS" default:"10"`
}

// UploadConfig holds proof-of-delivery file storage details.
type UploadConfig struct {
	// Dir is the local directory where proof files are written.
	Dir string `mapstructure:"UPLOAD_DIR" default:"./uploads"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
