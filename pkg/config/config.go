package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App           AppConfig
	DB            DBConfig
	JWT           JWTConfig
	HTTP          HTTPConfig
	Redis         RedisConfig
	Kafka         KafkaConfig
	Notifications NotificationsConfig
	Reports       ReportsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig configuración de Redis (deduplicación de alertas de stock).
// Addr vacío = deduplicación en memoria.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	AlertTTL time.Duration
}

// Enabled indica si hay un Redis configurado.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// KafkaConfig configuración del bus de eventos de dominio.
// Sin brokers, la API correlaciona los eventos en proceso.
type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Enabled indica si hay brokers configurados.
func (c KafkaConfig) Enabled() bool { return len(c.Brokers) > 0 }

// NotificationsConfig configuración del cliente de bandeja (cmd/inbox).
type NotificationsConfig struct {
	PollInterval time.Duration // intervalo del badge de no leídas
	APIBaseURL   string        // URL base de la API, ej. http://localhost:8080/api
	APIToken     string        // Bearer token del usuario de la bandeja
	HTTPTimeout  time.Duration
}

// ReportsConfig configuración de reportes y formatos de fecha.
type ReportsConfig struct {
	Timezone string
	TopN     int
}

// Location devuelve la zona horaria de reportes; UTC si no se puede cargar.
func (c ReportsConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, REDIS_ADDR, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "inventario-insights"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "inventario"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "inventario-insights"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
			AlertTTL: getDuration(v, "REDIS_ALERT_TTL", 7*24*time.Hour),
		},
		Kafka: KafkaConfig{
			Brokers: getList(v, "KAFKA_BROKERS"),
			Topic:   getString(v, "KAFKA_TOPIC", "inventory-events"),
			GroupID: getString(v, "KAFKA_GROUP_ID", "activity-correlator"),
		},
		Notifications: NotificationsConfig{
			PollInterval: getDuration(v, "NOTIFICATIONS_POLL_INTERVAL", 30*time.Second),
			APIBaseURL:   getString(v, "NOTIFICATIONS_API_BASE_URL", "http://localhost:8080/api"),
			APIToken:     getString(v, "NOTIFICATIONS_API_TOKEN", ""),
			HTTPTimeout:  getDuration(v, "NOTIFICATIONS_HTTP_TIMEOUT", 10*time.Second),
		},
		Reports: ReportsConfig{
			Timezone: getString(v, "REPORTS_TIMEZONE", "America/Bogota"),
			TopN:     getInt(v, "REPORTS_TOP_N", 5),
		},
	}

	if cfg.Notifications.PollInterval <= 0 {
		return nil, fmt.Errorf("config: NOTIFICATIONS_POLL_INTERVAL debe ser positivo")
	}
	if cfg.Reports.TopN <= 0 {
		return nil, fmt.Errorf("config: REPORTS_TOP_N debe ser positivo")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	switch v.Get(key).(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return n
	default:
		return v.GetInt(key)
	}
}

// getDuration acepta "30s", "5m" o un entero en segundos.
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return def
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}

// getList separa por comas (KAFKA_BROKERS=host1:9092,host2:9092).
func getList(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v.GetString(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
