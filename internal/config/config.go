package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	// Valor de exemplo do endereço do store que precisa ser trocado antes de rodar
	PlaceholderStoreURL = "INSERT_TRACKING_STORE_URL_HERE"

	PlaceholderAppID     = "your_app_id"
	PlaceholderAppSecret = "your_app_secret"
)

type Config struct {
	App      App      `mapstructure:",squash"`
	Server   Server   `mapstructure:",squash"`
	Database Database `mapstructure:",squash"`
	Meta     Meta     `mapstructure:",squash"`
	Alert    Alert    `mapstructure:",squash"`
	SMTP     SMTP     `mapstructure:",squash"`
	Auth     Auth     `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN        string `mapstructure:"-"`
	Driver     string `mapstructure:"database_driver"`
	Password   string `mapstructure:"database_password"`
	URL        string `mapstructure:"database_url"`
	User       string `mapstructure:"database_user"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

type Meta struct {
	BaseURL              string    `mapstructure:"meta_base_url"`
	URL                  string    `mapstructure:"-"`
	Version              string    `mapstructure:"meta_version"`
	AccessToken          string    `mapstructure:"meta_access_token"`
	AppID                string    `mapstructure:"meta_app_id"`
	AppSecret            string    `mapstructure:"meta_app_secret"`
	BusinessIDs          []string  `mapstructure:"meta_business_ids"`
	ConversionActionType string    `mapstructure:"meta_conversion_action_type"`
	RequestsPerSecond    float64   `mapstructure:"meta_requests_per_second"`
	LongLivedToken       string    `mapstructure:"-"`
	TokenExpiresAt       time.Time `mapstructure:"-"`
}

type Alert struct {
	CronSchedule        string `mapstructure:"alert_cron"`
	Enabled             bool   `mapstructure:"alert_enabled"`
	TimeZone            string `mapstructure:"alert_timezone"`
	ReportingDelayHours int    `mapstructure:"alert_reporting_delay_hours"`
	MaxAccounts         int    `mapstructure:"alert_max_accounts"`
	LabelFilter         string `mapstructure:"account_label_filter"`
}

type SMTP struct {
	Host     string `mapstructure:"smtp_host"`
	Port     int    `mapstructure:"smtp_port"`
	User     string `mapstructure:"smtp_user"`
	Password string `mapstructure:"smtp_password"`
	From     string `mapstructure:"smtp_from"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// Location devolve o fuso da conta gerenciadora
func (a Alert) Location() (*time.Location, error) {
	return time.LoadLocation(a.TimeZone)
}

// ReportingDelay é o atraso dos dados de relatório
func (a Alert) ReportingDelay() time.Duration {
	return time.Duration(a.ReportingDelayHours) * time.Hour
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", DriverPostgres)
	viper.SetDefault("DATABASE_URL", PlaceholderStoreURL)
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("SQLITE_PATH", "")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_APP_ID", PlaceholderAppID)
	viper.SetDefault("META_APP_SECRET", PlaceholderAppSecret)
	viper.SetDefault("META_ACCESS_TOKEN", "your_access_token") // ONLY LOCAL
	viper.SetDefault("META_BUSINESS_IDS", "")
	viper.SetDefault("META_CONVERSION_ACTION_TYPE", "offsite_conversion.fb_pixel_purchase")
	viper.SetDefault("META_REQUESTS_PER_SECOND", 5)

	viper.SetDefault("ALERT_CRON", "5 * * * *") // A cada hora, 5 minutos depois da virada
	viper.SetDefault("ALERT_ENABLED", true)     // Habilitar execução agendada
	viper.SetDefault("ALERT_TIMEZONE", "America/Sao_Paulo")
	viper.SetDefault("ALERT_REPORTING_DELAY_HOURS", 3) // Atraso dos dados do relatório
	viper.SetDefault("ALERT_MAX_ACCOUNTS", 50)         // Limite de contas por execução
	viper.SetDefault("ACCOUNT_LABEL_FILTER", "")

	viper.SetDefault("SMTP_HOST", "localhost")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USER", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("SMTP_FROM", "alerts@localhost")

	viper.SetDefault("AUTH_SECRET", "your_secret_key")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)
	config.Meta.BusinessIDs = compact(config.Meta.BusinessIDs)
	config.Database.DSN = buildDSN(config.Database)

	return config, nil
}

// Validate confere o que precisa estar certo antes de qualquer alteração no store
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if isPlaceholder(c.Database.URL) {
			return errors.Errorf("DATABASE_URL is blank or still set to %s; point it to the tracking store database (host:port/dbname)", PlaceholderStoreURL)
		}
	case DriverSQLite:
		if isPlaceholder(c.Database.SQLitePath) {
			return errors.Errorf("SQLITE_PATH is blank or still set to %s; point it to the tracking store file", PlaceholderStoreURL)
		}
	default:
		return errors.Errorf("DATABASE_DRIVER %q is not supported; use %q or %q", c.Database.Driver, DriverPostgres, DriverSQLite)
	}

	if _, err := c.Alert.Location(); err != nil {
		return errors.Wrapf(err, "ALERT_TIMEZONE %q is not a valid IANA time zone", c.Alert.TimeZone)
	}
	if c.Alert.ReportingDelayHours < 0 {
		return errors.Errorf("ALERT_REPORTING_DELAY_HOURS must not be negative, got %d", c.Alert.ReportingDelayHours)
	}

	return nil
}

func isPlaceholder(value string) bool {
	value = strings.TrimSpace(value)
	return value == "" || value == PlaceholderStoreURL
}

func buildDSN(db Database) string {
	if db.Driver == DriverSQLite {
		return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", db.SQLitePath)
	}

	return fmt.Sprintf(
		"%s://%s:%s@%s",
		db.Driver,
		db.User,
		db.Password,
		db.URL,
	)
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
