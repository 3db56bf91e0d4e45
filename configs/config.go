package configs

import (
	"os"
	"strings"
	"sync"
	"time"
	_ "time/tzdata" // 容器镜像中可能没有时区数据库

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// AppConfig holds the application configuration.
// It's populated once by LoadConfig.
var AppConfig Configuration
var once sync.Once

// Configuration defines the structure for application settings.
type Configuration struct {
	AppName         string
	Env             string
	JWTSecret       string
	JWTExpiration   time.Duration
	ServerPort      string
	DBPath          string
	LogLevel        string
	OrgTimezone     string
	DefaultLocale   string
	ClockInCooldown time.Duration
	ScanSessionTTL  time.Duration
	CORSOrigins     []string // "*" 表示允许所有来源
	RollbarToken    string   // 为空时不上报错误
	SendgridAPIKey  string   // 设置后审批通知改走 SendGrid
	SMTP            SMTPConfig
}

// SMTPConfig holds the SMTP server configuration used for applicant notifications.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

// Enabled 表示 SMTP 是否已配置，未配置时跳过邮件通知
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.Port > 0 && c.Sender != ""
}

const (
	defaultAppName         = "AtProfit HR"
	defaultEnv             = "DEV"
	defaultJWTSecret       = "atprofit"              // Default JWT secret, used if env var is not set.
	envJWTSecretKey        = "JWT_SECRET_KEY"        // Environment variable name for the JWT secret.
	defaultServerPort      = "8080"                  // Default server port.
	envServerPortKey       = "SERVER_PORT"           // Environment variable name for the server port.
	defaultDBPath          = "data/hr_management.db" // 默认 SQLite 数据库文件
	envDBPathKey           = "SQLITE_DB_PATH"
	defaultOrgTimezone     = "UTC" // 打卡"日期"按组织时区计算
	envOrgTimezoneKey      = "ORG_TIMEZONE"
	defaultClockInCooldown = 3 * time.Second
	defaultScanSessionTTL  = 10 * time.Minute
	defaultJWTExpiration   = 24 * time.Hour
	defaultLocale          = "en"
	defaultLogLevel        = "info"
	dotEnvFile             = ".env"
)

// NewViper builds the viper instance backing the configuration: defaults first,
// then environment variables (optionally loaded from a .env file).
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	v.SetDefault("APP_NAME", defaultAppName)
	v.SetDefault("APP_ENV", defaultEnv)
	v.SetDefault(envJWTSecretKey, "")
	v.SetDefault("JWT_EXPIRATION", defaultJWTExpiration)
	v.SetDefault(envServerPortKey, "")
	v.SetDefault(envDBPathKey, "")
	v.SetDefault(envOrgTimezoneKey, defaultOrgTimezone)
	v.SetDefault("CLOCKIN_COOLDOWN", defaultClockInCooldown)
	v.SetDefault("SCAN_SESSION_TTL", defaultScanSessionTTL)
	v.SetDefault("DEFAULT_LOCALE", defaultLocale)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("ROLLBAR_TOKEN", "")
	v.SetDefault("SENDGRID_API_KEY", "")
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 0)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_SENDER_EMAIL", "")

	v.AutomaticEnv()
	return v
}

// LoadConfig loads configuration from environment variables or defaults.
// It should be called once at application startup.
func LoadConfig() {
	once.Do(func() {
		// load .env if it exists (ignore if it does not)
		if _, err := os.Stat(dotEnvFile); err == nil {
			if err := godotenv.Load(dotEnvFile); err != nil {
				log.Fatal().Err(err).Str("file", dotEnvFile).Msg("failed to load .env file")
			}
		}

		AppConfig = FromViper(NewViper())
		log.Info().Str("env", AppConfig.Env).Str("timezone", AppConfig.OrgTimezone).Msg("应用配置已加载。")
	})
}

// FromViper reads a Configuration from v, applying the fallbacks for unset secrets.
func FromViper(v *viper.Viper) Configuration {
	jwtSecret := v.GetString(envJWTSecretKey)
	if jwtSecret == "" {
		jwtSecret = defaultJWTSecret
		log.Warn().Msgf("%s 环境变量未设置。正在使用默认的JWT密钥。请在生产环境中设置此变量以保证安全。", envJWTSecretKey)
	}

	serverPort := v.GetString(envServerPortKey)
	if serverPort == "" {
		serverPort = defaultServerPort
		log.Info().Msgf("%s 环境变量未设置。正在使用默认端口 %s。", envServerPortKey, defaultServerPort)
	}

	dbPath := v.GetString(envDBPathKey)
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	cooldown := v.GetDuration("CLOCKIN_COOLDOWN")
	if cooldown < 0 {
		cooldown = defaultClockInCooldown
	}

	return Configuration{
		AppName:         v.GetString("APP_NAME"),
		Env:             strings.ToUpper(v.GetString("APP_ENV")),
		JWTSecret:       jwtSecret,
		JWTExpiration:   v.GetDuration("JWT_EXPIRATION"),
		ServerPort:      serverPort,
		DBPath:          dbPath,
		LogLevel:        v.GetString("LOG_LEVEL"),
		OrgTimezone:     v.GetString(envOrgTimezoneKey),
		DefaultLocale:   v.GetString("DEFAULT_LOCALE"),
		ClockInCooldown: cooldown,
		ScanSessionTTL:  v.GetDuration("SCAN_SESSION_TTL"),
		CORSOrigins:     splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		RollbarToken:    v.GetString("ROLLBAR_TOKEN"),
		SendgridAPIKey:  v.GetString("SENDGRID_API_KEY"),
		SMTP: SMTPConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			Username: v.GetString("SMTP_USERNAME"),
			Password: v.GetString("SMTP_PASSWORD"),
			Sender:   v.GetString("SMTP_SENDER_EMAIL"),
		},
	}
}

func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Location 返回组织时区；配置无效时回退到 UTC
func (c Configuration) Location() *time.Location {
	if c.OrgTimezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.OrgTimezone)
	if err != nil {
		log.Warn().Err(err).Str("timezone", c.OrgTimezone).Msg("无效的组织时区，使用 UTC")
		return time.UTC
	}
	return loc
}
