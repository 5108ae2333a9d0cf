package core

import (
	"fmt"
	"log"
	"net"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host               string
		Address            string
		DebugHost          string
		ShutdownTimeout    time.Duration
		DisableRequestLogs bool
	}

	DatabaseConfig struct {
		Engine        string
		Host          string
		Port          string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
		InMemory      bool
	}

	EmailConfig struct {
		FromName       string
		FromAddress    string
		Advisors       string // comma separated addresses alerted about students at risk
		SendgridApiKey string
	}

	Config struct {
		Env          string // DEV (local; default), TEST, QA, PROD
		Build        string
		AppName      string
		Debug        bool
		TestMode     bool
		RollbarToken string
		Server       ServerConfig
		Database     DatabaseConfig
		Email        EmailConfig
	}
)

// Address returns the "host:port" the database listens on.
func (dc DatabaseConfig) Address() string {
	return net.JoinHostPort(dc.Host, dc.Port)
}

// NewConfig loads the configuration for the current ENV.
// Values come from (in order of precedence): environment variables prefixed with the ENV name,
// `config/.env.<env>` (if it exists) and the defaults below.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("app_name", "Alama")
	v.SetDefault("build", "dev")
	v.SetDefault("rollbar_token", "")
	v.SetDefault("test_mode", false)

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.debug_host", "localhost:4000")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.disable_request_logs", false)

	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.name", "alama")
	v.SetDefault("database.user", "alama")
	v.SetDefault("database.password", "alama")
	v.SetDefault("database.admin_user", "postgres")
	v.SetDefault("database.admin_password", "postgres")
	v.SetDefault("database.disable_tls", true)
	v.SetDefault("database.in_memory", false)

	v.SetDefault("email.from_name", "Alama")
	v.SetDefault("email.from_address", "noreply@alama.local")
	v.SetDefault("email.advisors", "")
	v.SetDefault("email.sendgrid_api_key", "")

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("test_mode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	if root, err := Getwd(); err == nil {
		dotEnvPath := filepath.Join(root, "config", ".env."+strings.ToLower(env))
		if _, err := os.Stat(dotEnvPath); err == nil {
			if err := godotenv.Load(dotEnvPath); err != nil {
				log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
			}
		} else if !os.IsNotExist(err) {
			log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
		}
	}
	v.AutomaticEnv()

	return &Config{
		Env:          env,
		Build:        v.GetString("build"),
		AppName:      v.GetString("app_name"),
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("test_mode"),
		RollbarToken: v.GetString("rollbar_token"),
		Server: ServerConfig{
			Host:               v.GetString("server.host"),
			Address:            v.GetString("server.address"),
			DebugHost:          v.GetString("server.debug_host"),
			ShutdownTimeout:    v.GetDuration("server.shutdown_timeout"),
			DisableRequestLogs: v.GetBool("server.disable_request_logs"),
		},
		Database: DatabaseConfig{
			Engine:        v.GetString("database.engine"),
			Host:          v.GetString("database.host"),
			Port:          v.GetString("database.port"),
			Name:          v.GetString("database.name"),
			User:          v.GetString("database.user"),
			Password:      v.GetString("database.password"),
			AdminUser:     v.GetString("database.admin_user"),
			AdminPassword: v.GetString("database.admin_password"),
			DisableTLS:    v.GetBool("database.disable_tls"),
			InMemory:      v.GetBool("database.in_memory"),
		},
		Email: EmailConfig{
			FromName:       v.GetString("email.from_name"),
			FromAddress:    v.GetString("email.from_address"),
			Advisors:       v.GetString("email.advisors"),
			SendgridApiKey: v.GetString("email.sendgrid_api_key"),
		},
	}
}

// DefaultFromEmail is the sender of every email.
func (c *Config) DefaultFromEmail() mail.Address {
	return mail.Address{Name: c.Email.FromName, Address: c.Email.FromAddress}
}

func (c *Config) String() string {
	return fmt.Sprintf("%s [%s] build=%s debug=%t", c.AppName, c.Env, c.Build, c.Debug)
}
