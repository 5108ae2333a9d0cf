package core

import (
	"net/mail"
	"testing"
	"time"
)

func TestNewConfig(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("TEST_DATABASE_NAME", "alama_test")
	t.Setenv("TEST_DATABASE_PORT", "5433")
	t.Setenv("TEST_SERVER_SHUTDOWN_TIMEOUT", "10s")
	t.Setenv("TEST_EMAIL_ADVISORS", "advisor@alama.test")

	conf := NewConfig()

	if conf.Env != "TEST" || !conf.TestMode {
		t.Errorf("Env, TestMode = %q, %t; want TEST, true", conf.Env, conf.TestMode)
	}
	if conf.Database.Name != "alama_test" {
		t.Errorf("Database.Name = %q; want alama_test", conf.Database.Name)
	}
	if got := conf.Database.Address(); got != "localhost:5433" {
		t.Errorf("Database.Address() = %q; want localhost:5433", got)
	}
	if conf.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("Server.ShutdownTimeout = %v; want 10s", conf.Server.ShutdownTimeout)
	}
	if conf.Email.Advisors != "advisor@alama.test" {
		t.Errorf("Email.Advisors = %q; want advisor@alama.test", conf.Email.Advisors)
	}
	want := mail.Address{Name: "Alama", Address: "noreply@alama.local"}
	if got := conf.DefaultFromEmail(); got != want {
		t.Errorf("DefaultFromEmail() = %v; want %v", got, want)
	}
}

func TestNewConfig_defaults(t *testing.T) {
	t.Setenv("ENV", "")

	conf := NewConfig()
	if conf.Env != "DEV" || conf.TestMode || !conf.Debug {
		t.Errorf("Env, TestMode, Debug = %q, %t, %t; want DEV, false, true", conf.Env, conf.TestMode, conf.Debug)
	}
	if conf.Server.Address != ":8000" || conf.Database.InMemory {
		t.Errorf("Server.Address, Database.InMemory = %q, %t; want :8000, false", conf.Server.Address, conf.Database.InMemory)
	}
}
