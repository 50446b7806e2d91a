package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// unset clears key for the duration of the test.
func unset(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func isolate(t *testing.T) {
	t.Helper()
	for _, key := range []string{"APP_PORT", "APP_TIMEZONE", "DB_TIMEOUT", "RATE_LIMIT_MAX", "RABBIT_URL", "JWT_SECRET"} {
		unset(t, key)
	}
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	t.Setenv("JWT_SECRET", "s3cret")

	c, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if c.AppPort != "8080" || c.Timezone != "America/Bogota" || c.DBTimeout != 5*time.Second || c.RateLimitMax != 120 {
		t.Errorf("unexpected defaults %+v", c)
	}
	if c.RabbitURL != "" {
		t.Errorf("rabbit url should be empty, got %q", c.RabbitURL)
	}
	loc, err := c.Location()
	if err != nil || loc.String() != "America/Bogota" {
		t.Errorf("location %v, %v", loc, err)
	}
}

func TestLoadYAMLFileWithEnvPrecedence(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "APP_PORT: \"9090\"\nDB_TIMEOUT: \"2s\"\nJWT_SECRET: from-file\nRATE_LIMIT_MAX: \"60\"\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("APP_PORT", "7070")

	c, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if c.AppPort != "7070" {
		t.Errorf("env should win over the file, got port %q", c.AppPort)
	}
	if c.DBTimeout != 2*time.Second || c.JWTSecret != "from-file" || c.RateLimitMax != 60 {
		t.Errorf("file values not applied: %+v", c)
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		isolate(t)
		if _, err := Load(); err == nil {
			t.Error("expected an error without JWT_SECRET")
		}
	})
	t.Run("unknown timezone", func(t *testing.T) {
		isolate(t)
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("APP_TIMEZONE", "Mars/Olympus")
		if _, err := Load(); err == nil {
			t.Error("expected an error for an unknown timezone")
		}
	})
	t.Run("malformed yaml", func(t *testing.T) {
		isolate(t)
		t.Setenv("JWT_SECRET", "s3cret")
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("APP_PORT: [1, 2"), 0o600); err != nil {
			t.Fatal(err)
		}
		t.Setenv("CONFIG_FILE", path)
		if _, err := Load(); err == nil {
			t.Error("expected a parse error")
		}
	})
}

func TestDSN(t *testing.T) {
	c := App{DBHost: "db", DBPort: "5432", DBUsername: "u", DBPassword: "p", DBDatabase: "canchas", DBSSLMode: "disable"}
	want := "host=db port=5432 user=u password=p dbname=canchas sslmode=disable"
	if got := c.DSN(); got != want {
		t.Errorf("got %q", got)
	}
}
