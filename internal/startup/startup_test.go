package startup

import (
	"os"
	"testing"
)

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue bool
		want         bool
		setEnv       bool
	}{
		{"default when unset", "", true, true, false},
		{"true", "true", false, true, true},
		{"false", "false", true, false, true},
		{"1", "1", false, true, true},
		{"0", "0", true, false, true},
		{"uppercase TRUE", "TRUE", false, true, true},
		{"invalid falls back to default", "not-a-bool", true, true, true},
		{"yes is not a valid bool", "yes", false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_BOOL_VAR"
			os.Unsetenv(key)
			if tt.setEnv {
				t.Setenv(key, tt.envValue)
			}

			if got := getEnvBool(key, tt.defaultValue); got != tt.want {
				t.Errorf("getEnvBool(%q, %v) = %v, want %v", tt.envValue, tt.defaultValue, got, tt.want)
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("TEST_STR_VAR", "value")
	if got := getEnv("TEST_STR_VAR", "fallback"); got != "value" {
		t.Errorf("getEnv = %q, want value", got)
	}
	if got := getEnv("TEST_STR_VAR_UNSET", "fallback"); got != "fallback" {
		t.Errorf("getEnv = %q, want fallback", got)
	}
}

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()
	if info.Version != Version {
		t.Errorf("Version = %q, want %q", info.Version, Version)
	}
	if info.OS == "" || info.Arch == "" || info.GoVersion == "" {
		t.Errorf("incomplete build info: %+v", info)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"DATABASE_URL", "PORT", "METRICS_PORT", "METRICS_ENABLED"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	config := LoadConfig()
	if config.Port != "8050" {
		t.Errorf("Port = %q, want 8050", config.Port)
	}
	if config.MetricsPort != "9090" {
		t.Errorf("MetricsPort = %q, want 9090", config.MetricsPort)
	}
	if !config.MetricsEnabled {
		t.Error("MetricsEnabled should default to true")
	}
	if config.DatabaseURL != "" {
		t.Errorf("DatabaseURL = %q, want empty", config.DatabaseURL)
	}
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://spine:pw@db:5432/catalog")
	t.Setenv("PORT", "9000")
	t.Setenv("METRICS_ENABLED", "false")

	config := LoadConfig()
	if config.DatabaseURL != "postgres://spine:pw@db:5432/catalog" {
		t.Errorf("DatabaseURL = %q", config.DatabaseURL)
	}
	if config.Port != "9000" {
		t.Errorf("Port = %q, want 9000", config.Port)
	}
	if config.MetricsEnabled {
		t.Error("MetricsEnabled should be false")
	}
}
