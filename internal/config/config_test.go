package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Env:  "development",
		Port: 8080,
		DB: DBConfig{
			DSN:          "postgres://localhost/careerbuildai",
			MaxOpenConns: 20,
			MaxConnLife:  time.Hour,
		},
		Limiter: RateLimiterConfig{RPS: 10, Burst: 20, Enabled: true},
		CORS:    CORSConfig{TrustedOrigins: []string{"http://localhost:3000"}},
		JWT: JWTConfig{
			Secret:          strings.Repeat("s", 32),
			AccessTokenTTL:  30 * time.Minute,
			RefreshTokenTTL: 168 * time.Hour,
		},
		Groq: GroqConfig{
			APIKey:          "gsk_test",
			Model:           "llama3-70b-8192",
			QuestionTimeout: 30 * time.Second,
			FeedbackTimeout: time.Minute,
		},
		Upload: UploadConfig{Dir: "./uploads"},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad env", func(c *Config) { c.Env = "prod" }},
		{"port too low", func(c *Config) { c.Port = 0 }},
		{"port too high", func(c *Config) { c.Port = 70000 }},
		{"no db conns", func(c *Config) { c.DB.MaxOpenConns = 0 }},
		{"negative rps", func(c *Config) { c.Limiter.RPS = -1 }},
		{"zero burst", func(c *Config) { c.Limiter.Burst = 0 }},
		{"short jwt secret", func(c *Config) { c.JWT.Secret = "short" }},
		{"zero question timeout", func(c *Config) { c.Groq.QuestionTimeout = 0 }},
		{"empty upload dir", func(c *Config) { c.Upload.Dir = "" }},
		{"no cors origins", func(c *Config) { c.CORS.TrustedOrigins = nil }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/careerbuildai_test")
	t.Setenv("JWT_SECRET", strings.Repeat("s", 32))
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("GROQ_MODEL", "llama3-8b-8192")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.Groq.Model != "llama3-8b-8192" {
		t.Errorf("Groq.Model = %q", cfg.Groq.Model)
	}
	if cfg.Env != "development" {
		t.Errorf("Env default = %q, want development", cfg.Env)
	}
	if cfg.Groq.QuestionTimeout != 30*time.Second {
		t.Errorf("QuestionTimeout default = %v", cfg.Groq.QuestionTimeout)
	}
}

func TestGetCORSOrigins_TrimsWhitespace(t *testing.T) {
	cfg := validConfig()
	cfg.CORS.TrustedOrigins = []string{" http://a.example ", "", "http://b.example"}

	got := cfg.GetCORSOrigins()
	want := []string{"http://a.example", "http://b.example"}
	if len(got) != len(want) {
		t.Fatalf("origins = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("origins[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
