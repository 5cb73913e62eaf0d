package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"ENVIRONMENT", "OPENAI_API_KEY", "GEMINI_API_KEY", "COMPOSER_MODEL",
		"SENTRY_DSN", "LANGFUSE_PUBLIC_KEY", "LANGFUSE_SECRET_KEY",
		"LANGFUSE_HOST", "LANGFUSE_ENABLED",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Environment != "development" {
		t.Errorf("expected development default, got %q", cfg.Environment)
	}
	if cfg.Model != "gpt-5.1-mini" {
		t.Errorf("unexpected default model: %q", cfg.Model)
	}
	if cfg.LangfuseHost != "https://cloud.langfuse.com" {
		t.Errorf("unexpected default Langfuse host: %q", cfg.LangfuseHost)
	}
	if cfg.LangfuseEnabled {
		t.Error("Langfuse should be disabled by default")
	}
	if cfg.IsProduction() {
		t.Error("development config must not report production")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GEMINI_API_KEY", "gm-test")
	t.Setenv("COMPOSER_MODEL", "gemini-2.5-flash")
	t.Setenv("LANGFUSE_ENABLED", "true")
	t.Setenv("LANGFUSE_SECRET_KEY", "lf-secret")

	cfg := Load()

	if !cfg.IsProduction() {
		t.Error("expected production config")
	}
	if cfg.OpenAIAPIKey != "sk-test" || cfg.GeminiAPIKey != "gm-test" {
		t.Error("API keys not read from environment")
	}
	if cfg.Model != "gemini-2.5-flash" {
		t.Errorf("unexpected model: %q", cfg.Model)
	}
	if !cfg.LangfuseEnabled {
		t.Error("expected Langfuse enabled")
	}
}
