package config

import (
	"strings"
	"testing"
)

func TestLoad_defaults(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://project.supabase.co")
	t.Setenv("SUPABASE_SERVICE_KEY", "service-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.RecallRegion != "us-west-2" {
		t.Errorf("expected default region, got %q", cfg.RecallRegion)
	}
	if !cfg.RealtimeEvents || cfg.UseCaptions {
		t.Errorf("unexpected launch defaults: realtime=%v captions=%v", cfg.RealtimeEvents, cfg.UseCaptions)
	}
}

func TestLoad_missingSupabase(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_SERVICE_KEY", "")
	t.Setenv("SUPABASE_ANON_KEY", "")

	if _, err := Load(); err == nil {
		t.Error("expected validation error without Supabase settings")
	}
}

func TestLoad_keyFallback(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://project.supabase.co")
	t.Setenv("SUPABASE_SERVICE_KEY", "")
	t.Setenv("SUPABASE_ANON_KEY", "anon-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SupabaseKey != "anon-key" {
		t.Errorf("expected anon key fallback, got %q", cfg.SupabaseKey)
	}
}

func TestWebhookURL(t *testing.T) {
	cfg := &Config{CallbackBaseURL: "https://gateway.example.com"}
	got := cfg.WebhookURL()
	if !strings.HasPrefix(got, "https://gateway.example.com/") {
		t.Errorf("unexpected webhook URL %q", got)
	}
	if got != "https://gateway.example.com/api/v1/meetings/webhook" {
		t.Errorf("unexpected webhook URL %q", got)
	}
}
