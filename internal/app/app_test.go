package app

import (
	"io"
	"testing"
)

// 필수 환경변수 전체를 테스트 값으로 채운다.
func setRequiredEnv(t *testing.T) {
	t.Helper()

	for key, val := range map[string]string{
		"DB_HOST":              "localhost",
		"DB_USER":              "recipe",
		"DB_NAME":              "recipe",
		"SECRET_SOURCE":        "/tmp/secret.json",
		"FRONT_URI":            "https://front.example.com",
		"KAKAO_CLIENT_ID":      "kid",
		"KAKAO_CLIENT_SECRET":  "ksecret",
		"KAKAO_REDIRECT_URI":   "https://api.example.com/auth/kakao/redirect",
		"NAVER_CLIENT_ID":      "nid",
		"NAVER_CLIENT_SECRET":  "nsecret",
		"NAVER_REDIRECT_URI":   "https://api.example.com/auth/naver/redirect",
		"GOOGLE_CLIENT_ID":     "gid",
		"GOOGLE_CLIENT_SECRET": "gsecret",
		"GOOGLE_REDIRECT_URI":  "https://api.example.com/auth/google/redirect",
	} {
		t.Setenv(key, val)
	}
}

func TestInit_LoadsConfig(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Init(io.Discard)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if cfg.FrontURI != "https://front.example.com" {
		t.Errorf("FrontURI = %q", cfg.FrontURI)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want default 8080", cfg.ServerPort)
	}
}

func TestInit_MissingEnvReturnsError(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_HOST", "")

	if _, err := Init(io.Discard); err == nil {
		t.Fatal("expected error for missing DB_HOST")
	}
}
