// Package config 는 환경변수 기반 애플리케이션 설정을 제공한다.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
)

// OAuthClient 는 단일 OAuth 프로바이더의 클라이언트 자격 증명을 보관한다.
type OAuthClient struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scope        string
	State        string
}

// Config 는 애플리케이션 전체 설정을 보관한다.
// 기동 시 환경변수에서 1회 읽어들이고 이후에는 변경하지 않는다.
type Config struct {
	// Database
	DBHost    string
	DBPort    string
	DBUser    string
	DBName    string
	DBSSLMode string

	// Secret store: 데이터베이스 비밀번호가 담긴 JSON 시크릿 문서의 위치
	// (파일 경로 또는 https URL).
	SecretSource string

	// OAuth providers
	Kakao  OAuthClient
	Naver  OAuthClient
	Google OAuthClient

	// Front-end
	FrontURI string

	// Recipe dataset: 레시피 본문 CSV의 위치 (파일 경로 또는 URL).
	DatasetSource string

	// Server
	ServerPort        string
	CORSAllowedOrigin string
	RateLimitGeneral  int
}

// Load 는 환경변수에서 Config를 읽어들인다.
// 필수 환경변수가 하나라도 비어 있으면 누락 목록을 묶어 에러로 반환한다.
func Load() (*Config, error) {
	cfg := &Config{}

	var missing []string
	required := func(key string) string {
		v := os.Getenv(key)
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg.DBHost = required("DB_HOST")
	cfg.DBUser = required("DB_USER")
	cfg.DBName = required("DB_NAME")
	cfg.SecretSource = required("SECRET_SOURCE")
	cfg.FrontURI = required("FRONT_URI")

	cfg.Kakao = OAuthClient{
		ClientID:     required("KAKAO_CLIENT_ID"),
		ClientSecret: required("KAKAO_CLIENT_SECRET"),
		RedirectURI:  required("KAKAO_REDIRECT_URI"),
		Scope:        os.Getenv("KAKAO_SCOPE"),
	}
	cfg.Naver = OAuthClient{
		ClientID:     required("NAVER_CLIENT_ID"),
		ClientSecret: required("NAVER_CLIENT_SECRET"),
		RedirectURI:  required("NAVER_REDIRECT_URI"),
		State:        os.Getenv("NAVER_STATE"),
	}
	cfg.Google = OAuthClient{
		ClientID:     required("GOOGLE_CLIENT_ID"),
		ClientSecret: required("GOOGLE_CLIENT_SECRET"),
		RedirectURI:  required("GOOGLE_REDIRECT_URI"),
		Scope:        os.Getenv("GOOGLE_SCOPE"),
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	cfg.DBPort = getEnvString("DB_PORT", "5432")
	cfg.DBSSLMode = getEnvString("DB_SSLMODE", "disable")
	cfg.DatasetSource = os.Getenv("RECIPE_DATASET_SOURCE")
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "*")
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)

	return cfg, nil
}

// DatabaseURL 은 시크릿 스토어에서 받은 비밀번호를 합쳐
// PostgreSQL 접속 URL을 구성한다. 비밀번호의 특수문자는 URL 이스케이프한다.
func (c *Config) DatabaseURL(password string) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, password),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + c.DBSSLMode,
	}
	return u.String()
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}
