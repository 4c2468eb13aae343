package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const (
	defaultGoogleAuthURL       = "https://accounts.google.com/o/oauth2/v2/auth"
	defaultGoogleTokenURL      = "https://oauth2.googleapis.com/token"
	defaultGoogleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
	defaultGoogleIntrospectURL = "https://oauth2.googleapis.com/tokeninfo"
	defaultGoogleRevokeURL     = "https://oauth2.googleapis.com/revoke"
)

// GoogleConfig 는 구글 OAuth 프로바이더 설정.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scope        string

	// 테스트용 오버라이드 가능 URL
	AuthURL       string
	TokenURL      string
	UserInfoURL   string
	IntrospectURL string
	RevokeURL     string

	HTTPClient *http.Client
}

// Google 은 구글 OAuth 2.0 프로바이더.
// 토큰 무효 판정 상태 코드가 400이라는 점이 다른 둘과 다르다.
type Google struct {
	config GoogleConfig
}

// NewGoogle 은 Google 프로바이더를 생성한다.
func NewGoogle(config GoogleConfig) *Google {
	if config.AuthURL == "" {
		config.AuthURL = defaultGoogleAuthURL
	}
	if config.TokenURL == "" {
		config.TokenURL = defaultGoogleTokenURL
	}
	if config.UserInfoURL == "" {
		config.UserInfoURL = defaultGoogleUserInfoURL
	}
	if config.IntrospectURL == "" {
		config.IntrospectURL = defaultGoogleIntrospectURL
	}
	if config.RevokeURL == "" {
		config.RevokeURL = defaultGoogleRevokeURL
	}
	if config.Scope == "" {
		config.Scope = "openid email profile"
	}
	return &Google{config: config}
}

// Name 은 프로바이더 식별자를 반환한다.
func (p *Google) Name() string { return "google" }

// AuthorizeURL 은 구글 인가 URL을 생성한다.
func (p *Google) AuthorizeURL() string {
	params := url.Values{
		"client_id":     {p.config.ClientID},
		"redirect_uri":  {p.config.RedirectURI},
		"response_type": {"code"},
		"scope":         {p.config.Scope},
		"access_type":   {"offline"},
	}
	return p.config.AuthURL + "?" + params.Encode()
}

// ExchangeCode 는 인가 코드를 토큰 쌍으로 교환한다.
func (p *Google) ExchangeCode(ctx context.Context, code string) (*TokenPair, error) {
	data := url.Values{
		"grant_type":    {"authorization_code"},
		"client_id":     {p.config.ClientID},
		"client_secret": {p.config.ClientSecret},
		"redirect_uri":  {p.config.RedirectURI},
		"code":          {code},
	}
	return exchangeTokenPair(ctx, p.config.HTTPClient, p.config.TokenURL, data, nil)
}

// googleUserInfo 는 구글 v2 사용자 정보 응답.
type googleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// FetchProfile 은 구글 사용자 프로필을 조회한다.
func (p *Google) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	status, body, err := getWithHeaders(ctx, p.config.HTTPClient, p.config.UserInfoURL, bearer(accessToken))
	if err != nil {
		return nil, fmt.Errorf("google user info request failed: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("google user info failed with status %d: %s", status, string(body))
	}

	var info googleUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse google user info: %w", err)
	}
	if info.ID == "" {
		return nil, fmt.Errorf("empty id in google user info")
	}

	return &Profile{ID: info.ID, Email: info.Email}, nil
}

// Introspect 는 tokeninfo 엔드포인트로 유효성을 확인한다. 400이면 무효.
func (p *Google) Introspect(ctx context.Context, accessToken string) error {
	endpoint := p.config.IntrospectURL + "?access_token=" + url.QueryEscape(accessToken)
	status, body, err := getWithHeaders(ctx, p.config.HTTPClient, endpoint, nil)
	if err != nil {
		return fmt.Errorf("google introspect request failed: %w", err)
	}
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusBadRequest:
		return ErrTokenInvalid
	default:
		return fmt.Errorf("google introspect failed with status %d: %s", status, string(body))
	}
}

// Refresh 는 리프레시 토큰으로 새 토큰 쌍을 발급받는다.
func (p *Google) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	data := url.Values{
		"grant_type":    {"refresh_token"},
		"client_id":     {p.config.ClientID},
		"client_secret": {p.config.ClientSecret},
		"refresh_token": {refreshToken},
	}
	return exchangeTokenPair(ctx, p.config.HTTPClient, p.config.TokenURL, data, nil)
}

// Revoke 는 revoke 엔드포인트로 토큰을 무효화한다.
func (p *Google) Revoke(ctx context.Context, accessToken string) error {
	data := url.Values{"token": {accessToken}}
	status, body, err := postForm(ctx, p.config.HTTPClient, p.config.RevokeURL, data, nil)
	if err != nil {
		return fmt.Errorf("google revoke request failed: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("google revoke failed with status %d: %s", status, string(body))
	}
	return nil
}

// compile-time interface check
var _ Provider = (*Google)(nil)
