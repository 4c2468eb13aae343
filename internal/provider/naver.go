package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const (
	defaultNaverAuthURL     = "https://nid.naver.com/oauth2.0/authorize"
	defaultNaverTokenURL    = "https://nid.naver.com/oauth2.0/token"
	defaultNaverUserInfoURL = "https://openapi.naver.com/v1/nid/me"
)

// NaverConfig 는 네이버 OAuth 프로바이더 설정.
type NaverConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	State        string

	// 테스트용 오버라이드 가능 URL
	AuthURL     string
	TokenURL    string
	UserInfoURL string

	HTTPClient *http.Client
}

// Naver 는 네이버 OAuth 2.0 프로바이더.
// 전용 검증 엔드포인트가 없어 사용자 정보 조회를 유효성 확인에 겸용하고,
// 토큰 무효화는 토큰 엔드포인트의 delete 그랜트로 수행한다.
type Naver struct {
	config NaverConfig
}

// NewNaver 는 Naver 프로바이더를 생성한다.
func NewNaver(config NaverConfig) *Naver {
	if config.AuthURL == "" {
		config.AuthURL = defaultNaverAuthURL
	}
	if config.TokenURL == "" {
		config.TokenURL = defaultNaverTokenURL
	}
	if config.UserInfoURL == "" {
		config.UserInfoURL = defaultNaverUserInfoURL
	}
	return &Naver{config: config}
}

// Name 은 프로바이더 식별자를 반환한다.
func (p *Naver) Name() string { return "naver" }

// AuthorizeURL 은 네이버 인가 URL을 생성한다.
func (p *Naver) AuthorizeURL() string {
	params := url.Values{
		"client_id":     {p.config.ClientID},
		"redirect_uri":  {p.config.RedirectURI},
		"response_type": {"code"},
		"state":         {p.config.State},
	}
	return p.config.AuthURL + "?" + params.Encode()
}

// ExchangeCode 는 인가 코드를 토큰 쌍으로 교환한다.
func (p *Naver) ExchangeCode(ctx context.Context, code string) (*TokenPair, error) {
	data := url.Values{
		"grant_type": {"authorization_code"},
		"code":       {code},
		"state":      {p.config.State},
	}
	return exchangeTokenPair(ctx, p.config.HTTPClient, p.config.TokenURL, data, p.clientHeaders())
}

// naverUserInfo 는 네이버 사용자 정보 응답. 본문은 response 아래에 싸여 온다.
type naverUserInfo struct {
	ResultCode string `json:"resultcode"`
	Response   struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"response"`
}

// FetchProfile 은 네이버 사용자 프로필을 조회한다.
func (p *Naver) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	status, body, err := getWithHeaders(ctx, p.config.HTTPClient, p.config.UserInfoURL, bearer(accessToken))
	if err != nil {
		return nil, fmt.Errorf("naver user info request failed: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("naver user info failed with status %d: %s", status, string(body))
	}

	var info naverUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse naver user info: %w", err)
	}
	if info.Response.ID == "" {
		return nil, fmt.Errorf("empty id in naver user info")
	}

	return &Profile{ID: info.Response.ID, Email: info.Response.Email}, nil
}

// Introspect 는 사용자 정보 조회로 토큰 유효성을 확인한다. 401이면 무효.
func (p *Naver) Introspect(ctx context.Context, accessToken string) error {
	status, body, err := getWithHeaders(ctx, p.config.HTTPClient, p.config.UserInfoURL, bearer(accessToken))
	if err != nil {
		return fmt.Errorf("naver introspect request failed: %w", err)
	}
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusUnauthorized:
		return ErrTokenInvalid
	default:
		return fmt.Errorf("naver introspect failed with status %d: %s", status, string(body))
	}
}

// Refresh 는 리프레시 토큰으로 새 토큰 쌍을 발급받는다.
func (p *Naver) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	data := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
	}
	return exchangeTokenPair(ctx, p.config.HTTPClient, p.config.TokenURL, data, p.clientHeaders())
}

// Revoke 는 delete 그랜트로 토큰을 무효화한다.
func (p *Naver) Revoke(ctx context.Context, accessToken string) error {
	data := url.Values{
		"grant_type":       {"delete"},
		"access_token":     {accessToken},
		"service_provider": {"NAVER"},
	}
	status, body, err := postForm(ctx, p.config.HTTPClient, p.config.TokenURL, data, p.clientHeaders())
	if err != nil {
		return fmt.Errorf("naver revoke request failed: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("naver revoke failed with status %d: %s", status, string(body))
	}
	return nil
}

func (p *Naver) clientHeaders() map[string]string {
	return map[string]string{
		"X-Naver-Client-Id":     p.config.ClientID,
		"X-Naver-Client-Secret": p.config.ClientSecret,
	}
}

// compile-time interface check
var _ Provider = (*Naver)(nil)
