package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const (
	defaultKakaoAuthURL       = "https://kauth.kakao.com/oauth/authorize"
	defaultKakaoTokenURL      = "https://kauth.kakao.com/oauth/token"
	defaultKakaoUserInfoURL   = "https://kapi.kakao.com/v2/user/me"
	defaultKakaoIntrospectURL = "https://kapi.kakao.com/v1/user/access_token_info"
	defaultKakaoRevokeURL     = "https://kapi.kakao.com/v1/user/logout"
)

// KakaoConfig 는 카카오 OAuth 프로바이더 설정.
type KakaoConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	// 테스트용 오버라이드 가능 URL
	AuthURL       string
	TokenURL      string
	UserInfoURL   string
	IntrospectURL string
	RevokeURL     string

	HTTPClient *http.Client
}

// Kakao 는 카카오 OAuth 2.0 프로바이더.
type Kakao struct {
	config KakaoConfig
}

// NewKakao 는 Kakao 프로바이더를 생성한다.
func NewKakao(config KakaoConfig) *Kakao {
	if config.AuthURL == "" {
		config.AuthURL = defaultKakaoAuthURL
	}
	if config.TokenURL == "" {
		config.TokenURL = defaultKakaoTokenURL
	}
	if config.UserInfoURL == "" {
		config.UserInfoURL = defaultKakaoUserInfoURL
	}
	if config.IntrospectURL == "" {
		config.IntrospectURL = defaultKakaoIntrospectURL
	}
	if config.RevokeURL == "" {
		config.RevokeURL = defaultKakaoRevokeURL
	}
	return &Kakao{config: config}
}

// Name 은 프로바이더 식별자를 반환한다.
func (p *Kakao) Name() string { return "kakao" }

// AuthorizeURL 은 카카오 인가 URL을 생성한다.
func (p *Kakao) AuthorizeURL() string {
	params := url.Values{
		"client_id":     {p.config.ClientID},
		"redirect_uri":  {p.config.RedirectURI},
		"response_type": {"code"},
	}
	return p.config.AuthURL + "?" + params.Encode()
}

// ExchangeCode 는 인가 코드를 토큰 쌍으로 교환한다.
func (p *Kakao) ExchangeCode(ctx context.Context, code string) (*TokenPair, error) {
	data := url.Values{
		"grant_type":    {"authorization_code"},
		"client_id":     {p.config.ClientID},
		"client_secret": {p.config.ClientSecret},
		"redirect_uri":  {p.config.RedirectURI},
		"code":          {code},
	}
	return exchangeTokenPair(ctx, p.config.HTTPClient, p.config.TokenURL, data, nil)
}

// kakaoUserInfo 는 카카오 사용자 정보 응답. id는 숫자로 내려온다.
type kakaoUserInfo struct {
	ID           int64 `json:"id"`
	KakaoAccount struct {
		Email string `json:"email"`
	} `json:"kakao_account"`
}

// FetchProfile 은 카카오 사용자 프로필을 조회한다.
func (p *Kakao) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	status, body, err := getWithHeaders(ctx, p.config.HTTPClient, p.config.UserInfoURL, bearer(accessToken))
	if err != nil {
		return nil, fmt.Errorf("kakao user info request failed: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("kakao user info failed with status %d: %s", status, string(body))
	}

	var info kakaoUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse kakao user info: %w", err)
	}
	if info.ID == 0 {
		return nil, fmt.Errorf("empty id in kakao user info")
	}

	return &Profile{
		ID:    strconv.FormatInt(info.ID, 10),
		Email: info.KakaoAccount.Email,
	}, nil
}

// Introspect 는 토큰 정보 엔드포인트로 유효성을 확인한다. 401이면 무효.
func (p *Kakao) Introspect(ctx context.Context, accessToken string) error {
	status, body, err := getWithHeaders(ctx, p.config.HTTPClient, p.config.IntrospectURL, bearer(accessToken))
	if err != nil {
		return fmt.Errorf("kakao introspect request failed: %w", err)
	}
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusUnauthorized:
		return ErrTokenInvalid
	default:
		return fmt.Errorf("kakao introspect failed with status %d: %s", status, string(body))
	}
}

// Refresh 는 리프레시 토큰으로 새 토큰 쌍을 발급받는다.
func (p *Kakao) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	data := url.Values{
		"grant_type":    {"refresh_token"},
		"client_id":     {p.config.ClientID},
		"client_secret": {p.config.ClientSecret},
		"refresh_token": {refreshToken},
	}
	return exchangeTokenPair(ctx, p.config.HTTPClient, p.config.TokenURL, data, nil)
}

// Revoke 는 카카오 로그아웃 엔드포인트로 토큰을 무효화한다.
func (p *Kakao) Revoke(ctx context.Context, accessToken string) error {
	status, body, err := postForm(ctx, p.config.HTTPClient, p.config.RevokeURL, url.Values{}, bearer(accessToken))
	if err != nil {
		return fmt.Errorf("kakao revoke request failed: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("kakao revoke failed with status %d: %s", status, string(body))
	}
	return nil
}

// exchangeTokenPair 는 토큰 엔드포인트를 호출해 TokenPair를 파싱한다.
// 세 프로바이더가 동일한 응답 골격을 쓰므로 공용으로 둔다.
func exchangeTokenPair(ctx context.Context, client *http.Client, endpoint string, data url.Values, headers map[string]string) (*TokenPair, error) {
	status, body, err := postForm(ctx, client, endpoint, data, headers)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("token request failed with status %d: %s", status, string(body))
	}

	var pair TokenPair
	if err := json.Unmarshal(body, &pair); err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}
	if pair.AccessToken == "" {
		return nil, fmt.Errorf("empty access token in response")
	}
	return &pair, nil
}

// compile-time interface check
var _ Provider = (*Kakao)(nil)
