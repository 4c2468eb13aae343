// Package provider 는 카카오/네이버/구글 OAuth 프로바이더 전략을 정의한다.
// 프로바이더별 분기는 핸들러가 아니라 Registry 조회로 해결한다.
package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

var (
	// ErrUnknownProvider 는 등록되지 않은 프로바이더 이름을 조회했을 때 반환된다.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrTokenInvalid 는 프로바이더 검증 엔드포인트가 토큰 무효를 알렸을 때
	// 반환된다. 프로바이더마다 상태 코드가 다르므로(카카오/네이버 401, 구글 400)
	// 각 구현이 이 에러로 정규화한다.
	ErrTokenInvalid = errors.New("access token invalid")
)

// TokenPair 는 토큰 엔드포인트가 발급한 액세스/리프레시 토큰 쌍.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Profile 은 프로바이더 사용자 정보 중 서비스가 쓰는 부분.
type Profile struct {
	ID    string
	Email string
}

// Provider 는 OAuth 프로바이더 하나의 전체 수명주기 연산.
type Provider interface {
	// Name 은 프로바이더 식별자(kakao|naver|google)를 반환한다.
	Name() string

	// AuthorizeURL 은 로그인 시작용 인가 URL을 생성한다.
	AuthorizeURL() string

	// ExchangeCode 는 인가 코드를 토큰 쌍으로 교환한다.
	ExchangeCode(ctx context.Context, code string) (*TokenPair, error)

	// FetchProfile 은 액세스 토큰으로 사용자 프로필을 조회한다.
	FetchProfile(ctx context.Context, accessToken string) (*Profile, error)

	// Introspect 는 액세스 토큰의 유효성을 프로바이더에 확인한다.
	// 무효 판정이면 ErrTokenInvalid, 그 외 실패는 일반 에러를 반환한다.
	Introspect(ctx context.Context, accessToken string) error

	// Refresh 는 리프레시 토큰으로 새 토큰 쌍을 발급받는다.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	// Revoke 는 프로바이더 측 토큰을 무효화한다.
	Revoke(ctx context.Context, accessToken string) error
}

// Registry 는 이름으로 프로바이더를 찾는 전략 테이블.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry 는 지정 프로바이더들로 Registry를 생성한다.
func NewRegistry(providers ...Provider) *Registry {
	m := make(map[string]Provider, len(providers))
	for _, p := range providers {
		m[p.Name()] = p
	}
	return &Registry{providers: m}
}

// Get 은 이름으로 프로바이더를 조회한다. 없으면 ErrUnknownProvider를 반환한다.
func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	return p, nil
}

// postForm 은 폼 인코딩 POST를 보내고 상태 코드와 본문을 반환한다.
func postForm(ctx context.Context, client *http.Client, endpoint string, data url.Values, headers map[string]string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return do(client, req)
}

// getWithHeaders 는 GET 요청을 보내고 상태 코드와 본문을 반환한다.
func getWithHeaders(ctx context.Context, client *http.Client, endpoint string, headers map[string]string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return do(client, req)
}

func do(client *http.Client, req *http.Request) (int, []byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, body, nil
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}
