// Package auth 는 OAuth 로그인 흐름과 세션 관리를 제공한다.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mallang/recipe-api/internal/model"
	"github.com/mallang/recipe-api/internal/provider"
	"github.com/mallang/recipe-api/internal/repository"
	"github.com/mallang/recipe-api/internal/security"
)

// RedirectResult 는 리다이렉트 콜백 처리 결과로, 핸들러가 프론트엔드
// 이동 URL을 구성하는 데 쓰인다.
type RedirectResult struct {
	UserID       string
	Email        string
	Provider     string
	AccessToken  string
	RefreshToken string
	New          bool
}

// RefreshResult 는 토큰 재발급 결과.
type RefreshResult struct {
	UserID      string `json:"user_id"`
	AccessToken string `json:"access_token"`
}

// SignupRequest 는 회원 가입 요청.
type SignupRequest struct {
	UserID       string             `json:"user_id"`
	Email        string             `json:"user_email"`
	Provider     string             `json:"user_provider"`
	AccessToken  string             `json:"access_token"`
	Nickname     string             `json:"user_nickname"`
	Subscription model.Subscription `json:"user_subscription"`
	Prefers      []model.PreferPair `json:"user_prefer"`
	UserAgent    string             `json:"-"`
}

// CallRecorder 는 프로바이더 호출과 가입 이벤트를 집계한다.
type CallRecorder interface {
	RecordProviderCall(provider string, success bool)
	RecordProviderLatency(provider string, duration time.Duration)
	RecordSignup(provider string)
}

// Service 는 인증 비즈니스 로직을 제공한다.
type Service struct {
	registry  *provider.Registry
	userRepo  repository.UserRepository
	sessions  repository.SessionRepository
	sanitizer security.InputSanitizerService
	recorder  CallRecorder
}

// NewService 는 Service를 생성한다.
func NewService(
	registry *provider.Registry,
	userRepo repository.UserRepository,
	sessions repository.SessionRepository,
	sanitizer security.InputSanitizerService,
) *Service {
	return &Service{
		registry:  registry,
		userRepo:  userRepo,
		sessions:  sessions,
		sanitizer: sanitizer,
	}
}

// SetRecorder 는 메트릭 수집기를 연결한다. nil이면 집계를 생략한다.
func (s *Service) SetRecorder(recorder CallRecorder) {
	s.recorder = recorder
}

// recordCall 은 프로바이더 호출 1회의 결과와 소요 시간을 집계한다.
func (s *Service) recordCall(providerName string, start time.Time, err error) {
	if s.recorder == nil {
		return
	}
	s.recorder.RecordProviderCall(providerName, err == nil)
	s.recorder.RecordProviderLatency(providerName, time.Since(start))
}

// AuthorizeURL 은 프로바이더의 로그인 인가 URL을 반환한다.
func (s *Service) AuthorizeURL(providerName string) (string, error) {
	p, err := s.registry.Get(providerName)
	if err != nil {
		return "", model.ErrInvalidProvider
	}
	return p.AuthorizeURL(), nil
}

// HandleRedirect 는 인가 코드를 토큰으로 교환하고 로그인 또는 가입 대기
// 상태를 판정한다. 기존 회원이면 세션을 저장하고, 미가입이면 행을 쓰지 않고
// New=true로 프로필과 토큰만 돌려 가입 화면으로 넘긴다.
func (s *Service) HandleRedirect(ctx context.Context, providerName, code, userAgent string) (*RedirectResult, error) {
	p, err := s.registry.Get(providerName)
	if err != nil {
		return nil, model.ErrInvalidProvider
	}

	start := time.Now()
	pair, err := p.ExchangeCode(ctx, code)
	if err != nil {
		s.recordCall(providerName, start, err)
		return nil, fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	profile, err := p.FetchProfile(ctx, pair.AccessToken)
	s.recordCall(providerName, start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider profile: %w", err)
	}

	user, err := s.userRepo.FindByID(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	result := &RedirectResult{
		UserID:       profile.ID,
		Email:        profile.Email,
		Provider:     providerName,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		New:          user == nil,
	}

	if user != nil {
		if err := s.sessions.Upsert(ctx, user.ID, pair.AccessToken, userAgent); err != nil {
			return nil, fmt.Errorf("failed to upsert session: %w", err)
		}
		slog.Info("existing user logged in",
			slog.String("user_id", user.ID),
			slog.String("provider", providerName),
		)
	} else {
		slog.Info("unregistered user redirected to signup",
			slog.String("provider", providerName),
		)
	}

	return result, nil
}

// CheckToken 은 (user_id, access_token) 쌍의 로컬 세션 일치와 프로바이더 측
// 토큰 유효성을 차례로 확인한다. 프로바이더가 무효 판정하면 해당 사용자의
// 로컬 세션을 전부 삭제하고 419 에러를 돌려준다.
func (s *Service) CheckToken(ctx context.Context, userID, providerName, accessToken string) error {
	p, err := s.registry.Get(providerName)
	if err != nil {
		return model.ErrInvalidProvider
	}
	if userID == "" || accessToken == "" {
		return model.ErrMissingAuthPair
	}

	ok, err := s.sessions.Validate(ctx, userID, accessToken)
	if err != nil {
		return fmt.Errorf("failed to validate session: %w", err)
	}
	if !ok {
		return model.ErrSessionMismatch
	}

	start := time.Now()
	err = p.Introspect(ctx, accessToken)
	s.recordCall(providerName, start, err)
	if err != nil {
		if errors.Is(err, provider.ErrTokenInvalid) {
			if delErr := s.sessions.DeleteByUser(ctx, userID); delErr != nil {
				return fmt.Errorf("failed to clear sessions after invalid token: %w", delErr)
			}
			slog.Info("expired token sessions cleared",
				slog.String("user_id", userID),
				slog.String("provider", providerName),
			)
			return model.ErrTokenExpired
		}
		return fmt.Errorf("failed to introspect token: %w", err)
	}

	return nil
}

// Logout 은 프로바이더 측 토큰을 무효화한 뒤 로컬 세션을 전부 삭제한다.
func (s *Service) Logout(ctx context.Context, userID, providerName, accessToken string) error {
	p, err := s.registry.Get(providerName)
	if err != nil {
		return model.ErrInvalidProvider
	}
	if userID == "" || accessToken == "" {
		return model.ErrMissingAuthPair
	}

	ok, err := s.sessions.Validate(ctx, userID, accessToken)
	if err != nil {
		return fmt.Errorf("failed to validate session: %w", err)
	}
	if !ok {
		return model.ErrSessionMismatch
	}

	start := time.Now()
	err = p.Revoke(ctx, accessToken)
	s.recordCall(providerName, start, err)
	if err != nil {
		return fmt.Errorf("failed to revoke provider token: %w", err)
	}

	if err := s.sessions.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}

	slog.Info("user logged out",
		slog.String("user_id", userID),
		slog.String("provider", providerName),
	)
	return nil
}

// RefreshToken 은 리프레시 그랜트로 새 액세스 토큰을 발급받고 저장된
// 세션의 토큰을 갱신한다.
func (s *Service) RefreshToken(ctx context.Context, providerName, refreshToken string) (*RefreshResult, error) {
	p, err := s.registry.Get(providerName)
	if err != nil {
		return nil, model.ErrInvalidProvider
	}
	if refreshToken == "" {
		return nil, model.ErrBadInput
	}

	start := time.Now()
	pair, err := p.Refresh(ctx, refreshToken)
	if err != nil {
		s.recordCall(providerName, start, err)
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	profile, err := p.FetchProfile(ctx, pair.AccessToken)
	s.recordCall(providerName, start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider profile: %w", err)
	}

	if err := s.sessions.UpdateAccessToken(ctx, profile.ID, pair.AccessToken); err != nil {
		return nil, fmt.Errorf("failed to update session token: %w", err)
	}

	return &RefreshResult{UserID: profile.ID, AccessToken: pair.AccessToken}, nil
}

// Signup 은 신규 회원을 등록한다. 이메일이 이미 존재하면 409 에러를 돌려주고,
// 아니면 사용자/세션/마이페이지/구독/기본 냉장고 칸을 하나의 트랜잭션으로 만든다.
func (s *Service) Signup(ctx context.Context, req *SignupRequest) error {
	if req.UserID == "" || req.Email == "" || req.AccessToken == "" {
		return model.ErrBadInput
	}
	if _, err := s.registry.Get(req.Provider); err != nil {
		return model.ErrInvalidProvider
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return model.ErrDuplicateEmail
	}

	user := &model.User{
		ID:        req.UserID,
		Email:     req.Email,
		Provider:  req.Provider,
		CreatedAt: time.Now(),
	}
	session := &model.Session{
		UserID:      req.UserID,
		AccessToken: req.AccessToken,
		UserAgent:   req.UserAgent,
	}
	nickname := s.sanitizer.Sanitize(req.Nickname)

	if err := s.userRepo.CreateWithDefaults(ctx, user, session, nickname, bool(req.Subscription), req.Prefers); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if s.recorder != nil {
		s.recorder.RecordSignup(req.Provider)
	}
	slog.Info("new user signed up",
		slog.String("user_id", req.UserID),
		slog.String("provider", req.Provider),
		slog.Bool("subscription", bool(req.Subscription)),
	)
	return nil
}
