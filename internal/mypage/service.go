// Package mypage 는 마이페이지 프로필 조회/갱신을 제공한다.
package mypage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mallang/recipe-api/internal/model"
	"github.com/mallang/recipe-api/internal/repository"
	"github.com/mallang/recipe-api/internal/security"
)

// Service 는 마이페이지 비즈니스 로직을 제공한다.
type Service struct {
	userRepo  repository.UserRepository
	mypage    repository.MypageRepository
	sanitizer security.InputSanitizerService
}

// NewService 는 Service를 생성한다.
func NewService(userRepo repository.UserRepository, mypage repository.MypageRepository, sanitizer security.InputSanitizerService) *Service {
	return &Service{userRepo: userRepo, mypage: mypage, sanitizer: sanitizer}
}

// Profile 은 users와 mypage를 합친 전체 프로필을 반환한다.
// 어느 쪽이든 행이 없으면 400 에러를 돌려준다.
func (s *Service) Profile(ctx context.Context, userID string) (*model.Profile, error) {
	if userID == "" {
		return nil, model.ErrBadUserInfo
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.ErrBadUserInfo
	}

	basic, err := s.mypage.GetBasic(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get mypage: %w", err)
	}
	if basic == nil {
		return nil, model.ErrBadUserInfo
	}

	prefers, err := s.mypage.ListPrefers(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prefers: %w", err)
	}

	return &model.Profile{
		UserID:       userID,
		Email:        user.Email,
		Nickname:     basic.Nickname,
		Subscription: basic.Subscription,
		Prefers:      prefers,
	}, nil
}

// BasicProfile 은 닉네임과 선호 쌍만 담은 축약 프로필을 반환한다.
func (s *Service) BasicProfile(ctx context.Context, userID string) (*model.BasicProfile, error) {
	if userID == "" {
		return nil, model.ErrBadUserInfo
	}

	basic, err := s.mypage.GetBasic(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get mypage: %w", err)
	}
	if basic == nil {
		return nil, model.ErrBadUserInfo
	}

	prefers, err := s.mypage.ListPrefers(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prefers: %w", err)
	}
	basic.Prefers = prefers

	return basic, nil
}

// Update 는 프로필을 갱신한다. 이메일은 users에서 가져와 subscription 미러
// 정합화에 쓰인다.
func (s *Service) Update(ctx context.Context, profile *model.Profile) error {
	if profile.UserID == "" || len(profile.Prefers) == 0 {
		return model.ErrBadInput
	}

	user, err := s.userRepo.FindByID(ctx, profile.UserID)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return model.ErrBadUserInfo
	}

	profile.Email = user.Email
	profile.Nickname = s.sanitizer.Sanitize(profile.Nickname)

	if err := s.mypage.SaveProfile(ctx, profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	slog.Info("mypage updated",
		slog.String("user_id", profile.UserID),
		slog.Bool("subscription", profile.Subscription),
		slog.Int("prefer_count", len(profile.Prefers)),
	)
	return nil
}
