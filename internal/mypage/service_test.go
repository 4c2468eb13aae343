package mypage

import (
	"context"
	"errors"
	"testing"

	"github.com/mallang/recipe-api/internal/model"
	"github.com/mallang/recipe-api/internal/repository"
	"github.com/mallang/recipe-api/internal/security"
)

type mockUserRepo struct {
	findByIDFn func(ctx context.Context, id string) (*model.User, error)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, nil
}
func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}
func (m *mockUserRepo) CreateWithDefaults(ctx context.Context, user *model.User, session *model.Session, nickname string, subscribed bool, prefers []model.PreferPair) error {
	return nil
}

var _ repository.UserRepository = (*mockUserRepo)(nil)

type mockMypageRepo struct {
	getBasicFn    func(ctx context.Context, userID string) (*model.BasicProfile, error)
	listPrefersFn func(ctx context.Context, userID string) ([]model.PreferPair, error)
	firstPreferFn func(ctx context.Context, userID string) (*model.PreferPair, error)
	saveProfileFn func(ctx context.Context, profile *model.Profile) error
}

func (m *mockMypageRepo) GetBasic(ctx context.Context, userID string) (*model.BasicProfile, error) {
	return m.getBasicFn(ctx, userID)
}
func (m *mockMypageRepo) ListPrefers(ctx context.Context, userID string) ([]model.PreferPair, error) {
	return m.listPrefersFn(ctx, userID)
}
func (m *mockMypageRepo) FirstPrefer(ctx context.Context, userID string) (*model.PreferPair, error) {
	return m.firstPreferFn(ctx, userID)
}
func (m *mockMypageRepo) SaveProfile(ctx context.Context, profile *model.Profile) error {
	return m.saveProfileFn(ctx, profile)
}

var _ repository.MypageRepository = (*mockMypageRepo)(nil)

// 정상 프로필 조회는 users와 mypage 데이터를 합친다
func TestProfile_MergesUserAndMypage(t *testing.T) {
	users := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id, Email: "a@b.com"}, nil
		},
	}
	mp := &mockMypageRepo{
		getBasicFn: func(ctx context.Context, userID string) (*model.BasicProfile, error) {
			return &model.BasicProfile{Nickname: "말랑", Subscription: true}, nil
		},
		listPrefersFn: func(ctx context.Context, userID string) ([]model.PreferPair, error) {
			return []model.PreferPair{{CateNo: 1, SituNo: 2}}, nil
		},
	}
	svc := NewService(users, mp, security.NewInputSanitizer())

	profile, err := svc.Profile(context.Background(), "u1")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.Email != "a@b.com" || profile.Nickname != "말랑" || !profile.Subscription {
		t.Errorf("unexpected profile: %+v", profile)
	}
	if len(profile.Prefers) != 1 {
		t.Errorf("prefers = %v", profile.Prefers)
	}
}

// users 행이 없으면 400 에러
func TestProfile_UnknownUser(t *testing.T) {
	users := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			return nil, nil
		},
	}
	svc := NewService(users, &mockMypageRepo{}, security.NewInputSanitizer())

	_, err := svc.Profile(context.Background(), "missing")
	if !errors.Is(err, model.ErrBadUserInfo) {
		t.Fatalf("expected ErrBadUserInfo, got %v", err)
	}
}

// mypage 행이 없어도 400 에러
func TestProfile_MissingMypageRow(t *testing.T) {
	users := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id}, nil
		},
	}
	mp := &mockMypageRepo{
		getBasicFn: func(ctx context.Context, userID string) (*model.BasicProfile, error) {
			return nil, nil
		},
	}
	svc := NewService(users, mp, security.NewInputSanitizer())

	_, err := svc.Profile(context.Background(), "u1")
	if !errors.Is(err, model.ErrBadUserInfo) {
		t.Fatalf("expected ErrBadUserInfo, got %v", err)
	}
}

// 갱신은 users의 이메일을 채우고 닉네임을 정화해 저장한다
func TestUpdate_FillsEmailAndSanitizes(t *testing.T) {
	users := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id, Email: "real@b.com"}, nil
		},
	}
	var saved *model.Profile
	mp := &mockMypageRepo{
		saveProfileFn: func(ctx context.Context, profile *model.Profile) error {
			saved = profile
			return nil
		},
	}
	svc := NewService(users, mp, security.NewInputSanitizer())

	err := svc.Update(context.Background(), &model.Profile{
		UserID:   "u1",
		Nickname: "<b>말랑</b>",
		Prefers:  []model.PreferPair{{CateNo: 1, SituNo: 1}},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if saved.Email != "real@b.com" {
		t.Errorf("Email = %q", saved.Email)
	}
	if saved.Nickname != "말랑" {
		t.Errorf("Nickname = %q", saved.Nickname)
	}
}

// 선호 쌍이 없는 갱신 요청은 400으로 거절
func TestUpdate_RequiresPrefers(t *testing.T) {
	svc := NewService(&mockUserRepo{}, &mockMypageRepo{}, security.NewInputSanitizer())

	err := svc.Update(context.Background(), &model.Profile{UserID: "u1"})
	if !errors.Is(err, model.ErrBadInput) {
		t.Fatalf("expected ErrBadInput, got %v", err)
	}
}
