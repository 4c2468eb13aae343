package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mallang/recipe-api/internal/model"
)

// mockSessionValidator 는 세션 검증 목.
type mockSessionValidator struct {
	validateFunc func(ctx context.Context, userID, accessToken string) (bool, error)
}

func (m *mockSessionValidator) Validate(ctx context.Context, userID, accessToken string) (bool, error) {
	return m.validateFunc(ctx, userID, accessToken)
}

// mockMypageService 는 마이페이지 서비스 목.
type mockMypageService struct {
	profileFunc func(ctx context.Context, userID string) (*model.Profile, error)
	basicFunc   func(ctx context.Context, userID string) (*model.BasicProfile, error)
	updateFunc  func(ctx context.Context, profile *model.Profile) error
}

func (m *mockMypageService) Profile(ctx context.Context, userID string) (*model.Profile, error) {
	return m.profileFunc(ctx, userID)
}

func (m *mockMypageService) BasicProfile(ctx context.Context, userID string) (*model.BasicProfile, error) {
	return m.basicFunc(ctx, userID)
}

func (m *mockMypageService) Update(ctx context.Context, profile *model.Profile) error {
	return m.updateFunc(ctx, profile)
}

var _ MypageServiceInterface = (*mockMypageService)(nil)

func allowAllSessions() *mockSessionValidator {
	return &mockSessionValidator{
		validateFunc: func(ctx context.Context, userID, accessToken string) (bool, error) {
			return true, nil
		},
	}
}

func TestMypageProfile_MissingPairReturns400(t *testing.T) {
	h := NewMypageHandler(&mockMypageService{}, allowAllSessions())

	req := postJSON(t, http.MethodPost, "/mypage/profile", map[string]string{"user_id": "kakao:1"})
	w := httptest.NewRecorder()
	h.Profile(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if got := decodeMessage(t, w); got != "user_id 또는 access_token이 제공되지 않았습니다." {
		t.Errorf("message = %q", got)
	}
}

func TestMypageProfile_SessionMismatchReturns401(t *testing.T) {
	sessions := &mockSessionValidator{
		validateFunc: func(ctx context.Context, userID, accessToken string) (bool, error) {
			return false, nil
		},
	}
	h := NewMypageHandler(&mockMypageService{}, sessions)

	req := postJSON(t, http.MethodPost, "/mypage/profile", map[string]string{
		"user_id": "kakao:1", "access_token": "bad",
	})
	w := httptest.NewRecorder()
	h.Profile(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if got := decodeMessage(t, w); got != "user_id와 access_token이 일치하지 않습니다." {
		t.Errorf("message = %q", got)
	}
}

func TestMypageProfile_ReturnsProfileJSON(t *testing.T) {
	svc := &mockMypageService{
		profileFunc: func(ctx context.Context, userID string) (*model.Profile, error) {
			return &model.Profile{
				UserID:       userID,
				Email:        "user@example.com",
				Nickname:     "말랑",
				Subscription: true,
				Prefers:      []model.PreferPair{{CateNo: 1, SituNo: 2}},
			}, nil
		},
	}
	h := NewMypageHandler(svc, allowAllSessions())

	req := postJSON(t, http.MethodPost, "/mypage/profile", map[string]string{
		"user_id": "kakao:1", "access_token": "ok",
	})
	w := httptest.NewRecorder()
	h.Profile(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var got model.Profile
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.Nickname != "말랑" || !got.Subscription || len(got.Prefers) != 1 {
		t.Errorf("profile = %+v", got)
	}
}

func TestMypageUpdate_PassesProfileToService(t *testing.T) {
	var saved *model.Profile
	svc := &mockMypageService{
		updateFunc: func(ctx context.Context, profile *model.Profile) error {
			saved = profile
			return nil
		},
	}
	h := NewMypageHandler(svc, allowAllSessions())

	req := postJSON(t, http.MethodPut, "/mypage/profile", map[string]any{
		"user_id":           "kakao:1",
		"access_token":      "ok",
		"user_nickname":     "새닉네임",
		"user_subscription": false,
		"user_prefer":       []map[string]int{{"cate_no": 3, "situ_no": 4}},
	})
	w := httptest.NewRecorder()
	h.Update(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if saved == nil || saved.Nickname != "새닉네임" || len(saved.Prefers) != 1 {
		t.Errorf("saved profile = %+v", saved)
	}
}

// 축약 프로필 응답은 구독 여부를 노출하지 않는다.
func TestMypageBasic_OmitsSubscriptionKey(t *testing.T) {
	svc := &mockMypageService{
		basicFunc: func(ctx context.Context, userID string) (*model.BasicProfile, error) {
			return &model.BasicProfile{Nickname: "말랑", Subscription: true}, nil
		},
	}
	h := NewMypageHandler(svc, allowAllSessions())

	req := postJSON(t, http.MethodPost, "/mypage/profile/basic", map[string]string{
		"user_id": "kakao:1", "access_token": "ok",
	})
	w := httptest.NewRecorder()
	h.Basic(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := w.Body.String(); strings.Contains(body, "user_subscription") {
		t.Errorf("body exposes subscription: %s", body)
	}
}

// 구독 여부가 문자열 "true"로 와도 갱신에 반영된다.
func TestMypageUpdate_AcceptsStringSubscription(t *testing.T) {
	var saved *model.Profile
	svc := &mockMypageService{
		updateFunc: func(ctx context.Context, profile *model.Profile) error {
			saved = profile
			return nil
		},
	}
	h := NewMypageHandler(svc, allowAllSessions())

	req := postJSON(t, http.MethodPut, "/mypage/profile", map[string]any{
		"user_id":           "kakao:1",
		"access_token":      "ok",
		"user_nickname":     "말랑",
		"user_subscription": "true",
		"user_prefer":       []map[string]int{{"cate_no": 1, "situ_no": 2}},
	})
	w := httptest.NewRecorder()
	h.Update(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if saved == nil || !saved.Subscription {
		t.Errorf("saved profile = %+v", saved)
	}
}

func TestMypageProfile_SessionStoreFailureReturns500(t *testing.T) {
	sessions := &mockSessionValidator{
		validateFunc: func(ctx context.Context, userID, accessToken string) (bool, error) {
			return false, errors.New("db down")
		},
	}
	h := NewMypageHandler(&mockMypageService{}, sessions)

	req := postJSON(t, http.MethodPost, "/mypage/profile", map[string]string{
		"user_id": "kakao:1", "access_token": "ok",
	})
	w := httptest.NewRecorder()
	h.Profile(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}
