package handler

import (
	"context"
	"net/http"

	"github.com/mallang/recipe-api/internal/model"
)

// MypageServiceInterface 는 마이페이지 핸들러가 필요로 하는 서비스 인터페이스.
type MypageServiceInterface interface {
	Profile(ctx context.Context, userID string) (*model.Profile, error)
	BasicProfile(ctx context.Context, userID string) (*model.BasicProfile, error)
	Update(ctx context.Context, profile *model.Profile) error
}

// MypageHandler 는 마이페이지 HTTP 핸들러.
// 모든 엔드포인트는 세션 검증을 거친다.
type MypageHandler struct {
	service  MypageServiceInterface
	sessions SessionValidator
}

// NewMypageHandler 는 MypageHandler 를 생성한다.
func NewMypageHandler(service MypageServiceInterface, sessions SessionValidator) *MypageHandler {
	return &MypageHandler{
		service:  service,
		sessions: sessions,
	}
}

// sessionScopedBody 는 세션 검증 대상 요청의 공통 바디.
type sessionScopedBody struct {
	UserID      string `json:"user_id"`
	AccessToken string `json:"access_token"`
}

// updateProfileBody 는 프로필 수정 요청의 바디.
type updateProfileBody struct {
	AccessToken  string             `json:"access_token"`
	UserID       string             `json:"user_id"`
	Nickname     string             `json:"user_nickname"`
	Subscription model.Subscription `json:"user_subscription"`
	Prefers      []model.PreferPair `json:"user_prefer"`
}

// Profile 은 전체 프로필을 돌려준다.
// POST /mypage/profile
func (h *MypageHandler) Profile(w http.ResponseWriter, r *http.Request) {
	var req sessionScopedBody
	if !decodeBody(w, r, &req) {
		return
	}
	if !guardSession(w, r, h.sessions, req.UserID, req.AccessToken) {
		return
	}

	profile, err := h.service.Profile(r.Context(), req.UserID)
	if err != nil {
		writeServiceError(w, r, err, "프로필 조회에 실패했습니다. 다시 시도해주세요.")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// Basic 은 닉네임과 선호 조합만 돌려준다.
// POST /mypage/profile/basic
func (h *MypageHandler) Basic(w http.ResponseWriter, r *http.Request) {
	var req sessionScopedBody
	if !decodeBody(w, r, &req) {
		return
	}
	if !guardSession(w, r, h.sessions, req.UserID, req.AccessToken) {
		return
	}

	basic, err := h.service.BasicProfile(r.Context(), req.UserID)
	if err != nil {
		writeServiceError(w, r, err, "프로필 조회에 실패했습니다. 다시 시도해주세요.")
		return
	}
	writeJSON(w, http.StatusOK, basic)
}

// Update 는 프로필과 구독 상태를 갱신한다.
// PUT /mypage/profile
func (h *MypageHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateProfileBody
	if !decodeBody(w, r, &req) {
		return
	}
	if !guardSession(w, r, h.sessions, req.UserID, req.AccessToken) {
		return
	}

	profile := &model.Profile{
		UserID:       req.UserID,
		Nickname:     req.Nickname,
		Subscription: bool(req.Subscription),
		Prefers:      req.Prefers,
	}
	if err := h.service.Update(r.Context(), profile); err != nil {
		writeServiceError(w, r, err, "프로필 수정에 실패했습니다. 다시 시도해주세요.")
		return
	}
	writeMessage(w, http.StatusOK, "프로필이 수정되었습니다.")
}
