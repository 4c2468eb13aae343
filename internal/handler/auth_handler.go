package handler

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mallang/recipe-api/internal/auth"
)

// AuthServiceInterface 는 인증 핸들러가 필요로 하는 서비스 인터페이스.
type AuthServiceInterface interface {
	// AuthorizeURL 은 프로바이더의 인가 URL 을 반환한다.
	AuthorizeURL(providerName string) (string, error)
	// HandleRedirect 는 인가 코드를 토큰으로 교환하고 회원 여부를 판별한다.
	HandleRedirect(ctx context.Context, providerName, code, userAgent string) (*auth.RedirectResult, error)
	// CheckToken 은 세션과 프로바이더 토큰 상태를 검증한다.
	CheckToken(ctx context.Context, userID, providerName, accessToken string) error
	// Logout 은 프로바이더 토큰을 무효화하고 로컬 세션을 제거한다.
	Logout(ctx context.Context, userID, providerName, accessToken string) error
	// RefreshToken 은 리프레시 토큰으로 액세스 토큰을 갱신한다.
	RefreshToken(ctx context.Context, providerName, refreshToken string) (*auth.RefreshResult, error)
	// Signup 은 신규 회원을 기본 자원과 함께 등록한다.
	Signup(ctx context.Context, req *auth.SignupRequest) error
}

// AuthHandler 는 인증 HTTP 핸들러.
type AuthHandler struct {
	service  AuthServiceInterface
	frontURI string
}

// NewAuthHandler 는 AuthHandler 를 생성한다.
// frontURI 는 OAuth 리다이렉트가 돌아갈 프론트엔드 주소.
func NewAuthHandler(service AuthServiceInterface, frontURI string) *AuthHandler {
	return &AuthHandler{
		service:  service,
		frontURI: frontURI,
	}
}

// authRequestBody 는 인가 URL 요청의 바디.
type authRequestBody struct {
	Provider string `json:"user_provider"`
}

// checkTokenBody 는 토큰 검증/로그아웃 요청의 바디.
type checkTokenBody struct {
	UserID      string `json:"user_id"`
	Provider    string `json:"user_provider"`
	AccessToken string `json:"access_token"`
}

// refreshBody 는 토큰 갱신 요청의 바디.
type refreshBody struct {
	Provider     string `json:"user_provider"`
	RefreshToken string `json:"refresh_token"`
}

// RequestAuthorize 는 프로바이더의 인가 URL 을 돌려준다.
// POST /auth/request
func (h *AuthHandler) RequestAuthorize(w http.ResponseWriter, r *http.Request) {
	var req authRequestBody
	if !decodeBody(w, r, &req) {
		return
	}

	authorizeURL, err := h.service.AuthorizeURL(req.Provider)
	if err != nil {
		writeServiceError(w, r, err, "로그인 요청에 실패했습니다. 다시 시도해주세요.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"redirect_url": authorizeURL})
}

// Redirect 는 프로바이더 콜백을 처리하고 프론트엔드로 302 리다이렉트한다.
// GET /auth/{provider}/redirect
func (h *AuthHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	providerName := chi.URLParam(r, "provider")
	code := r.URL.Query().Get("code")

	result, err := h.service.HandleRedirect(r.Context(), providerName, code, r.UserAgent())
	if err != nil {
		writeServiceError(w, r, err, "소셜 로그인에 실패했습니다. 다시 시도해주세요.")
		return
	}

	q := url.Values{}
	q.Set("user_id", result.UserID)
	q.Set("access_token", result.AccessToken)
	q.Set("refresh_token", result.RefreshToken)
	q.Set("new", strconv.FormatBool(result.New))
	q.Set("user_email", result.Email)
	q.Set("provider", result.Provider)

	http.Redirect(w, r, h.frontURI+"/auth?"+q.Encode(), http.StatusFound)
}

// Check 는 세션과 프로바이더 토큰 상태를 검증한다.
// POST /auth/check
func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req checkTokenBody
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.service.CheckToken(r.Context(), req.UserID, req.Provider, req.AccessToken); err != nil {
		writeServiceError(w, r, err, "토큰 검증에 실패했습니다. 다시 시도해주세요.")
		return
	}

	writeMessage(w, http.StatusOK, "유효한 액세스 토큰입니다.")
}

// Refresh 는 리프레시 토큰으로 액세스 토큰을 갱신한다.
// POST /auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshBody
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.service.RefreshToken(r.Context(), req.Provider, req.RefreshToken)
	if err != nil {
		writeServiceError(w, r, err, "토큰 갱신에 실패했습니다. 다시 시도해주세요.")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Logout 은 프로바이더 토큰을 무효화하고 로컬 세션을 제거한다.
// POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req checkTokenBody
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.service.Logout(r.Context(), req.UserID, req.Provider, req.AccessToken); err != nil {
		writeServiceError(w, r, err, "로그아웃에 실패했습니다. 다시 시도해주세요.")
		return
	}

	writeMessage(w, http.StatusOK, "로그아웃 되었습니다.")
}

// Signup 은 신규 회원을 등록한다.
// POST /auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req auth.SignupRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.UserAgent = r.UserAgent()

	if err := h.service.Signup(r.Context(), &req); err != nil {
		writeServiceError(w, r, err, "회원가입에 실패했습니다. 다시 시도해주세요.")
		return
	}

	writeMessage(w, http.StatusOK, "회원가입이 완료되었습니다.")
}
