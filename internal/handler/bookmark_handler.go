package handler

import (
	"context"
	"net/http"
)

// BookmarkServiceInterface 는 북마크 핸들러가 필요로 하는 서비스 인터페이스.
type BookmarkServiceInterface interface {
	List(ctx context.Context, userID string) ([]int, error)
	Add(ctx context.Context, userID string, recipeID int) error
	Remove(ctx context.Context, userID string, recipeID int) error
}

// BookmarkHandler 는 북마크 HTTP 핸들러.
// 모든 엔드포인트는 세션 검증을 거친다.
type BookmarkHandler struct {
	service  BookmarkServiceInterface
	sessions SessionValidator
}

// NewBookmarkHandler 는 BookmarkHandler 를 생성한다.
func NewBookmarkHandler(service BookmarkServiceInterface, sessions SessionValidator) *BookmarkHandler {
	return &BookmarkHandler{
		service:  service,
		sessions: sessions,
	}
}

// bookmarkBody 는 북마크 요청의 바디.
type bookmarkBody struct {
	UserID      string `json:"user_id"`
	AccessToken string `json:"access_token"`
	RecipeID    int    `json:"recipe_id"`
}

// List 는 북마크된 레시피 ID 목록을 돌려준다.
// POST /bookmark/list
func (h *BookmarkHandler) List(w http.ResponseWriter, r *http.Request) {
	var req bookmarkBody
	if !decodeBody(w, r, &req) {
		return
	}
	if !guardSession(w, r, h.sessions, req.UserID, req.AccessToken) {
		return
	}

	ids, err := h.service.List(r.Context(), req.UserID)
	if err != nil {
		writeServiceError(w, r, err, "북마크 조회에 실패했습니다. 다시 시도해주세요.")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]int{"recipe_ids": ids})
}

// Add 는 레시피를 북마크에 추가한다.
// POST /bookmark/add
func (h *BookmarkHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req bookmarkBody
	if !decodeBody(w, r, &req) {
		return
	}
	if !guardSession(w, r, h.sessions, req.UserID, req.AccessToken) {
		return
	}

	if err := h.service.Add(r.Context(), req.UserID, req.RecipeID); err != nil {
		writeServiceError(w, r, err, "북마크 추가에 실패했습니다. 다시 시도해주세요.")
		return
	}
	writeMessage(w, http.StatusOK, "북마크에 추가되었습니다.")
}

// Remove 는 레시피를 북마크에서 제거한다.
// POST /bookmark/remove
func (h *BookmarkHandler) Remove(w http.ResponseWriter, r *http.Request) {
	var req bookmarkBody
	if !decodeBody(w, r, &req) {
		return
	}
	if !guardSession(w, r, h.sessions, req.UserID, req.AccessToken) {
		return
	}

	if err := h.service.Remove(r.Context(), req.UserID, req.RecipeID); err != nil {
		writeServiceError(w, r, err, "북마크 삭제에 실패했습니다. 다시 시도해주세요.")
		return
	}
	writeMessage(w, http.StatusOK, "북마크에서 삭제되었습니다.")
}
