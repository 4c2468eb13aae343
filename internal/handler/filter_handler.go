package handler

import (
	"context"
	"net/http"

	"github.com/mallang/recipe-api/internal/model"
)

// FilterServiceInterface 는 검색 필터 핸들러가 필요로 하는 서비스 인터페이스.
type FilterServiceInterface interface {
	List(ctx context.Context, userID string) ([]int, error)
	Update(ctx context.Context, userID string, names []string) error
	SearchIngredient(ctx context.Context, keyword string) ([]model.Ingredient, error)
}

// FilterHandler 는 검색 제외 필터 HTTP 핸들러.
// 목록/수정 엔드포인트는 세션 검증을 거친다.
type FilterHandler struct {
	service  FilterServiceInterface
	sessions SessionValidator
}

// NewFilterHandler 는 FilterHandler 를 생성한다.
func NewFilterHandler(service FilterServiceInterface, sessions SessionValidator) *FilterHandler {
	return &FilterHandler{
		service:  service,
		sessions: sessions,
	}
}

// filterListBody 는 필터 조회 요청의 바디.
type filterListBody struct {
	UserID      string `json:"user_id"`
	AccessToken string `json:"access_token"`
}

// filterUpdateBody 는 필터 갱신 요청의 바디.
type filterUpdateBody struct {
	UserID      string   `json:"user_id"`
	AccessToken string   `json:"access_token"`
	Ingredients []string `json:"filter_list"`
}

// ingredientSearchBody 는 재료 카탈로그 검색 요청의 바디.
type ingredientSearchBody struct {
	Keyword string `json:"keyword"`
}

// List 는 제외 필터의 재료 ID 목록을 돌려준다.
// POST /filter/list
func (h *FilterHandler) List(w http.ResponseWriter, r *http.Request) {
	var req filterListBody
	if !decodeBody(w, r, &req) {
		return
	}
	if !guardSession(w, r, h.sessions, req.UserID, req.AccessToken) {
		return
	}

	ids, err := h.service.List(r.Context(), req.UserID)
	if err != nil {
		writeServiceError(w, r, err, "필터 조회에 실패했습니다. 다시 시도해주세요.")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]int{"ingredient_ids": ids})
}

// Update 는 제외 필터를 이름 목록 기준으로 갱신한다.
// POST /filter/update
func (h *FilterHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req filterUpdateBody
	if !decodeBody(w, r, &req) {
		return
	}
	if !guardSession(w, r, h.sessions, req.UserID, req.AccessToken) {
		return
	}

	if err := h.service.Update(r.Context(), req.UserID, req.Ingredients); err != nil {
		writeServiceError(w, r, err, "필터 수정에 실패했습니다. 다시 시도해주세요.")
		return
	}
	writeMessage(w, http.StatusOK, "필터가 수정되었습니다.")
}

// SearchIngredient 는 재료 카탈로그를 키워드로 검색한다.
// POST /filter/ingredient
func (h *FilterHandler) SearchIngredient(w http.ResponseWriter, r *http.Request) {
	var req ingredientSearchBody
	if !decodeBody(w, r, &req) {
		return
	}

	ingredients, err := h.service.SearchIngredient(r.Context(), req.Keyword)
	if err != nil {
		writeServiceError(w, r, err, "재료 검색에 실패했습니다. 다시 시도해주세요.")
		return
	}
	writeJSON(w, http.StatusOK, ingredients)
}
