package handler

import (
	"context"
	"net/http"

	"github.com/mallang/recipe-api/internal/model"
)

// SearchServiceInterface 는 검색 핸들러가 필요로 하는 서비스 인터페이스.
type SearchServiceInterface interface {
	ByTitle(ctx context.Context, keyword, searchType string) ([]model.RecipeSummary, error)
	ByIngredient(ctx context.Context, keyword, searchType string) ([]model.RecipeSummary, error)
	Filtered(ctx context.Context, keyword, searchType string, excludes []string) ([]model.RecipeSummary, error)
	Multi(ctx context.Context, names []string) ([]model.RecipeSummary, error)
}

// SearchHandler 는 레시피 검색 HTTP 핸들러.
type SearchHandler struct {
	service SearchServiceInterface
}

// NewSearchHandler 는 SearchHandler 를 생성한다.
func NewSearchHandler(service SearchServiceInterface) *SearchHandler {
	return &SearchHandler{service: service}
}

// keywordSearchBody 는 키워드 검색 요청의 바디.
type keywordSearchBody struct {
	Keyword string `json:"keyword"`
	Type    string `json:"type"`
}

// filteredSearchBody 는 제외 필터 검색 요청의 바디.
type filteredSearchBody struct {
	Keyword       string   `json:"keyword"`
	Type          string   `json:"type"`
	KeywordFilter []string `json:"keyword_filter"`
}

// multiSearchBody 는 복수 재료 검색 요청의 바디.
type multiSearchBody struct {
	Ingredients []string `json:"ing_search"`
}

// ByTitle 은 제목 키워드 검색 결과를 돌려준다.
// POST /search/title
func (h *SearchHandler) ByTitle(w http.ResponseWriter, r *http.Request) {
	var req keywordSearchBody
	if !decodeBody(w, r, &req) {
		return
	}

	recipes, err := h.service.ByTitle(r.Context(), req.Keyword, req.Type)
	if err != nil {
		writeServiceError(w, r, err, "레시피 검색에 실패했습니다. 다시 시도해주세요.")
		return
	}
	writeJSON(w, http.StatusOK, recipes)
}

// ByIngredient 는 재료 키워드 검색 결과를 돌려준다.
// POST /search/ingredient
func (h *SearchHandler) ByIngredient(w http.ResponseWriter, r *http.Request) {
	var req keywordSearchBody
	if !decodeBody(w, r, &req) {
		return
	}

	recipes, err := h.service.ByIngredient(r.Context(), req.Keyword, req.Type)
	if err != nil {
		writeServiceError(w, r, err, "레시피 검색에 실패했습니다. 다시 시도해주세요.")
		return
	}
	writeJSON(w, http.StatusOK, recipes)
}

// Filtered 는 제외 필터를 적용한 재료 검색 결과를 돌려준다.
// POST /search/filtered
func (h *SearchHandler) Filtered(w http.ResponseWriter, r *http.Request) {
	var req filteredSearchBody
	if !decodeBody(w, r, &req) {
		return
	}

	recipes, err := h.service.Filtered(r.Context(), req.Keyword, req.Type, req.KeywordFilter)
	if err != nil {
		writeServiceError(w, r, err, "레시피 검색에 실패했습니다. 다시 시도해주세요.")
		return
	}
	writeJSON(w, http.StatusOK, recipes)
}

// Multi 는 모든 재료를 포함하는 레시피 검색 결과를 돌려준다.
// POST /search/multi
func (h *SearchHandler) Multi(w http.ResponseWriter, r *http.Request) {
	var req multiSearchBody
	if !decodeBody(w, r, &req) {
		return
	}

	recipes, err := h.service.Multi(r.Context(), req.Ingredients)
	if err != nil {
		writeServiceError(w, r, err, "레시피 검색에 실패했습니다. 다시 시도해주세요.")
		return
	}
	writeJSON(w, http.StatusOK, recipes)
}
