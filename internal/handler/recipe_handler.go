package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mallang/recipe-api/internal/model"
)

// RecipeServiceInterface 는 레시피 핸들러가 필요로 하는 서비스 인터페이스.
type RecipeServiceInterface interface {
	RecentList(ctx context.Context) ([]model.RecipeSummary, error)
	SeasonalList(ctx context.Context) ([]model.SeasonalFood, error)
	PreferList(ctx context.Context, userID string) ([]model.RecipeSummary, error)
	CateList(ctx context.Context, cateNo int) ([]model.RecipeSummary, error)
	SituList(ctx context.Context, situNo int) ([]model.RecipeSummary, error)
	Detail(ctx context.Context, recipeID string) (*model.RecipeDetail, error)
}

// RecipeHandler 는 레시피 조회 HTTP 핸들러.
type RecipeHandler struct {
	service RecipeServiceInterface
}

// NewRecipeHandler 는 RecipeHandler 를 생성한다.
func NewRecipeHandler(service RecipeServiceInterface) *RecipeHandler {
	return &RecipeHandler{service: service}
}

// preferListBody 는 선호 추천 요청의 바디.
type preferListBody struct {
	UserID string `json:"user_id"`
}

// classListBody 는 카테고리/상황 추천 요청의 바디.
type classListBody struct {
	CateNo int `json:"cate_no"`
	SituNo int `json:"situ_no"`
}

// Recent 는 최신 레시피 목록을 돌려준다.
// GET /recipes/recent
func (h *RecipeHandler) Recent(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.service.RecentList(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "레시피 목록 조회에 실패했습니다. 다시 시도해주세요.")
		return
	}
	writeJSON(w, http.StatusOK, recipes)
}

// Seasonal 은 이번 달 제철 음식 목록을 돌려준다.
// GET /recipes/seasonal
func (h *RecipeHandler) Seasonal(w http.ResponseWriter, r *http.Request) {
	foods, err := h.service.SeasonalList(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "제철 음식 조회에 실패했습니다. 다시 시도해주세요.")
		return
	}
	writeJSON(w, http.StatusOK, foods)
}

// Prefer 는 사용자의 첫 선호 조합에 맞는 추천 목록을 돌려준다.
// POST /recipes/prefer
func (h *RecipeHandler) Prefer(w http.ResponseWriter, r *http.Request) {
	var req preferListBody
	if !decodeBody(w, r, &req) {
		return
	}

	recipes, err := h.service.PreferList(r.Context(), req.UserID)
	if err != nil {
		writeServiceError(w, r, err, "추천 레시피 조회에 실패했습니다. 다시 시도해주세요.")
		return
	}
	writeJSON(w, http.StatusOK, recipes)
}

// Cate 는 카테고리별 추천 목록을 돌려준다.
// POST /recipes/cate
func (h *RecipeHandler) Cate(w http.ResponseWriter, r *http.Request) {
	var req classListBody
	if !decodeBody(w, r, &req) {
		return
	}

	recipes, err := h.service.CateList(r.Context(), req.CateNo)
	if err != nil {
		writeServiceError(w, r, err, "추천 레시피 조회에 실패했습니다. 다시 시도해주세요.")
		return
	}
	writeJSON(w, http.StatusOK, recipes)
}

// Situ 는 상황별 추천 목록을 돌려준다.
// POST /recipes/situ
func (h *RecipeHandler) Situ(w http.ResponseWriter, r *http.Request) {
	var req classListBody
	if !decodeBody(w, r, &req) {
		return
	}

	recipes, err := h.service.SituList(r.Context(), req.SituNo)
	if err != nil {
		writeServiceError(w, r, err, "추천 레시피 조회에 실패했습니다. 다시 시도해주세요.")
		return
	}
	writeJSON(w, http.StatusOK, recipes)
}

// Detail 은 레시피 상세 문서를 돌려준다.
// GET /recipes/{id}
func (h *RecipeHandler) Detail(w http.ResponseWriter, r *http.Request) {
	recipeID := chi.URLParam(r, "id")

	detail, err := h.service.Detail(r.Context(), recipeID)
	if err != nil {
		writeServiceError(w, r, err, "레시피 상세 조회에 실패했습니다. 다시 시도해주세요.")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
