package handler

import (
	"context"
	"net/http"

	"github.com/mallang/recipe-api/internal/model"
)

// RefrigeratorServiceInterface 는 냉장고 핸들러가 필요로 하는 서비스 인터페이스.
type RefrigeratorServiceInterface interface {
	Overview(ctx context.Context, userID string) (*model.RefrigeratorOverview, error)
	AddCompartment(ctx context.Context, userID, name string, compartmentType int) (*model.RefrigeratorOverview, error)
	UpdateCompartment(ctx context.Context, userID string, compartmentID int, name string, compartmentType int) (*model.RefrigeratorOverview, error)
	DeleteCompartment(ctx context.Context, userID string, compartmentID int) (*model.RefrigeratorOverview, error)
	AddIngredients(ctx context.Context, userID string, ingredients []model.StoredIngredient) (*model.RefrigeratorOverview, error)
	DeleteIngredients(ctx context.Context, userID string, ids []int) (*model.RefrigeratorOverview, error)
}

// RefrigeratorHandler 는 냉장고 관리 HTTP 핸들러.
type RefrigeratorHandler struct {
	service RefrigeratorServiceInterface
}

// NewRefrigeratorHandler 는 RefrigeratorHandler 를 생성한다.
func NewRefrigeratorHandler(service RefrigeratorServiceInterface) *RefrigeratorHandler {
	return &RefrigeratorHandler{service: service}
}

// refrigListBody 는 냉장고 조회 요청의 바디.
type refrigListBody struct {
	UserID string `json:"user_id"`
}

// compartmentBody 는 냉장고 칸 추가/삭제 요청의 바디.
type compartmentBody struct {
	UserID        string `json:"user_id"`
	CompartmentID int    `json:"refrigerator_id"`
	Name          string `json:"refrigerator_name"`
	Type          int    `json:"refrigerator_type"`
}

// compartmentUpdateBody 는 냉장고 칸 수정 요청의 바디.
type compartmentUpdateBody struct {
	UserID        string `json:"user_id"`
	CompartmentID int    `json:"refrigerator_id"`
	NewName       string `json:"new_name"`
	NewType       int    `json:"new_type"`
}

// addIngredientsBody 는 식재료 추가 요청의 바디.
type addIngredientsBody struct {
	UserID      string                   `json:"user_id"`
	Ingredients []model.StoredIngredient `json:"refrigerators"`
}

// deleteIngredientsBody 는 식재료 삭제 요청의 바디.
type deleteIngredientsBody struct {
	UserID string `json:"user_id"`
	IDs    []int  `json:"refrigerator_ing_ids"`
}

// List 는 냉장고 전체 현황을 돌려준다.
// POST /refrig/list
func (h *RefrigeratorHandler) List(w http.ResponseWriter, r *http.Request) {
	var req refrigListBody
	if !decodeBody(w, r, &req) {
		return
	}

	overview, err := h.service.Overview(r.Context(), req.UserID)
	if err != nil {
		writeServiceError(w, r, err, "냉장고 조회에 실패했습니다. 다시 시도해주세요.")
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

// AddCompartment 는 냉장고 칸을 추가한다.
// POST /refrig/add
func (h *RefrigeratorHandler) AddCompartment(w http.ResponseWriter, r *http.Request) {
	var req compartmentBody
	if !decodeBody(w, r, &req) {
		return
	}

	overview, err := h.service.AddCompartment(r.Context(), req.UserID, req.Name, req.Type)
	if err != nil {
		writeServiceError(w, r, err, "냉장고 칸 추가에 실패했습니다. 다시 시도해주세요.")
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

// UpdateCompartment 는 냉장고 칸의 이름/종류를 수정한다.
// POST /refrig/update
func (h *RefrigeratorHandler) UpdateCompartment(w http.ResponseWriter, r *http.Request) {
	var req compartmentUpdateBody
	if !decodeBody(w, r, &req) {
		return
	}

	overview, err := h.service.UpdateCompartment(r.Context(), req.UserID, req.CompartmentID, req.NewName, req.NewType)
	if err != nil {
		writeServiceError(w, r, err, "냉장고 칸 수정에 실패했습니다. 다시 시도해주세요.")
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

// DeleteCompartment 는 냉장고 칸과 담긴 식재료를 삭제한다.
// POST /refrig/delete
func (h *RefrigeratorHandler) DeleteCompartment(w http.ResponseWriter, r *http.Request) {
	var req compartmentBody
	if !decodeBody(w, r, &req) {
		return
	}

	overview, err := h.service.DeleteCompartment(r.Context(), req.UserID, req.CompartmentID)
	if err != nil {
		writeServiceError(w, r, err, "냉장고 칸 삭제에 실패했습니다. 다시 시도해주세요.")
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

// AddIngredients 는 식재료를 일괄 추가한다.
// POST /refrig/ingredients/add
func (h *RefrigeratorHandler) AddIngredients(w http.ResponseWriter, r *http.Request) {
	var req addIngredientsBody
	if !decodeBody(w, r, &req) {
		return
	}

	overview, err := h.service.AddIngredients(r.Context(), req.UserID, req.Ingredients)
	if err != nil {
		writeServiceError(w, r, err, "식재료 추가에 실패했습니다. 다시 시도해주세요.")
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

// DeleteIngredients 는 식재료를 일괄 삭제한다.
// POST /refrig/ingredients/delete
func (h *RefrigeratorHandler) DeleteIngredients(w http.ResponseWriter, r *http.Request) {
	var req deleteIngredientsBody
	if !decodeBody(w, r, &req) {
		return
	}

	overview, err := h.service.DeleteIngredients(r.Context(), req.UserID, req.IDs)
	if err != nil {
		writeServiceError(w, r, err, "식재료 삭제에 실패했습니다. 다시 시도해주세요.")
		return
	}
	writeJSON(w, http.StatusOK, overview)
}
