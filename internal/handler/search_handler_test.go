package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mallang/recipe-api/internal/model"
)

// mockSearchService 는 검색 서비스 목.
type mockSearchService struct {
	byTitleFunc      func(ctx context.Context, keyword, searchType string) ([]model.RecipeSummary, error)
	byIngredientFunc func(ctx context.Context, keyword, searchType string) ([]model.RecipeSummary, error)
	filteredFunc     func(ctx context.Context, keyword, searchType string, excludes []string) ([]model.RecipeSummary, error)
	multiFunc        func(ctx context.Context, names []string) ([]model.RecipeSummary, error)
}

func (m *mockSearchService) ByTitle(ctx context.Context, keyword, searchType string) ([]model.RecipeSummary, error) {
	return m.byTitleFunc(ctx, keyword, searchType)
}

func (m *mockSearchService) ByIngredient(ctx context.Context, keyword, searchType string) ([]model.RecipeSummary, error) {
	return m.byIngredientFunc(ctx, keyword, searchType)
}

func (m *mockSearchService) Filtered(ctx context.Context, keyword, searchType string, excludes []string) ([]model.RecipeSummary, error) {
	return m.filteredFunc(ctx, keyword, searchType, excludes)
}

func (m *mockSearchService) Multi(ctx context.Context, names []string) ([]model.RecipeSummary, error) {
	return m.multiFunc(ctx, names)
}

var _ SearchServiceInterface = (*mockSearchService)(nil)

// 바디의 keyword_filter 키가 제외 목록으로 바인딩되는지 확인한다.
func TestSearchFiltered_BindsKeywordFilter(t *testing.T) {
	var gotKeyword string
	var gotExcludes []string
	svc := &mockSearchService{
		filteredFunc: func(ctx context.Context, keyword, searchType string, excludes []string) ([]model.RecipeSummary, error) {
			gotKeyword, gotExcludes = keyword, excludes
			return []model.RecipeSummary{{RecipeID: 1}}, nil
		},
	}
	h := NewSearchHandler(svc)

	req := postJSON(t, http.MethodPost, "/search/filtered", map[string]any{
		"keyword": "볶음", "type": "page", "keyword_filter": []string{"오이", "가지"},
	})
	w := httptest.NewRecorder()
	h.Filtered(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotKeyword != "볶음" {
		t.Errorf("keyword = %q", gotKeyword)
	}
	if len(gotExcludes) != 2 || gotExcludes[0] != "오이" || gotExcludes[1] != "가지" {
		t.Errorf("excludes = %v", gotExcludes)
	}
}

// 제외 목록이 비어 있으면 정확한 메시지의 400
func TestSearchFiltered_EmptyFilterReturns400(t *testing.T) {
	svc := &mockSearchService{
		filteredFunc: func(ctx context.Context, keyword, searchType string, excludes []string) ([]model.RecipeSummary, error) {
			return nil, model.ErrEmptyExcludeFilter
		},
	}
	h := NewSearchHandler(svc)

	req := postJSON(t, http.MethodPost, "/search/filtered", map[string]any{
		"keyword": "볶음", "type": "page",
	})
	w := httptest.NewRecorder()
	h.Filtered(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if got := decodeMessage(t, w); got != "제외 필터를 설정해주세요." {
		t.Errorf("message = %q", got)
	}
}

// 바디의 ing_search 키가 재료 목록으로 바인딩되는지 확인한다.
func TestSearchMulti_BindsIngSearchKey(t *testing.T) {
	var gotNames []string
	svc := &mockSearchService{
		multiFunc: func(ctx context.Context, names []string) ([]model.RecipeSummary, error) {
			gotNames = names
			return []model.RecipeSummary{{RecipeID: 7}}, nil
		},
	}
	h := NewSearchHandler(svc)

	req := postJSON(t, http.MethodPost, "/search/multi", map[string]any{
		"ing_search": []string{"양파", "당근"},
	})
	w := httptest.NewRecorder()
	h.Multi(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(gotNames) != 2 || gotNames[0] != "양파" || gotNames[1] != "당근" {
		t.Errorf("names = %v", gotNames)
	}
}
