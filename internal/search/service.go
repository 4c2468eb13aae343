// Package search 는 레시피 검색을 제공한다.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/mallang/recipe-api/internal/model"
	"github.com/mallang/recipe-api/internal/repository"
)

// 검색 화면 종류. navbar는 미리보기라 10건으로 자른다.
const (
	TypePage   = "page"
	TypeNavbar = "navbar"

	navbarLimit = 10
)

// Service 는 검색 비즈니스 로직을 제공한다.
type Service struct {
	recipes     repository.RecipeRepository
	ingredients repository.IngredientRepository
}

// NewService 는 Service를 생성한다.
func NewService(recipes repository.RecipeRepository, ingredients repository.IngredientRepository) *Service {
	return &Service{recipes: recipes, ingredients: ingredients}
}

func limitFor(searchType string) (int, error) {
	switch searchType {
	case TypePage:
		return 0, nil
	case TypeNavbar:
		return navbarLimit, nil
	default:
		return 0, model.ErrInvalidSearchType
	}
}

// ByTitle 은 제목 부분 일치 검색 결과를 반환한다.
func (s *Service) ByTitle(ctx context.Context, keyword, searchType string) ([]model.RecipeSummary, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, model.ErrEmptyKeyword
	}
	limit, err := limitFor(searchType)
	if err != nil {
		return nil, err
	}

	recipes, err := s.recipes.SearchByTitle(ctx, keyword, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search by title: %w", err)
	}
	if len(recipes) == 0 {
		return nil, model.ErrNoTitleMatch
	}
	return recipes, nil
}

// ByIngredient 는 재료명 부분 일치 검색 결과를 반환한다.
func (s *Service) ByIngredient(ctx context.Context, keyword, searchType string) ([]model.RecipeSummary, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, model.ErrEmptyKeyword
	}
	limit, err := limitFor(searchType)
	if err != nil {
		return nil, err
	}

	recipes, err := s.recipes.SearchByIngredient(ctx, keyword, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search by ingredient: %w", err)
	}
	if len(recipes) == 0 {
		return nil, model.ErrNoIngredientMatch
	}
	return recipes, nil
}

// Filtered 는 요청으로 받은 제외 재료명을 적용한 재료 검색 결과를 반환한다.
// 제외 목록이 비어 있으면 400으로 거절한다.
func (s *Service) Filtered(ctx context.Context, keyword, searchType string, excludes []string) ([]model.RecipeSummary, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, model.ErrEmptyKeyword
	}
	limit, err := limitFor(searchType)
	if err != nil {
		return nil, err
	}

	var cleaned []string
	for _, n := range excludes {
		if n = strings.TrimSpace(n); n != "" {
			cleaned = append(cleaned, n)
		}
	}
	if len(cleaned) == 0 {
		return nil, model.ErrEmptyExcludeFilter
	}

	recipes, err := s.recipes.SearchFiltered(ctx, keyword, cleaned, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search filtered: %w", err)
	}
	if len(recipes) == 0 {
		return nil, model.ErrNoFilteredMatch
	}
	return recipes, nil
}

// Multi 는 지정 재료를 전부 포함하는 레시피를 반환한다.
// 재료명 해석과 레시피 매칭 어느 단계에서든 결과가 없으면 404 에러.
func (s *Service) Multi(ctx context.Context, names []string) ([]model.RecipeSummary, error) {
	var cleaned []string
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			cleaned = append(cleaned, n)
		}
	}
	if len(cleaned) == 0 {
		return nil, model.ErrEmptyIngredientList
	}

	ingredients, err := s.ingredients.FindByNames(ctx, cleaned)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve ingredient names: %w", err)
	}
	if len(ingredients) == 0 {
		return nil, model.ErrNoSuchIngredients
	}

	ids := make([]int, len(ingredients))
	for i, ing := range ingredients {
		ids[i] = ing.ID
	}

	recipes, err := s.recipes.SearchByAllIngredients(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to search by all ingredients: %w", err)
	}
	if len(recipes) == 0 {
		return nil, model.ErrNoFullIngredientMatch
	}
	return recipes, nil
}
