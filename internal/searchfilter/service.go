// Package searchfilter 는 검색 제외 필터 관리를 제공한다.
package searchfilter

import (
	"context"
	"fmt"
	"strings"

	"github.com/mallang/recipe-api/internal/model"
	"github.com/mallang/recipe-api/internal/repository"
)

// Service 는 제외 필터 비즈니스 로직을 제공한다.
type Service struct {
	filters     repository.SearchFilterRepository
	ingredients repository.IngredientRepository
}

// NewService 는 Service를 생성한다.
func NewService(filters repository.SearchFilterRepository, ingredients repository.IngredientRepository) *Service {
	return &Service{filters: filters, ingredients: ingredients}
}

// List 는 사용자의 제외 재료 ID 목록을 반환한다.
func (s *Service) List(ctx context.Context, userID string) ([]int, error) {
	if userID == "" {
		return nil, model.ErrBadUserInfo
	}

	ids, err := s.filters.ListIngredientIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list filters: %w", err)
	}
	if ids == nil {
		ids = []int{}
	}
	return ids, nil
}

// Update 는 재료명 목록을 ID로 해석해 저장된 필터를 그 집합으로 맞춘다.
// 카탈로그에 없는 이름이 섞여 있으면 그 이름들을 담아 404로 거절한다.
func (s *Service) Update(ctx context.Context, userID string, names []string) error {
	if userID == "" {
		return model.ErrBadUserInfo
	}

	var cleaned []string
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			cleaned = append(cleaned, n)
		}
	}

	var ids []int
	if len(cleaned) > 0 {
		found, err := s.ingredients.FindByNames(ctx, cleaned)
		if err != nil {
			return fmt.Errorf("failed to resolve ingredient names: %w", err)
		}

		known := make(map[string]int, len(found))
		for _, ing := range found {
			known[ing.Name] = ing.ID
		}
		var unknown []string
		for _, n := range cleaned {
			if id, ok := known[n]; ok {
				ids = append(ids, id)
			} else {
				unknown = append(unknown, n)
			}
		}
		if len(unknown) > 0 {
			return model.NewUnknownIngredientsError(strings.Join(unknown, ", "))
		}
	}

	if err := s.filters.Sync(ctx, userID, ids); err != nil {
		return fmt.Errorf("failed to sync filters: %w", err)
	}
	return nil
}

// SearchIngredient 는 재료 카탈로그를 부분 일치로 검색한다.
func (s *Service) SearchIngredient(ctx context.Context, keyword string) ([]model.Ingredient, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, model.ErrEmptyKeyword
	}

	ingredients, err := s.ingredients.SearchByName(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("failed to search ingredients: %w", err)
	}
	if len(ingredients) == 0 {
		return nil, model.ErrNoSuchIngredients
	}
	return ingredients, nil
}
