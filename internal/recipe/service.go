// Package recipe 는 레시피 목록/추천/상세 조회를 제공한다.
package recipe

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/mallang/recipe-api/internal/model"
	"github.com/mallang/recipe-api/internal/repository"
)

// 목록성 응답의 최대 건수.
const listLimit = 20

// DetailStore 는 레시피 본문 데이터셋 조회 인터페이스.
type DetailStore interface {
	// Get 은 레시피 ID로 상세 문서를 조회한다. 없으면 false를 반환한다.
	Get(recipeID string) (*model.RecipeDetail, bool)
}

// Service 는 레시피 비즈니스 로직을 제공한다.
type Service struct {
	recipes repository.RecipeRepository
	mypage  repository.MypageRepository
	details DetailStore
	seoul   *time.Location
	now     func() time.Time
}

// NewService 는 Service를 생성한다.
func NewService(recipes repository.RecipeRepository, mypage repository.MypageRepository, details DetailStore) *Service {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		loc = time.FixedZone("KST", 9*60*60)
	}
	return &Service{
		recipes: recipes,
		mypage:  mypage,
		details: details,
		seoul:   loc,
		now:     time.Now,
	}
}

// RecentList 는 최신 등록 레시피를 최대 20건 반환한다.
func (s *Service) RecentList(ctx context.Context) ([]model.RecipeSummary, error) {
	recipes, err := s.recipes.ListRecent(ctx, listLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent recipes: %w", err)
	}
	return recipes, nil
}

// SeasonalList 는 서울 기준 이번 달의 제철 식재료를 반환한다.
func (s *Service) SeasonalList(ctx context.Context) ([]model.SeasonalFood, error) {
	month := int(s.now().In(s.seoul).Month())
	foods, err := s.recipes.ListSeasonal(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list seasonal foods: %w", err)
	}
	return foods, nil
}

// PreferList 는 사용자의 첫 선호 쌍에 맞는 추천 레시피를 반환한다.
// 선호 정보가 없으면 204 에러를 돌려준다.
func (s *Service) PreferList(ctx context.Context, userID string) ([]model.RecipeSummary, error) {
	if userID == "" {
		return nil, model.ErrBadUserInfo
	}

	prefer, err := s.mypage.FirstPrefer(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get first prefer: %w", err)
	}
	if prefer == nil {
		return nil, model.ErrNoPreference
	}

	recipes, err := s.recipes.ListByClass(ctx, prefer.CateNo, prefer.SituNo, listLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list preferred recipes: %w", err)
	}
	return recipes, nil
}

// CateList 는 카테고리별 무작위 추천을 반환한다. 결과가 비면 204 에러.
func (s *Service) CateList(ctx context.Context, cateNo int) ([]model.RecipeSummary, error) {
	if cateNo <= 0 {
		return nil, model.ErrBadInput
	}

	recipes, err := s.recipes.ListByCategory(ctx, cateNo, listLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes by category: %w", err)
	}
	if len(recipes) == 0 {
		return nil, model.ErrNoCategoryRecipes
	}
	return recipes, nil
}

// SituList 는 상황별 무작위 추천을 반환한다. 결과가 비면 204 에러.
func (s *Service) SituList(ctx context.Context, situNo int) ([]model.RecipeSummary, error) {
	if situNo <= 0 {
		return nil, model.ErrBadInput
	}

	recipes, err := s.recipes.ListBySituation(ctx, situNo, listLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes by situation: %w", err)
	}
	if len(recipes) == 0 {
		return nil, model.ErrNoSituationRecipes
	}
	return recipes, nil
}

// Detail 은 레시피 상세 문서를 반환한다. 본문은 데이터셋에서, 분류와 쇼핑용
// 재료명 목록은 DB에서 합친다.
func (s *Service) Detail(ctx context.Context, recipeID string) (*model.RecipeDetail, error) {
	id, err := strconv.Atoi(recipeID)
	if err != nil || id <= 0 {
		return nil, model.ErrBadRecipeID
	}

	detail, ok := s.details.Get(recipeID)
	if !ok {
		return nil, model.ErrRecipeNotFound
	}

	class, err := s.recipes.GetClass(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe class: %w", err)
	}
	if class != nil {
		detail.Classes = []model.RecipeClass{*class}
	}

	names, err := s.recipes.ListShoppingIngredients(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping ingredients: %w", err)
	}
	detail.ShoppingIngredients = names

	return detail, nil
}
