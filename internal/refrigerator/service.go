// Package refrigerator 는 냉장고 칸과 보관 재료 관리를 제공한다.
// 모든 변경 연산은 갱신 후 전체 냉장고 집계를 다시 조회해 돌려준다.
package refrigerator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mallang/recipe-api/internal/model"
	"github.com/mallang/recipe-api/internal/repository"
	"github.com/mallang/recipe-api/internal/security"
)

// Service 는 냉장고 비즈니스 로직을 제공한다.
type Service struct {
	repo      repository.RefrigeratorRepository
	sanitizer security.InputSanitizerService
}

// NewService 는 Service를 생성한다.
func NewService(repo repository.RefrigeratorRepository, sanitizer security.InputSanitizerService) *Service {
	return &Service{repo: repo, sanitizer: sanitizer}
}

// Overview 는 사용자의 전체 냉장고 집계를 반환한다.
func (s *Service) Overview(ctx context.Context, userID string) (*model.RefrigeratorOverview, error) {
	if userID == "" {
		return nil, model.ErrBadUserInfo
	}

	compartments, err := s.repo.ListCompartments(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list compartments: %w", err)
	}
	if len(compartments) == 0 {
		return nil, model.ErrRefrigeratorNotFound
	}

	ingredients, err := s.repo.ListIngredientsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}

	byCompartment := make(map[int][]model.StoredIngredient, len(compartments))
	for _, ing := range ingredients {
		byCompartment[ing.CompartmentID] = append(byCompartment[ing.CompartmentID], ing)
	}

	overview := &model.RefrigeratorOverview{UserID: userID}
	for _, c := range compartments {
		contents := model.CompartmentContents{
			Compartment: c,
			Ingredients: byCompartment[c.ID],
		}
		if contents.Ingredients == nil {
			contents.Ingredients = []model.StoredIngredient{}
		}
		overview.Refrigerators = append(overview.Refrigerators, contents)
	}

	return overview, nil
}

// AddCompartment 는 칸을 추가한다. 상한(10칸) 도달 시 409 에러.
func (s *Service) AddCompartment(ctx context.Context, userID, name string, compartmentType int) (*model.RefrigeratorOverview, error) {
	name = s.sanitizer.Sanitize(name)
	if userID == "" || name == "" || compartmentType == 0 {
		return nil, model.ErrBadInput
	}

	count, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count compartments: %w", err)
	}
	if count >= model.MaxCompartmentsPerUser {
		return nil, model.ErrTooManyCompartments
	}

	if err := s.repo.CreateCompartment(ctx, userID, name, compartmentType); err != nil {
		return nil, fmt.Errorf("failed to create compartment: %w", err)
	}

	return s.Overview(ctx, userID)
}

// UpdateCompartment 는 칸 이름/타입을 갱신한다. 일치 행이 없으면 404 에러.
func (s *Service) UpdateCompartment(ctx context.Context, userID string, compartmentID int, name string, compartmentType int) (*model.RefrigeratorOverview, error) {
	name = s.sanitizer.Sanitize(name)
	if userID == "" || compartmentID == 0 || name == "" {
		return nil, model.ErrBadInput
	}

	updated, err := s.repo.UpdateCompartment(ctx, userID, compartmentID, name, compartmentType)
	if err != nil {
		return nil, fmt.Errorf("failed to update compartment: %w", err)
	}
	if !updated {
		return nil, model.ErrCompartmentNotFound
	}

	return s.Overview(ctx, userID)
}

// DeleteCompartment 는 칸을 삭제한다. 하한(2칸) 도달 시 아무것도 지우지 않고
// 409 에러를 돌려준다.
func (s *Service) DeleteCompartment(ctx context.Context, userID string, compartmentID int) (*model.RefrigeratorOverview, error) {
	if userID == "" || compartmentID == 0 {
		return nil, model.ErrBadInput
	}

	count, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count compartments: %w", err)
	}
	if count <= model.MinCompartmentsPerUser {
		return nil, model.ErrTooFewCompartments
	}

	deleted, err := s.repo.DeleteCompartment(ctx, userID, compartmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete compartment: %w", err)
	}
	if !deleted {
		return nil, model.ErrCompartmentNotFound
	}

	slog.Info("compartment deleted",
		slog.String("user_id", userID),
		slog.Int("compartment_id", compartmentID),
	)
	return s.Overview(ctx, userID)
}

// AddIngredients 는 재료를 일괄 추가한다. 하나라도 필수 값이 빠지면 400으로
// 거절하고 아무 행도 쓰지 않는다.
func (s *Service) AddIngredients(ctx context.Context, userID string, ingredients []model.StoredIngredient) (*model.RefrigeratorOverview, error) {
	if userID == "" || len(ingredients) == 0 {
		return nil, model.ErrBadInput
	}
	for i := range ingredients {
		ingredients[i].Name = s.sanitizer.Sanitize(ingredients[i].Name)
		if ingredients[i].CompartmentID == 0 || ingredients[i].Name == "" ||
			ingredients[i].ExpiredDate == "" || ingredients[i].EnterDate == "" {
			return nil, model.ErrBadIngredient
		}
	}

	if err := s.repo.AddIngredients(ctx, ingredients); err != nil {
		return nil, fmt.Errorf("failed to add ingredients: %w", err)
	}

	return s.Overview(ctx, userID)
}

// DeleteIngredients 는 재료를 ID 목록으로 삭제한다. 아무것도 지워지지
// 않으면 404 에러.
func (s *Service) DeleteIngredients(ctx context.Context, userID string, ids []int) (*model.RefrigeratorOverview, error) {
	if userID == "" || len(ids) == 0 {
		return nil, model.ErrBadInput
	}

	deleted, err := s.repo.DeleteIngredients(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to delete ingredients: %w", err)
	}
	if deleted == 0 {
		return nil, model.ErrIngredientNotFound
	}

	return s.Overview(ctx, userID)
}
