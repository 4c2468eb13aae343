package refrigerator

import (
	"context"
	"errors"
	"testing"

	"github.com/mallang/recipe-api/internal/model"
	"github.com/mallang/recipe-api/internal/repository"
	"github.com/mallang/recipe-api/internal/security"
)

type mockRefrigRepo struct {
	listCompartmentsFn      func(ctx context.Context, userID string) ([]model.Compartment, error)
	countByUserFn           func(ctx context.Context, userID string) (int, error)
	createCompartmentFn     func(ctx context.Context, userID, name string, compartmentType int) error
	updateCompartmentFn     func(ctx context.Context, userID string, compartmentID int, name string, compartmentType int) (bool, error)
	deleteCompartmentFn     func(ctx context.Context, userID string, compartmentID int) (bool, error)
	listIngredientsByUserFn func(ctx context.Context, userID string) ([]model.StoredIngredient, error)
	addIngredientsFn        func(ctx context.Context, ingredients []model.StoredIngredient) error
	deleteIngredientsFn     func(ctx context.Context, ids []int) (int, error)
}

func (m *mockRefrigRepo) ListCompartments(ctx context.Context, userID string) ([]model.Compartment, error) {
	return m.listCompartmentsFn(ctx, userID)
}
func (m *mockRefrigRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	return m.countByUserFn(ctx, userID)
}
func (m *mockRefrigRepo) CreateCompartment(ctx context.Context, userID, name string, compartmentType int) error {
	return m.createCompartmentFn(ctx, userID, name, compartmentType)
}
func (m *mockRefrigRepo) UpdateCompartment(ctx context.Context, userID string, compartmentID int, name string, compartmentType int) (bool, error) {
	return m.updateCompartmentFn(ctx, userID, compartmentID, name, compartmentType)
}
func (m *mockRefrigRepo) DeleteCompartment(ctx context.Context, userID string, compartmentID int) (bool, error) {
	return m.deleteCompartmentFn(ctx, userID, compartmentID)
}
func (m *mockRefrigRepo) ListIngredientsByUser(ctx context.Context, userID string) ([]model.StoredIngredient, error) {
	return m.listIngredientsByUserFn(ctx, userID)
}
func (m *mockRefrigRepo) AddIngredients(ctx context.Context, ingredients []model.StoredIngredient) error {
	return m.addIngredientsFn(ctx, ingredients)
}
func (m *mockRefrigRepo) DeleteIngredients(ctx context.Context, ids []int) (int, error) {
	return m.deleteIngredientsFn(ctx, ids)
}

var _ repository.RefrigeratorRepository = (*mockRefrigRepo)(nil)

func overviewStubs(m *mockRefrigRepo) {
	m.listCompartmentsFn = func(ctx context.Context, userID string) ([]model.Compartment, error) {
		return []model.Compartment{
			{ID: 1, Name: "냉장고", Type: model.FridgeType},
			{ID: 2, Name: "냉동고", Type: model.FreezerType},
		}, nil
	}
	m.listIngredientsByUserFn = func(ctx context.Context, userID string) ([]model.StoredIngredient, error) {
		return []model.StoredIngredient{
			{ID: 10, CompartmentID: 1, Name: "양파"},
		}, nil
	}
}

// 집계는 칸별로 재료를 묶고 빈 칸은 빈 배열을 갖는다
func TestOverview_GroupsIngredientsByCompartment(t *testing.T) {
	m := &mockRefrigRepo{}
	overviewStubs(m)
	svc := NewService(m, security.NewInputSanitizer())

	overview, err := svc.Overview(context.Background(), "u1")
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if len(overview.Refrigerators) != 2 {
		t.Fatalf("compartments = %d, want 2", len(overview.Refrigerators))
	}
	if len(overview.Refrigerators[0].Ingredients) != 1 {
		t.Errorf("first compartment ingredients = %d, want 1", len(overview.Refrigerators[0].Ingredients))
	}
	if overview.Refrigerators[1].Ingredients == nil || len(overview.Refrigerators[1].Ingredients) != 0 {
		t.Errorf("empty compartment must have empty non-nil slice")
	}
}

// 칸이 하나도 없으면 404
func TestOverview_NoCompartments(t *testing.T) {
	m := &mockRefrigRepo{
		listCompartmentsFn: func(ctx context.Context, userID string) ([]model.Compartment, error) {
			return nil, nil
		},
	}
	svc := NewService(m, security.NewInputSanitizer())

	_, err := svc.Overview(context.Background(), "u1")
	if !errors.Is(err, model.ErrRefrigeratorNotFound) {
		t.Fatalf("expected ErrRefrigeratorNotFound, got %v", err)
	}
}

// 10칸에서 추가 시도는 409로 거절되고 삽입되지 않는다
func TestAddCompartment_AtMax(t *testing.T) {
	m := &mockRefrigRepo{
		countByUserFn: func(ctx context.Context, userID string) (int, error) {
			return model.MaxCompartmentsPerUser, nil
		},
		createCompartmentFn: func(ctx context.Context, userID, name string, compartmentType int) error {
			t.Error("create must not be called at max")
			return nil
		},
	}
	svc := NewService(m, security.NewInputSanitizer())

	_, err := svc.AddCompartment(context.Background(), "u1", "새칸", model.FridgeType)
	if !errors.Is(err, model.ErrTooManyCompartments) {
		t.Fatalf("expected ErrTooManyCompartments, got %v", err)
	}
}

// 추가 성공 시 재조회된 집계를 반환한다
func TestAddCompartment_ReturnsFreshOverview(t *testing.T) {
	m := &mockRefrigRepo{
		countByUserFn: func(ctx context.Context, userID string) (int, error) { return 2, nil },
		createCompartmentFn: func(ctx context.Context, userID, name string, compartmentType int) error {
			return nil
		},
	}
	overviewStubs(m)
	svc := NewService(m, security.NewInputSanitizer())

	overview, err := svc.AddCompartment(context.Background(), "u1", "김치칸", model.FridgeType)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if overview.UserID != "u1" {
		t.Errorf("UserID = %q", overview.UserID)
	}
}

// 2칸에서 삭제 시도는 409로 거절되고 아무것도 지우지 않는다
func TestDeleteCompartment_AtMin(t *testing.T) {
	m := &mockRefrigRepo{
		countByUserFn: func(ctx context.Context, userID string) (int, error) {
			return model.MinCompartmentsPerUser, nil
		},
		deleteCompartmentFn: func(ctx context.Context, userID string, compartmentID int) (bool, error) {
			t.Error("delete must not be called at min")
			return false, nil
		},
	}
	svc := NewService(m, security.NewInputSanitizer())

	_, err := svc.DeleteCompartment(context.Background(), "u1", 1)
	if !errors.Is(err, model.ErrTooFewCompartments) {
		t.Fatalf("expected ErrTooFewCompartments, got %v", err)
	}
}

// 없는 칸 삭제는 404
func TestDeleteCompartment_NotFound(t *testing.T) {
	m := &mockRefrigRepo{
		countByUserFn: func(ctx context.Context, userID string) (int, error) { return 3, nil },
		deleteCompartmentFn: func(ctx context.Context, userID string, compartmentID int) (bool, error) {
			return false, nil
		},
	}
	svc := NewService(m, security.NewInputSanitizer())

	_, err := svc.DeleteCompartment(context.Background(), "u1", 99)
	if !errors.Is(err, model.ErrCompartmentNotFound) {
		t.Fatalf("expected ErrCompartmentNotFound, got %v", err)
	}
}

// 필수 값이 빠진 재료가 섞이면 400으로 전체 거절
func TestAddIngredients_RejectsIncomplete(t *testing.T) {
	m := &mockRefrigRepo{
		addIngredientsFn: func(ctx context.Context, ingredients []model.StoredIngredient) error {
			t.Error("repository must not be called for invalid batch")
			return nil
		},
	}
	svc := NewService(m, security.NewInputSanitizer())

	_, err := svc.AddIngredients(context.Background(), "u1", []model.StoredIngredient{
		{CompartmentID: 1, Name: "양파", ExpiredDate: "2026-09-10", EnterDate: "2026-09-01"},
		{CompartmentID: 1, Name: "", ExpiredDate: "2026-09-10", EnterDate: "2026-09-01"},
	})
	if !errors.Is(err, model.ErrBadIngredient) {
		t.Fatalf("expected ErrBadIngredient, got %v", err)
	}
}

// 아무것도 지워지지 않은 재료 삭제는 404
func TestDeleteIngredients_NothingDeleted(t *testing.T) {
	m := &mockRefrigRepo{
		deleteIngredientsFn: func(ctx context.Context, ids []int) (int, error) {
			return 0, nil
		},
	}
	svc := NewService(m, security.NewInputSanitizer())

	_, err := svc.DeleteIngredients(context.Background(), "u1", []int{7})
	if !errors.Is(err, model.ErrIngredientNotFound) {
		t.Fatalf("expected ErrIngredientNotFound, got %v", err)
	}
}
