package model

// 회원가입 시 자동 생성되는 기본 냉장고 칸. 타입 1은 냉장, 2는 냉동.
const (
	DefaultFridgeName  = "냉장고"
	DefaultFreezerName = "냉동고"
	FridgeType         = 1
	FreezerType        = 2
)

// 사용자당 냉장고 칸 수의 하한/상한.
const (
	MinCompartmentsPerUser = 2
	MaxCompartmentsPerUser = 10
)

// Compartment 는 사용자가 소유한 냉장고/냉동고 칸이다.
type Compartment struct {
	ID     int    `json:"refrigerator_id"`
	Name   string `json:"refrigerator_name"`
	Type   int    `json:"refrigerator_type"`
	UserID string `json:"-"`
}

// StoredIngredient 는 냉장고 칸에 보관 중인 재료다.
type StoredIngredient struct {
	ID            int    `json:"refrigerator_ing_id"`
	CompartmentID int    `json:"refrigerator_id"`
	Name          string `json:"refrigerator_ing_name"`
	ExpiredDate   string `json:"expired_date"`
	EnterDate     string `json:"enter_date"`
	Color         string `json:"color"`
}

// CompartmentContents 는 한 칸과 그 안의 재료 목록이다.
type CompartmentContents struct {
	Compartment Compartment        `json:"refrig"`
	Ingredients []StoredIngredient `json:"ingredients"`
}

// RefrigeratorOverview 는 사용자의 전체 냉장고 집계로,
// 모든 변경 연산 후 재조회하여 그대로 응답 본문이 된다.
type RefrigeratorOverview struct {
	UserID        string                `json:"user_id"`
	Refrigerators []CompartmentContents `json:"refrigerators"`
}
