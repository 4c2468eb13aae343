package model

// RecipeSummary 는 목록/검색 응답에 쓰이는 레시피 요약이다.
type RecipeSummary struct {
	RecipeID  int    `json:"recipe_id"`
	Title     string `json:"recipe_title"`
	Thumbnail string `json:"recipe_thumbnail"`
}

// SeasonalFood 는 이달의 제철 농산물이다.
type SeasonalFood struct {
	Name  string `json:"seasonal_name"`
	Image string `json:"seasonal_image"`
}

// RecipeIngredient 는 레시피 본문의 (재료, 분량) 항목이다.
type RecipeIngredient struct {
	Ingredient string `json:"ingredient"`
	Amount     string `json:"amount"`
}

// RecipeStep 은 조리 순서의 (설명, 이미지) 항목이다.
type RecipeStep struct {
	Step  string `json:"step"`
	Image string `json:"image"`
}

// RecipeClass 는 레시피의 분류 레이블이다.
type RecipeClass struct {
	CateNo string `json:"cate_no"`
	SituNo string `json:"situ_no"`
}

// RecipeDetail 은 레시피 본문 데이터셋에서 읽어낸 상세 문서다.
// shoppingIngredients는 쇼핑 검색용으로 정제된 재료명 목록이며
// 재료 테이블과의 조인으로 채워진다.
type RecipeDetail struct {
	RecipeID            string             `json:"recipe_id"`
	Name                string             `json:"name"`
	Images              []string           `json:"image"`
	Author              string             `json:"author"`
	DatePublished       string             `json:"datePublished"`
	Description         string             `json:"description"`
	Ingredients         []RecipeIngredient `json:"recipeIngredient"`
	Instructions        []RecipeStep       `json:"recipeInstructions"`
	Tags                []string           `json:"tags"`
	Classes             []RecipeClass      `json:"recipe_class"`
	ShoppingIngredients []string           `json:"shoppingIngredients"`
}

// Ingredient 는 정제된 재료 카탈로그 항목이다.
type Ingredient struct {
	ID   int    `json:"ingredient_id"`
	Name string `json:"ingredient_name"`
}
