package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

const sampleCSV = `recipe_id,name,image,author,datePublished,description,recipeIngredient,recipeInstructions,tags
123,김치찌개,"['https://img/1.jpg', 'https://img/2.jpg']",말랑,2024-01-02,얼큰한 김치찌개,"[('김치', '300g'), ('돼지고기', '200g')]","[('김치를 볶는다', 'https://img/s1.jpg'), ('물을 붓고 끓인다', '')]","['찌개', '한식']"
456,계란말이,,,,,"[('계란', '3개')]",,
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipes.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return path
}

// 파일 소스 적재와 파이썬 리터럴 해석을 검증
func TestLoad_ParsesPythonLiterals(t *testing.T) {
	store, err := Load(context.Background(), writeSample(t), nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("Len = %d, want 2", store.Len())
	}

	detail, ok := store.Get("123")
	if !ok {
		t.Fatal("recipe 123 not found")
	}
	if detail.Name != "김치찌개" {
		t.Errorf("Name = %q", detail.Name)
	}
	if len(detail.Images) != 2 || detail.Images[0] != "https://img/1.jpg" {
		t.Errorf("Images = %v", detail.Images)
	}
	if len(detail.Ingredients) != 2 {
		t.Fatalf("Ingredients = %v", detail.Ingredients)
	}
	if detail.Ingredients[0].Ingredient != "김치" || detail.Ingredients[0].Amount != "300g" {
		t.Errorf("first ingredient = %+v", detail.Ingredients[0])
	}
	if len(detail.Instructions) != 2 {
		t.Fatalf("Instructions = %v", detail.Instructions)
	}
	if detail.Instructions[1].Step != "물을 붓고 끓인다" || detail.Instructions[1].Image != "" {
		t.Errorf("second step = %+v", detail.Instructions[1])
	}
	if len(detail.Tags) != 2 || detail.Tags[1] != "한식" {
		t.Errorf("Tags = %v", detail.Tags)
	}
}

// 없는 레시피 조회는 false
func TestGet_Unknown(t *testing.T) {
	store, err := Load(context.Background(), writeSample(t), nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := store.Get("999"); ok {
		t.Error("expected not found")
	}
}

// 반환된 문서를 고쳐도 인덱스는 오염되지 않는다
func TestGet_ReturnsCopy(t *testing.T) {
	store, err := Load(context.Background(), writeSample(t), nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	first, _ := store.Get("123")
	first.ShoppingIngredients = []string{"양파"}
	first.Name = "변조"

	second, _ := store.Get("123")
	if second.Name != "김치찌개" || second.ShoppingIngredients != nil {
		t.Errorf("index mutated: %+v", second)
	}
}

// HTTP 소스에서도 적재된다
func TestLoad_HTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	store, err := Load(context.Background(), srv.URL, srv.Client())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if store.Len() != 2 {
		t.Errorf("Len = %d, want 2", store.Len())
	}
}

// 이스케이프된 따옴표 처리 검증
func TestExtractQuoted_Escapes(t *testing.T) {
	got := extractQuoted(`[('so\'me', "do\"uble")]`)
	if len(got) != 2 || got[0] != "so'me" || got[1] != `do"uble` {
		t.Errorf("extractQuoted = %v", got)
	}
}
