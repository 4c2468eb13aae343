// Package dataset 은 레시피 본문 CSV 데이터셋을 읽어 메모리 인덱스로 제공한다.
// 데이터셋은 수집 파이프라인이 파이썬으로 만든 것이라 리스트 컬럼이
// 파이썬 리터럴 문자열("[('양파', '1개'), ...]")로 들어 있다.
package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/mallang/recipe-api/internal/model"
)

// Store 는 recipe_id로 상세 문서를 찾는 읽기 전용 인덱스.
// 기동 시 1회 적재하며 이후에는 변경하지 않는다.
type Store struct {
	details map[string]*model.RecipeDetail
}

// Load 는 파일 경로 또는 http(s) URL에서 CSV를 읽어 Store를 구성한다.
func Load(ctx context.Context, source string, client *http.Client) (*Store, error) {
	reader, err := open(ctx, source, client)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	store, err := parse(reader)
	if err != nil {
		return nil, err
	}

	slog.Info("recipe dataset loaded",
		slog.String("source", source),
		slog.Int("recipes", len(store.details)),
	)
	return store, nil
}

// Get 은 레시피 ID로 상세 문서를 조회한다. 호출 측이 값을 고치므로 복사본을 준다.
func (s *Store) Get(recipeID string) (*model.RecipeDetail, bool) {
	d, ok := s.details[recipeID]
	if !ok {
		return nil, false
	}
	copied := *d
	return &copied, true
}

// Len 은 적재된 레시피 수를 반환한다.
func (s *Store) Len() int {
	return len(s.details)
}

func open(ctx context.Context, source string, client *http.Client) (io.ReadCloser, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create dataset request: %w", err)
		}
		if client == nil {
			client = http.DefaultClient
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch dataset: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("dataset fetch failed with status %d", resp.StatusCode)
		}
		return resp.Body, nil
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	return f, nil
}

func parse(r io.Reader) (*Store, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"recipe_id", "name"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("dataset header missing column %q", required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	details := make(map[string]*model.RecipeDetail)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read dataset row: %w", err)
		}

		id := strings.TrimSpace(field(record, "recipe_id"))
		if id == "" {
			continue
		}

		detail := &model.RecipeDetail{
			RecipeID:      id,
			Name:          field(record, "name"),
			Images:        parseStringList(field(record, "image")),
			Author:        field(record, "author"),
			DatePublished: field(record, "datePublished"),
			Description:   field(record, "description"),
			Tags:          parseStringList(field(record, "tags")),
		}
		for _, pair := range parsePairList(field(record, "recipeIngredient")) {
			detail.Ingredients = append(detail.Ingredients, model.RecipeIngredient{
				Ingredient: pair[0],
				Amount:     pair[1],
			})
		}
		for _, pair := range parsePairList(field(record, "recipeInstructions")) {
			detail.Instructions = append(detail.Instructions, model.RecipeStep{
				Step:  pair[0],
				Image: pair[1],
			})
		}

		details[id] = detail
	}

	return &Store{details: details}, nil
}

// parseStringList 는 파이썬 리스트 리터럴("['a', 'b']")에서 문자열들을 꺼낸다.
// 리스트가 아니라 맨 문자열이면 그 하나를 담은 목록으로 취급한다.
func parseStringList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if !strings.HasPrefix(s, "[") {
		return []string{s}
	}
	return extractQuoted(s)
}

// parsePairList 는 파이썬 튜플 리스트 리터럴("[('a', 'b'), ...]")을
// 2개짜리 쌍의 목록으로 해석한다. 홀수 개로 끝나면 마지막은 빈 값으로 채운다.
func parsePairList(s string) [][2]string {
	values := extractQuoted(s)
	if len(values) == 0 {
		return nil
	}

	pairs := make([][2]string, 0, (len(values)+1)/2)
	for i := 0; i < len(values); i += 2 {
		pair := [2]string{values[i], ""}
		if i+1 < len(values) {
			pair[1] = values[i+1]
		}
		pairs = append(pairs, pair)
	}
	return pairs
}

// extractQuoted 는 리터럴 안의 따옴표(', ") 문자열을 순서대로 꺼낸다.
// 백슬래시 이스케이프를 처리한다.
func extractQuoted(s string) []string {
	var out []string
	runes := []rune(s)

	for i := 0; i < len(runes); i++ {
		q := runes[i]
		if q != '\'' && q != '"' {
			continue
		}
		var b strings.Builder
		closed := false
		for i++; i < len(runes); i++ {
			c := runes[i]
			if c == '\\' && i+1 < len(runes) {
				i++
				b.WriteRune(runes[i])
				continue
			}
			if c == q {
				closed = true
				break
			}
			b.WriteRune(c)
		}
		if closed {
			out = append(out, b.String())
		}
	}
	return out
}
