package handler

import (
	"context"
	"net/http"

	"github.com/mallang/recipe-api/internal/shop"
)

// ShopSearcher 는 쇼핑 검색 핸들러가 필요로 하는 클라이언트 인터페이스.
type ShopSearcher interface {
	// Search 는 네이버 오픈 API 쇼핑 검색을 수행한다.
	Search(ctx context.Context, query string) ([]shop.Item, error)
	// SearchStore 는 네이버 스토어 상품 검색을 수행한다.
	SearchStore(ctx context.Context, query string) ([]shop.Item, error)
}

// ShopHandler 는 재료 쇼핑 검색 HTTP 핸들러.
type ShopHandler struct {
	searcher ShopSearcher
}

// NewShopHandler 는 ShopHandler 를 생성한다.
func NewShopHandler(searcher ShopSearcher) *ShopHandler {
	return &ShopHandler{searcher: searcher}
}

// shopSearchBody 는 쇼핑 검색 요청의 바디.
type shopSearchBody struct {
	Keyword string `json:"keyword"`
}

// Search 는 오픈 API 쇼핑 검색 결과를 돌려준다.
// POST /shop/search
func (h *ShopHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req shopSearchBody
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Keyword == "" {
		writeMessage(w, http.StatusBadRequest, "검색어를 입력해주세요.")
		return
	}

	items, err := h.searcher.Search(r.Context(), req.Keyword)
	if err != nil {
		writeServiceError(w, r, err, "쇼핑 검색에 실패했습니다. 다시 시도해주세요.")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// SearchStore 는 네이버 스토어 상품 검색 결과를 돌려준다.
// POST /shop/naver
func (h *ShopHandler) SearchStore(w http.ResponseWriter, r *http.Request) {
	var req shopSearchBody
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Keyword == "" {
		writeMessage(w, http.StatusBadRequest, "검색어를 입력해주세요.")
		return
	}

	items, err := h.searcher.SearchStore(r.Context(), req.Keyword)
	if err != nil {
		writeServiceError(w, r, err, "쇼핑 검색에 실패했습니다. 다시 시도해주세요.")
		return
	}
	writeJSON(w, http.StatusOK, items)
}
