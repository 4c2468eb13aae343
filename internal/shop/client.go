// Package shop 은 네이버 쇼핑 검색 연동을 제공한다.
// 재시도 없이 1회 호출하며 실패는 그대로 에러로 올린다.
package shop

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	defaultOpenAPIURL = "https://openapi.naver.com/v1/search/shop.json"
	defaultStoreURL   = "https://shopping.naver.com/v1/products/base-products"

	searchDisplay = 10
)

// Item 은 쇼핑 검색 결과 상품.
type Item struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Image    string `json:"image"`
	LowPrice string `json:"lprice"`
	MallName string `json:"mallName"`
}

// Config 는 쇼핑 클라이언트 설정.
type Config struct {
	ClientID     string
	ClientSecret string

	// 테스트용 오버라이드 가능 URL
	OpenAPIURL string
	StoreURL   string

	HTTPClient *http.Client
}

// Client 는 네이버 쇼핑 검색 클라이언트.
type Client struct {
	config Config
}

// NewClient 는 Client를 생성한다.
func NewClient(config Config) *Client {
	if config.OpenAPIURL == "" {
		config.OpenAPIURL = defaultOpenAPIURL
	}
	if config.StoreURL == "" {
		config.StoreURL = defaultStoreURL
	}
	if config.HTTPClient == nil {
		config.HTTPClient = http.DefaultClient
	}
	return &Client{config: config}
}

type openAPIResponse struct {
	Items []Item `json:"items"`
}

// Search 는 오픈 API로 상품을 검색한다. 제목에 섞여 오는 강조 태그는 걷어낸다.
func (c *Client) Search(ctx context.Context, query string) ([]Item, error) {
	endpoint := fmt.Sprintf("%s?query=%s&display=%d", c.config.OpenAPIURL, url.QueryEscape(query), searchDisplay)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create shop search request: %w", err)
	}
	req.Header.Set("X-Naver-Client-Id", c.config.ClientID)
	req.Header.Set("X-Naver-Client-Secret", c.config.ClientSecret)

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var parsed openAPIResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse shop search response: %w", err)
	}

	for i := range parsed.Items {
		parsed.Items[i].Title = stripBoldTags(parsed.Items[i].Title)
	}
	return parsed.Items, nil
}

// 스토어 base-products 응답의 상품 골격.
type storeProduct struct {
	Name        string `json:"name"`
	ProductURL  string `json:"productUrl"`
	ImageURL    string `json:"imageUrl"`
	SalePrice   int64  `json:"salePrice"`
	ChannelName string `json:"channelName"`
}

type storeResponse struct {
	Products []storeProduct `json:"products"`
}

// SearchStore 는 스토어 base-products 엔드포인트로 상품을 검색한다.
func (c *Client) SearchStore(ctx context.Context, query string) ([]Item, error) {
	endpoint := fmt.Sprintf("%s?query=%s&size=%d", c.config.StoreURL, url.QueryEscape(query), searchDisplay)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create store search request: %w", err)
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var parsed storeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse store search response: %w", err)
	}

	items := make([]Item, 0, len(parsed.Products))
	for _, p := range parsed.Products {
		items = append(items, Item{
			Title:    p.Name,
			Link:     p.ProductURL,
			Image:    p.ImageURL,
			LowPrice: fmt.Sprintf("%d", p.SalePrice),
			MallName: p.ChannelName,
		})
	}
	return items, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.config.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("shop request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read shop response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("shop request failed with status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// stripBoldTags 는 오픈 API가 검색어 강조용으로 끼워 넣는 <b> 태그를 제거한다.
func stripBoldTags(s string) string {
	s = strings.ReplaceAll(s, "<b>", "")
	return strings.ReplaceAll(s, "</b>", "")
}
