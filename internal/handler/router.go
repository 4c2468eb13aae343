package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mallang/recipe-api/internal/metrics"
	"github.com/mallang/recipe-api/internal/middleware"
)

// RouterDeps 는 NewRouter 에 필요한 의존성을 모은 구조체.
type RouterDeps struct {
	// 미들웨어 의존
	Logger            *slog.Logger
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Metrics           metrics.Recorder
	Gatherer          prometheus.Gatherer

	// 세션 검증
	Sessions SessionValidator

	// 인증
	AuthService AuthServiceInterface
	FrontURI    string

	// 도메인 서비스
	RecipeService       RecipeServiceInterface
	ShopSearcher        ShopSearcher
	SearchService       SearchServiceInterface
	MypageService       MypageServiceInterface
	RefrigeratorService RefrigeratorServiceInterface
	BookmarkService     BookmarkServiceInterface
	FilterService       FilterServiceInterface
}

// NewRouter 는 전체 API 라우팅과 미들웨어 체인을 구성한 chi.Router 를 반환한다.
//
// 미들웨어 실행 순서:
//
//	Recovery → CORS → Logging → RateLimit
//
// /metrics 와 /healthz 는 레이트 리밋 바깥에 둔다.
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewLoggingMiddleware(deps.Logger, deps.Metrics))

	authHandler := NewAuthHandler(deps.AuthService, deps.FrontURI)
	recipeHandler := NewRecipeHandler(deps.RecipeService)
	shopHandler := NewShopHandler(deps.ShopSearcher)
	searchHandler := NewSearchHandler(deps.SearchService)
	mypageHandler := NewMypageHandler(deps.MypageService, deps.Sessions)
	refrigHandler := NewRefrigeratorHandler(deps.RefrigeratorService)
	bookmarkHandler := NewBookmarkHandler(deps.BookmarkService, deps.Sessions)
	filterHandler := NewFilterHandler(deps.FilterService, deps.Sessions)

	// --- 운영 엔드포인트 ---

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))
	}
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// --- API 엔드포인트 ---

	r.Group(func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.Middleware())
		}

		r.Route("/auth", func(r chi.Router) {
			r.Post("/request", authHandler.RequestAuthorize)
			r.Get("/{provider}/redirect", authHandler.Redirect)
			r.Post("/check", authHandler.Check)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
			r.Post("/signup", authHandler.Signup)
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/recent", recipeHandler.Recent)
			r.Get("/seasonal", recipeHandler.Seasonal)
			r.Post("/prefer", recipeHandler.Prefer)
			r.Post("/cate", recipeHandler.Cate)
			r.Post("/situ", recipeHandler.Situ)
			r.Get("/{id}", recipeHandler.Detail)
		})

		r.Route("/shop", func(r chi.Router) {
			r.Post("/search", shopHandler.Search)
			r.Post("/naver", shopHandler.SearchStore)
		})

		r.Route("/search", func(r chi.Router) {
			r.Post("/title", searchHandler.ByTitle)
			r.Post("/ingredient", searchHandler.ByIngredient)
			r.Post("/filtered", searchHandler.Filtered)
			r.Post("/multi", searchHandler.Multi)
		})

		r.Route("/mypage", func(r chi.Router) {
			r.Post("/profile", mypageHandler.Profile)
			r.Post("/profile/basic", mypageHandler.Basic)
			r.Put("/profile", mypageHandler.Update)
		})

		r.Route("/refrig", func(r chi.Router) {
			r.Post("/list", refrigHandler.List)
			r.Post("/add", refrigHandler.AddCompartment)
			r.Post("/update", refrigHandler.UpdateCompartment)
			r.Post("/delete", refrigHandler.DeleteCompartment)
			r.Post("/ingredients/add", refrigHandler.AddIngredients)
			r.Post("/ingredients/delete", refrigHandler.DeleteIngredients)
		})

		r.Route("/bookmark", func(r chi.Router) {
			r.Post("/list", bookmarkHandler.List)
			r.Post("/add", bookmarkHandler.Add)
			r.Post("/remove", bookmarkHandler.Remove)
		})

		r.Route("/filter", func(r chi.Router) {
			r.Post("/list", filterHandler.List)
			r.Post("/update", filterHandler.Update)
			r.Post("/ingredient", filterHandler.SearchIngredient)
		})
	})

	return r
}
