// Package app 은 애플리케이션의 기동과 의존성 조립을 담당한다.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/mallang/recipe-api/internal/auth"
	"github.com/mallang/recipe-api/internal/bookmark"
	"github.com/mallang/recipe-api/internal/config"
	"github.com/mallang/recipe-api/internal/database"
	"github.com/mallang/recipe-api/internal/dataset"
	"github.com/mallang/recipe-api/internal/handler"
	"github.com/mallang/recipe-api/internal/logger"
	"github.com/mallang/recipe-api/internal/metrics"
	"github.com/mallang/recipe-api/internal/middleware"
	"github.com/mallang/recipe-api/internal/mypage"
	"github.com/mallang/recipe-api/internal/provider"
	"github.com/mallang/recipe-api/internal/recipe"
	"github.com/mallang/recipe-api/internal/refrigerator"
	"github.com/mallang/recipe-api/internal/repository"
	"github.com/mallang/recipe-api/internal/search"
	"github.com/mallang/recipe-api/internal/searchfilter"
	"github.com/mallang/recipe-api/internal/secrets"
	"github.com/mallang/recipe-api/internal/security"
	"github.com/mallang/recipe-api/internal/shop"
)

// Init 은 애플리케이션 초기화를 수행한다.
// .env 파일이 있으면 읽고, JSON 구조화 로그를 설정한 뒤 환경변수에서 Config를 읽어들인다.
// writer 가 지정되면 로그 출력 대상으로 사용한다.
func Init(w io.Writer) (*config.Config, error) {
	// .env 는 로컬 개발 편의용이라 없어도 무시한다
	_ = godotenv.Load()

	logger.SetupDefault(w)

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run 은 애플리케이션의 메인 엔트리 포인트.
// 커맨드라인 인자에서 서브커맨드를 해석해 해당 모드로 기동한다.
// args 에는 os.Args[1:] 을 넘긴다.
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck 는 가벼운 서브커맨드라 전체 초기화를 생략한다
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
	)

	switch cmd {
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(cfg)
	}
}

// databaseURL 은 시크릿 스토어에서 비밀번호를 받아 접속 URL을 구성한다.
func databaseURL(ctx context.Context, cfg *config.Config) (string, error) {
	store := secrets.NewStore(cfg.SecretSource, nil)
	password, err := store.Password(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to fetch database password: %w", err)
	}
	return cfg.DatabaseURL(password), nil
}

// runServe 는 API 서버 모드로 기동한다.
// DB 접속을 열고 전체 의존성을 조립한 뒤 HTTP 서버를 시작한다.
// SIGINT 또는 SIGTERM 수신 시 그레이스풀 셧다운한다.
func runServe(cfg *config.Config) error {
	ctx := context.Background()

	// 1. DB 접속
	dbURL, err := databaseURL(ctx, cfg)
	if err != nil {
		return err
	}

	db, err := database.Open(dbURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established")

	// 2. 레시피 데이터셋 적재
	if cfg.DatasetSource == "" {
		return fmt.Errorf("RECIPE_DATASET_SOURCE is not set")
	}
	details, err := dataset.Load(ctx, cfg.DatasetSource, nil)
	if err != nil {
		return fmt.Errorf("failed to load recipe dataset: %w", err)
	}

	// 3. 리포지토리 초기화
	userRepo := repository.NewPostgresUserRepo(db)
	sessionRepo := repository.NewPostgresSessionRepo(db)
	mypageRepo := repository.NewPostgresMypageRepo(db)
	refrigRepo := repository.NewPostgresRefrigeratorRepo(db)
	recipeRepo := repository.NewPostgresRecipeRepo(db)
	ingredientRepo := repository.NewPostgresIngredientRepo(db)
	bookmarkRepo := repository.NewPostgresBookmarkRepo(db)
	filterRepo := repository.NewPostgresSearchFilterRepo(db)

	// 4. 프로바이더 레지스트리와 보안 서비스
	registry := provider.NewRegistry(
		provider.NewKakao(provider.KakaoConfig{
			ClientID:     cfg.Kakao.ClientID,
			ClientSecret: cfg.Kakao.ClientSecret,
			RedirectURI:  cfg.Kakao.RedirectURI,
		}),
		provider.NewNaver(provider.NaverConfig{
			ClientID:     cfg.Naver.ClientID,
			ClientSecret: cfg.Naver.ClientSecret,
			RedirectURI:  cfg.Naver.RedirectURI,
			State:        cfg.Naver.State,
		}),
		provider.NewGoogle(provider.GoogleConfig{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURI:  cfg.Google.RedirectURI,
			Scope:        cfg.Google.Scope,
		}),
	)
	sanitizer := security.NewInputSanitizer()

	// 5. 도메인 서비스
	authService := auth.NewService(registry, userRepo, sessionRepo, sanitizer)
	mypageService := mypage.NewService(userRepo, mypageRepo, sanitizer)
	refrigService := refrigerator.NewService(refrigRepo, sanitizer)
	recipeService := recipe.NewService(recipeRepo, mypageRepo, details)
	searchService := search.NewService(recipeRepo, ingredientRepo)
	bookmarkService := bookmark.NewService(bookmarkRepo)
	filterService := searchfilter.NewService(filterRepo, ingredientRepo)
	shopClient := shop.NewClient(shop.Config{
		ClientID:     cfg.Naver.ClientID,
		ClientSecret: cfg.Naver.ClientSecret,
	})

	// 6. 메트릭과 레이트 리밋
	registryProm := prometheus.NewRegistry()
	collector := metrics.NewCollector(registryProm)
	authService.SetRecorder(collector)

	rlCfg := middleware.DefaultRateLimiterConfig()
	if cfg.RateLimitGeneral > 0 {
		// 설정값은 req/min 단위라 req/sec 으로 환산한다
		rlCfg.GeneralRate = rate.Limit(float64(cfg.RateLimitGeneral) / 60.0)
		rlCfg.GeneralBurst = cfg.RateLimitGeneral
	}
	rateLimiter := middleware.NewRateLimiter(rlCfg)
	defer rateLimiter.Stop()

	// 7. 라우터 구성
	router := handler.NewRouter(&handler.RouterDeps{
		Logger:            slog.Default(),
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,
		Metrics:           collector,
		Gatherer:          registryProm,

		Sessions: sessionRepo,

		AuthService: authService,
		FrontURI:    cfg.FrontURI,

		RecipeService:       recipeService,
		ShopSearcher:        shopClient,
		SearchService:       searchService,
		MypageService:       mypageService,
		RefrigeratorService: refrigService,
		BookmarkService:     bookmarkService,
		FilterService:       filterService,
	})

	// 8. HTTP 서버 기동
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runMigrate 는 데이터베이스 마이그레이션을 적용하고 종료한다.
func runMigrate(cfg *config.Config) error {
	dbURL, err := databaseURL(context.Background(), cfg)
	if err != nil {
		return err
	}

	if err := database.RunMigrations(dbURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("migrations applied")
	return nil
}

// runHealthcheck 는 로컬 서버의 /healthz 를 한 번 호출한다.
// distroless 컨테이너의 Docker 헬스체크용.
func runHealthcheck(port string) error {
	client := &http.Client{Timeout: 3 * time.Second}

	resp, err := client.Get("http://localhost:" + port + "/healthz")
	if err != nil {
		return fmt.Errorf("healthcheck request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("healthcheck returned status %d", resp.StatusCode)
	}
	return nil
}
