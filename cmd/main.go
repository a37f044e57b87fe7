package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ginlogger "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"roterize/internal/config"
	"roterize/internal/database"
	"roterize/internal/domain/repository"
	"roterize/internal/domain/service"
	"roterize/internal/handler"
	infradb "roterize/internal/infrastructure/database"
	"roterize/internal/infrastructure/firebase"
	"roterize/internal/infrastructure/firestore"
	"roterize/internal/infrastructure/maps"
	"roterize/internal/logger"
	"roterize/internal/middleware"
	repoimpl "roterize/internal/repository"
	"roterize/internal/usecase"
)

func main() {
	cfg := config.Load()
	out := logger.Setup(cfg.LogFile, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. 外部サービスの初期化
	var app *firebase.App
	if cfg.UsesFirebase() {
		var err error
		app, err = firebase.NewApp(ctx, cfg.FirestoreProjectID, cfg.FirebaseStorageBucket, cfg.CredentialsFile)
		if err != nil {
			logrus.Fatalf("❌ Firebaseの初期化に失敗: %v", err)
		}
	}

	checks := map[string]handler.HealthCheck{}

	var firestoreClient *firestore.FirestoreClient
	if cfg.ItineraryBackend == config.BackendFirestore || cfg.TipsBackend == config.BackendFirestore {
		var err error
		firestoreClient, err = firestore.NewFirestoreClient(ctx, cfg.FirestoreProjectID, cfg.CredentialsFile)
		if err != nil {
			logrus.Fatalf("❌ Firestoreクライアントの初期化に失敗: %v", err)
		}
		defer firestoreClient.Close()
		checks["firestore"] = firestoreClient.HealthCheck(repoimpl.ItinerariesCollection)
	}

	if cfg.GoogleMapsAPIKey == "" {
		logrus.Warn("⚠️ GOOGLE_MAPS_API_KEYが設定されていません。経路検索と入力補完は失敗します")
	}
	directions := maps.NewGoogleDirectionsProvider(cfg.GoogleMapsAPIKey, cfg.MapsLanguage)
	places := maps.NewGooglePlacesProvider(cfg.GoogleMapsAPIKey, cfg.MapsLanguage, cfg.PlacesQPS)

	// 2. リポジトリの初期化
	var itineraries repository.ItineraryRepository
	switch cfg.ItineraryBackend {
	case config.BackendFirestore:
		itineraries = repoimpl.NewFirestoreItineraryRepository(firestoreClient.GetClient())
	case config.BackendPostgres:
		pg, err := infradb.NewPostgreSQLClient(ctx, cfg.DatabaseURL)
		if err != nil {
			logrus.Fatalf("❌ PostgreSQLへの接続に失敗: %v", err)
		}
		defer pg.Close()
		repo := repoimpl.NewPostgresItineraryRepository(pg)
		if err := repo.EnsureSchema(ctx); err != nil {
			logrus.Fatalf("❌ スキーマの作成に失敗: %v", err)
		}
		itineraries = repo
		checks["postgres"] = pg.HealthCheck
	case config.BackendMemory:
		logrus.Warn("⚠️ ルートはメモリ上に保存されます。再起動で消えます")
		itineraries = repoimpl.NewMemoryItineraryRepository()
	default:
		logrus.Fatalf("❌ 不明なITINERARY_BACKENDです: %s", cfg.ItineraryBackend)
	}

	// チップと場所カタログは同じ保存先を使う
	var (
		tips    repository.TipRepository
		catalog repository.CatalogPlaceRepository
	)
	switch cfg.TipsBackend {
	case config.BackendFirestore:
		tips = repoimpl.NewFirestoreTipRepository(firestoreClient.GetClient())
		catalog = repoimpl.NewFirestoreCatalogRepository(firestoreClient.GetClient())
	case config.BackendSupabase:
		sb, err := database.NewSupabaseClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, repoimpl.TipsTable)
		if err != nil {
			logrus.Fatalf("❌ Supabaseクライアントの初期化に失敗: %v", err)
		}
		tips = repoimpl.NewSupabaseTipRepository(sb)
		catalog = repoimpl.NewSupabaseCatalogRepository(sb)
		checks["supabase"] = sb.HealthCheck
	case config.BackendMemory:
		tips = repoimpl.NewMemoryTipRepository()
		catalog = repoimpl.NewMemoryCatalogRepository()
	default:
		logrus.Fatalf("❌ 不明なTIPS_BACKENDです: %s", cfg.TipsBackend)
	}

	var photos repository.PhotoStorage
	if app != nil && app.Bucket() != nil {
		photos = repoimpl.NewFirebasePhotoStorage(app.Bucket(), app.BucketName())
	} else {
		logrus.Warn("⚠️ FIREBASE_STORAGE_BUCKETが設定されていないため写真のアップロードは無効です")
	}

	// 3. 認証の初期化
	var (
		auth     repository.AuthProvider
		users    repository.UserDirectory
		observer middleware.UserObserver
		signIn   repository.PasswordSignIn
	)
	switch cfg.AuthMode {
	case config.AuthModeFirebase:
		auth = repoimpl.NewFirebaseAuthProvider(app.Auth())
		users = repoimpl.NewFirebaseUserDirectory(app.Auth())
	case config.AuthModeJWT:
		provider, err := repoimpl.NewJWTAuthProvider(cfg.JWTSecret)
		if err != nil {
			logrus.Fatalf("❌ JWT認証の初期化に失敗: %v", err)
		}
		directory := repoimpl.NewMemoryUserDirectory()
		auth, users, observer = provider, directory, directory
		signIn = repoimpl.NewJWTSignIn(provider, directory, cfg.JWTTTL)
		logrus.Warn("⚠️ JWTモード: 登録ユーザーはメモリ上に保持されます")
	default:
		logrus.Fatalf("❌ 不明なAUTH_MODEです: %s", cfg.AuthMode)
	}

	// 4. サービス・ユースケースの初期化
	store := service.NewSessionStore(service.SessionDeps{
		Directions:   directions,
		Autocomplete: places,
		Itineraries:  itineraries,
		Debounce: service.DebouncerConfig{
			Window:   cfg.SuggestionDebounce,
			MinChars: cfg.SuggestionMinChars,
		},
	}, cfg.SessionTTL)
	go store.RunJanitor(ctx, time.Minute)

	itineraryUseCase := usecase.NewItineraryUseCase(itineraries, store)
	handlers := &handler.Handlers{
		Session:   handler.NewSessionHandler(usecase.NewSessionUseCase(store)),
		Itinerary: handler.NewItineraryHandler(itineraryUseCase),
		Tip:       handler.NewTipHandler(usecase.NewTipUseCase(tips, photos)),
		Profile:   handler.NewProfileHandler(usecase.NewProfileUseCase(users, photos, itineraryUseCase, signIn)),
		Places:    handler.NewPlacesHandler(usecase.NewPlaceUseCase(places, cfg.SuggestionMinChars)),
		Catalog:   handler.NewCatalogHandler(usecase.NewCatalogUseCase(catalog, photos)),
		Health:    handler.NewHealthHandler(checks, store.Count),
	}

	// 5. ルーティングの設定
	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	go limiter.RunCleanup(ctx, 5*time.Minute)

	r := gin.New()
	r.Use(
		ginlogger.SetLogger(
			ginlogger.WithWriter(out),
			ginlogger.WithUTC(true),
			ginlogger.WithSkipPath([]string{"/health"}),
		),
		gin.Recovery(),
		middleware.CORS(),
		limiter.Middleware(),
	)
	r.MaxMultipartMemory = 32 << 20
	handler.RegisterRoutes(r, handlers, auth, observer)

	// 6. サーバー起動
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.Infof("🚀 Roterize server starting on :%s (auth: %s, itineraries: %s, tips: %s)",
			cfg.Port, cfg.AuthMode, cfg.ItineraryBackend, cfg.TipsBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("❌ サーバーの起動に失敗: %v", err)
		}
	}()

	<-ctx.Done()
	logrus.Info("🛑 シャットダウンしています...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("❌ シャットダウンに失敗: %v", err)
	}
}
