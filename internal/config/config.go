package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// バックエンドの種類
const (
	AuthModeFirebase = "firebase"
	AuthModeJWT      = "jwt"

	BackendFirestore = "firestore"
	BackendPostgres  = "postgres"
	BackendSupabase  = "supabase"
	BackendMemory    = "memory"
)

// Config はアプリケーション全体の設定
type Config struct {
	Port    string
	GinMode string

	// Firebase / Firestore
	FirestoreProjectID    string
	CredentialsFile       string
	FirebaseStorageBucket string

	// Google Maps
	GoogleMapsAPIKey string
	MapsLanguage     string
	PlacesQPS        float64

	// 認証
	AuthMode  string
	JWTSecret string
	JWTTTL    time.Duration

	// 永続化
	ItineraryBackend string
	DatabaseURL      string
	TipsBackend      string
	SupabaseURL      string
	SupabaseAnonKey  string

	// 入力補完
	SuggestionDebounce time.Duration
	SuggestionMinChars int

	// HTTP
	RateLimitPerMinute int
	RateLimitBurst     int
	SessionTTL         time.Duration

	// ログ
	LogFile  string
	LogLevel string
}

// Load は.envファイルと環境変数から設定を読み込む
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ .envファイルが見つかりません、環境変数を使用します: %v", err)
	}
	return FromEnv()
}

// FromEnv は環境変数のみから設定を読み込む
func FromEnv() *Config {
	return &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),

		FirestoreProjectID:    getEnv("FIRESTORE_PROJECT_ID", ""),
		CredentialsFile:       getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		FirebaseStorageBucket: getEnv("FIREBASE_STORAGE_BUCKET", ""),

		GoogleMapsAPIKey: getEnv("GOOGLE_MAPS_API_KEY", ""),
		MapsLanguage:     getEnv("MAPS_LANGUAGE", "pt-BR"),
		PlacesQPS:        getEnvFloat("PLACES_QPS", 10),

		AuthMode:  strings.ToLower(getEnv("AUTH_MODE", AuthModeFirebase)),
		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTTTL:    time.Duration(getEnvInt("JWT_TTL_HOURS", 24)) * time.Hour,

		ItineraryBackend: strings.ToLower(getEnv("ITINERARY_BACKEND", BackendFirestore)),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		TipsBackend:      strings.ToLower(getEnv("TIPS_BACKEND", BackendFirestore)),
		SupabaseURL:      getEnv("SUPABASE_URL", ""),
		SupabaseAnonKey:  getEnv("SUPABASE_ANON_KEY", ""),

		SuggestionDebounce: time.Duration(getEnvInt("SUGGESTION_DEBOUNCE_MS", 300)) * time.Millisecond,
		SuggestionMinChars: getEnvInt("SUGGESTION_MIN_CHARS", 2),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 20),
		SessionTTL:         time.Duration(getEnvInt("SESSION_TTL_MINUTES", 30)) * time.Minute,

		LogFile:  getEnv("LOG_FILE", ""),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// UsesFirebase はFirebase Admin SDKの初期化が必要かどうかを判定する
func (c *Config) UsesFirebase() bool {
	return c.AuthMode == AuthModeFirebase ||
		c.ItineraryBackend == BackendFirestore ||
		c.TipsBackend == BackendFirestore ||
		c.FirebaseStorageBucket != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
