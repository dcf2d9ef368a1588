package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds every runtime setting read from the environment.
type AppConfig struct {
	Env      string
	Port     string
	LogLevel string

	JWTSecret string
	JWTTTL    time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	CorsOrigins []string

	StorageDriver string // local | oss
	UploadDir     string
	PublicBaseURL string // oss object URL base, e.g. a CDN
	MaxUploadSize int64

	OSSEndpoint  string
	OSSAccessKey string
	OSSSecretKey string
	OSSBucket    string
	OSSPrefix    string

	BlacklistCleanupCron string

	// platform operator created at startup when both are set
	PlatformDomain     string
	SuperAdminEmail    string
	SuperAdminPassword string
}

var (
	App       AppConfig
	JWTSecret string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment")
	}

	App = AppConfig{
		Env:      GetEnv("APP_ENV", "development"),
		Port:     GetEnv("PORT", "3000"),
		LogLevel: GetEnv("LOG_LEVEL", "info"),

		JWTSecret: GetEnv("JWT_SECRET"),
		JWTTTL:    GetDuration("JWT_TTL", 24*time.Hour),

		DBHost:     GetEnv("DB_HOST", "localhost"),
		DBPort:     GetEnv("DB_PORT", "5432"),
		DBUser:     GetEnv("DB_USER", "postgres"),
		DBPassword: GetEnv("DB_PASSWORD"),
		DBName:     GetEnv("DB_NAME", "schoolku"),
		DBSSLMode:  GetEnv("DB_SSLMODE", "disable"),

		CorsOrigins: splitCSV(GetEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),

		StorageDriver: strings.ToLower(GetEnv("STORAGE_DRIVER", "local")),
		UploadDir:     GetEnv("UPLOAD_DIR", "./uploads"),
		PublicBaseURL: GetEnv("PUBLIC_BASE_URL", ""),
		MaxUploadSize: int64(GetInt("MAX_UPLOAD_MB", 100)) * 1024 * 1024,

		OSSEndpoint:  GetEnv("ALI_OSS_ENDPOINT"),
		OSSAccessKey: GetEnv("ALI_OSS_ACCESS_KEY"),
		OSSSecretKey: GetEnv("ALI_OSS_SECRET_KEY"),
		OSSBucket:    GetEnv("ALI_OSS_BUCKET"),
		OSSPrefix:    GetEnv("ALI_OSS_PREFIX", "content"),

		BlacklistCleanupCron: GetEnv("BLACKLIST_CLEANUP_CRON", "0 3 * * *"),

		PlatformDomain:     GetEnv("PLATFORM_DOMAIN", "platform.local"),
		SuperAdminEmail:    GetEnv("SUPERADMIN_EMAIL"),
		SuperAdminPassword: GetEnv("SUPERADMIN_PASSWORD"),
	}
	JWTSecret = App.JWTSecret

	if JWTSecret == "" {
		log.Println("JWT_SECRET is not set")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func GetDuration(key string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

// IsDevelopment reports whether raw error detail may be returned to clients.
func IsDevelopment() bool {
	env := App.Env
	if env == "" {
		env = os.Getenv("APP_ENV")
	}
	return strings.EqualFold(env, "development")
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
