package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	JWTSecret string

	// TTL token QR kehadiran (rotating)
	QRTokenTTL = 15 * time.Minute

	// Debounce scan session (lihat scan/session)
	ScanReleaseDelay  = 1 * time.Second
	ScanSuppressDelay = 3 * time.Second
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}

	if v := GetEnvInt("QR_TOKEN_TTL_MINUTES", 0); v > 0 {
		QRTokenTTL = time.Duration(v) * time.Minute
	}
	if v := GetEnvInt("SCAN_RELEASE_DELAY_MS", 0); v > 0 {
		ScanReleaseDelay = time.Duration(v) * time.Millisecond
	}
	if v := GetEnvInt("SCAN_SUPPRESS_DELAY_MS", 0); v > 0 {
		ScanSuppressDelay = time.Duration(v) * time.Millisecond
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️ %s bukan angka (%q), pakai default %d", key, v, def)
		return def
	}
	return n
}
