// file: internals/configs/config.go
package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	JWTSecret        string
	UploadDir        string
	VisionAPIBase    string
	VisionAPIBaseOld string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ no .env file found, using system ENV")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	UploadDir = GetEnvDefault("UPLOAD_DIR", "./static/uploads")
	VisionAPIBase = GetEnvDefault("VISION_API_BASE", "https://open.bigmodel.cn/api/paas/v4")
	VisionAPIBaseOld = GetEnvDefault("VISION_API_BASE_LEGACY", "https://open.bigmodel.cn/api/paas/v3")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set!")
	}
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

func GetEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
