package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Keys     APIKeys
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	QueryTimeout       time.Duration
	PersistTopic       string
}

type DatabaseConfig struct {
	Connection string
}

type StorageConfig struct {
	MediaDir  string // incoming uploads + pipeline temp files
	UploadDir string // persisted frames, served under /uploads
}

type APIKeys struct {
	OpenAI    string
	Anthropic string
}

type AIConfig struct {
	VisionProvider string // "anthropic" or "openai"
	VisionModel    string
	SttModel       string
	TtsModel       string
	TtsVoice       string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			QueryTimeout:       time.Duration(getEnvAsInt("QUERY_TIMEOUT", 120)) * time.Second,
			PersistTopic:       getEnv("PERSIST_QUERY_TOPIC_NAME", "PERSIST_QUERY"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Storage: StorageConfig{
			MediaDir:  getEnv("MEDIA_DIR", "media"),
			UploadDir: getEnv("UPLOAD_DIR", "uploads"),
		},
		Keys: APIKeys{
			OpenAI:    getEnv("OPENAI_API_KEY", ""),
			Anthropic: getEnv("ANTHROPIC_API_KEY", ""),
		},
		Ai: AIConfig{
			VisionProvider: getEnv("VISION_PROVIDER", "anthropic"),
			VisionModel:    getEnv("VISION_MODEL", "claude-3-haiku-20240307"),
			SttModel:       getEnv("STT_MODEL", "whisper-1"),
			TtsModel:       getEnv("TTS_MODEL", "tts-1"),
			TtsVoice:       getEnv("TTS_VOICE", "alloy"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
