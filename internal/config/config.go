package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	SMTP     SMTPConfig
	Keys     APIKeys
	Ai       AIConfig
	Pipeline PipelineConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	// Bcrypt hash gating the login endpoint. Fatal when absent.
	PasswordHash string
	UploadDir    string
	ArtifactDir  string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Email    string
	Password string
}

type APIKeys struct {
	Tavily string
	OpenAI string
	// Google Calendar authorized-user token blob. Absence degrades
	// calendar sync to a "not configured" outcome.
	GoogleCalendarToken string
}

type AIConfig struct {
	LLMProvider   string // "openai", "ollama"
	LLMModel      string
	OllamaBaseURL string
}

type PipelineConfig struct {
	// Wall-clock ceiling for one crew run, in minutes.
	TimeoutMinutes int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			PasswordHash:       getEnv("APP_PASSWORD_HASH", ""),
			UploadDir:          getEnv("UPLOAD_DIR", "uploads"),
			ArtifactDir:        getEnv("ARTIFACT_DIR", "artifacts"),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Email:    getEnv("SENDER_EMAIL", ""),
			Password: getEnv("EMAIL_PASSWORD", ""),
		},
		Keys: APIKeys{
			Tavily:              getEnv("TAVILY_API_KEY", ""),
			OpenAI:              getEnv("OPENAI_API_KEY", ""),
			GoogleCalendarToken: getEnv("GOOGLE_CALENDAR_TOKEN_JSON", ""),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "openai"),
			LLMModel:      getEnv("LLM_MODEL", "gpt-4o-mini"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
		Pipeline: PipelineConfig{
			TimeoutMinutes: getEnvAsInt("PIPELINE_TIMEOUT_MINUTES", 15),
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
