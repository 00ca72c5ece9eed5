package utils

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Server configuration
	AppPort string `yaml:"APP_PORT"`
	AppURL  string `yaml:"APP_URL"`

	// Database configuration
	DBDriver   string `yaml:"DB_DRIVER"`
	DBPath     string `yaml:"DB_PATH"`
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Scanner behaviour
	ScanDebounceMs     int    `yaml:"SCAN_DEBOUNCE_MS"`
	ScanResetMs        int    `yaml:"SCAN_RESET_MS"`
	CameraFPS          int    `yaml:"CAMERA_FPS"`
	CameraDetectionBox int    `yaml:"CAMERA_DETECTION_BOX"`
	CameraSelect       string `yaml:"CAMERA_SELECT"`
	CameraMaxFrame     int    `yaml:"CAMERA_MAX_FRAME"`
	ScanSessionTTLMs   int    `yaml:"SCAN_SESSION_TTL_MS"`
	HistoryWorkers     int    `yaml:"HISTORY_WORKERS"`
	HistoryQueue       int    `yaml:"HISTORY_QUEUE"`
}

// ScanConfig holds the timing and capture values of the scan session.
type ScanConfig struct {
	DebounceDelay  time.Duration
	ResetDelay     time.Duration
	FPS            int
	DetectionBox   int
	CameraSelect   string
	MaxFrameSide   int
	SessionTTL     time.Duration
	HistoryWorkers int
	HistoryQueue   int
}

var config Config

// ConfigPath is the file read by LoadConfig.
var ConfigPath = "config.yaml"

func LoadConfig() {
	file, err := os.ReadFile(ConfigPath)
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	if err := ParseConfig(file); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}
}

// ParseConfig replaces the loaded configuration with the given YAML document.
func ParseConfig(data []byte) error {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return err
	}
	config = c
	return nil
}

func GetConfig(key string) string {
	switch key {
	case "APP_PORT":
		return withDefault(config.AppPort, "8080")
	case "APP_URL":
		return config.AppURL
	case "DB_DRIVER":
		return withDefault(config.DBDriver, "postgres")
	case "DB_PATH":
		return withDefault(config.DBPath, "scanner.sqlite3")
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "JWT_SECRET":
		return config.JWTSecret
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "CAMERA_SELECT":
		return withDefault(config.CameraSelect, "last")
	case "SCAN_DEBOUNCE_MS":
		return strconv.Itoa(positiveOr(config.ScanDebounceMs, 300))
	case "SCAN_RESET_MS":
		return strconv.Itoa(positiveOr(config.ScanResetMs, 2000))
	case "CAMERA_FPS":
		return strconv.Itoa(positiveOr(config.CameraFPS, 10))
	case "CAMERA_DETECTION_BOX":
		return strconv.Itoa(positiveOr(config.CameraDetectionBox, 250))
	case "CAMERA_MAX_FRAME":
		return strconv.Itoa(positiveOr(config.CameraMaxFrame, 4096))
	case "SCAN_SESSION_TTL_MS":
		return strconv.Itoa(positiveOr(config.ScanSessionTTLMs, 300000))
	default:
		return ""
	}
}

func GetScanConfig() ScanConfig {
	return ScanConfig{
		DebounceDelay:  time.Duration(positiveOr(config.ScanDebounceMs, 300)) * time.Millisecond,
		ResetDelay:     time.Duration(positiveOr(config.ScanResetMs, 2000)) * time.Millisecond,
		FPS:            positiveOr(config.CameraFPS, 10),
		DetectionBox:   positiveOr(config.CameraDetectionBox, 250),
		CameraSelect:   withDefault(config.CameraSelect, "last"),
		MaxFrameSide:   positiveOr(config.CameraMaxFrame, 4096),
		SessionTTL:     time.Duration(positiveOr(config.ScanSessionTTLMs, 300000)) * time.Millisecond,
		HistoryWorkers: positiveOr(config.HistoryWorkers, 2),
		HistoryQueue:   positiveOr(config.HistoryQueue, 64),
	}
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func positiveOr(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
