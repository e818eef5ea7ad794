package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/quiz-framework/quiz-backend/pkg/apihelpers"
	"github.com/quiz-framework/quiz-backend/pkg/db"
	messagingTypes "github.com/quiz-framework/quiz-backend/pkg/messaging/types"
	usermanagement "github.com/quiz-framework/quiz-backend/pkg/user-management"
	"github.com/quiz-framework/quiz-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v2"

	"github.com/quiz-framework/quiz-backend/pkg/messaging/sms"

	quizDB "github.com/quiz-framework/quiz-backend/pkg/db/quiz"
	userDB "github.com/quiz-framework/quiz-backend/pkg/db/user"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_USER_DB_USERNAME = "USER_DB_USERNAME"
	ENV_USER_DB_PASSWORD = "USER_DB_PASSWORD"
	ENV_QUIZ_DB_USERNAME = "QUIZ_DB_USERNAME"
	ENV_QUIZ_DB_PASSWORD = "QUIZ_DB_PASSWORD"

	ENV_SMS_GATEWAY_API_KEY = "SMS_GATEWAY_API_KEY"

	ENV_QUIZ_USER_JWT_SIGN_KEY = "QUIZ_USER_JWT_SIGN_KEY"
	ENV_OTP_TTL                = "OTP_TTL"
)

type QuizApiConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`

		// Mutual TLS configs
		MTLS struct {
			Use              bool                        `json:"use" yaml:"use"`
			CertificatePaths apihelpers.CertificatePaths `json:"certificate_paths" yaml:"certificate_paths"`
		} `json:"mtls" yaml:"mtls"`
	} `json:"gin_config" yaml:"gin_config"`

	// user management configs
	UserManagementConfig struct {
		OTPConfig struct {
			TTL time.Duration `json:"ttl" yaml:"ttl"`
		} `json:"otp_config" yaml:"otp_config"`
		QuizUserJWTConfig struct {
			SignKey   string        `json:"sign_key" yaml:"sign_key"`
			ExpiresIn time.Duration `json:"expires_in" yaml:"expires_in"`
		} `json:"quiz_user_jwt_config" yaml:"quiz_user_jwt_config"`
	} `json:"user_management_config" yaml:"user_management_config"`

	// DB configs
	DBConfigs struct {
		UserDB db.DBConfigYaml `json:"user_db" yaml:"user_db"`
		QuizDB db.DBConfigYaml `json:"quiz_db" yaml:"quiz_db"`
	} `json:"db_configs" yaml:"db_configs"`

	MessagingConfigs messagingTypes.MessagingConfigs `json:"messaging_configs" yaml:"messaging_configs"`
}

var (
	userDBService *userDB.UserDBService
	quizDBService *quizDB.QuizDBService
)

func init() {
	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
	utils.InitLogger(
		conf.Logging.LogLevel,
		conf.Logging.IncludeSrc,
		conf.Logging.LogToFile,
		conf.Logging.Filename,
		conf.Logging.MaxSize,
		conf.Logging.MaxAge,
		conf.Logging.MaxBackups,
		conf.Logging.CompressOldLogs,
		conf.Logging.IncludeBuildInfo,
	)

	// Override secrets from environment variables
	secretsOverride()

	// Init DBs
	initDBs()

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	if conf.UserManagementConfig.QuizUserJWTConfig.SignKey == "" {
		panic("JWT sign key not set")
	}
	if conf.UserManagementConfig.QuizUserJWTConfig.ExpiresIn <= 0 {
		conf.UserManagementConfig.QuizUserJWTConfig.ExpiresIn = 24 * time.Hour
	}

	// init user management
	initUserManagement()

	// init message sending config
	initMessageSendingConfig()
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_USER_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.UserDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_USER_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.UserDB.Password = dbPassword
	}

	if dbUsername := os.Getenv(ENV_QUIZ_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.QuizDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_QUIZ_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.QuizDB.Password = dbPassword
	}

	if smsGatewayAPIKey := os.Getenv(ENV_SMS_GATEWAY_API_KEY); smsGatewayAPIKey != "" {
		if conf.MessagingConfigs.SMSConfig == nil {
			conf.MessagingConfigs.SMSConfig = &messagingTypes.SMSGatewayConfig{}
		}
		conf.MessagingConfigs.SMSConfig.APIKey = smsGatewayAPIKey
	}

	if quizUserJwtSignKey := os.Getenv(ENV_QUIZ_USER_JWT_SIGN_KEY); quizUserJwtSignKey != "" {
		conf.UserManagementConfig.QuizUserJWTConfig.SignKey = quizUserJwtSignKey
	}

	if otpTTL := os.Getenv(ENV_OTP_TTL); otpTTL != "" {
		ttl, err := utils.ParseDurationString(otpTTL)
		if err != nil {
			panic(err)
		}
		conf.UserManagementConfig.OTPConfig.TTL = ttl
	}
}

func initUserManagement() {
	usermanagement.Init(
		userDBService,
		conf.UserManagementConfig.OTPConfig.TTL,
	)
}

func initMessageSendingConfig() {
	sms.Init(
		conf.MessagingConfigs.SMSConfig,
	)
}

func initDBs() {
	var err error
	userDBService, err = userDB.NewUserDBService(db.DBConfigFromYamlObj(conf.DBConfigs.UserDB))
	if err != nil {
		slog.Error("Error connecting to User DB", slog.String("error", err.Error()))
		return
	}

	quizDBService, err = quizDB.NewQuizDBService(db.DBConfigFromYamlObj(conf.DBConfigs.QuizDB))
	if err != nil {
		slog.Error("Error connecting to Quiz DB", slog.String("error", err.Error()))
		return
	}
}
