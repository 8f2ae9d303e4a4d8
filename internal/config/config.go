package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type JWTConfig struct {
	SecretKey      string        `mapstructure:"secret_key"`
	Issuer         string        `mapstructure:"issuer"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
}

type FirebaseConfig struct {
	ProjectID       string `mapstructure:"project_id"`
	CredentialsFile string `mapstructure:"credentials_file"`
	// UseMemoryStore swaps Firestore and Firebase Auth for in-process fakes.
	UseMemoryStore bool   `mapstructure:"use_memory_store"`
	SeedFile       string `mapstructure:"seed_file"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	URL    string `mapstructure:"url"`
}

type PurgeConfig struct {
	BatchLimit    int `mapstructure:"batch_limit"`
	BatchHeadroom int `mapstructure:"batch_headroom"`
	PageSize      int `mapstructure:"page_size"`
	Concurrency   int `mapstructure:"concurrency"`
}

type CacheConfig struct {
	UserListTTL time.Duration `mapstructure:"user_list_ttl"`
}

type MailerConfig struct {
	Type string `mapstructure:"type"`
}

type SMTPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	From string `mapstructure:"from"`
}

type SESConfig struct {
	Region          string `mapstructure:"region"`
	From            string `mapstructure:"from"`
	AuthType        string `mapstructure:"auth_type"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	CORS     CORSConfig     `mapstructure:"cors"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Firebase FirebaseConfig `mapstructure:"firebase"`
	Database DatabaseConfig `mapstructure:"database"`
	Purge    PurgeConfig    `mapstructure:"purge"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Mailer   MailerConfig   `mapstructure:"mailer"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	SES      SESConfig      `mapstructure:"ses"`
}

var Cfg Config

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	// Unmarshal only sees env values for keys viper knows about.
	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("firebase.project_id", "FIREBASE_PROJECT_ID", "GOOGLE_CLOUD_PROJECT")
	viper.BindEnv("firebase.credentials_file", "GOOGLE_APPLICATION_CREDENTIALS")
	viper.BindEnv("firebase.use_memory_store")
	viper.BindEnv("log.level")
	viper.BindEnv("mailer.type")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using defaults and environment variables.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	applyFallbacks(&Cfg)

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Firestore: project=%q memory=%t", Cfg.Firebase.ProjectID, Cfg.Firebase.UseMemoryStore)
	log.Printf("Purge: batch=%d headroom=%d page=%d concurrency=%d",
		Cfg.Purge.BatchLimit, Cfg.Purge.BatchHeadroom, Cfg.Purge.PageSize, Cfg.Purge.Concurrency)
	return nil
}

func setDefaults() {
	viper.SetDefault("server.port", DefaultServerPort)
	viper.SetDefault("log.level", DefaultLogLevel)
	viper.SetDefault("database.driver", DefaultDatabaseDriver)
	viper.SetDefault("purge.batch_limit", DefaultBatchLimit)
	viper.SetDefault("purge.batch_headroom", DefaultBatchHeadroom)
	viper.SetDefault("purge.page_size", DefaultPageSize)
	viper.SetDefault("purge.concurrency", DefaultConcurrency)
	viper.SetDefault("cache.user_list_ttl", DefaultUserListTTL)
	viper.SetDefault("mailer.type", DefaultMailerType)
	viper.SetDefault("jwt.access_token_ttl", DefaultAccessTokenTTL)
	viper.SetDefault("jwt.issuer", AppName)
	viper.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"})
	viper.SetDefault("cors.allowed_headers", []string{"Authorization", "Content-Type", "X-User-ID"})
}

// applyFallbacks repairs values that are set but unusable.
func applyFallbacks(c *Config) {
	if c.Purge.BatchLimit <= 0 || c.Purge.BatchLimit > MaxBatchLimit {
		log.Printf("purge.batch_limit %d out of range, using %d", c.Purge.BatchLimit, MaxBatchLimit)
		c.Purge.BatchLimit = MaxBatchLimit
	}
	if c.Purge.BatchHeadroom <= 0 || c.Purge.BatchHeadroom > c.Purge.BatchLimit {
		log.Printf("purge.batch_headroom %d out of range, using %d", c.Purge.BatchHeadroom, c.Purge.BatchLimit)
		c.Purge.BatchHeadroom = c.Purge.BatchLimit
	}
	if c.Purge.PageSize <= 0 || c.Purge.PageSize > c.Purge.BatchLimit {
		c.Purge.PageSize = c.Purge.BatchLimit
	}
	if c.Purge.Concurrency <= 0 {
		c.Purge.Concurrency = 1
	}
	if c.JWT.SecretKey == "" {
		log.Println("Warning: jwt.secret_key is not set; admin routes will reject every token.")
	}
	if c.Database.URL == "" {
		log.Println("Warning: database.url is not set; audit records are disabled.")
	}
}
