package config

import (
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         int           `yaml:"port" default:"8000"`
		Host         string        `yaml:"host" default:"0.0.0.0"`
		ReadTimeout  time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"120s"`
		IdleTimeout  time.Duration `yaml:"idle_timeout" default:"60s"`
		GRPCEnabled  bool          `yaml:"grpc_enabled" default:"true"`
	} `yaml:"server"`

	LLM LLMConfig `yaml:"llm"`

	ATS struct {
		MaxTokens   int     `yaml:"max_tokens" default:"1500"`
		Temperature float64 `yaml:"temperature" default:"0.2"`
	} `yaml:"ats"`

	Database struct {
		URL      string `yaml:"url"`
		MaxConns int32  `yaml:"max_conns" default:"10"`
	} `yaml:"database"`

	Redis struct {
		Enabled  bool          `yaml:"enabled" default:"false"`
		URL      string        `yaml:"url" default:"redis://localhost:6379"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db" default:"0"`
		Timeout  time.Duration `yaml:"timeout" default:"5s"`
	} `yaml:"redis"`

	Latex struct {
		Binary      string        `yaml:"binary" default:"pdflatex"`
		Passes      int           `yaml:"passes" default:"2"`
		PassTimeout time.Duration `yaml:"pass_timeout" default:"30s"`
		WorkDir     string        `yaml:"work_dir"`
		RendererURL string        `yaml:"renderer_url"`
	} `yaml:"latex"`

	Resume struct {
		// BuildLock is one of none, local or redis.
		BuildLock    string        `yaml:"build_lock" default:"none"`
		LockTTL      time.Duration `yaml:"lock_ttl" default:"3m"`
		HistoryLimit int           `yaml:"history_limit" default:"20"`
		HistoryTTL   time.Duration `yaml:"history_ttl" default:"24h"`
	} `yaml:"resume"`

	Firecrawl struct {
		APIKey string `yaml:"api_key"`
		APIURL string `yaml:"api_url" default:"https://api.firecrawl.dev"`
	} `yaml:"firecrawl"`

	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"json"`
		Output string `yaml:"output" default:"stdout"`

		Adapters []struct {
			Name    string                 `yaml:"name"`
			Type    string                 `yaml:"type"`
			Enabled bool                   `yaml:"enabled"`
			Options map[string]interface{} `yaml:"options"`
		} `yaml:"adapters"`
	} `yaml:"logging"`

	DigitalOcean struct {
		Spaces struct {
			BucketURL       string `yaml:"bucket_url"`
			CDNEndpoint     string `yaml:"cdn_endpoint"`
			AccessKeyID     string `yaml:"access_key_id"`
			AccessKeySecret string `yaml:"access_key_secret"`
			Region          string `yaml:"region" default:"tor1"`
			BucketName      string `yaml:"bucket_name"`
		} `yaml:"spaces"`
	} `yaml:"digitalocean"`
}

// LLMConfig is the explicit configuration the generation client is built from
type LLMConfig struct {
	Provider    string        `yaml:"provider" default:"openrouter"`
	APIKey      string        `yaml:"api_key"`
	BaseURL     string        `yaml:"base_url" default:"https://openrouter.ai/api/v1"`
	Model       string        `yaml:"model" default:"deepseek/deepseek-r1"`
	MaxTokens   int           `yaml:"max_tokens" default:"2500"`
	Temperature float64       `yaml:"temperature" default:"0.7"`
	Timeout     time.Duration `yaml:"timeout" default:"60s"`
	Referer     string        `yaml:"referer" default:"http://localhost:8000"`
	Title       string        `yaml:"title" default:"Job Application Organizer"`
	RateLimit   int           `yaml:"rate_limit" default:"0"` // requests per minute, 0 disables
}

// Defaults of the OpenAI-compatible generation endpoint. Alternative providers
// substitute their own base URL and model when these are left unchanged.
const (
	DefaultLLMBaseURL = "https://openrouter.ai/api/v1"
	DefaultLLMModel   = "deepseek/deepseek-r1"
)

var (
	bracedVarRe = regexp.MustCompile(`\$\{([^}]+)\}`)
	plainVarRe  = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands ${VAR} and $VAR references, leaving unknown ones untouched
func expandEnvVars(s string) string {
	s = bracedVarRe.ReplaceAllStringFunc(s, func(match string) string {
		if val := os.Getenv(match[2 : len(match)-1]); val != "" {
			return val
		}
		return match
	})

	return plainVarRe.ReplaceAllStringFunc(s, func(match string) string {
		if val := os.Getenv(match[1:]); val != "" {
			return val
		}
		return match
	})
}

// Default returns a configuration populated with defaults only
func Default() *Config {
	config := &Config{}

	config.Server.Port = 8000
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 120 * time.Second
	config.Server.IdleTimeout = 60 * time.Second
	config.Server.GRPCEnabled = true

	config.LLM.Provider = "openrouter"
	config.LLM.BaseURL = DefaultLLMBaseURL
	config.LLM.Model = DefaultLLMModel
	config.LLM.MaxTokens = 2500
	config.LLM.Temperature = 0.7
	config.LLM.Timeout = 60 * time.Second
	config.LLM.Referer = "http://localhost:8000"
	config.LLM.Title = "Job Application Organizer"

	config.ATS.MaxTokens = 1500
	config.ATS.Temperature = 0.2

	config.Database.MaxConns = 10

	config.Redis.URL = "redis://localhost:6379"
	config.Redis.Timeout = 5 * time.Second

	config.Latex.Binary = "pdflatex"
	config.Latex.Passes = 2
	config.Latex.PassTimeout = 30 * time.Second

	config.Resume.BuildLock = "none"
	config.Resume.LockTTL = 3 * time.Minute
	config.Resume.HistoryLimit = 20
	config.Resume.HistoryTTL = 24 * time.Hour

	config.Firecrawl.APIURL = "https://api.firecrawl.dev"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
	config.Logging.Output = "stdout"

	config.DigitalOcean.Spaces.Region = "tor1"

	return config
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := Default()

	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			yamlContent := expandEnvVars(string(data))

			if err := yaml.Unmarshal([]byte(yamlContent), config); err != nil {
				return nil, err
			}
		}
	}

	config.loadFromEnv()

	return config, nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		c.LLM.Provider = provider
	}

	// OPENROUTER_API_KEY, API_BASE_URL and MODEL_NAME are kept for existing deployments
	for _, key := range []string{"OPENROUTER_API_KEY", "LLM_API_KEY"} {
		if apiKey := os.Getenv(key); apiKey != "" {
			c.LLM.APIKey = apiKey
		}
	}

	for _, key := range []string{"API_BASE_URL", "LLM_BASE_URL"} {
		if baseURL := os.Getenv(key); baseURL != "" {
			c.LLM.BaseURL = baseURL
		}
	}

	for _, key := range []string{"MODEL_NAME", "LLM_MODEL"} {
		if model := os.Getenv(key); model != "" {
			c.LLM.Model = model
		}
	}

	if timeout := os.Getenv("LLM_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.LLM.Timeout = d
		}
	}

	if rateLimit := os.Getenv("LLM_RATE_LIMIT"); rateLimit != "" {
		if n, err := strconv.Atoi(rateLimit); err == nil {
			c.LLM.RateLimit = n
		}
	}

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		c.Database.URL = dbURL
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.URL = redisURL
		c.Redis.Enabled = true
	}

	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		c.Redis.Password = redisPassword
	}

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			c.Redis.DB = db
		}
	}

	if rendererURL := os.Getenv("PDF_RENDERER_URL"); rendererURL != "" {
		c.Latex.RendererURL = rendererURL
	}

	if binary := os.Getenv("LATEX_BINARY"); binary != "" {
		c.Latex.Binary = binary
	}

	if lock := os.Getenv("RESUME_BUILD_LOCK"); lock != "" {
		c.Resume.BuildLock = lock
	}

	if firecrawlAPIKey := os.Getenv("FIRECRAWL_API_KEY"); firecrawlAPIKey != "" {
		c.Firecrawl.APIKey = firecrawlAPIKey
	}

	if firecrawlAPIURL := os.Getenv("FIRECRAWL_API_URL"); firecrawlAPIURL != "" {
		c.Firecrawl.APIURL = firecrawlAPIURL
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}

	// DigitalOcean Spaces configuration
	if bucketURL := os.Getenv("BUCKET_URL"); bucketURL != "" {
		c.DigitalOcean.Spaces.BucketURL = bucketURL
	}

	if cdnEndpoint := os.Getenv("BUCKET_CDN_ENDPOINT"); cdnEndpoint != "" {
		c.DigitalOcean.Spaces.CDNEndpoint = cdnEndpoint
	}

	if accessKeyID := os.Getenv("BUCKET_ACCESS_KEY_ID"); accessKeyID != "" {
		c.DigitalOcean.Spaces.AccessKeyID = accessKeyID
	}

	if accessKeySecret := os.Getenv("BUCKET_ACCESS_KEY_SECRET"); accessKeySecret != "" {
		c.DigitalOcean.Spaces.AccessKeySecret = accessKeySecret
	}

	if region := os.Getenv("BUCKET_REGION"); region != "" {
		c.DigitalOcean.Spaces.Region = region
	}

	if bucketName := os.Getenv("BUCKET_NAME"); bucketName != "" {
		c.DigitalOcean.Spaces.BucketName = bucketName
	}

	c.loadLoggingAdapterEnvVars()
}

// loadLoggingAdapterEnvVars lets the file adapter path be set without editing the YAML
func (c *Config) loadLoggingAdapterEnvVars() {
	for i := range c.Logging.Adapters {
		adapter := &c.Logging.Adapters[i]

		if adapter.Type != "file" {
			continue
		}
		if path := os.Getenv("LOG_FILE_PATH"); path != "" {
			if adapter.Options == nil {
				adapter.Options = make(map[string]interface{})
			}
			adapter.Options["file_path"] = path
		}
	}
}
