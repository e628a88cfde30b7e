package config

import (
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"jobwatch/pkg/utils"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         int           `yaml:"port"`
		Host         string        `yaml:"host"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"server"`

	Search struct {
		Keywords       string `yaml:"keywords"`
		Skills         string `yaml:"skills"`        // comma-separated, blank = any
		IndustryName   string `yaml:"industry_name"` // blank = prompt (interactive) or all
		Interactive    bool   `yaml:"interactive"`
		MaxDaysOld     int    `yaml:"max_days_old"`
		ResultsPerPage int    `yaml:"results_per_page"`
		MaxWorkers     int    `yaml:"max_workers"`
	} `yaml:"search"`

	Scraper struct {
		BaseURL        string        `yaml:"base_url"`
		UserAgent      string        `yaml:"user_agent"`
		MaxRetries     int           `yaml:"max_retries"`
		RequestTimeout time.Duration `yaml:"request_timeout"`
		RateLimit      int           `yaml:"rate_limit"` // requests per minute
	} `yaml:"scraper"`

	Output struct {
		Path           string        `yaml:"path"`
		UpdateInterval time.Duration `yaml:"update_interval"`
	} `yaml:"output"`

	Logging struct {
		Level    string `yaml:"level"`
		Format   string `yaml:"format"` // json or text
		FilePath string `yaml:"file_path"`
	} `yaml:"logging"`
}

// expandEnvVars expands environment variables in a string using ${VAR} or $VAR syntax
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	return s
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := &Config{}

	// Set defaults
	config.Server.Port = 8080
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second

	config.Search.Keywords = "java"
	config.Search.MaxDaysOld = 30
	config.Search.ResultsPerPage = 200
	config.Search.MaxWorkers = 50

	config.Scraper.BaseURL = "https://www.timesjobs.com/candidate/job-search.html?searchType=personalizedSearch&from=submit"
	config.Scraper.UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	config.Scraper.MaxRetries = 3
	config.Scraper.RequestTimeout = 30 * time.Second
	config.Scraper.RateLimit = 120

	config.Output.Path = "jobs.txt"
	config.Output.UpdateInterval = 10 * time.Minute

	config.Logging.Level = "info"
	config.Logging.Format = "text"

	// Load from YAML file if it exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			yamlContent := expandEnvVars(string(data))

			if err := yaml.Unmarshal([]byte(yamlContent), config); err != nil {
				return nil, err
			}
		}
	}

	// Override with environment variables
	config.loadFromEnv()

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// validate rejects scraper settings that would stall or break every fetch.
func (c *Config) validate() error {
	if c.Scraper.MaxRetries < 1 {
		return utils.NewConfigurationError("scraper.max_retries", "must be at least 1")
	}
	// A zero-rate limiter blocks forever once its burst is spent.
	if c.Scraper.RateLimit < 1 {
		return utils.NewConfigurationError("scraper.rate_limit", "must be positive")
	}
	if c.Scraper.RequestTimeout <= 0 {
		return utils.NewConfigurationError("scraper.request_timeout", "must be positive")
	}
	return nil
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

	if keywords := os.Getenv("SEARCH_KEYWORDS"); keywords != "" {
		c.Search.Keywords = keywords
	}

	if skills := os.Getenv("SEARCH_SKILLS"); skills != "" {
		c.Search.Skills = skills
	}

	if industry := os.Getenv("SEARCH_INDUSTRY"); industry != "" {
		c.Search.IndustryName = industry
	}

	if maxDays := os.Getenv("SEARCH_MAX_DAYS_OLD"); maxDays != "" {
		if days, err := strconv.Atoi(maxDays); err == nil {
			c.Search.MaxDaysOld = days
		}
	}

	if perPage := os.Getenv("SEARCH_RESULTS_PER_PAGE"); perPage != "" {
		if n, err := strconv.Atoi(perPage); err == nil {
			c.Search.ResultsPerPage = n
		}
	}

	if workers := os.Getenv("SEARCH_MAX_WORKERS"); workers != "" {
		if n, err := strconv.Atoi(workers); err == nil {
			c.Search.MaxWorkers = n
		}
	}

	if baseURL := os.Getenv("SCRAPER_BASE_URL"); baseURL != "" {
		c.Scraper.BaseURL = baseURL
	}

	if userAgent := os.Getenv("SCRAPER_USER_AGENT"); userAgent != "" {
		c.Scraper.UserAgent = userAgent
	}

	if retries := os.Getenv("SCRAPER_MAX_RETRIES"); retries != "" {
		if n, err := strconv.Atoi(retries); err == nil {
			c.Scraper.MaxRetries = n
		}
	}

	if timeout := os.Getenv("SCRAPER_REQUEST_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Scraper.RequestTimeout = d
		}
	}

	if rateLimit := os.Getenv("SCRAPER_RATE_LIMIT"); rateLimit != "" {
		if n, err := strconv.Atoi(rateLimit); err == nil {
			c.Scraper.RateLimit = n
		}
	}

	if path := os.Getenv("OUTPUT_PATH"); path != "" {
		c.Output.Path = path
	}

	if interval := os.Getenv("UPDATE_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			c.Output.UpdateInterval = d
		}
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}

	if logFile := os.Getenv("LOG_FILE_PATH"); logFile != "" {
		c.Logging.FilePath = logFile
	}
}
