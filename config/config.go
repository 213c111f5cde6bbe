package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration parameters, loaded from environment variables.
type Config struct {
	MongoURI      string `envconfig:"MONGO_URI" required:"true"`
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"aipress"`

	HTTPPort     string `envconfig:"HTTP_PORT" default:"8000"`
	APISecretKey string `envconfig:"API_SECRET_KEY"`

	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY" required:"true"`
	OpenAIModel  string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`

	// Every model call is unbounded otherwise, so each workflow stage runs
	// under its own deadline.
	StageTimeout    time.Duration `envconfig:"WORKFLOW_STAGE_TIMEOUT" default:"5m"`
	QuestionWorkers int           `envconfig:"QUESTION_WORKERS" default:"3"`
	QuestionTarget  int           `envconfig:"QUESTION_TARGET" default:"2"`

	CronSchedule string `envconfig:"CRON_SCHEDULE" default:"0 6 * * *"`

	SearchResults  int    `envconfig:"SEARCH_RESULTS" default:"10"`
	TrustedDomains string `envconfig:"TRUSTED_DOMAINS" default:".gov,.edu,bbc.com,nytimes.com,researchgate.net,theguardian.com,thetimes.co.uk,reuters.com,worldbank.org,legit.ng,zawya.com,businessday.ng,aljazeera.com,ft.com,nairametrics.com,africanews.com,businessdailyafrica.com,cnbcafrica.com"`
}

// TrustedDomainList splits the configured trusted domains into a slice.
func (c *Config) TrustedDomainList() []string {
	parts := strings.Split(c.TrustedDomains, ",")
	domains := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			domains = append(domains, p)
		}
	}
	return domains
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	err := envconfig.Process("", &c)
	return &c, err
}
