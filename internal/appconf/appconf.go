package appconf

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Environment identifies the operating environment for the application.
type Environment int

const (
	Development Environment = iota
	Test
	Production
)

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// EnvFlagToEnvironment maps the -env flag value to an Environment.
// Unrecognized values fall back to Development.
func EnvFlagToEnvironment(flagValue string) Environment {
	switch flagValue {
	case "test":
		return Test
	case "production":
		return Production
	default:
		return Development
	}
}

// Config holds the server-level settings shared by handlers and middleware:
// the port to listen on, the operating environment, the API keys that unlock
// the endpoints (an empty set leaves the API open), the per-client rate
// limit, and the browser origin allowed to call the API.
type Config struct {
	Port          int
	Env           Environment
	ApiKeys       []string
	RateLimit     int // requests per second per client; 0 or less disables limiting
	AllowedOrigin string
}

// EnvDefaults carries the flag defaults that can be overridden through the
// process environment (or a .env file loaded before parsing).
type EnvDefaults struct {
	Port            int           `env:"PORT" envDefault:"8000"`
	Env             string        `env:"ENV" envDefault:"development"`
	ApiKeys         string        `env:"API_KEYS" envDefault:""`
	RateLimit       int           `env:"RATE_LIMIT" envDefault:"100"`
	AllowedOrigin   string        `env:"ALLOWED_ORIGIN" envDefault:"http://localhost:5173"`
	CTGovURL        string        `env:"CTGOV_URL" envDefault:"https://clinicaltrials.gov/api/v2/studies"`
	CTGovPageSize   int           `env:"CTGOV_PAGE_SIZE" envDefault:"500"`
	CTGovTimeout    time.Duration `env:"CTGOV_TIMEOUT" envDefault:"10s"`
	EudractPath     string        `env:"EUDRACT_FILE" envDefault:"data/eudract_data.json"`
	TrialsDBPath    string        `env:"TRIALS_DB_PATH" envDefault:"data/trials.db"`
	SnapshotPath    string        `env:"SNAPSHOT_PATH" envDefault:"data/clinicaltrials_cache.json"`
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"24h"`
	RetryInterval   time.Duration `env:"RETRY_INTERVAL" envDefault:"1h"`
	Verbose         bool          `env:"VERBOSE" envDefault:"false"`
}

// LoadEnvDefaults reads EnvDefaults from the process environment.
func LoadEnvDefaults() (EnvDefaults, error) {
	var d EnvDefaults
	if err := env.Parse(&d); err != nil {
		return d, fmt.Errorf("parsing environment config: %w", err)
	}
	return d, nil
}
