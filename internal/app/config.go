package app

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// DefaultBaseURL is the hosted banking API used when nothing else is
// configured.
const DefaultBaseURL = "https://bank-j2ix.onrender.com"

// Config holds runtime wiring options for building the app.
type Config struct {
	Home    string         // config directory, e.g. $HOME/.teller
	BaseURL string         // banking API base URL
	HTTP    *http.Client   // optional; defaults to a 30s-timeout client
	Logger  zerolog.Logger // optional; defaults to stderr at warn level
}

// LoadConfig resolves the configuration from flags and environment.
// Precedence: explicit flag values, then TELLER_* environment variables
// (an env file under the config dir is loaded first), then defaults.
func LoadConfig(home, baseURL string, verbose bool) (Config, error) {
	if home == "" {
		home = os.Getenv("TELLER_HOME")
	}
	if home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return Config{}, err
		}
		home = filepath.Join(dir, ".teller")
	}
	if err := os.MkdirAll(home, 0o700); err != nil {
		return Config{}, err
	}

	// Missing env file is fine; it is an optional convenience.
	_ = godotenv.Load(filepath.Join(home, "env"))

	if baseURL == "" {
		baseURL = os.Getenv("TELLER_API_URL")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(level)

	return Config{
		Home:    home,
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		Logger:  logger,
	}, nil
}
