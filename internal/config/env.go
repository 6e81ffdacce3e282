package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ytget/songlist/internal/platform"
)

// Environment variable names
const (
	EnvDataDir     = "SONGLIST_DATA_DIR"
	EnvDBFile      = "SONGLIST_DB_FILE"
	EnvSongsFile   = "SONGLIST_SONGS_FILE"
	EnvLogLevel    = "SONGLIST_LOG_LEVEL"
	EnvHTTPTimeout = "SONGLIST_HTTP_TIMEOUT"
	EnvWatch       = "SONGLIST_WATCH"
)

const (
	defaultDBFileName    = "songs.db"
	defaultSongsFileName = "songs.json"
	defaultLogLevel      = "info"
	defaultHTTPTimeout   = 15 * time.Second
)

// Env holds process level configuration read from the environment and an
// optional .env file.
type Env struct {
	DataDir     string        `json:"data_dir"`
	DBPath      string        `json:"db_path"`
	SongsFile   string        `json:"songs_file"`
	LogLevel    string        `json:"log_level"`
	HTTPTimeout time.Duration `json:"http_timeout"`
	Watch       bool          `json:"watch"`
}

// LoadEnv loads .env files (missing files are ignored), applies defaults and
// creates the data directory.
func LoadEnv(files ...string) (*Env, error) {
	_ = godotenv.Load(files...)

	env := &Env{
		DataDir:     os.Getenv(EnvDataDir),
		DBPath:      os.Getenv(EnvDBFile),
		SongsFile:   os.Getenv(EnvSongsFile),
		LogLevel:    strings.ToLower(strings.TrimSpace(os.Getenv(EnvLogLevel))),
		HTTPTimeout: parseDurationOrDefault(os.Getenv(EnvHTTPTimeout), defaultHTTPTimeout),
		Watch:       parseBoolOrDefault(os.Getenv(EnvWatch), false),
	}

	if env.DataDir == "" {
		dir, err := platform.GetDefaultDataDir()
		if err != nil {
			return nil, err
		}
		env.DataDir = dir
	}
	if env.DBPath == "" {
		env.DBPath = filepath.Join(env.DataDir, defaultDBFileName)
	}
	if env.SongsFile == "" {
		env.SongsFile = filepath.Join(env.DataDir, defaultSongsFileName)
	}
	if env.LogLevel == "" {
		env.LogLevel = defaultLogLevel
	}

	if err := platform.CreateDirectoryIfNotExists(env.DataDir); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", env.DataDir, err)
	}
	logrus.Debugf("Environment loaded: DataDir=%s, DBPath=%s, SongsFile=%s", env.DataDir, env.DBPath, env.SongsFile)
	return env, nil
}

func parseDurationOrDefault(s string, defaultValue time.Duration) time.Duration {
	if s == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		logrus.Warnf("Could not parse duration %q, using default %v", s, defaultValue)
		return defaultValue
	}
	return d
}

func parseBoolOrDefault(s string, defaultValue bool) bool {
	if s == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		logrus.Warnf("Could not parse boolean %q, using default %t", s, defaultValue)
		return defaultValue
	}
	return b
}
