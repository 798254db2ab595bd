package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	// this will automatically load your .env file:
	_ "github.com/joho/godotenv/autoload"

	"github.com/yousufyasser2005/Youstore/pkg/engine"
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	LogPath string
	Engine  EngineConfig
	Server  ServerConfig
	SSH     SSHConfig
	HTTP    HTTPConfig
	Client  ClientConfig
}

type EngineConfig struct {
	Difficulty int
	// Seed of the engine's random source; zero seeds from the clock.
	Seed         int64
	ThinkTimeout time.Duration
}

type ServerConfig struct {
	Addr        string
	IdleTimeout time.Duration
}

type SSHConfig struct {
	// Addr is empty when the SSH front door is disabled.
	Addr          string
	HostKey       string
	ChesstermPath string
}

type HTTPConfig struct {
	Addr string
}

type ClientConfig struct {
	Theme string
}

const (
	DefaultServerAddr   = ":1998"
	DefaultSSHAddr      = ":2222"
	DefaultIdleTimeout  = 5 * time.Minute
	DefaultThinkTimeout = 30 * time.Second
)

// LoadConfig reads the configuration from the environment, after loading a
// .env file from the working directory if there is one.
func LoadConfig() (*Config, error) {
	difficulty, err := intEnv("ENGINE_DIFFICULTY", engine.DefaultDifficulty)
	if err != nil {
		return nil, err
	}
	if difficulty < engine.Easy || difficulty > engine.MaxDifficulty {
		return nil, fmt.Errorf("%w: ENGINE_DIFFICULTY must be between %d and %d, got %d",
			ErrInvalid, engine.Easy, engine.MaxDifficulty, difficulty)
	}

	seed, err := intEnv("ENGINE_SEED", 0)
	if err != nil {
		return nil, err
	}

	thinkTimeout, err := durationEnv("ENGINE_THINK_TIMEOUT", DefaultThinkTimeout)
	if err != nil {
		return nil, err
	}

	idleTimeout, err := durationEnv("SERVER_IDLE_TIMEOUT", DefaultIdleTimeout)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		LogPath: stringEnv("LOG_PATH", "./log"),
		Engine: EngineConfig{
			Difficulty:   difficulty,
			Seed:         int64(seed),
			ThinkTimeout: thinkTimeout,
		},
		Server: ServerConfig{
			Addr:        stringEnv("SERVER_ADDR", DefaultServerAddr),
			IdleTimeout: idleTimeout,
		},
		SSH: SSHConfig{
			Addr:          stringEnv("SSH_ADDR", DefaultSSHAddr),
			HostKey:       os.Getenv("SSH_HOST_KEY"),
			ChesstermPath: stringEnv("CHESSTERM_PATH", "chessterm"),
		},
		HTTP: HTTPConfig{
			Addr: os.Getenv("HTTP_ADDR"),
		},
		Client: ClientConfig{
			Theme: stringEnv("CHESSTERM_THEME", "basic"),
		},
	}

	return cfg, nil
}

// stringEnv returns the variable's value, or def when it is unset. A variable
// set to the empty string stays empty, which is how SSH_ADDR is disabled.
func stringEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalid, key, err)
	}
	return n, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalid, key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative", ErrInvalid, key)
	}
	return d, nil
}
