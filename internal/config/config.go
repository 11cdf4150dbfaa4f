package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/opponent"
	"github.com/rocketscienceinc/tictactoe-engine/internal/session"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

var ErrUnknownStorage = errors.New("unknown storage")

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Storage    string `yaml:"storage" env:"STORAGE" env-default:"memory"`
	Redis      Redis  `yaml:"redis"`
	Game       Game   `yaml:"game"`
}

type Redis struct {
	Host       string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port       string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	SessionTTL time.Duration `yaml:"session-ttl" env:"REDIS_SESSION_TTL" env-default:"24h"`
}

// Game holds the defaults for new sessions.
type Game struct {
	StartingPlayer string `yaml:"starting-player" env:"GAME_STARTING_PLAYER" env-default:"human"`
	Difficulty     string `yaml:"difficulty" env:"GAME_DIFFICULTY" env-default:"minimax"`
	PlayerMark     string `yaml:"player-mark" env:"GAME_PLAYER_MARK" env-default:"X"`
	Seed           uint64 `yaml:"seed" env:"GAME_SEED" env-default:"0"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// SessionDefaults turns the game section into validated session options.
func (that *Game) SessionDefaults() (session.Options, error) {
	starting, err := entity.ParsePlayerKind(that.StartingPlayer)
	if err != nil {
		return session.Options{}, fmt.Errorf("game.starting-player: %w", err)
	}

	difficulty, err := opponent.ParseDifficulty(that.Difficulty)
	if err != nil {
		return session.Options{}, fmt.Errorf("game.difficulty: %w", err)
	}

	mark, err := entity.ParseMark(that.PlayerMark)
	if err != nil {
		return session.Options{}, fmt.Errorf("game.player-mark: %w", err)
	}

	return session.Options{
		StartingPlayer: starting,
		Difficulty:     difficulty,
		PlayerMark:     mark,
		Seed:           that.Seed,
	}, nil
}
