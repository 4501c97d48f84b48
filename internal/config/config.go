package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
	"github.com/rocketscienceinc/bingo-backend/internal/entity"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Redis    Redis  `yaml:"redis"`
	Game     Game   `yaml:"game"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Game struct {
	// nil when board-size is absent; an explicit 0 must still fail validation
	BoardSize *int     `yaml:"board-size"`
	Players   []Player `yaml:"players"`
}

type Player struct {
	Label string `yaml:"label"`
	Color string `yaml:"color"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if len(config.Game.Players) == 0 {
		for _, player := range entity.DefaultPlayers() {
			config.Game.Players = append(config.Game.Players, Player{Label: player.Label, Color: player.Color})
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	if size := that.Game.GetBoardSize(); size <= 0 {
		return fmt.Errorf("%w: board-size must be positive, got %d", apperror.ErrInvalidConfiguration, size)
	}

	if len(that.Game.Players) == 0 {
		return fmt.Errorf("%w: at least one player is required", apperror.ErrInvalidConfiguration)
	}

	for i, player := range that.Game.Players {
		if player.Label == entity.EmptyCell {
			return fmt.Errorf("%w: player %d has no label", apperror.ErrInvalidConfiguration, i)
		}
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

func (that *Game) GetBoardSize() int {
	if that.BoardSize == nil {
		return entity.DefaultBoardSize
	}

	return *that.BoardSize
}

func (that *Game) GetPlayers() []entity.Player {
	players := make([]entity.Player, 0, len(that.Players))
	for _, player := range that.Players {
		players = append(players, entity.Player{Label: player.Label, Color: player.Color})
	}

	return players
}
