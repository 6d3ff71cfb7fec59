package seeder

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the settings of one deck seeding run.
type Config struct {
	DeckPath   string `yaml:"deck_path"  env:"SEEDER_DECK_PATH"`
	OwnerID    string `yaml:"owner_id"   env:"SEEDER_OWNER_ID"`
	Name       string `yaml:"name"       env:"SEEDER_DECK_NAME"`
	Emoji      string `yaml:"emoji"      env:"SEEDER_DECK_EMOJI"`
	Color      string `yaml:"color"      env:"SEEDER_DECK_COLOR"`
	Category   string `yaml:"category"   env:"SEEDER_DECK_CATEGORY"`
	Subtopic   string `yaml:"subtopic"   env:"SEEDER_DECK_SUBTOPIC"`
	Difficulty string `yaml:"difficulty" env:"SEEDER_DECK_DIFFICULTY" env-default:"BEGINNER"`
	Publish    bool   `yaml:"publish"    env:"SEEDER_PUBLISH"`
	DryRun     bool   `yaml:"dry_run"    env:"SEEDER_DRY_RUN"`
}

// LoadConfig reads seeder configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return nil, fmt.Errorf("seeder config: read %s: %w", path, err)
			}
			return &cfg, nil
		}
		return nil, fmt.Errorf("seeder config: file %s not found", path)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("seeder config: read env: %w", err)
	}

	return &cfg, nil
}
