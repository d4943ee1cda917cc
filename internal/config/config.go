package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/evanschultz/plank/internal/board"
	toml "github.com/pelletier/go-toml/v2"
)

// StorageBackend selects the repository behind the project store.
type StorageBackend string

const (
	StorageMemory StorageBackend = "memory"
	StorageSQLite StorageBackend = "sqlite"
)

// NoBound disables one validation bound.
const NoBound = -1

type Config struct {
	Storage    StorageConfig    `toml:"storage"`
	Logging    LoggingConfig    `toml:"logging"`
	Validation ValidationConfig `toml:"validation"`
	Board      BoardConfig      `toml:"board"`
	Keys       KeyConfig        `toml:"keys"`
}

type StorageConfig struct {
	Backend StorageBackend `toml:"backend"`
}

type LoggingConfig struct {
	Level   string        `toml:"level"`
	DevFile DevFileConfig `toml:"dev_file"`
}

type DevFileConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// ValidationConfig holds the form constraints. Every bound is exclusive and
// NoBound turns it off.
type ValidationConfig struct {
	Reject               board.RejectPolicy `toml:"reject"`
	TitleRequired        bool               `toml:"title_required"`
	DescriptionMinLength int                `toml:"description_min_length"`
	DescriptionMaxLength int                `toml:"description_max_length"`
	PeopleMin            int                `toml:"people_min"`
	PeopleMax            int                `toml:"people_max"`
}

type BoardConfig struct {
	ShowDescriptions bool `toml:"show_descriptions"`
}

type KeyConfig struct {
	NewProject string `toml:"new_project"`
	CardInfo   string `toml:"card_info"`
	Grab       string `toml:"grab"`
	CopyID     string `toml:"copy_id"`
}

func Default() Config {
	return Config{
		Storage: StorageConfig{
			Backend: StorageMemory,
		},
		Logging: LoggingConfig{
			Level: "info",
			DevFile: DevFileConfig{
				Enabled: true,
				Dir:     ".plank/log",
			},
		},
		Validation: ValidationConfig{
			Reject:               board.RejectAny,
			TitleRequired:        true,
			DescriptionMinLength: 5,
			DescriptionMaxLength: NoBound,
			PeopleMin:            1,
			PeopleMax:            5,
		},
		Board: BoardConfig{
			ShowDescriptions: true,
		},
		Keys: KeyConfig{
			NewProject: "n",
			CardInfo:   "i",
			Grab:       "space",
			CopyID:     "y",
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage.Backend {
	case StorageMemory, StorageSQLite:
	default:
		return fmt.Errorf("invalid storage.backend: %q", c.Storage.Backend)
	}

	switch strings.TrimSpace(strings.ToLower(c.Logging.Level)) {
	case "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}

	v := c.Validation
	switch v.Reject {
	case board.RejectAny, board.RejectAll:
	default:
		return fmt.Errorf("invalid validation.reject: %q", v.Reject)
	}
	bounds := []struct {
		name  string
		value int
	}{
		{"validation.description_min_length", v.DescriptionMinLength},
		{"validation.description_max_length", v.DescriptionMaxLength},
		{"validation.people_min", v.PeopleMin},
		{"validation.people_max", v.PeopleMax},
	}
	for _, b := range bounds {
		if b.value < NoBound {
			return fmt.Errorf("%s must be >= %d, got %d", b.name, NoBound, b.value)
		}
	}
	if err := checkOpenRange("description length", v.DescriptionMinLength, v.DescriptionMaxLength); err != nil {
		return err
	}
	if err := checkOpenRange("people", v.PeopleMin, v.PeopleMax); err != nil {
		return err
	}
	return nil
}

// checkOpenRange rejects exclusive bounds that leave no integer between them.
func checkOpenRange(name string, lower, upper int) error {
	if lower == NoBound || upper == NoBound {
		return nil
	}
	if upper-lower < 2 {
		return fmt.Errorf("validation %s bounds (%d, %d) admit no value", name, lower, upper)
	}
	return nil
}

// Bound returns a pointer to n, or nil when n is NoBound.
func Bound(n int) *int {
	if n == NoBound {
		return nil
	}
	return &n
}
