package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/duskveil-games/soultrap/pkg/soul"
)

// Config holds all service configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	JWT    JWTConfig    `yaml:"jwt"`
	Redis  RedisConfig  `yaml:"redis"`
	Trap   TrapConfig   `yaml:"trap"`

	// SoulGemsFile points at the gem catalogue used to build the gem index.
	SoulGemsFile string `yaml:"soul_gems_file"`
}

// ServerConfig holds server-specific settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// JWTConfig holds JWT authentication settings
type JWTConfig struct {
	Issuer              string `yaml:"issuer"`
	PublicKeyURL        string `yaml:"public_key_url"`
	PublicKeyRefreshHrs int    `yaml:"public_key_refresh_hours"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Address         string `yaml:"address"`
	Password        string `yaml:"password"`
	DB              int    `yaml:"db"`
	BlacklistPrefix string `yaml:"blacklist_prefix"`
	StatPrefix      string `yaml:"stat_prefix"`
}

// ShrinkTechnique selects what happens to a white soul that fits no gem.
type ShrinkTechnique string

const (
	// ShrinkNone loses the soul outright.
	ShrinkNone ShrinkTechnique = "none"
	// ShrinkSoul reduces the soul to exactly fill a smaller gem.
	ShrinkSoul ShrinkTechnique = "shrink"
	// SplitSoul divides the soul into two smaller souls and retries.
	SplitSoul ShrinkTechnique = "split"
)

// TrapConfig holds the soul capture policy. A copy of this struct is taken
// at the start of every capture call, so external edits cannot affect a call
// in flight.
type TrapConfig struct {
	AllowSoulDiversion            bool            `yaml:"allow_soul_diversion"`
	PerformSoulDiversionInEngine  bool            `yaml:"perform_soul_diversion_in_engine"`
	AllowNotifications            bool            `yaml:"allow_notifications"`
	AllowExtraSoulRelocation      bool            `yaml:"allow_extra_soul_relocation"`
	PreserveOwnership             bool            `yaml:"preserve_ownership"`
	AllowSoulRelocation           bool            `yaml:"allow_soul_relocation"`
	AllowSoulDisplacement         bool            `yaml:"allow_soul_displacement"`
	AllowPartiallyFillingSoulGems bool            `yaml:"allow_partially_filling_soul_gems"`
	SoulShrinkingTechnique        ShrinkTechnique `yaml:"soul_shrinking_technique"`
}

// GemVariantDef maps one contained-soul level of a gem group to the concrete
// item identity for that fill state.
type GemVariantDef struct {
	Contains soul.Size `yaml:"contains"`
	Item     string    `yaml:"item"`
}

// GemGroupDef describes one soul gem family: a capacity and one item
// identity per fill level. The order of groups in the catalogue decides the
// search order among gems of the same shape.
type GemGroupDef struct {
	ID       string          `yaml:"id"`
	Name     string          `yaml:"name"`
	Capacity soul.Capacity   `yaml:"capacity"`
	Variants []GemVariantDef `yaml:"variants"`
}

// SoulGemsConfig is the gem catalogue document.
type SoulGemsConfig struct {
	Groups []GemGroupDef `yaml:"groups"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults if not provided
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.JWT.PublicKeyRefreshHrs == 0 {
		cfg.JWT.PublicKeyRefreshHrs = 24
	}
	if cfg.Redis.StatPrefix == "" {
		cfg.Redis.StatPrefix = "soultrap:stats:"
	}
	if cfg.Trap.SoulShrinkingTechnique == "" {
		cfg.Trap.SoulShrinkingTechnique = ShrinkNone
	}
	if cfg.SoulGemsFile == "" {
		cfg.SoulGemsFile = "./configs/soulgems.yaml"
	}

	switch cfg.Trap.SoulShrinkingTechnique {
	case ShrinkNone, ShrinkSoul, SplitSoul:
	default:
		return nil, fmt.Errorf("unknown soul_shrinking_technique: %q", cfg.Trap.SoulShrinkingTechnique)
	}

	return &cfg, nil
}

// LoadSoulGems reads the gem catalogue from a YAML file.
func LoadSoulGems(path string) (*SoulGemsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read soul gem catalogue: %w", err)
	}

	var gems SoulGemsConfig
	if err := yaml.Unmarshal(data, &gems); err != nil {
		return nil, fmt.Errorf("failed to parse soul gem catalogue: %w", err)
	}

	if len(gems.Groups) == 0 {
		return nil, fmt.Errorf("soul gem catalogue %s defines no groups", path)
	}

	return &gems, nil
}
