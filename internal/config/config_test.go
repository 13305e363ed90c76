package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/duskveil-games/soultrap/pkg/soul"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeFile(t, "server.yaml", `
server:
  host: "127.0.0.1"
jwt:
  issuer: "login"
trap:
  allow_soul_relocation: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("host = %q", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.JWT.PublicKeyRefreshHrs != 24 {
		t.Errorf("default key refresh = %d, want 24", cfg.JWT.PublicKeyRefreshHrs)
	}
	if cfg.Redis.StatPrefix == "" {
		t.Error("stat prefix default not applied")
	}
	if cfg.Trap.SoulShrinkingTechnique != ShrinkNone {
		t.Errorf("default technique = %q, want none", cfg.Trap.SoulShrinkingTechnique)
	}
	if !cfg.Trap.AllowSoulRelocation {
		t.Error("relocation flag not read")
	}
	if cfg.SoulGemsFile == "" {
		t.Error("soul gems file default not applied")
	}
}

func TestLoadRejectsUnknownTechnique(t *testing.T) {
	path := writeFile(t, "server.yaml", `
trap:
  soul_shrinking_technique: "compress"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted an unknown shrinking technique")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load accepted a missing file")
	}
}

func TestLoadSoulGems(t *testing.T) {
	path := writeFile(t, "gems.yaml", `
groups:
  - id: "petty-gem"
    name: "Petty Soul Gem"
    capacity: "petty"
    variants:
      - { contains: "none", item: "gem-petty-empty" }
      - { contains: "petty", item: "gem-petty-full" }
`)

	gems, err := LoadSoulGems(path)
	if err != nil {
		t.Fatalf("LoadSoulGems: %v", err)
	}
	if len(gems.Groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(gems.Groups))
	}

	group := gems.Groups[0]
	if group.Capacity != soul.CapPetty {
		t.Errorf("capacity = %v, want petty", group.Capacity)
	}
	if len(group.Variants) != 2 {
		t.Fatalf("got %d variants, want 2", len(group.Variants))
	}
	if group.Variants[1].Contains != soul.Petty || group.Variants[1].Item != "gem-petty-full" {
		t.Errorf("variant = %+v", group.Variants[1])
	}
}

func TestLoadSoulGemsRejectsBadInput(t *testing.T) {
	empty := writeFile(t, "empty.yaml", `groups: []`)
	if _, err := LoadSoulGems(empty); err == nil {
		t.Error("LoadSoulGems accepted an empty catalogue")
	}

	badSize := writeFile(t, "bad.yaml", `
groups:
  - id: "odd"
    capacity: "petty"
    variants:
      - { contains: "enormous", item: "x" }
`)
	if _, err := LoadSoulGems(badSize); err == nil {
		t.Error("LoadSoulGems accepted an unknown soul size")
	}
}
