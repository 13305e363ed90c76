package soulgem

import (
	"errors"
	"strings"
	"testing"

	"github.com/duskveil-games/soultrap/internal/config"
	"github.com/duskveil-games/soultrap/pkg/soul"
)

func pettyGroup(id, prefix string) config.GemGroupDef {
	return config.GemGroupDef{
		ID:       id,
		Name:     id,
		Capacity: soul.CapPetty,
		Variants: []config.GemVariantDef{
			{Contains: soul.None, Item: prefix + "-empty"},
			{Contains: soul.Petty, Item: prefix + "-full"},
		},
	}
}

func blackGroup(id, prefix string) config.GemGroupDef {
	return config.GemGroupDef{
		ID:       id,
		Name:     id,
		Capacity: soul.CapBlack,
		Variants: []config.GemVariantDef{
			{Contains: soul.None, Item: prefix + "-empty"},
			{Contains: soul.Black, Item: prefix + "-full"},
		},
	}
}

func TestLookupPreservesCatalogueOrder(t *testing.T) {
	idx, err := NewIndex(&config.SoulGemsConfig{Groups: []config.GemGroupDef{
		pettyGroup("first", "a"),
		pettyGroup("second", "b"),
	}})
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}

	groups := idx.Lookup(soul.CapPetty, soul.None)
	if len(groups) != 2 {
		t.Fatalf("Lookup returned %d groups, want 2", len(groups))
	}
	if groups[0].ID() != "first" || groups[1].ID() != "second" {
		t.Errorf("Lookup order = %s, %s; want first, second", groups[0].ID(), groups[1].ID())
	}

	if got := idx.Lookup(soul.CapGrand, soul.None); len(got) != 0 {
		t.Errorf("Lookup of unregistered shape returned %d groups", len(got))
	}
}

func TestResolveAndIsSoulGem(t *testing.T) {
	idx, err := NewIndex(&config.SoulGemsConfig{Groups: []config.GemGroupDef{
		pettyGroup("petty", "gem"),
	}})
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}

	group, contains, ok := idx.Resolve("gem-full")
	if !ok || group.ID() != "petty" || contains != soul.Petty {
		t.Errorf("Resolve(gem-full) = %v, %v, %t", group, contains, ok)
	}
	if _, _, ok := idx.Resolve("sword"); ok {
		t.Error("Resolve accepted an unregistered item")
	}
	if !idx.IsSoulGem("gem-empty") || idx.IsSoulGem("sword") {
		t.Error("IsSoulGem misclassified an item")
	}
}

func TestVariantForUnknownFillLevel(t *testing.T) {
	idx, err := NewIndex(&config.SoulGemsConfig{Groups: []config.GemGroupDef{
		pettyGroup("petty", "gem"),
	}})
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}

	group := idx.Lookup(soul.CapPetty, soul.None)[0]
	if _, err := group.VariantFor(soul.Grand); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("VariantFor(grand) error = %v, want ErrUnknownVariant", err)
	}
}

func TestNewIndexRejectsBadCatalogues(t *testing.T) {
	cases := []struct {
		name    string
		groups  []config.GemGroupDef
		wantErr string
	}{
		{
			name:    "empty group id",
			groups:  []config.GemGroupDef{pettyGroup("", "a")},
			wantErr: "empty id",
		},
		{
			name:    "duplicate group id",
			groups:  []config.GemGroupDef{pettyGroup("dup", "a"), pettyGroup("dup", "b")},
			wantErr: "duplicate group id",
		},
		{
			name:    "item registered twice",
			groups:  []config.GemGroupDef{pettyGroup("first", "a"), pettyGroup("second", "a")},
			wantErr: "registered by both",
		},
		{
			name: "missing fill level",
			groups: []config.GemGroupDef{{
				ID: "partial", Capacity: soul.CapPetty,
				Variants: []config.GemVariantDef{{Contains: soul.None, Item: "a-empty"}},
			}},
			wantErr: "requires 2",
		},
		{
			name: "fill level defined twice",
			groups: []config.GemGroupDef{{
				ID: "doubled", Capacity: soul.CapPetty,
				Variants: []config.GemVariantDef{
					{Contains: soul.None, Item: "a-empty"},
					{Contains: soul.None, Item: "a-empty2"},
				},
			}},
			wantErr: "twice",
		},
		{
			name: "fill level outside capacity",
			groups: []config.GemGroupDef{{
				ID: "overfull", Capacity: soul.CapPetty,
				Variants: []config.GemVariantDef{
					{Contains: soul.None, Item: "a-empty"},
					{Contains: soul.Petty, Item: "a-full"},
					{Contains: soul.Grand, Item: "a-grand"},
				},
			}},
			wantErr: "requires 2",
		},
		{
			name: "empty item",
			groups: []config.GemGroupDef{{
				ID: "anon", Capacity: soul.CapPetty,
				Variants: []config.GemVariantDef{
					{Contains: soul.None, Item: ""},
					{Contains: soul.Petty, Item: "a-full"},
				},
			}},
			wantErr: "empty item",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewIndex(&config.SoulGemsConfig{Groups: tc.groups})
			if err == nil {
				t.Fatal("NewIndex accepted a malformed catalogue")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tc.wantErr)
			}
		})
	}
}

func TestBlackGemFillLevels(t *testing.T) {
	idx, err := NewIndex(&config.SoulGemsConfig{Groups: []config.GemGroupDef{
		blackGroup("black", "bg"),
	}})
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}

	// Pure black gems have no white fill states at all.
	if got := idx.Lookup(soul.CapBlack, soul.Petty); len(got) != 0 {
		t.Errorf("black gem registered under a white fill level")
	}
	if got := idx.Lookup(soul.CapBlack, soul.Black); len(got) != 1 {
		t.Errorf("black gem not found under its black fill level")
	}
}
