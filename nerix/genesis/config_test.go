package genesis

import (
	"math/big"
	"testing"
	"time"
)

func TestFakeGenesis(t *testing.T) {
	g := FakeGenesis()

	if err := g.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
	if g.Rules.Name != "fake" {
		t.Errorf("Rules.Name = %q, want %q", g.Rules.Name, "fake")
	}
	if g.SeedPool.Cmp(DefaultSeedPool) != 0 {
		t.Errorf("SeedPool = %s, want %s", g.SeedPool, DefaultSeedPool)
	}
}

func TestMainGenesis(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)
	seed := big.NewInt(42)

	g := MainGenesis(seed, start)
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
	if g.Rules.Name != "main" {
		t.Errorf("Rules.Name = %q, want %q", g.Rules.Name, "main")
	}
	if !g.StartTime.Time().Equal(start) {
		t.Errorf("StartTime = %v, want %v", g.StartTime.Time(), start)
	}

	// the genesis holds its own copy of the seed
	seed.SetInt64(1)
	if g.SeedPool.Cmp(big.NewInt(42)) != 0 {
		t.Error("mutating the input seed changed the genesis")
	}
}

func TestValidate_rejectsBadGenesis(t *testing.T) {
	var empty Genesis
	if err := empty.Validate(); err == nil {
		t.Fatal("empty genesis should fail validation")
	}

	g := FakeGenesis()
	g.SeedPool = big.NewInt(-1)
	if err := g.Validate(); err == nil {
		t.Fatal("negative seed pool should fail validation")
	}
}
