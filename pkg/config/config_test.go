package config

import (
	"testing"
)

func TestLoadConfigFromBytes_ValidConfig(t *testing.T) {
	yaml := `
seed: 12345
problemSizes:
  probatio: 3
  primus: 6
orchestratorThreshold: 10
dfs:
  maxMemoEntries: 1000000
annealing:
  k: 1.5
  tau: 4000.0
  stagnationThreshold: 1500
  maxIterations: 100000
`

	cfg, err := LoadConfigFromBytes([]byte(yaml))
	if err != nil {
		t.Fatalf("LoadConfigFromBytes() failed: %v", err)
	}

	if cfg.Seed != 12345 {
		t.Errorf("Seed = %d, want 12345", cfg.Seed)
	}
	if cfg.ProblemSizes["probatio"] != 3 {
		t.Errorf("ProblemSizes[probatio] = %d, want 3", cfg.ProblemSizes["probatio"])
	}
	if cfg.OrchestratorThreshold != 10 {
		t.Errorf("OrchestratorThreshold = %d, want 10", cfg.OrchestratorThreshold)
	}
	if cfg.DFS.MaxMemoEntries != 1000000 {
		t.Errorf("DFS.MaxMemoEntries = %d, want 1000000", cfg.DFS.MaxMemoEntries)
	}
	if cfg.Annealing.K != 1.5 {
		t.Errorf("Annealing.K = %f, want 1.5", cfg.Annealing.K)
	}
	if cfg.Annealing.Tau != 4000.0 {
		t.Errorf("Annealing.Tau = %f, want 4000.0", cfg.Annealing.Tau)
	}
	if cfg.Annealing.StagnationThreshold != 1500 {
		t.Errorf("Annealing.StagnationThreshold = %d, want 1500", cfg.Annealing.StagnationThreshold)
	}
	if cfg.Annealing.MaxIterations != 100000 {
		t.Errorf("Annealing.MaxIterations = %d, want 100000", cfg.Annealing.MaxIterations)
	}
}

func TestLoadConfigFromBytes_DefaultsFillGaps(t *testing.T) {
	cfg, err := LoadConfigFromBytes([]byte(`seed: 1`))
	if err != nil {
		t.Fatalf("LoadConfigFromBytes() failed: %v", err)
	}
	if cfg.OrchestratorThreshold != 14 {
		t.Errorf("OrchestratorThreshold = %d, want default 14", cfg.OrchestratorThreshold)
	}
	if cfg.ProblemSizes["tertius"] != 18 {
		t.Errorf("ProblemSizes[tertius] = %d, want default 18", cfg.ProblemSizes["tertius"])
	}
}

func TestLoadConfigFromBytes_AutoSeed(t *testing.T) {
	cfg, err := LoadConfigFromBytes([]byte(`{}`))
	if err != nil {
		t.Fatalf("LoadConfigFromBytes() failed: %v", err)
	}
	if cfg.Seed == 0 {
		t.Error("expected auto-generated non-zero seed")
	}
}

func TestValidate_RejectsEmptyProblemSizes(t *testing.T) {
	cfg := Default()
	cfg.ProblemSizes = nil
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty ProblemSizes")
	}
}

func TestValidate_RejectsNonPositiveRoomCount(t *testing.T) {
	cfg := Default()
	cfg.ProblemSizes["broken"] = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero room count")
	}
}

func TestValidate_RejectsBadOrchestratorThreshold(t *testing.T) {
	cfg := Default()
	cfg.OrchestratorThreshold = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive OrchestratorThreshold")
	}
}

func TestDFSCfg_RejectsNegativeMaxMemoEntries(t *testing.T) {
	d := DFSCfg{MaxMemoEntries: -1}
	if err := d.Validate(); err == nil {
		t.Fatal("expected error for negative MaxMemoEntries")
	}
}

func TestAnnealingCfg_RejectsNonPositiveK(t *testing.T) {
	a := AnnealingCfg{K: 0, Tau: 1, StagnationThreshold: 1, MaxIterations: 1}
	if err := a.Validate(); err == nil {
		t.Fatal("expected error for non-positive K")
	}
}

func TestAnnealingCfg_RejectsNonPositiveTau(t *testing.T) {
	a := AnnealingCfg{K: 1, Tau: 0, StagnationThreshold: 1, MaxIterations: 1}
	if err := a.Validate(); err == nil {
		t.Fatal("expected error for non-positive Tau")
	}
}

func TestHash_ChangesWithAnnealingParams(t *testing.T) {
	c1 := Default()
	c2 := Default()
	c2.Annealing.K = c1.Annealing.K + 1.0

	h1 := c1.Hash()
	h2 := c2.Hash()
	if string(h1) == string(h2) {
		t.Error("expected different hashes for different annealing params")
	}
}

func TestToYAML_RoundTrips(t *testing.T) {
	cfg := Default()
	data, err := cfg.ToYAML()
	if err != nil {
		t.Fatalf("ToYAML() failed: %v", err)
	}

	cfg2, err := LoadConfigFromBytes(data)
	if err != nil {
		t.Fatalf("LoadConfigFromBytes() on round-tripped YAML failed: %v", err)
	}
	if cfg2.OrchestratorThreshold != cfg.OrchestratorThreshold {
		t.Errorf("OrchestratorThreshold = %d, want %d", cfg2.OrchestratorThreshold, cfg.OrchestratorThreshold)
	}
}
