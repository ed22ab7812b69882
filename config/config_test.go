package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-symcore/symcore/cnf"
	"github.com/go-symcore/symcore/diagnostic"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.Verbosity != diagnostic.VerbosityNormal {
		t.Errorf("Verbosity = %v, want VerbosityNormal", cfg.Verbosity)
	}
	if cfg.CnfAlgorithm != cnf.AlgorithmTseitin {
		t.Errorf("CnfAlgorithm = %v, want AlgorithmTseitin", cfg.CnfAlgorithm)
	}
	if cfg.InlineCache {
		t.Errorf("InlineCache = true, want false")
	}
	if cfg.DeterminizationLayer != "" {
		t.Errorf("DeterminizationLayer = %q, want empty", cfg.DeterminizationLayer)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "symcore.yaml")

	cfg := Defaults()
	cfg.CnfAlgorithm = cnf.AlgorithmSheridan
	cfg.InlineCache = true
	cfg.DeterminizationLayer = "det"
	cfg.Verbosity = diagnostic.VerbosityVerbose

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSeedsDefaultsForOmittedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yaml")
	// A file that only sets one field should still leave the rest
	// seeded from Defaults rather than zeroed.
	content := []byte("inlineCache: true\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !got.InlineCache {
		t.Fatalf("InlineCache = false, want true")
	}
	if got.Verbosity != diagnostic.VerbosityNormal {
		t.Fatalf("Verbosity = %v, want VerbosityNormal (seeded default)", got.Verbosity)
	}
	if got.CnfAlgorithm != cnf.AlgorithmTseitin {
		t.Fatalf("CnfAlgorithm = %v, want AlgorithmTseitin (seeded default)", got.CnfAlgorithm)
	}
}
