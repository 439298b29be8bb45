package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/gravsim/scene"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--env", filepath.Join(t.TempDir(), "missing.env")))
	err := root.Execute()
	return out.String(), err
}

func TestOrbitCommandMatchesRegression(t *testing.T) {
	out, err := execute(t, "orbit", "--preset", "binary", "--ticks", "600")
	if err != nil {
		t.Fatalf("orbit: %v", err)
	}
	if !strings.Contains(out, "Planet around Sun") {
		t.Errorf("Expected header, got:\n%s", out)
	}
	if !strings.Contains(out, "(-81.2008, 0.0000, -57.6044)") {
		t.Errorf("Expected planet final position, got:\n%s", out)
	}
	if !strings.Contains(out, "distance per tick") {
		t.Errorf("Expected chart caption, got:\n%s", out)
	}
}

func TestOrbitCommandRejectsBadIndices(t *testing.T) {
	if _, err := execute(t, "orbit", "--body", "5"); err == nil {
		t.Error("Expected error for out of range body")
	}
	if _, err := execute(t, "orbit", "--body", "0", "--around", "0"); err == nil {
		t.Error("Expected error for identical bodies")
	}
	if _, err := execute(t, "orbit", "--ticks", "0"); err == nil {
		t.Error("Expected error for zero ticks")
	}
}

func TestPredictCommand(t *testing.T) {
	out, err := execute(t, "predict", "--preset", "mutual", "--steps", "50")
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if !strings.Contains(out, "50 steps x 0.01s") {
		t.Errorf("Expected step summary, got:\n%s", out)
	}
	for _, want := range []string{"Sun", "Planet", "end point", "path length"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in table, got:\n%s", want, out)
		}
	}
}

func TestSceneCommandRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "system.toml")
	out, err := execute(t, "scene", "--preset", "system", "--out", path)
	if err != nil {
		t.Fatalf("scene: %v", err)
	}
	if !strings.Contains(out, "wrote 4 bodies") {
		t.Errorf("Expected write summary, got %q", out)
	}

	sc, err := scene.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !sc.AutoOrbit || len(sc.Bodies) != 4 {
		t.Errorf("Expected system preset round trip, got auto_orbit=%v bodies=%d", sc.AutoOrbit, len(sc.Bodies))
	}

	// The written file drives other commands
	if _, err := execute(t, "predict", "--scene", path, "--steps", "10"); err != nil {
		t.Errorf("predict from saved scene: %v", err)
	}
}

func TestSceneCommandRequiresOut(t *testing.T) {
	if _, err := execute(t, "scene", "--preset", "binary"); err == nil {
		t.Error("Expected error without --out")
	}
}

func TestUnknownPreset(t *testing.T) {
	if _, err := execute(t, "predict", "--preset", "nebula"); err == nil {
		t.Error("Expected error for unknown preset")
	}
}

func TestKeysCommand(t *testing.T) {
	out, err := execute(t, "keys")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if !strings.Contains(out, "toggle_run\n") || !strings.Contains(out, "zoom_in\n") {
		t.Errorf("Expected action list, got:\n%s", out)
	}
}

func TestEnvFileOverridesConfig(t *testing.T) {
	env := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(env, []byte("GRAVSIM_TRAJECTORY_STEPS=20\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("GRAVSIM_TRAJECTORY_STEPS") })

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"predict", "--preset", "binary", "--env", env})
	if err := root.Execute(); err != nil {
		t.Fatalf("predict: %v", err)
	}
	if !strings.Contains(out.String(), "20 steps") {
		t.Errorf("Expected steps from env file, got:\n%s", out.String())
	}
}
