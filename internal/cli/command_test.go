package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/cargoctl/cargo-config/internal/config"
	"github.com/cargoctl/cargo-config/internal/editor"
	"github.com/cargoctl/cargo-config/internal/profile"
	"github.com/cargoctl/cargo-config/internal/tokenstore"
)

// testEnv points CARGO_HOME and the tool's own directories at temp
// locations and returns the cargo dir.
func testEnv(t *testing.T) string {
	t.Helper()

	cargoDir := filepath.Join(t.TempDir(), ".cargo")
	if err := os.MkdirAll(cargoDir, 0700); err != nil {
		t.Fatalf("failed to create cargo dir: %v", err)
	}

	t.Setenv("CARGO_HOME", cargoDir)
	t.Setenv("CARGO_CONFIG_HOME", t.TempDir())
	t.Setenv(tokenstore.TestStoreEnvVar, t.TempDir())

	return cargoDir
}

// runCommand executes the full command tree once, as main would.
func runCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	app := New()
	var out, errOut bytes.Buffer
	app.rootCmd.SetOut(&out)
	app.rootCmd.SetErr(&errOut)
	app.rootCmd.SetArgs(args)

	err = app.Execute(context.Background())
	return out.String(), errOut.String(), err
}

func TestCreateCommand(t *testing.T) {
	cargoDir := testEnv(t)

	out, _, err := runCommand(t, "create", "work")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if out != "Success:   ✓  Created work.toml\n" {
		t.Errorf("create output = %q", out)
	}
	if _, err := os.Stat(filepath.Join(cargoDir, config.ProfileDirName, "work.toml")); err != nil {
		t.Errorf("profile file should exist: %v", err)
	}
}

func TestCreateCommandDuplicate(t *testing.T) {
	testEnv(t)

	if _, _, err := runCommand(t, "create", "work"); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, _, err := runCommand(t, "create", "work")
	if !errors.Is(err, fs.ErrExist) {
		t.Errorf("duplicate create should report fs.ErrExist, got %v", err)
	}
}

func TestSwitchCommand(t *testing.T) {
	cargoDir := testEnv(t)

	if _, _, err := runCommand(t, "create", "work"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	out, _, err := runCommand(t, "switch", "work")
	if err != nil {
		t.Fatalf("switch failed: %v", err)
	}

	if out != "Success:   ✓  Switched to work\n" {
		t.Errorf("switch output = %q", out)
	}
	if _, err := os.Stat(filepath.Join(cargoDir, config.ActiveConfigName)); err != nil {
		t.Errorf("config.toml should exist after switch: %v", err)
	}

	pointer, err := os.ReadFile(filepath.Join(cargoDir, config.ProfileDirName, config.PointerFileName))
	if err != nil {
		t.Fatalf("failed to read pointer: %v", err)
	}
	if string(pointer) != "work" {
		t.Errorf("pointer = %q, want work", pointer)
	}
}

func TestSwitchCommandMissingProfile(t *testing.T) {
	testEnv(t)

	_, _, err := runCommand(t, "switch", "ghost")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("switch to a missing profile should report fs.ErrNotExist, got %v", err)
	}
}

func TestListCommand(t *testing.T) {
	testEnv(t)

	for _, name := range []string{"a", "b"} {
		if _, _, err := runCommand(t, "create", name); err != nil {
			t.Fatalf("create %s failed: %v", name, err)
		}
	}
	if _, _, err := runCommand(t, "switch", "a"); err != nil {
		t.Fatalf("switch failed: %v", err)
	}

	out, _, err := runCommand(t, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if !strings.Contains(out, "List of entries:") {
		t.Errorf("list output missing header: %q", out)
	}
	if !strings.Contains(out, "- a (active)") {
		t.Errorf("list output should mark a as active: %q", out)
	}
	if !strings.Contains(out, "- b\n") {
		t.Errorf("list output should show b: %q", out)
	}
}

func TestListCommandBeforeSwitch(t *testing.T) {
	testEnv(t)

	if _, _, err := runCommand(t, "create", "work"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, _, err := runCommand(t, "list")
	if !errors.Is(err, profile.ErrNoPointer) {
		t.Errorf("list before the first switch should report ErrNoPointer, got %v", err)
	}
}

func TestListCommandJSON(t *testing.T) {
	testEnv(t)

	if _, _, err := runCommand(t, "create", "work"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, _, err := runCommand(t, "switch", "work"); err != nil {
		t.Fatalf("switch failed: %v", err)
	}

	out, _, err := runCommand(t, "list", "-o", "json")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	var decoded ListOutput
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("list -o json is not valid JSON: %v\n%s", err, out)
	}
	if decoded.Current != "work" {
		t.Errorf("current = %q, want work", decoded.Current)
	}
	if len(decoded.Profiles) != 1 || decoded.Profiles[0].Name != "work" || !decoded.Profiles[0].Active {
		t.Errorf("profiles = %+v, want work active", decoded.Profiles)
	}
}

func TestRemoveCommand(t *testing.T) {
	cargoDir := testEnv(t)

	if _, _, err := runCommand(t, "create", "old"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	out, _, err := runCommand(t, "remove", "old")
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	if out != "Success:   ✓  Removed old\n" {
		t.Errorf("remove output = %q", out)
	}
	if _, err := os.Stat(filepath.Join(cargoDir, config.ProfileDirName, "old.toml")); !errors.Is(err, fs.ErrNotExist) {
		t.Error("profile file should be gone")
	}
}

func TestRemoveCommandMissing(t *testing.T) {
	testEnv(t)

	_, _, err := runCommand(t, "remove", "ghost")
	if err == nil {
		t.Fatal("remove of a missing profile should fail")
	}
	if !strings.Contains(err.Error(), "ghost does not exist") {
		t.Errorf("error should name the profile, got %q", err.Error())
	}
}

func TestEditCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script editor not applicable on Windows")
	}
	testEnv(t)

	if _, _, err := runCommand(t, "create", "work"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	script := filepath.Join(t.TempDir(), "fake-editor")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nexit 0\n"), 0755); err != nil {
		t.Fatalf("failed to write editor script: %v", err)
	}

	out, _, err := runCommand(t, "edit", "--editor", script, "work")
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	if !strings.HasPrefix(out, "Success:   ✓  Opened ") || !strings.Contains(out, " at work\n") {
		t.Errorf("edit output = %q", out)
	}
}

func TestEditCommandEditorNotFound(t *testing.T) {
	testEnv(t)

	if _, _, err := runCommand(t, "create", "work"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, _, err := runCommand(t, "edit", "--editor", "cargo-config-no-such-editor", "work")
	if !errors.Is(err, editor.ErrNotFound) {
		t.Errorf("edit with a missing editor should report ErrNotFound, got %v", err)
	}
}

func TestTokenCommands(t *testing.T) {
	testEnv(t)

	out, _, err := runCommand(t, "token", "set", "crates-io", "cio_secret")
	if err != nil {
		t.Fatalf("token set failed: %v", err)
	}
	if out != "Success:   ✓  Stored token for crates-io\n" {
		t.Errorf("token set output = %q", out)
	}

	out, _, err = runCommand(t, "token", "get", "crates-io")
	if err != nil {
		t.Fatalf("token get failed: %v", err)
	}
	if out != "cio_secret\n" {
		t.Errorf("token get output = %q", out)
	}

	if _, _, err := runCommand(t, "token", "remove", "crates-io"); err != nil {
		t.Fatalf("token remove failed: %v", err)
	}

	_, _, err = runCommand(t, "token", "get", "crates-io")
	if !errors.Is(err, tokenstore.ErrTokenNotFound) {
		t.Errorf("token get after remove should report ErrTokenNotFound, got %v", err)
	}
}

func TestDoctorCommand(t *testing.T) {
	testEnv(t)

	if _, _, err := runCommand(t, "create", "work"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, _, err := runCommand(t, "switch", "work"); err != nil {
		t.Fatalf("switch failed: %v", err)
	}

	out, _, err := runCommand(t, "doctor")
	if err != nil {
		t.Fatalf("doctor failed: %v", err)
	}

	if !strings.Contains(out, "cargo-config diagnostics:") {
		t.Errorf("doctor output missing header: %q", out)
	}
	if !strings.Contains(out, "All checks passed.") {
		t.Errorf("doctor on a healthy setup should pass, got %q", out)
	}
}

func TestMigrationRunsBeforeList(t *testing.T) {
	cargoDir := testEnv(t)

	original := "[net]\ngit-fetch-with-cli = true\n"
	if err := os.WriteFile(filepath.Join(cargoDir, config.ActiveConfigName), []byte(original), 0644); err != nil {
		t.Fatalf("failed to seed config.toml: %v", err)
	}

	out, _, err := runCommand(t, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if !strings.Contains(out, "Warning:") {
		t.Errorf("migration warning expected, got %q", out)
	}
	if !strings.Contains(out, "- config (active)") {
		t.Errorf("migrated profile should be listed as active, got %q", out)
	}
}

func TestSwitchCompletionReturnsProfileNames(t *testing.T) {
	testEnv(t)

	for _, name := range []string{"work", "other"} {
		if _, _, err := runCommand(t, "create", name); err != nil {
			t.Fatalf("create %s failed: %v", name, err)
		}
	}
	if _, _, err := runCommand(t, "switch", "work"); err != nil {
		t.Fatalf("switch failed: %v", err)
	}

	out, _, err := runCommand(t, cobra.ShellCompRequestCmd, "switch", "")
	if err != nil {
		t.Fatalf("completion request failed: %v", err)
	}

	if !strings.Contains(out, "work") || !strings.Contains(out, "other") {
		t.Errorf("completion should offer profile names, got %q", out)
	}
}

func TestCompletionRequestDoesNotMigrate(t *testing.T) {
	cargoDir := testEnv(t)

	if err := os.WriteFile(filepath.Join(cargoDir, config.ActiveConfigName), []byte("[net]\n"), 0644); err != nil {
		t.Fatalf("failed to seed config.toml: %v", err)
	}

	if _, _, err := runCommand(t, cobra.ShellCompRequestCmd, "switch", ""); err != nil {
		t.Fatalf("completion request failed: %v", err)
	}

	pointerFile := filepath.Join(cargoDir, config.ProfileDirName, config.PointerFileName)
	if _, err := os.Stat(pointerFile); !errors.Is(err, fs.ErrNotExist) {
		t.Error("a completion request must not trigger the migration")
	}
}
