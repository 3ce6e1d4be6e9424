package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/cargoctl/cargo-config/internal/config"
)

// CheckResult represents the result of a diagnostic check.
type CheckResult struct {
	Name    string      `json:"name"`
	Status  CheckStatus `json:"status"`
	Message string      `json:"message"`
	Fix     string      `json:"fix,omitempty"`
}

// CheckStatus represents the status of a diagnostic check.
type CheckStatus int

const (
	// CheckOK indicates the check passed.
	CheckOK CheckStatus = iota
	// CheckWarning indicates a non-critical issue.
	CheckWarning
	// CheckError indicates a critical failure.
	CheckError
	// CheckSkipped indicates the check was skipped.
	CheckSkipped
)

// String returns the status name.
func (s CheckStatus) String() string {
	switch s {
	case CheckOK:
		return "OK"
	case CheckWarning:
		return "WARN"
	case CheckError:
		return "ERROR"
	case CheckSkipped:
		return "SKIP"
	default:
		return "UNKNOWN"
	}
}

// Icon returns the status icon for display.
func (s CheckStatus) Icon() string {
	switch s {
	case CheckOK:
		return "[OK]"
	case CheckWarning:
		return "[!!]"
	case CheckError:
		return "[XX]"
	case CheckSkipped:
		return "[--]"
	default:
		return "[??]"
	}
}

// MarshalJSON implements json.Marshaler.
func (s CheckStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// DoctorOutput represents doctor output for JSON.
type DoctorOutput struct {
	Checks  []CheckResult `json:"checks"`
	Healthy bool          `json:"healthy"`
}

// newDoctorCmd creates the doctor command.
func (cli *CLI) newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the profile directory and active link",
		Long: `Run diagnostic checks against the profile directory and cargo's
config.toml: directory layout, pointer file consistency, and whether the
active link still points at the active profile's file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ParseOutputFormat(cli.outputFlag)
			if err != nil {
				return err
			}
			return cli.runDoctor(format, cmd.OutOrStdout())
		},
	}
}

// runDoctor executes all diagnostic checks.
func (cli *CLI) runDoctor(format OutputFormat, w io.Writer) error {
	checks := []CheckResult{
		cli.checkCargoDir(),
		cli.checkProfileDir(),
		cli.checkPointer(),
		cli.checkActiveLink(),
		cli.checkTokenStore(),
	}

	healthy := true
	for _, c := range checks {
		if c.Status == CheckError {
			healthy = false
		}
	}

	output := NewOutputWriterTo(format, w)
	return output.Write(DoctorOutput{Checks: checks, Healthy: healthy}, func() {
		fmt.Fprintln(w, "cargo-config diagnostics:")
		fmt.Fprintln(w)
		for _, c := range checks {
			fmt.Fprintf(w, "  %s %s: %s\n", c.Status.Icon(), c.Name, c.Message)
			if c.Fix != "" {
				fmt.Fprintf(w, "       Fix: %s\n", c.Fix)
			}
		}
		fmt.Fprintln(w)
		if healthy {
			fmt.Fprintln(w, "All checks passed.")
		} else {
			fmt.Fprintln(w, "Some checks failed.")
		}
	})
}

// checkCargoDir verifies cargo's own directory exists.
func (cli *CLI) checkCargoDir() CheckResult {
	result := CheckResult{Name: "cargo directory"}

	info, err := os.Stat(cli.Paths.CargoDir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		result.Status = CheckError
		result.Message = fmt.Sprintf("%s does not exist", cli.Paths.CargoDir)
		result.Fix = "install cargo, or set CARGO_HOME"
	case err != nil:
		result.Status = CheckError
		result.Message = err.Error()
	case !info.IsDir():
		result.Status = CheckError
		result.Message = fmt.Sprintf("%s is not a directory", cli.Paths.CargoDir)
	default:
		result.Status = CheckOK
		result.Message = cli.Paths.CargoDir
	}
	return result
}

// checkProfileDir verifies the profile directory exists.
func (cli *CLI) checkProfileDir() CheckResult {
	result := CheckResult{Name: "profile directory"}

	info, err := os.Stat(cli.Paths.ProfileDir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		result.Status = CheckWarning
		result.Message = "no profiles yet"
		result.Fix = "run 'cargo-config create <name>'"
	case err != nil:
		result.Status = CheckError
		result.Message = err.Error()
	case !info.IsDir():
		result.Status = CheckError
		result.Message = fmt.Sprintf("%s is not a directory", cli.Paths.ProfileDir)
	default:
		result.Status = CheckOK
		result.Message = cli.Paths.ProfileDir
	}
	return result
}

// checkPointer verifies the pointer file names an existing profile.
func (cli *CLI) checkPointer() CheckResult {
	result := CheckResult{Name: "pointer file"}

	current, err := cli.Store.Current()
	if err != nil {
		result.Status = CheckWarning
		result.Message = "no active profile recorded"
		result.Fix = "run 'cargo-config switch <name>'"
		return result
	}

	if _, err := os.Stat(cli.Paths.ProfileFile(current)); errors.Is(err, fs.ErrNotExist) {
		result.Status = CheckWarning
		result.Message = fmt.Sprintf("active profile %q has been removed; %s still holds its last content", current, config.ActiveConfigName)
		result.Fix = "switch to an existing profile"
		return result
	}

	result.Status = CheckOK
	result.Message = fmt.Sprintf("active profile is %q", current)
	return result
}

// checkActiveLink verifies config.toml is the same file as the active
// profile's file (hard-link identity).
func (cli *CLI) checkActiveLink() CheckResult {
	result := CheckResult{Name: "active link"}

	activeInfo, err := os.Stat(cli.Paths.ActiveConfig)
	if errors.Is(err, fs.ErrNotExist) {
		result.Status = CheckWarning
		result.Message = fmt.Sprintf("no %s in place", config.ActiveConfigName)
		result.Fix = "run 'cargo-config switch <name>'"
		return result
	}
	if err != nil {
		result.Status = CheckError
		result.Message = err.Error()
		return result
	}

	current, err := cli.Store.Current()
	if err != nil {
		result.Status = CheckWarning
		result.Message = fmt.Sprintf("%s exists but no profile is recorded as active", config.ActiveConfigName)
		result.Fix = "run 'cargo-config switch <name>' to bring it under management"
		return result
	}

	if cli.Settings.Activation == config.ActivationCopy {
		result.Status = CheckSkipped
		result.Message = "copy activation in use; link identity not applicable"
		return result
	}

	profileInfo, err := os.Stat(cli.Paths.ProfileFile(current))
	if err != nil {
		result.Status = CheckWarning
		result.Message = fmt.Sprintf("cannot stat active profile %q: %v", current, err)
		return result
	}

	if !os.SameFile(activeInfo, profileInfo) {
		result.Status = CheckWarning
		result.Message = fmt.Sprintf("%s is not linked to profile %q", config.ActiveConfigName, current)
		result.Fix = fmt.Sprintf("run 'cargo-config switch %s' to relink", current)
		return result
	}

	result.Status = CheckOK
	result.Message = fmt.Sprintf("%s is linked to profile %q", config.ActiveConfigName, current)
	return result
}

// checkTokenStore verifies the registry token store is reachable.
func (cli *CLI) checkTokenStore() CheckResult {
	result := CheckResult{Name: "token store"}

	if err := cli.Tokens.IsAvailable(); err != nil {
		result.Status = CheckWarning
		result.Message = err.Error()
		result.Fix = "registry tokens are optional; the rest of cargo-config works without them"
		return result
	}

	result.Status = CheckOK
	result.Message = "OS keyring is available"
	return result
}
