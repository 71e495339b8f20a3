package functional

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// aCleanAurqEnvironment is a no-op because the Before hook already sets up
// the environment. This step exists so feature files read naturally.
func aCleanAurqEnvironment(ctx context.Context) (context.Context, error) {
	return ctx, nil
}

// theAURIsUnreachable points the binary at a port nothing listens on.
func theAURIsUnreachable(ctx context.Context) (context.Context, error) {
	state := getState(ctx)
	state.aurURL = "http://127.0.0.1:1"
	return ctx, nil
}

// iRun executes a command string, replacing "aurq" with the test binary path.
func iRun(ctx context.Context, command string) (context.Context, error) {
	state := getState(ctx)
	if state == nil {
		return ctx, fmt.Errorf("no test state; is the Before hook running?")
	}

	args := strings.Fields(command)
	if len(args) > 0 && args[0] == "aurq" {
		args[0] = state.binPath
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = state.homeDir

	// Drop any inherited AURQ_* settings so the host environment cannot leak
	// into a scenario.
	var env []string
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, "AURQ_") {
			env = append(env, kv)
		}
	}
	cmd.Env = append(env,
		"AURQ_HOME="+state.homeDir,
		"AURQ_AUR_URL="+state.aurURL,
		"AURQ_API_TIMEOUT=5s",
	)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	state.stdout = stdout.String()
	state.stderr = stderr.String()

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return ctx, fmt.Errorf("command execution failed: %w", err)
		}
		state.exitCode = exitErr.ExitCode()
	} else {
		state.exitCode = 0
	}

	return ctx, nil
}

func theExitCodeIs(ctx context.Context, expected int) error {
	state := getState(ctx)
	if state.exitCode != expected {
		return fmt.Errorf("expected exit code %d, got %d\nstdout: %s\nstderr: %s",
			expected, state.exitCode, state.stdout, state.stderr)
	}
	return nil
}

func theExitCodeIsNot(ctx context.Context, notExpected int) error {
	state := getState(ctx)
	if state.exitCode == notExpected {
		return fmt.Errorf("expected exit code to not be %d\nstdout: %s\nstderr: %s",
			notExpected, state.stdout, state.stderr)
	}
	return nil
}

func theOutputContains(ctx context.Context, text string) error {
	state := getState(ctx)
	if !strings.Contains(state.stdout, text) {
		return fmt.Errorf("expected stdout to contain %q, got:\n%s", text, state.stdout)
	}
	return nil
}

func theOutputDoesNotContain(ctx context.Context, text string) error {
	state := getState(ctx)
	if strings.Contains(state.stdout, text) {
		return fmt.Errorf("expected stdout not to contain %q, got:\n%s", text, state.stdout)
	}
	return nil
}

func theOutputIsEmpty(ctx context.Context) error {
	state := getState(ctx)
	if state.stdout != "" {
		return fmt.Errorf("expected empty stdout, got:\n%s", state.stdout)
	}
	return nil
}

func theErrorOutputContains(ctx context.Context, text string) error {
	state := getState(ctx)
	if !strings.Contains(state.stderr, text) {
		return fmt.Errorf("expected stderr to contain %q, got:\n%s", text, state.stderr)
	}
	return nil
}

func theErrorOutputDoesNotContain(ctx context.Context, text string) error {
	state := getState(ctx)
	if strings.Contains(state.stderr, text) {
		return fmt.Errorf("expected stderr not to contain %q, got:\n%s", text, state.stderr)
	}
	return nil
}

// theErrorOutputIsExactly compares stderr line-for-line; the trailing newline
// is implied.
func theErrorOutputIsExactly(ctx context.Context, text string) error {
	state := getState(ctx)
	if state.stderr != text+"\n" {
		return fmt.Errorf("expected stderr to be exactly %q, got %q", text+"\n", state.stderr)
	}
	return nil
}

func theFileExists(ctx context.Context, path string) error {
	state := getState(ctx)
	fullPath := filepath.Join(state.homeDir, path)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return fmt.Errorf("expected file %q to exist", fullPath)
	}
	return nil
}
