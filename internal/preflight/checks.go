package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"vidscope/internal/config"
	"vidscope/internal/deps"
	"vidscope/internal/services"
)

const generatorCheckTimeout = 30 * time.Second

// Generator is the text generator probed by CheckGenerator.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// HealthChecker is implemented by generators with a dedicated probe.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// CheckYTDLP verifies that the metadata binary is installed.
func CheckYTDLP(ctx context.Context, binary string) Result {
	status := deps.CheckBinaries(ctx, []deps.Requirement{deps.YTDLP(binary)})[0]
	result := Result{Name: status.Name, Passed: status.Available, Detail: status.Detail}
	if status.Available {
		result.Detail = status.Command
		if status.Version != "" {
			result.Detail = fmt.Sprintf("%s (%s)", status.Command, status.Version)
		}
	}
	return result
}

// CheckCredentials verifies that the selected provider has an API key.
func CheckCredentials(cfg *config.Config) Result {
	name := "Credentials"
	if err := cfg.ValidateGenerator(); err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s key configured", cfg.LLM.Provider)}
}

// CheckGenerator verifies that the generator answers a tiny prompt. It makes
// a single attempt with a 30-second timeout.
func CheckGenerator(ctx context.Context, name string, gen Generator) Result {
	checkCtx, cancel := context.WithTimeout(ctx, generatorCheckTimeout)
	defer cancel()

	var err error
	if hc, ok := gen.(HealthChecker); ok {
		err = hc.HealthCheck(checkCtx)
	} else {
		var content string
		content, err = gen.Generate(checkCtx, "Reply with the single word OK.", 8)
		if err == nil && strings.TrimSpace(content) == "" {
			err = errors.New("empty response")
		}
	}
	if err != nil {
		return Result{Name: name, Detail: summarizeGeneratorError(err)}
	}
	return Result{Name: name, Passed: true, Detail: "API reachable"}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

func summarizeGeneratorError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "health check timed out (API unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "health check timed out (API unreachable)"
	}
	classified := services.Classify(services.SurfaceAIGeneration, err)
	if classified.Kind == services.KindUnknown {
		return err.Error()
	}
	return fmt.Sprintf("%s: %s", classified.Kind, err.Error())
}
