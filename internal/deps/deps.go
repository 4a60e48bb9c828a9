// Package deps reports whether the external programs vidscope shells out to
// are installed.
package deps

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const versionTimeout = 5 * time.Second

// Requirement defines an external program vidscope relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	// VersionArg, when set, is passed to the program to read its version.
	VersionArg string
	Optional   bool
}

// Status reports the availability of a requirement.
type Status struct {
	Name        string `json:"name" yaml:"name"`
	Command     string `json:"command" yaml:"command"`
	Description string `json:"description" yaml:"description"`
	Optional    bool   `json:"optional" yaml:"optional"`
	Available   bool   `json:"available" yaml:"available"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`
	Detail      string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// YTDLP returns the requirement for the remote metadata accessor.
func YTDLP(binary string) Requirement {
	return Requirement{
		Name:        "yt-dlp",
		Command:     binary,
		Description: "Fetches video, playlist, channel and search metadata",
		VersionArg:  "--version",
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(ctx context.Context, requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		path, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		if req.VersionArg != "" {
			status.Version = probeVersion(ctx, path, req.VersionArg)
		}
		results = append(results, status)
	}
	return results
}

// probeVersion returns the first line the program prints for arg, or "" when
// it cannot be run.
func probeVersion(ctx context.Context, path, arg string) string {
	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()
	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, path, arg)
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return ""
	}
	line, _, _ := strings.Cut(strings.TrimSpace(stdout.String()), "\n")
	return strings.TrimSpace(line)
}
