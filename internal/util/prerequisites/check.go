// Package prerequisites checks for the host tools kindlab cannot work
// without. Cluster and Helm operations go through SDKs, so neither the
// kind nor helm binaries are required; docker, mkcert, and Homebrew-managed
// dnsmasq still are.
package prerequisites

import (
	"fmt"
	"os/exec"
	"strings"
)

// Tool represents a host tool that may be required.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string

	// InstallURL provides a URL for installation instructions.
	InstallURL string
}

// DefaultTools returns the tools `kindlab up` and `kindlab domain` depend on.
func DefaultTools() []Tool {
	return []Tool{
		{
			Name:        "docker",
			Required:    true,
			Description: "Runs the Kind cluster nodes as containers",
			InstallURL:  "https://docs.docker.com/desktop/install/mac-install/",
		},
		{
			Name:        "mkcert",
			Required:    true,
			Description: "Issues locally trusted TLS certificates",
			InstallURL:  "https://github.com/FiloSottile/mkcert",
		},
		{
			Name:        "brew",
			Required:    true,
			Description: "Manages the dnsmasq service for local DNS",
			InstallURL:  "https://brew.sh",
		},
		{
			Name:        "dnsmasq",
			Required:    false,
			Description: "Resolves *.<domain> to localhost (install via brew)",
			InstallURL:  "https://formulae.brew.sh/formula/dnsmasq",
		},
		{
			Name:        "kubectl",
			Required:    false,
			Description: "Handy for manual cluster inspection",
			InstallURL:  "https://kubernetes.io/docs/tasks/tools/",
		},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool    Tool
	Found   bool
	Path    string
	Version string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error if any required tools are missing.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool.Name, tool.InstallURL))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Check verifies that the specified tools are available.
func Check(tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := exec.LookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
			result.Version = toolVersion(tool.Name)
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// toolVersion fetches the tool's version string, best effort.
func toolVersion(name string) string {
	out, err := exec.Command(name, "--version").Output()
	if err != nil {
		return ""
	}
	version := strings.TrimSpace(string(out))
	if idx := strings.IndexByte(version, '\n'); idx >= 0 {
		version = version[:idx]
	}
	return version
}
