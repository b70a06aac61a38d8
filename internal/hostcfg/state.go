package hostcfg

import (
	"fmt"
	"os"
	"strings"
)

// DefaultStateFile is the persisted host-configuration state, a single line
// recording the last configured domain.
const DefaultStateFile = ".kind-lab.state"

const stateKey = "LAST_DOMAIN="

// ReadLastDomain returns the domain recorded in the state file, or "" if
// the file does not exist or records nothing.
func ReadLastDomain(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read state file %s: %w", path, err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, stateKey) {
			return strings.TrimPrefix(line, stateKey), nil
		}
	}
	return "", nil
}

// WriteLastDomain records the domain in the state file, replacing any
// previous contents.
func WriteLastDomain(path, domain string) error {
	content := stateKey + domain + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write state file %s: %w", path, err)
	}
	return nil
}

// RemoveState deletes the state file. A missing file is not an error.
func RemoveState(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove state file %s: %w", path, err)
	}
	return nil
}
