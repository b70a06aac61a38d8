package helm

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"sigs.k8s.io/yaml"
)

// RenderValues expands ${VAR} placeholders in a values template against the
// vars map and parses the result into the map form the Helm SDK takes.
// The rendering is entirely in memory; nothing is written to disk, so no
// credentials can leak into a temp path.
//
// A placeholder with no entry in vars is an error: a silently empty value
// would produce a chart install that fails in a much less obvious way.
func RenderValues(template []byte, vars map[string]string) (map[string]any, error) {
	missing := map[string]struct{}{}

	expanded := os.Expand(string(template), func(key string) string {
		value, ok := vars[key]
		if !ok {
			missing[key] = struct{}{}
			return ""
		}
		return value
	})

	if len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for name := range missing {
			names = append(names, name)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("values template references undefined variables: %s", strings.Join(names, ", "))
	}

	var values map[string]any
	if err := yaml.Unmarshal([]byte(expanded), &values); err != nil {
		return nil, fmt.Errorf("failed to parse rendered values: %w", err)
	}
	return values, nil
}
