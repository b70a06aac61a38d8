package helm

import (
	"errors"
	"fmt"
	"io/fs"

	"helm.sh/helm/v3/pkg/getter"
	"helm.sh/helm/v3/pkg/repo"
)

// EnsureRepo registers a chart repository in the Helm repository config.
// A repository that is already present with the same URL is treated as
// success; a name collision with a different URL is an error, because
// silently repointing a repo would change what subsequent installs fetch.
func (c *Client) EnsureRepo(name, url string) error {
	f, err := repo.LoadFile(c.settings.RepositoryConfig)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load helm repository config: %w", err)
		}
		f = repo.NewFile()
	}

	if existing := f.Get(name); existing != nil {
		if existing.URL == url {
			return nil
		}
		return fmt.Errorf("helm repo %s already registered with different URL %s", name, existing.URL)
	}

	entry := repo.Entry{Name: name, URL: url}

	r, err := repo.NewChartRepository(&entry, getter.All(c.settings))
	if err != nil {
		return fmt.Errorf("failed to create chart repository %s: %w", name, err)
	}

	if _, err := r.DownloadIndexFile(); err != nil {
		return fmt.Errorf("failed to download index for repo %s: %w", name, err)
	}

	f.Update(&entry)
	if err := f.WriteFile(c.settings.RepositoryConfig, 0o644); err != nil {
		return fmt.Errorf("failed to write helm repository config: %w", err)
	}
	return nil
}
