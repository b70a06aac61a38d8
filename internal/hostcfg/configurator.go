// Package hostcfg maintains the host machine's DNS resolution and TLS trust
// so *.<domain> resolves to localhost and is served with a locally trusted
// certificate. It owns the dnsmasq wildcard rule, the macOS resolver entry,
// the mkcert-issued certificate, and the state file used to detect domain
// changes between runs.
package hostcfg

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Default locations on a Homebrew macOS host.
const (
	ResolverDir     = "/etc/resolver"
	DefaultCertsDir = "certs"

	// Certificate file names consumed by every TLS secret refresh.
	CertFile = "cert.pem"
	KeyFile  = "key.pem"
)

// dnsmasqConfDirs are the Homebrew dnsmasq include directories, Apple
// Silicon prefix first.
var dnsmasqConfDirs = []string{
	"/opt/homebrew/etc/dnsmasq.d",
	"/usr/local/etc/dnsmasq.d",
}

// DefaultDnsmasqConfDir returns the first existing Homebrew dnsmasq include
// directory, falling back to the Apple Silicon prefix.
func DefaultDnsmasqConfDir() string {
	for _, dir := range dnsmasqConfDirs {
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
	}
	return dnsmasqConfDirs[0]
}

// Configurator applies host DNS and TLS configuration for a local domain.
// All mutations go through the Runner or plain file writes; every step is
// fail-fast with no retries.
type Configurator struct {
	Runner         Runner
	DnsmasqConfDir string
	ResolverDir    string
	StatePath      string
	CertsDir       string

	// Euid returns the effective UID; overridable in tests.
	Euid func() int

	// SudoUser is the invoking user when running under sudo. mkcert must
	// run as this user because its CA lives in the per-user trust store.
	SudoUser string
}

// NewConfigurator returns a Configurator wired to the real host.
func NewConfigurator() *Configurator {
	return &Configurator{
		Runner:         ExecRunner{},
		DnsmasqConfDir: DefaultDnsmasqConfDir(),
		ResolverDir:    ResolverDir,
		StatePath:      DefaultStateFile,
		CertsDir:       DefaultCertsDir,
		Euid:           os.Geteuid,
		SudoUser:       os.Getenv("SUDO_USER"),
	}
}

// Configure points *.<domain> at 127.0.0.1 and issues a trusted wildcard
// certificate for it. If the domain changed since the last run, the old
// domain's DNS configuration is removed first.
func (c *Configurator) Configure(ctx context.Context, domain string) error {
	if err := c.requireRoot(); err != nil {
		return err
	}

	last, err := ReadLastDomain(c.StatePath)
	if err != nil {
		return err
	}

	if last != "" && last != domain {
		log.Printf("Domain changed from %s to %s, removing old configuration", last, domain)
		if err := c.removeDomainFiles(last); err != nil {
			return err
		}
	}

	if err := c.writeDNSConfig(domain); err != nil {
		return err
	}

	if err := c.restartDnsmasq(ctx); err != nil {
		return err
	}

	if err := c.flushDNSCache(ctx); err != nil {
		return err
	}

	if err := c.generateCertificate(ctx, domain); err != nil {
		return err
	}

	if err := WriteLastDomain(c.StatePath, domain); err != nil {
		return err
	}

	log.Printf("Host configured for *.%s -> 127.0.0.1", domain)
	return nil
}

// Clean removes the DNS configuration for the domain and deletes the state
// file. Certificates are left in place; they are harmless without the DNS
// entry and regenerating them requires user interaction with the trust
// store.
func (c *Configurator) Clean(ctx context.Context, domain string) error {
	if err := c.requireRoot(); err != nil {
		return err
	}

	if err := c.removeDomainFiles(domain); err != nil {
		return err
	}

	if err := c.restartDnsmasq(ctx); err != nil {
		return err
	}

	if err := c.flushDNSCache(ctx); err != nil {
		return err
	}

	return RemoveState(c.StatePath)
}

// CertPaths returns the certificate and key file paths.
func (c *Configurator) CertPaths() (certPath, keyPath string) {
	return filepath.Join(c.CertsDir, CertFile), filepath.Join(c.CertsDir, KeyFile)
}

func (c *Configurator) requireRoot() error {
	if c.Euid() != 0 {
		return fmt.Errorf("host configuration requires root; re-run with sudo")
	}
	return nil
}

func (c *Configurator) dnsmasqConfPath(domain string) string {
	return filepath.Join(c.DnsmasqConfDir, domain+".conf")
}

func (c *Configurator) resolverPath(domain string) string {
	return filepath.Join(c.ResolverDir, domain)
}

func (c *Configurator) writeDNSConfig(domain string) error {
	if err := os.MkdirAll(c.DnsmasqConfDir, 0o755); err != nil {
		return fmt.Errorf("failed to create dnsmasq config dir: %w", err)
	}

	rule := fmt.Sprintf("address=/.%s/127.0.0.1\n", domain)
	if err := os.WriteFile(c.dnsmasqConfPath(domain), []byte(rule), 0o644); err != nil {
		return fmt.Errorf("failed to write dnsmasq config: %w", err)
	}

	if err := os.MkdirAll(c.ResolverDir, 0o755); err != nil {
		return fmt.Errorf("failed to create resolver dir: %w", err)
	}

	resolver := "nameserver 127.0.0.1\n"
	if err := os.WriteFile(c.resolverPath(domain), []byte(resolver), 0o644); err != nil {
		return fmt.Errorf("failed to write resolver entry: %w", err)
	}
	return nil
}

func (c *Configurator) removeDomainFiles(domain string) error {
	for _, path := range []string{c.dnsmasqConfPath(domain), c.resolverPath(domain)} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}
	return nil
}

func (c *Configurator) restartDnsmasq(ctx context.Context) error {
	if _, err := c.Runner.Run(ctx, "brew", "services", "restart", "dnsmasq"); err != nil {
		return fmt.Errorf("failed to restart dnsmasq: %w", err)
	}
	return nil
}

func (c *Configurator) flushDNSCache(ctx context.Context) error {
	if _, err := c.Runner.Run(ctx, "dscacheutil", "-flushcache"); err != nil {
		return fmt.Errorf("failed to flush DNS cache: %w", err)
	}
	if _, err := c.Runner.Run(ctx, "killall", "-HUP", "mDNSResponder"); err != nil {
		return fmt.Errorf("failed to signal mDNSResponder: %w", err)
	}
	return nil
}

// generateCertificate issues a wildcard certificate with mkcert. mkcert's
// root CA lives in the invoking user's trust store, so under sudo it must
// run as SUDO_USER, not root.
func (c *Configurator) generateCertificate(ctx context.Context, domain string) error {
	if err := os.MkdirAll(c.CertsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create certs dir: %w", err)
	}

	certPath, keyPath := c.CertPaths()
	args := []string{
		"-cert-file", certPath,
		"-key-file", keyPath,
		"*." + domain, domain,
	}

	var err error
	if c.SudoUser != "" {
		_, err = c.Runner.Run(ctx, "sudo", append([]string{"-u", c.SudoUser, "mkcert"}, args...)...)
	} else {
		_, err = c.Runner.Run(ctx, "mkcert", args...)
	}
	if err != nil {
		return fmt.Errorf("failed to generate certificate for *.%s: %w", domain, err)
	}
	return nil
}
