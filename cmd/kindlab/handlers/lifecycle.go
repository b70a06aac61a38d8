package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/kindlab/internal/service"
)

// defaultLogTail is how many recent log lines `kindlab logs` shows per pod.
const defaultLogTail = 100

// Install installs a service from the catalog.
func Install(ctx context.Context, envFile, serviceName string) error {
	rec, svc, err := resolve(envFile, serviceName)
	if err != nil {
		return err
	}
	return rec.Install(ctx, svc)
}

// Upgrade upgrades a service from the catalog.
func Upgrade(ctx context.Context, envFile, serviceName string) error {
	rec, svc, err := resolve(envFile, serviceName)
	if err != nil {
		return err
	}
	return rec.Upgrade(ctx, svc)
}

// Uninstall removes a service and its namespace.
func Uninstall(ctx context.Context, envFile, serviceName string) error {
	rec, svc, err := resolve(envFile, serviceName)
	if err != nil {
		return err
	}
	return rec.Uninstall(ctx, svc)
}

// Logs prints recent logs from every pod of a service.
func Logs(ctx context.Context, envFile, serviceName string) error {
	rec, svc, err := resolve(envFile, serviceName)
	if err != nil {
		return err
	}

	logs, err := rec.Logs(ctx, svc, defaultLogTail)
	if err != nil {
		return err
	}

	for pod, podLogs := range logs {
		fmt.Printf("----- %s -----\n%s\n", pod, podLogs)
	}
	return nil
}

// Test runs a service's smoke test.
func Test(ctx context.Context, envFile, serviceName string) error {
	rec, svc, err := resolve(envFile, serviceName)
	if err != nil {
		return err
	}
	return rec.Test(ctx, svc)
}

// resolve loads config, looks up the service, and builds the reconciler.
func resolve(envFile, serviceName string) (reconciler, service.Definition, error) {
	svc, err := service.Lookup(serviceName)
	if err != nil {
		return nil, service.Definition{}, err
	}

	cfg, err := loadConfig(envFile)
	if err != nil {
		return nil, service.Definition{}, err
	}

	rec, err := newReconciler(cfg)
	if err != nil {
		return nil, service.Definition{}, err
	}
	return rec, svc, nil
}
