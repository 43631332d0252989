// Package lifecycle owns process-level concerns of the ferret agent:
// signal handling, ordered shutdown hooks, and the PID file that keeps
// a host to a single running instance.
package lifecycle

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
)

var (
	shutdownHooks []func()
	cancel        context.CancelFunc
)

// RegisterShutdownHook queues a hook to run on SIGTERM/SIGINT. Hooks run
// in reverse registration order so dependents stop before their deps.
func RegisterShutdownHook(hook func()) {
	shutdownHooks = append(shutdownHooks, hook)
}

// RegisterContextCanceller sets the root cancel func invoked before any
// shutdown hook fires.
func RegisterContextCanceller(c context.CancelFunc) {
	cancel = c
}

// HandleSignals blocks until the context is done or a termination signal
// arrives. SIGHUP triggers a config reload instead of exiting.
func HandleSignals(ctx context.Context) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP)

	for {
		select {
		case sig := <-stop:
			switch sig {
			case syscall.SIGTERM, syscall.SIGINT:
				shutdown()
				return
			case syscall.SIGHUP:
				reload()
			}
		case <-ctx.Done():
			return
		}
	}
}

func shutdown() {
	if cancel != nil {
		cancel()
	}
	for i := len(shutdownHooks) - 1; i >= 0; i-- {
		shutdownHooks[i]()
	}
	os.Exit(0)
}

func reload() {
	fmt.Println("Reloading agent configuration...")
	// TODO: re-read ferret.yml and propagate the new nmcli settings
}

// EnsureSingleInstance writes the current PID to pidPath and refuses to
// start when another live process already holds it. Stale files from
// crashed runs are replaced. The file is removed on shutdown.
func EnsureSingleInstance(pidPath string) error {
	if pidPath == "" {
		return fmt.Errorf("empty PID file path")
	}

	if _, err := os.Stat(pidPath); err == nil {
		pidBytes, err := os.ReadFile(pidPath)
		if err != nil {
			return fmt.Errorf("failed to read PID file: %w", err)
		}

		content := strings.TrimSpace(string(pidBytes))
		if content == "" {
			os.Remove(pidPath)
		} else {
			pid, err := strconv.Atoi(content)
			if err != nil {
				return fmt.Errorf("invalid PID format: %w", err)
			}

			// Signal 0 probes for liveness without delivering anything.
			process, err := os.FindProcess(pid)
			if err == nil {
				if err := process.Signal(syscall.Signal(0)); err == nil {
					return fmt.Errorf("another instance is already running (PID: %d)", pid)
				}
			}
			os.Remove(pidPath)
		}
	}

	currentPid := os.Getpid()
	if err := os.WriteFile(pidPath, []byte(strconv.Itoa(currentPid)), 0644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}

	RegisterShutdownHook(func() {
		os.Remove(pidPath)
	})

	return nil
}
