package lifecycle

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSingleInstance(t *testing.T) {
	t.Run("EmptyPathRejected", func(t *testing.T) {
		err := EnsureSingleInstance("")
		require.Error(t, err)
	})

	t.Run("WritesCurrentPID", func(t *testing.T) {
		pidPath := filepath.Join(t.TempDir(), "ferret.pid")

		require.NoError(t, EnsureSingleInstance(pidPath))

		content, err := os.ReadFile(pidPath)
		require.NoError(t, err)
		assert.Equal(t, strconv.Itoa(os.Getpid()), string(content))
	})

	t.Run("StaleEmptyFileReplaced", func(t *testing.T) {
		pidPath := filepath.Join(t.TempDir(), "ferret.pid")
		require.NoError(t, os.WriteFile(pidPath, []byte("  \n"), 0644))

		require.NoError(t, EnsureSingleInstance(pidPath))

		content, err := os.ReadFile(pidPath)
		require.NoError(t, err)
		assert.Equal(t, strconv.Itoa(os.Getpid()), string(content))
	})

	t.Run("MalformedPIDRejected", func(t *testing.T) {
		pidPath := filepath.Join(t.TempDir(), "ferret.pid")
		require.NoError(t, os.WriteFile(pidPath, []byte("not-a-pid"), 0644))

		err := EnsureSingleInstance(pidPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid PID format")
	})

	t.Run("RunningInstanceRejected", func(t *testing.T) {
		pidPath := filepath.Join(t.TempDir(), "ferret.pid")
		// Our own PID always passes the liveness probe.
		require.NoError(t, os.WriteFile(pidPath, []byte(fmt.Sprintf("%d", os.Getpid())), 0644))

		err := EnsureSingleInstance(pidPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already running")
	})
}

func TestShutdownHookOrder(t *testing.T) {
	orig := shutdownHooks
	shutdownHooks = nil
	t.Cleanup(func() { shutdownHooks = orig })

	var order []int
	RegisterShutdownHook(func() { order = append(order, 1) })
	RegisterShutdownHook(func() { order = append(order, 2) })
	RegisterShutdownHook(func() { order = append(order, 3) })

	// Run the hooks the way shutdown does, without the os.Exit.
	for i := len(shutdownHooks) - 1; i >= 0; i-- {
		shutdownHooks[i]()
	}

	assert.Equal(t, []int{3, 2, 1}, order)
}
