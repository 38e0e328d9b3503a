// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"runtime"
	"strconv"
	"sync"
	"testing"
)

// ContainerParallelEnv overrides the number of concurrent container
// operations allowed across a test process.
const ContainerParallelEnv = "CTRUN_TEST_CONTAINER_PARALLEL"

// ContainerSemaphore returns the process-wide channel limiting concurrent
// container operations in tests. Send to acquire a slot, receive to release.
// Capacity is $CTRUN_TEST_CONTAINER_PARALLEL or min(GOMAXPROCS, 2); more
// than two concurrent rootless Podman starts tend to hang on small runners.
var ContainerSemaphore = sync.OnceValue(func() chan struct{} {
	return make(chan struct{}, containerParallelism())
})

// AcquireContainerSlot blocks until a slot is free and releases it when t
// finishes.
func AcquireContainerSlot(t testing.TB) {
	t.Helper()

	sem := ContainerSemaphore()
	sem <- struct{}{}
	t.Cleanup(func() { <-sem })
}

func containerParallelism() int {
	if v := os.Getenv(ContainerParallelEnv); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return min(runtime.GOMAXPROCS(0), 2)
}
