// Package workspace manages artifact output directories for builds,
// supporting both persistent (fixed-path) and ephemeral (timestamped) modes.
//
// Persistent mode uses a fixed directory (e.g., bin/) that accumulates the
// built day-unit binaries across invocations. Ephemeral mode creates
// timestamped directories (e.g., aocbuild-20201213-122336) under the system
// temp dir, suitable for throwaway builds, and removes them on Cleanup.
package workspace
