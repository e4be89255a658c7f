package cli

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// shortIDLen matches the teacher's pkg/stringid short-ID convention: a
// UUIDv7 truncated to its leading, time-ordered bytes. Those 12 hex
// digits are the UUIDv7's 48-bit Unix-millisecond timestamp, so two IDs
// generated within the same millisecond are equal.
const shortIDLen = 12

// newContainerID returns a lowercase hex identifier derived from a
// UUIDv7, the same generator the teacher's pkg/stringid uses for
// container IDs, truncated for use as the container's overlay workspace
// directory name.
func newContainerID() string {
	id := strings.ReplaceAll(uuid.Must(uuid.NewV7()).String(), "-", "")
	return id[:shortIDLen]
}

// epochNow returns the current Unix time, used to make cgroup scope names
// unique across runs for the same PID.
func epochNow() int64 {
	return time.Now().Unix()
}
