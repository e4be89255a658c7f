package cgroup

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/docker/go-units"
)

// memoryLimitPattern is the grammar from the spec: a bare decimal integer,
// optionally suffixed with a single byte-scale unit.
var memoryLimitPattern = regexp.MustCompile(`^[0-9]+[bkmgBKMG]?$`)

// ParseMemoryLimit parses s per the runtime's memory-limit grammar
// (^[0-9]+[bkmgBKMG]?$, suffixes scaling by 1024^{0,1,2,3}) and returns the
// limit in bytes. Zero is rejected: a memory-less cgroup is not a limit.
func ParseMemoryLimit(s string) (int64, error) {
	if !memoryLimitPattern.MatchString(s) {
		return 0, fmt.Errorf("%w: %q does not match ^[0-9]+[bkmgBKMG]?$", ErrInvalidMemory, s)
	}

	// go-units.RAMInBytes accepts a superset of this grammar (decimals,
	// "kb"/"kib" long suffixes); delegate the scaling arithmetic to it
	// once our stricter regexp has already rejected anything it would be
	// too permissive about.
	bytes, err := units.RAMInBytes(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidMemory, s, err)
	}
	if bytes == 0 {
		return 0, fmt.Errorf("%w: %q: zero is not a valid limit", ErrInvalidMemory, s)
	}
	return bytes, nil
}

// cpuPeriodMicros is the fixed cpu.max period, per spec.
const cpuPeriodMicros = 100000

// ParseCPULimit parses s as a positive decimal number of cores and returns
// the (quota, period) pair to write to cpu.max, with quota rounded to the
// nearest microsecond.
func ParseCPULimit(s string) (quota, period int64, err error) {
	cores, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: %w", ErrInvalidCPU, s, err)
	}
	if cores <= 0 {
		return 0, 0, fmt.Errorf("%w: %q: must be positive", ErrInvalidCPU, s)
	}
	return cpuQuota(cores), cpuPeriodMicros, nil
}

// cpuQuota computes round(cores * 100000), the microsecond quota for a
// 100000-microsecond period.
func cpuQuota(cores float64) int64 {
	return int64(math.Round(cores * float64(cpuPeriodMicros)))
}
