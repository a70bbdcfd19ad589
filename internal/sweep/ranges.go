package sweep

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/newthinker/prism/internal/core"
)

// ParseRangeSpec parses a "min:max:step" string into a Range. The CLI
// uses this form for estimate invocations.
func ParseRangeSpec(s string) (Range, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return Range{}, core.WrapError(core.ErrInvalidRange,
			fmt.Errorf("invalid range format %q: expected min:max:step", s))
	}

	min, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Range{}, core.WrapError(core.ErrInvalidRange,
			fmt.Errorf("invalid min value %q: %w", parts[0], err))
	}

	max, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Range{}, core.WrapError(core.ErrInvalidRange,
			fmt.Errorf("invalid max value %q: %w", parts[1], err))
	}

	step, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil {
		return Range{}, core.WrapError(core.ErrInvalidRange,
			fmt.Errorf("invalid step value %q: %w", parts[2], err))
	}

	if step <= 0 {
		return Range{}, core.WrapError(core.ErrInvalidRange,
			fmt.Errorf("step must be positive, got %g", step))
	}

	return Range{Min: min, Max: max, Step: step}, nil
}

// ParseRangeSpecs parses "name=min:max:step" arguments into a range map.
func ParseRangeSpecs(args []string) (map[string]Range, error) {
	ranges := make(map[string]Range, len(args))
	for _, arg := range args {
		name, spec, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, core.WrapError(core.ErrInvalidRange,
				fmt.Errorf("invalid range argument %q: expected name=min:max:step", arg))
		}
		r, err := ParseRangeSpec(spec)
		if err != nil {
			return nil, err
		}
		ranges[name] = r
	}
	return ranges, nil
}
