package decimate

// RenderHint advises the rendering collaborator which drawing mode to use.
// It is purely advisory; the renderer decides what to do with it.
type RenderHint string

const (
	// RenderAccelerated suggests the fast drawing path for dense output.
	RenderAccelerated RenderHint = "accelerated"
	// RenderStandard suggests the normal drawing path.
	RenderStandard RenderHint = "standard"
)

// DefaultHintThreshold is the cardinality above which acceleration is
// suggested when no threshold is configured.
const DefaultHintThreshold = 500

// SelectHint classifies an output cardinality against a threshold. A
// threshold of zero or below means DefaultHintThreshold.
func SelectHint(cardinality, threshold int) RenderHint {
	if threshold <= 0 {
		threshold = DefaultHintThreshold
	}
	if cardinality > threshold {
		return RenderAccelerated
	}
	return RenderStandard
}
