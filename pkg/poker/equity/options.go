package equity

// Mode selects how an incomplete board is completed
type Mode string

// computation modes
const (
	// ModeAuto enumerates when the combination count is at most
	// ExactMaxCombos, otherwise samples
	ModeAuto Mode = "auto"
	// ModeExact always enumerates every completion
	ModeExact Mode = "exact"
	// ModeMC always samples completions at random
	ModeMC Mode = "mc"
)

// defaults for Options
const (
	DefaultIterations     = 10000
	DefaultExactMaxCombos = 200000
)

// Options configures an equity computation
type Options struct {
	Mode           Mode  `json:"mode" yaml:"mode"`
	Iterations     int   `json:"iterations" yaml:"iterations"`
	ExactMaxCombos int64 `json:"exactMaxCombos" yaml:"exactMaxCombos"`
	// Seed makes Monte Carlo runs reproducible. Zero means seed from the clock.
	Seed int64 `json:"seed,omitempty" yaml:"seed"`
}

// withDefaults fills in zero values
func (o Options) withDefaults() Options {
	if o.Mode == "" {
		o.Mode = ModeAuto
	}

	if o.Iterations <= 0 {
		o.Iterations = DefaultIterations
	}

	if o.ExactMaxCombos <= 0 {
		o.ExactMaxCombos = DefaultExactMaxCombos
	}

	return o
}
