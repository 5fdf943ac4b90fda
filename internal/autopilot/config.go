package autopilot

// earlyGameLengthLimit bounds Policy B (early-game chase) to snakes that
// haven't outgrown the board enough for a chase to be risky.
const earlyGameLengthLimit = 18

// DebugStats mirrors the host-facing debug record: diagnostic counters
// and the label of the most recent decision, useful to tests and the
// harness's per-run reporting.
type DebugStats struct {
	Mode               string
	CycleAvailable     bool
	ShortcutsAccepted  int
	ShortcutsRejected  int
	EmergencyCount     int
	FallbackCount      int
	LastDecision       string
	LastSurvivalBuffer int
	Step               uint64
}

// Config holds the empirically-tuned thresholds spec.md's Design Notes
// call out as "tuned empirically; re-tuning expected." cmd/harness loads
// overrides for the SurvivalWeights from an optional YAML file via Viper;
// the length bands are not read from that file. Everything else about the
// pipeline's structure is fixed.
type Config struct {
	// CadenceBands/PathLimitBands/ToleranceBands/ShortPathBands are
	// length cutoffs paired with the value that applies below each
	// cutoff; the last entry's value applies above the last cutoff.
	CadenceBands   []LengthBand
	PathLimitBands []LengthBand
	ToleranceBands []LengthBandFloat
	ShortPathBands []LengthBand

	// SurvivalWeights are the §4.5.4 score coefficients.
	SurvivalWeights SurvivalWeights
}

// LengthBand pairs a snake-length cutoff (exclusive upper bound) with an
// integer value that applies to lengths below it.
type LengthBand struct {
	UpTo  int
	Value int
}

// LengthBandFloat is LengthBand for float-valued thresholds.
type LengthBandFloat struct {
	UpTo  int
	Value float64
}

// SurvivalWeights are the §4.5.4 survivalScore coefficients.
type SurvivalWeights struct {
	OpenSpace     float64
	OpenNeighbors float64
	TailBuffer    float64
	NearestFruit  float64
}

// DefaultConfig returns the thresholds transcribed from spec.md §4.5.2
// and §4.5.4.
func DefaultConfig() Config {
	return Config{
		CadenceBands: []LengthBand{
			{UpTo: 90, Value: 1},
			{UpTo: 181, Value: 2},
			{UpTo: 0, Value: 3}, // UpTo 0 marks the final, unbounded band
		},
		PathLimitBands: []LengthBand{
			{UpTo: 80, Value: 34},
			{UpTo: 181, Value: 28},
			{UpTo: 0, Value: 22},
		},
		ToleranceBands: []LengthBandFloat{
			{UpTo: 90, Value: 18},
			{UpTo: 181, Value: 12},
			{UpTo: 0, Value: 8},
		},
		ShortPathBands: []LengthBand{
			{UpTo: 70, Value: 8},
			{UpTo: 0, Value: 6},
		},
		SurvivalWeights: SurvivalWeights{
			OpenSpace:     6,
			OpenNeighbors: 55,
			TailBuffer:    4,
			NearestFruit:  3,
		},
	}
}

func (c Config) cadenceSteps(length int) int {
	return bandInt(c.CadenceBands, length)
}

func (c Config) pathLimit(length int) int {
	return bandInt(c.PathLimitBands, length)
}

func (c Config) toleranceFor(length int) float64 {
	return bandFloat(c.ToleranceBands, length)
}

func (c Config) shortPathLimit(length int) int {
	return bandInt(c.ShortPathBands, length)
}

func bandInt(bands []LengthBand, length int) int {
	for _, b := range bands {
		if b.UpTo == 0 || length < b.UpTo {
			return b.Value
		}
	}
	return 0
}

func bandFloat(bands []LengthBandFloat, length int) float64 {
	for _, b := range bands {
		if b.UpTo == 0 || length < b.UpTo {
			return b.Value
		}
	}
	return 0
}
