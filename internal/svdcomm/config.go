package svdcomm

import "fmt"

// Config configures Encode.
type Config struct {
	// Compress enables compression. When false Encode returns the tensor as an
	// *Uncompressed payload.
	Compress bool

	// Rank selects how many singular components to keep.
	// With RandomSample: 0 keeps each component with probability s[i]/s[0];
	// k > 0 keeps about k components on average. Negative is invalid.
	// Without RandomSample: k > 0 keeps the top k; negative keeps all;
	// 0 is invalid.
	Rank int

	// RandomSample enables probability-proportional sampling with debiasing.
	// When false the top Rank components are kept as-is.
	RandomSample bool

	// Seed for the sampling source. -1 = random.
	Seed int64

	// MaxRetries bounds the number of sampling rounds that may come back
	// empty before the dominant component is kept. 0 = unbounded.
	MaxRetries int
}

// DefaultConfig returns adaptive sampled compression with a random seed.
func DefaultConfig() Config {
	return Config{
		Compress:     true,
		Rank:         0,
		RandomSample: true,
		Seed:         -1,
		MaxRetries:   64,
	}
}

// Validate checks that Rank is usable with the selection mode.
func (c Config) Validate() error {
	if !c.Compress {
		return nil
	}
	if c.RandomSample && c.Rank < 0 {
		return fmt.Errorf("%w: rank %d with random sampling (must be >= 0)", ErrInvalidRank, c.Rank)
	}
	if !c.RandomSample && c.Rank == 0 {
		return fmt.Errorf("%w: rank 0 without random sampling keeps no components", ErrInvalidRank)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("%w: max retries %d (must be >= 0)", ErrInvalidConfig, c.MaxRetries)
	}
	return nil
}
