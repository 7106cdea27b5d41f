package searcher

// Hyperparameters for MCTS

const DefaultExploration = 1.0 // UCB1 exploration constant C

// Sarsa-UCT(lambda) defaults
const (
	DefaultAlpha      = 0.01 // Reserved: the backup derives its rate as 1/visits
	DefaultGamma      = 0.9  // TD discount factor
	DefaultTraceDecay = 0.5  // Eligibility trace decay (lambda)
)

type config struct {
	exploration float64
	alpha       float64
	gamma       float64
	traceDecay  float64
	seed        uint64
}

func defaultConfig() config {
	return config{
		exploration: DefaultExploration,
		alpha:       DefaultAlpha,
		gamma:       DefaultGamma,
		traceDecay:  DefaultTraceDecay,
		seed:        1,
	}
}

type Option func(*config)

func WithExploration(c float64) Option {
	return func(cfg *config) {
		if c > 0 {
			cfg.exploration = c
		}
	}
}

// WithAlpha sets a fixed learning rate. Unused by the current incremental
// mean schedule; recognized so experiment configs stay forward compatible.
func WithAlpha(alpha float64) Option {
	return func(cfg *config) {
		if alpha > 0 {
			cfg.alpha = alpha
		}
	}
}

func WithGamma(gamma float64) Option {
	return func(cfg *config) {
		if gamma > 0 {
			cfg.gamma = gamma
		}
	}
}

func WithTraceDecay(traceDecay float64) Option {
	return func(cfg *config) {
		if traceDecay > 0 {
			cfg.traceDecay = traceDecay
		}
	}
}

// WithSeed seeds the searcher's own randomness (the rollout-pick draw).
func WithSeed(seed uint64) Option {
	return func(cfg *config) {
		if seed > 0 {
			cfg.seed = seed
		}
	}
}
