package txqueue

const defaultMaximumTransactionCount = 100_000

// Config holds the limits of a TransactionQueue
type Config struct {
	MaximumTransactionCount int
}

// DefaultConfig returns the default TransactionQueue limits
func DefaultConfig() *Config {
	return &Config{
		MaximumTransactionCount: defaultMaximumTransactionCount,
	}
}
