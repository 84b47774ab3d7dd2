package depot

import "go.uber.org/zap"

// Config holds global configuration for the depot packages
var Config config = config{logger: zap.NewNop()}

type config struct {
	logger *zap.Logger
}

// SetLogger replaces the logger used for archetype and engine diagnostics. A nil logger
// restores the no-op default.
func (c *config) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c.logger = logger
}

func (c *config) Logger() *zap.Logger {
	return c.logger
}
