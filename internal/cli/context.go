package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/mojomint/coinctl/internal/config"
	"github.com/mojomint/coinctl/internal/output"
	"github.com/mojomint/coinctl/internal/service/coins"
)

// CommandContext holds dependencies for CLI commands.
type CommandContext struct {
	Config    *config.Config
	Logger    *config.Logger
	Formatter *output.Formatter
	RPC       coins.WalletRPC
}

// NewCommandContext creates a context with the given dependencies.
func NewCommandContext(
	cfg *config.Config,
	logger *config.Logger,
	formatter *output.Formatter,
) *CommandContext {
	return &CommandContext{
		Config:    cfg,
		Logger:    logger,
		Formatter: formatter,
	}
}

// WithRPC sets the wallet RPC client.
func (c *CommandContext) WithRPC(rpc coins.WalletRPC) *CommandContext {
	c.RPC = rpc
	return c
}

// contextWithTimeout returns a timeout context rooted in the command context.
func contextWithTimeout(cmd *cobra.Command, d time.Duration) (context.Context, context.CancelFunc) {
	base := cmd.Context()
	if base == nil {
		base = context.Background()
	}
	return context.WithTimeout(base, d)
}
