// Package coins implements the coin-management planners: listing a
// wallet's coin records, combining many small coins into fewer larger
// ones, and splitting one coin into many. The planners validate and
// translate CLI input into typed wallet RPC requests and render the
// responses as status lines.
package coins

import (
	"context"
	"io"
	"strconv"

	"github.com/mojomint/coinctl/internal/walletrpc"
	clierr "github.com/mojomint/coinctl/pkg/errors"
)

// Logger is the minimal logging surface the service needs.
type Logger interface {
	Debug(format string, args ...any)
	Error(format string, args ...any)
}

// Service runs coin operations against a wallet RPC endpoint and writes
// status lines to out.
type Service struct {
	rpc WalletRPC
	out io.Writer
	log Logger
}

// NewService creates a coin service.
func NewService(rpc WalletRPC, out io.Writer, log Logger) *Service {
	return &Service{rpc: rpc, out: out, log: log}
}

// ensureWallet verifies the wallet id exists on the remote service.
func (s *Service) ensureWallet(ctx context.Context, walletID uint32) error {
	wallets, err := s.rpc.GetWallets(ctx)
	if err != nil {
		return err
	}
	for _, w := range wallets {
		if w.ID == walletID {
			return nil
		}
	}
	return clierr.WithDetails(clierr.ErrWalletNotFound, map[string]string{
		"wallet_id": strconv.FormatUint(uint64(walletID), 10),
	})
}

// ensureSynced verifies the wallet service has finished syncing.
func (s *Service) ensureSynced(ctx context.Context) error {
	status, err := s.rpc.GetSyncStatus(ctx)
	if err != nil {
		return err
	}
	if !status.Synced {
		return clierr.WithSuggestion(clierr.ErrWalletNotSynced,
			"wait for the wallet service to finish syncing and retry")
	}
	return nil
}

// preflight runs the wallet existence and sync checks every operation
// performs before touching coin state.
func (s *Service) preflight(ctx context.Context, walletID uint32) error {
	if err := s.ensureWallet(ctx, walletID); err != nil {
		return err
	}
	return s.ensureSynced(ctx)
}

func (s *Service) debugf(format string, args ...any) {
	if s.log != nil {
		s.log.Debug(format, args...)
	}
}

// timelock builds the validity window forwarded on every request.
// Zero bounds stay unset.
func timelock(validAt, expiresAt uint64) walletrpc.TimelockInfo {
	return walletrpc.TimelockInfo{MinTime: validAt, MaxTime: expiresAt}
}
