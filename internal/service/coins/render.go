package coins

import (
	"github.com/mojomint/coinctl/internal/output"
	"github.com/mojomint/coinctl/internal/walletrpc"
)

// renderTransactions prints the submitted transaction ids with a hint
// for checking their status.
func (s *Service) renderTransactions(txs []walletrpc.TransactionRecord) {
	for _, tx := range txs {
		output.Line(s.out, "Transaction sent: %s", tx.Name.String())
		output.Line(s.out, "To get status, use command: coinctl wallet get-transaction -tx %s", tx.Name.String())
	}
}
