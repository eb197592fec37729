package settlement

import (
	"github.com/satishccy/splitrix/internal/balance"
	"github.com/satishccy/splitrix/internal/ledger"
)

// SettlementRequest asks for a payload settling everything the viewer owes
// one creditor in a group
type SettlementRequest struct {
	GroupID  int64  `json:"group_id"`
	Creditor string `json:"creditor"`
}

// SettlementResponse pairs the submission payload with the per-bill amounts
// it settles
type SettlementResponse struct {
	Submission *ledger.Submission       `json:"submission"`
	Items      []balance.SettlementItem `json:"items"`
	Total      int64                    `json:"total"`
}
