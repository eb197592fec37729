package ledger

import (
	"errors"
	"strconv"

	"github.com/google/uuid"

	"github.com/satishccy/splitrix/internal/split"
)

// Entry function names accepted by the on-chain module.
const (
	fnCreateGroup = "create_group"
	fnAddExpense  = "add_expense"
	fnSettleDebt  = "settle_debt"
)

var (
	ErrNoMembers       = errors.New("at least one member is required")
	ErrEmptyAddress    = errors.New("member address cannot be empty")
	ErrEmptyMemo       = errors.New("memo cannot be empty")
	ErrNoBills         = errors.New("at least one bill is required")
	ErrPayloadMismatch = errors.New("bill ids and amounts must align")
	ErrNonPositive     = errors.New("amount must be positive")
	ErrMissingCreditor = errors.New("creditor address is required")
	ErrInvalidGroupID  = errors.New("group id must be non-negative")
)

// EntryFunction is the transaction payload handed to the wallet for signing.
// Amounts and ids are string-encoded u64s, matching what the node's JSON API
// expects.
type EntryFunction struct {
	Function      string   `json:"function"`
	TypeArguments []string `json:"type_arguments"`
	Arguments     []any    `json:"arguments"`
}

// Submission wraps an entry function payload with a client-generated
// reference id so callers can correlate the eventual ledger result with the
// request that produced it. The engine only proposes payloads; submission and
// signing happen in the user's wallet.
type Submission struct {
	Ref     string        `json:"ref"`
	Payload EntryFunction `json:"payload"`
}

// PayloadBuilder builds submission payloads for a specific deployed contract.
type PayloadBuilder struct {
	contract   string
	moduleName string
}

// NewPayloadBuilder creates a payload builder for the given contract address.
func NewPayloadBuilder(contract, moduleName string) *PayloadBuilder {
	return &PayloadBuilder{contract: contract, moduleName: moduleName}
}

func (b *PayloadBuilder) submission(name string, args []any) *Submission {
	return &Submission{
		Ref: uuid.NewString(),
		Payload: EntryFunction{
			Function:      b.contract + "::" + b.moduleName + "::" + name,
			TypeArguments: []string{},
			Arguments:     args,
		},
	}
}

// CreateGroup builds the create_group payload from a member list.
func (b *PayloadBuilder) CreateGroup(members []string) (*Submission, error) {
	if len(members) == 0 {
		return nil, ErrNoMembers
	}
	for _, m := range members {
		if m == "" {
			return nil, ErrEmptyAddress
		}
	}
	return b.submission(fnCreateGroup, []any{members}), nil
}

// AddExpense builds the add_expense payload. The allocation must already sum
// to exactly 10,000 basis points; an invalid split never leaves this process.
func (b *PayloadBuilder) AddExpense(groupID int64, totalOctas int64, memo Memo, alloc *split.Allocation) (*Submission, error) {
	if groupID < 0 {
		return nil, ErrInvalidGroupID
	}
	if totalOctas <= 0 {
		return nil, ErrNonPositive
	}
	if len(memo) == 0 {
		return nil, ErrEmptyMemo
	}
	if alloc == nil || len(alloc.Debtors) == 0 {
		return nil, split.ErrNoDebtors
	}
	if len(alloc.Debtors) != len(alloc.SharesBp) {
		return nil, split.ErrLengthMismatch
	}
	if !alloc.Valid() {
		return nil, split.ErrInvalidSplitSum
	}

	bps := make([]string, len(alloc.SharesBp))
	for i, bp := range alloc.SharesBp {
		bps[i] = strconv.FormatInt(bp, 10)
	}
	args := []any{
		strconv.FormatInt(groupID, 10),
		strconv.FormatInt(totalOctas, 10),
		memo,
		alloc.Debtors,
		bps,
	}
	return b.submission(fnAddExpense, args), nil
}

// SettleDebt builds the settle_debt payload for paying a creditor across the
// listed bills. Amounts must equal the currently outstanding owed per bill as
// computed by the reconciler; the caller derives them from the latest
// snapshot to avoid over- or under-settlement.
func (b *PayloadBuilder) SettleDebt(groupID int64, creditor string, billIDs []int64, amounts []int64) (*Submission, error) {
	if groupID < 0 {
		return nil, ErrInvalidGroupID
	}
	if creditor == "" {
		return nil, ErrMissingCreditor
	}
	if len(billIDs) == 0 {
		return nil, ErrNoBills
	}
	if len(billIDs) != len(amounts) {
		return nil, ErrPayloadMismatch
	}

	ids := make([]string, len(billIDs))
	amts := make([]string, len(amounts))
	for i := range billIDs {
		if amounts[i] <= 0 {
			return nil, ErrNonPositive
		}
		ids[i] = strconv.FormatInt(billIDs[i], 10)
		amts[i] = strconv.FormatInt(amounts[i], 10)
	}
	args := []any{
		strconv.FormatInt(groupID, 10),
		creditor,
		ids,
		amts,
	}
	return b.submission(fnSettleDebt, args), nil
}
