package expense

import "github.com/satishccy/splitrix/internal/split"

// ExpenseRequest carries a bill to preview or turn into a submission payload.
// Amount is a decimal string in display units; weights are interpreted per
// the requested mode.
type ExpenseRequest struct {
	GroupID int64                `json:"group_id"`
	Amount  string               `json:"amount"`
	Memo    string               `json:"memo"`
	Mode    string               `json:"mode"`
	Weights []split.MemberWeight `json:"weights"`
}

// PreviewResponse shows the exact split a request would produce on-chain
type PreviewResponse struct {
	TotalOctas     int64             `json:"total_octas"`
	Display        string            `json:"display"`
	Allocation     *split.Allocation `json:"allocation"`
	Amounts        []int64           `json:"amounts"`
	PerShareAmount int64             `json:"per_share_amount"`
}
