package group

import "github.com/satishccy/splitrix/internal/balance"

// CreateGroupRequest represents the request to build a create-group payload
type CreateGroupRequest struct {
	Members []string `json:"members"`
}

// RefreshResponse reports the outcome of a snapshot refresh
type RefreshResponse struct {
	Viewer string `json:"viewer"`
	Groups int    `json:"groups"`
}

// BalancesResponse represents the viewer's net position in a group
type BalancesResponse struct {
	GroupID    int64                         `json:"group_id"`
	NetBalance int64                         `json:"net_balance"`
	UserOwes   []balance.CounterpartyBalance `json:"user_owes"`
	UserIsOwed []balance.CounterpartyBalance `json:"user_is_owed"`
}
