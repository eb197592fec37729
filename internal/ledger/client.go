package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// View function names exposed by the on-chain module.
const (
	fnGetGroups     = "get_groups"
	fnGetGroupBills = "get_group_bills"
)

// Client reads group and bill records from a fullnode's view endpoint. It is
// strictly read-only: submissions are signed and sent by the user's wallet,
// never by this service.
type Client struct {
	nodeURL    string
	contract   string
	moduleName string
	httpClient *http.Client
}

// NewClient creates a ledger client for the given fullnode URL and contract
// address.
func NewClient(nodeURL, contract, moduleName string) *Client {
	return &Client{
		nodeURL:    nodeURL,
		contract:   contract,
		moduleName: moduleName,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// viewRequest is the fullnode /v1/view request body.
type viewRequest struct {
	Function      string   `json:"function"`
	TypeArguments []string `json:"type_arguments"`
	Arguments     []any    `json:"arguments"`
}

func (c *Client) function(name string) string {
	return fmt.Sprintf("%s::%s::%s", c.contract, c.moduleName, name)
}

// view calls a view function and decodes its return values into out, which
// must be a pointer to a slice with one element per return value.
func (c *Client) view(ctx context.Context, name string, args []any, out any) error {
	body, err := json.Marshal(viewRequest{
		Function:      c.function(name),
		TypeArguments: []string{},
		Arguments:     args,
	})
	if err != nil {
		return fmt.Errorf("marshal view request: %w", err)
	}

	url := c.nodeURL + "/v1/view"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build view request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call view %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("view %s returned status %d: %s", name, resp.StatusCode, snippet)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode view %s response: %w", name, err)
	}

	slog.Debug("Ledger view call completed",
		"function", name,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GroupsForMember fetches every group the member belongs to, bills included.
// One call returns the full set so a reconciliation pass always works on a
// single consistent ledger read.
func (c *Client) GroupsForMember(ctx context.Context, member string) ([]GroupView, error) {
	// The view returns a single vector<GroupView> value.
	var returns [][]GroupView
	if err := c.view(ctx, fnGetGroups, []any{member}, &returns); err != nil {
		return nil, err
	}
	if len(returns) == 0 {
		return []GroupView{}, nil
	}
	return returns[0], nil
}

// GroupBills fetches the bill list of a single group.
func (c *Client) GroupBills(ctx context.Context, groupID int64) ([]BillView, error) {
	var returns [][]BillView
	args := []any{strconv.FormatInt(groupID, 10)}
	if err := c.view(ctx, fnGetGroupBills, args, &returns); err != nil {
		return nil, err
	}
	if len(returns) == 0 {
		return []BillView{}, nil
	}
	return returns[0], nil
}
