package ops

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/codepipeline"
	"github.com/aws/aws-sdk-go-v2/service/codepipeline/types"
	"github.com/cockroachdb/errors"
)

// ErrNoPendingApproval is returned when the approval action is not waiting
// for a decision.
var ErrNoPendingApproval = errors.New("no pending approval")

// Decision identifies a manual approval action and the answer to give it.
type Decision struct {
	Pipeline string
	Stage    string
	Action   string
	Approve  bool
	Summary  string
}

// Decide approves or rejects a pending manual approval.
func (c *Client) Decide(ctx context.Context, d Decision) error {
	statuses, err := c.State(ctx, d.Pipeline)
	if err != nil {
		return err
	}

	var token string
	for _, st := range statuses {
		if st.Stage == d.Stage && st.Action == d.Action && st.Pending() {
			token = st.token
			break
		}
	}
	if token == "" {
		return errors.Wrapf(ErrNoPendingApproval, "%s/%s/%s", d.Pipeline, d.Stage, d.Action)
	}

	status := types.ApprovalStatusRejected
	if d.Approve {
		status = types.ApprovalStatusApproved
	}

	if _, err := c.Pipelines.PutApprovalResult(ctx, &codepipeline.PutApprovalResultInput{
		PipelineName: aws.String(d.Pipeline),
		StageName:    aws.String(d.Stage),
		ActionName:   aws.String(d.Action),
		Token:        aws.String(token),
		Result: &types.ApprovalResult{
			Status:  status,
			Summary: aws.String(d.Summary),
		},
	}); err != nil {
		return errors.Wrap(err, "failed to put approval result")
	}
	return nil
}
