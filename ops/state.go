package ops

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/codepipeline"
	"github.com/aws/aws-sdk-go-v2/service/codepipeline/types"
	"github.com/cockroachdb/errors"
)

// ActionStatus is the latest execution state of one action.
type ActionStatus struct {
	Stage      string
	Action     string
	Status     string
	Summary    string
	Error      string
	LastChange time.Time

	token string
}

// Pending reports whether the action is waiting, e.g. on a manual approval.
func (a ActionStatus) Pending() bool {
	return a.Status == string(types.ActionExecutionStatusInProgress) && a.token != ""
}

// State returns the latest status of every action, in stage order. Actions
// that never ran have an empty Status.
func (c *Client) State(ctx context.Context, pipeline string) ([]ActionStatus, error) {
	out, err := c.Pipelines.GetPipelineState(ctx, &codepipeline.GetPipelineStateInput{
		Name: aws.String(pipeline),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get state of pipeline %q", pipeline)
	}

	var statuses []ActionStatus
	for _, stage := range out.StageStates {
		for _, action := range stage.ActionStates {
			st := ActionStatus{
				Stage:  aws.ToString(stage.StageName),
				Action: aws.ToString(action.ActionName),
			}
			if exec := action.LatestExecution; exec != nil {
				st.Status = string(exec.Status)
				st.Summary = aws.ToString(exec.Summary)
				st.LastChange = aws.ToTime(exec.LastStatusChange)
				st.token = aws.ToString(exec.Token)
				if exec.ErrorDetails != nil {
					st.Error = aws.ToString(exec.ErrorDetails.Message)
				}
			}
			statuses = append(statuses, st)
		}
	}
	return statuses, nil
}
