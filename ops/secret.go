package ops

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/cockroachdb/errors"
)

// SecretInfo is the metadata of a secret. It never carries the value.
type SecretInfo struct {
	Name            string
	ARN             string
	LastChanged     time.Time
	RotationEnabled bool
}

// DescribeSecret checks that the secret exists and returns its metadata.
func (c *Client) DescribeSecret(ctx context.Context, secretID string) (SecretInfo, error) {
	out, err := c.Secrets.DescribeSecret(ctx, &secretsmanager.DescribeSecretInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		return SecretInfo{}, errors.Wrap(err, "failed to describe secret")
	}
	return SecretInfo{
		Name:            aws.ToString(out.Name),
		ARN:             aws.ToString(out.ARN),
		LastChanged:     aws.ToTime(out.LastChangedDate),
		RotationEnabled: aws.ToBool(out.RotationEnabled),
	}, nil
}
