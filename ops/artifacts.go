package ops

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/codepipeline"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cockroachdb/errors"
)

// CodePipeline stores artifacts under the first 20 characters of the
// pipeline name.
const artifactPrefixLen = 20

// ArtifactPrefix returns the key prefix of a pipeline's artifacts.
func ArtifactPrefix(pipeline string) string {
	if len(pipeline) > artifactPrefixLen {
		pipeline = pipeline[:artifactPrefixLen]
	}
	return pipeline + "/"
}

// Object is a stored artifact revision.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ArtifactBucket returns the S3 bucket backing the pipeline's artifact store.
func (c *Client) ArtifactBucket(ctx context.Context, pipeline string) (string, error) {
	out, err := c.Pipelines.GetPipeline(ctx, &codepipeline.GetPipelineInput{
		Name: aws.String(pipeline),
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to get pipeline %q", pipeline)
	}
	if out.Pipeline == nil || out.Pipeline.ArtifactStore == nil || aws.ToString(out.Pipeline.ArtifactStore.Location) == "" {
		return "", errors.Newf("pipeline %q has no artifact store", pipeline)
	}
	return aws.ToString(out.Pipeline.ArtifactStore.Location), nil
}

// Artifacts lists every stored artifact revision of the pipeline.
func (c *Client) Artifacts(ctx context.Context, pipeline string) (bucket string, objects []Object, err error) {
	bucket, err = c.ArtifactBucket(ctx, pipeline)
	if err != nil {
		return "", nil, err
	}

	pages := s3.NewListObjectsV2Paginator(c.Objects, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(ArtifactPrefix(pipeline)),
	})
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return "", nil, errors.Wrapf(err, "failed to list artifacts in %s", bucket)
		}
		for _, obj := range page.Contents {
			objects = append(objects, Object{
				Key:          aws.ToString(obj.Key),
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
	}
	return bucket, objects, nil
}
