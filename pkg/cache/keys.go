package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"jobmatch-backend/internal/domain"
	"jobmatch-backend/pkg/logger"
)

const (
	jobListGenerationKey = "jobs:gen"
	jobListKeyFormat     = "jobs:list:%d:%s"
	jobDetailKeyFormat   = "jobs:detail:%s"
	cvKeyFormat          = "cv:%s"
)

func JobDetailKey(jobID string) string {
	return fmt.Sprintf(jobDetailKeyFormat, jobID)
}

func CVKey(userID string) string {
	return fmt.Sprintf(cvKeyFormat, userID)
}

// JobListKey names a listing page under the current list generation.
func (c *Cache) JobListKey(ctx context.Context, filter domain.JobFilter) string {
	return fmt.Sprintf(jobListKeyFormat, c.jobListGeneration(ctx), filterHash(filter))
}

func (c *Cache) jobListGeneration(ctx context.Context) int64 {
	if !c.Enabled() {
		return 0
	}
	gen, err := c.client.Get(ctx, jobListGenerationKey).Int64()
	if err != nil {
		return 0
	}
	return gen
}

// InvalidateJobLists retires every cached listing page at once by moving
// to a new generation. Old pages expire on their TTL.
func (c *Cache) InvalidateJobLists(ctx context.Context) {
	if !c.Enabled() {
		return
	}
	if err := c.client.Incr(ctx, jobListGenerationKey).Err(); err != nil {
		logger.Log.WarnContext(ctx, "cache invalidation failed", "key", jobListGenerationKey, "error", err)
	}
}

func (c *Cache) InvalidateJob(ctx context.Context, jobID string) {
	c.Delete(ctx, JobDetailKey(jobID))
}

func (c *Cache) InvalidateCV(ctx context.Context, userID string) {
	c.Delete(ctx, CVKey(userID))
}

func filterHash(filter domain.JobFilter) string {
	b, _ := json.Marshal(filter)
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}
