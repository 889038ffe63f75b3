package units

import (
	"context"
	"time"

	"github.com/mongodb/amboy"
	"github.com/pkg/errors"
)

const tsFormat = "2006-01-02.15-04-05"

// PopulateRatingReconciliationJobs returns a queue operation that
// enqueues one rating reconciliation job per interval tick.
func PopulateRatingReconciliationJobs() amboy.QueueOperation {
	return func(ctx context.Context, queue amboy.Queue) error {
		ts := time.Now().Truncate(time.Minute).Format(tsFormat)

		return errors.WithStack(queue.Put(ctx, NewRatingReconciliationJob(ts)))
	}
}
