package units

import (
	"context"
	"fmt"

	"github.com/campdirector/campdirector/db"
	"github.com/campdirector/campdirector/model/bootcamp"
	"github.com/campdirector/campdirector/model/review"
	"github.com/mongodb/amboy"
	"github.com/mongodb/amboy/job"
	"github.com/mongodb/amboy/registry"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
)

const ratingReconciliationName = "rating-reconciliation"

func init() {
	registry.AddJobType(ratingReconciliationName, func() amboy.Job {
		return makeRatingReconciliation()
	})
}

// ratingReconciliationJob recomputes the stored average rating of every
// bootcamp from its reviews. The request path already updates averages
// when reviews change, but those updates are best effort; this job
// repairs any bootcamp that drifted.
type ratingReconciliationJob struct {
	job.Base `bson:"base" json:"base" yaml:"base"`
}

func makeRatingReconciliation() *ratingReconciliationJob {
	return &ratingReconciliationJob{
		Base: job.Base{
			JobType: amboy.JobType{
				Name:    ratingReconciliationName,
				Version: 0,
			},
		},
	}
}

func NewRatingReconciliationJob(ts string) amboy.Job {
	j := makeRatingReconciliation()
	j.SetID(fmt.Sprintf("%s.%s", ratingReconciliationName, ts))
	return j
}

func (j *ratingReconciliationJob) Run(ctx context.Context) {
	defer j.MarkComplete()

	bootcamps, err := bootcamp.Find(ctx, db.Query(nil))
	if err != nil {
		j.AddError(err)
		return
	}

	repaired := 0
	for _, b := range bootcamps {
		if err := ctx.Err(); err != nil {
			j.AddError(err)
			return
		}

		if err := review.UpdateAverageRating(ctx, b.Id); err != nil {
			j.AddError(err)
			continue
		}
		repaired++
	}

	grip.Info(message.Fields{
		"message":   "reconciled bootcamp average ratings",
		"job":       j.ID(),
		"bootcamps": len(bootcamps),
		"updated":   repaired,
	})
}
