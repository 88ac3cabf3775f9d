package worker

import (
	"context"

	"github.com/lgbarn/domination-go/internal/config"
	"github.com/lgbarn/domination-go/internal/search"
)

// SearchRunner returns a RunFunc that parses each job as a search string and
// runs it, split into partitions when it is a fresh search.
func SearchRunner(cfg search.RunnerConfig, partitions int) RunFunc {
	return func(ctx context.Context, job Job) Result {
		res := Result{Job: job}

		info, err := config.ParseSearch(job.Search)
		if err != nil {
			res.Err = err
			return res
		}
		res.Info = info

		n := partitions
		if info.Board != "" {
			n = 1
		}
		jobCfg := cfg
		jobCfg.Logger = cfg.Logger.With().Int("job", job.Index).Logger()
		res.Stats, res.Err = search.RunPartitioned(ctx, info, n, jobCfg)
		return res
	}
}
