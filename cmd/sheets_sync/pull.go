package main

import (
	"context"
	"fmt"

	"github.com/2beens/fitprogress/internal/progress"
)

type sheetPuller interface {
	Pull(ctx context.Context) ([]progress.Entry, error)
}

type entrySaver interface {
	Save(ctx context.Context, entry progress.Entry) (*progress.Entry, bool, error)
}

type pullResult struct {
	Created int
	Updated int
}

// pullSheet upserts every sheet row into the store. It stops at the first failing entry;
// the result counts what was saved until then.
func pullSheet(ctx context.Context, puller sheetPuller, saver entrySaver) (pullResult, error) {
	var result pullResult

	entries, err := puller.Pull(ctx)
	if err != nil {
		return result, fmt.Errorf("pull sheet: %w", err)
	}

	for _, e := range entries {
		_, created, err := saver.Save(ctx, e)
		if err != nil {
			return result, fmt.Errorf("save entry [%s]: %w", e.DateKey(), err)
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	return result, nil
}
