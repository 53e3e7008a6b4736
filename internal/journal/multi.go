package journal

import (
	"context"
	"errors"
)

// MultiJournal fans every entry out to all sinks. A failing sink does not
// stop the others.
type MultiJournal []Journal

func (m MultiJournal) Record(ctx context.Context, e *Entry) error {
	var errs []error
	for _, j := range m {
		if err := j.Record(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m MultiJournal) Close() error {
	var errs []error
	for _, j := range m {
		if err := j.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
