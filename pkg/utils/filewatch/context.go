package filewatch

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// UntilModifyContext derives a context which is canceled as soon as any of
// the given files changes on disk (written, created, removed or renamed).
//
// The daemon uses this to notice edits of its config file: the returned
// context going done is the signal to shut down gracefully and let the
// supervisor restart the process with the new config.
//
// On error, starting the watch failed and both returned values are nil.
func UntilModifyContext(ctx context.Context, files ...string) (context.Context, func(), error) {
	cctx, cancel := context.WithCancelCause(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		cancel(err)
		return nil, nil, err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-cctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				cancel(fmt.Errorf("%s is modified (%s)", ev.Name, ev.Op))
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				cancel(err)
			}
		}
	}()

	for _, f := range files {
		if err := watcher.Add(f); err != nil {
			cancel(err)
			return nil, nil, err
		}
	}

	return cctx, func() { cancel(nil) }, nil
}
