package main

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/cwbudde/algo-loudness/dsp/effects/dynamics"
)

// watchParamFile reloads path into store whenever it is written. The
// parent directory is watched so that editors which replace the file by
// renaming are followed. onLoad receives the result of every reload.
func watchParamFile(ctx context.Context, path string, store *dynamics.ParamStore, log *slog.Logger, onLoad func(error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	clean, err := filepath.Abs(path)
	if err != nil {
		_ = w.Close()
		return err
	}

	if err := w.Add(filepath.Dir(clean)); err != nil {
		_ = w.Close()
		return err
	}

	go func() {
		defer w.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}

				if filepath.Clean(ev.Name) != clean {
					continue
				}

				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}

				err := loadParamFile(clean, store)
				log.Debug("parameter file reloaded", "path", clean, "op", ev.Op.String(), "err", err)

				if onLoad != nil {
					onLoad(err)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}

				log.Warn("parameter file watcher", "err", err)
			}
		}
	}()

	return nil
}
