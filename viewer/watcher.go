package viewer

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/prism/engine/core"
)

// ConfigWatcher reloads the configuration file when it changes on disk and
// posts EVENT_CODE_CONFIG_RELOADED with the new *Config. Invalid files are
// logged and ignored.
type ConfigWatcher struct {
	path    string
	events  *core.EventSystem
	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
}

func NewConfigWatcher(path string, events *core.EventSystem) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	// Editors often replace the file, so watch the directory.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("config watcher: %w", err)
	}

	cw := &ConfigWatcher{
		path:    abs,
		events:  events,
		watcher: w,
		done:    make(chan struct{}),
	}
	cw.wg.Add(1)
	go cw.run()
	core.LogDebug("watching %s for changes", abs)
	return cw, nil
}

func (cw *ConfigWatcher) run() {
	defer cw.wg.Done()
	for {
		select {
		case <-cw.done:
			return
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cw.reload()
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			core.LogWarn("config watcher: %s", err)
		}
	}
}

func (cw *ConfigWatcher) reload() {
	cfg, err := LoadConfig(cw.path)
	if err != nil {
		core.LogWarn("ignoring config change: %s", err)
		return
	}
	core.LogInfo("config %s reloaded", cw.path)
	cw.events.Post(core.EventContext{
		Type: core.EVENT_CODE_CONFIG_RELOADED,
		Data: cfg,
	})
}

func (cw *ConfigWatcher) Close() error {
	select {
	case <-cw.done:
		return nil
	default:
	}
	close(cw.done)
	err := cw.watcher.Close()
	cw.wg.Wait()
	return err
}
