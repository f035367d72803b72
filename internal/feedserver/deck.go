package feedserver

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/photoloop/photoloop/internal/model"
)

// deckFile is the on-disk YAML shape of the card deck.
type deckFile struct {
	Cards []deckCard `yaml:"cards"`
}

type deckCard struct {
	Outlet  string `yaml:"outlet"`
	Partner string `yaml:"partner"`
	Image   string `yaml:"image"`
}

// Deck holds the card list served by the feed API, loaded from a YAML
// file and refreshed when the file changes on disk.
type Deck struct {
	path string
	log  zerolog.Logger

	mu    sync.RWMutex
	items []model.FeedItem

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// OpenDeck loads the deck file and starts watching it for edits.
func OpenDeck(path string, log zerolog.Logger) (*Deck, error) {
	d := &Deck{
		path: path,
		log:  log.With().Str("component", "deck").Logger(),
		done: make(chan struct{}),
	}
	if err := d.reload(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("starting deck watcher: %w", err)
	}
	// Watch the directory: editors replace files on save, which drops a
	// watch registered on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching deck dir: %w", err)
	}
	d.watcher = watcher

	go d.watchLoop()
	return d, nil
}

// Items returns the current deck contents.
func (d *Deck) Items() []model.FeedItem {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.items
}

// Close stops the file watcher.
func (d *Deck) Close() error {
	close(d.done)
	if d.watcher != nil {
		return d.watcher.Close()
	}
	return nil
}

func (d *Deck) reload() error {
	raw, err := os.ReadFile(d.path)
	if err != nil {
		return fmt.Errorf("reading deck %s: %w", d.path, err)
	}

	var file deckFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parsing deck %s: %w", d.path, err)
	}

	items := make([]model.FeedItem, 0, len(file.Cards))
	for _, c := range file.Cards {
		items = append(items, model.FeedItem{
			OutletName: c.Outlet,
			BpName:     c.Partner,
			ImageURL:   c.Image,
		})
	}

	d.mu.Lock()
	d.items = items
	d.mu.Unlock()

	d.log.Info().Int("cards", len(items)).Str("path", d.path).Msg("deck loaded")
	return nil
}

func (d *Deck) watchLoop() {
	for {
		select {
		case <-d.done:
			return
		case event, ok := <-d.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(d.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			// A bad intermediate save keeps the previous deck.
			if err := d.reload(); err != nil {
				d.log.Warn().Err(err).Msg("deck reload failed; keeping previous deck")
			}
		case err, ok := <-d.watcher.Errors:
			if !ok {
				return
			}
			d.log.Warn().Err(err).Msg("deck watcher error")
		}
	}
}
