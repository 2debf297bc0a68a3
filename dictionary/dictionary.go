// Package dictionary provides the word-validity oracle the game checks
// submissions against. The word list is loaded once per Service: fetched
// fresh, else recovered from the durable response cache, else replaced by
// a small embedded fallback list.
package dictionary

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/domino14/lexistack/cache"
	"github.com/domino14/lexistack/lexicon"
)

// ResourceKey names the word list, both for single-flight loading and in
// the response cache.
const ResourceKey = "/words.txt"

var (
	ErrEmptyWordList = errors.New("word list has no playable words")
	ErrNoFetcher     = errors.New("no word list fetcher configured")
)

type State int

const (
	Uninitialized State = iota
	Loading
	Ready
	// Degraded means the fallback list is in use.
	Degraded
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Degraded:
		return "degraded"
	}
	return "unknown"
}

type Service struct {
	fetcher   Fetcher
	responses cache.ResponseCache

	group singleflight.Group

	mu        sync.RWMutex
	words     *lexicon.WordSet
	state     State
	cacheUsed bool
}

// NewService creates a dictionary. responses may be nil, in which case
// nothing is persisted and there is no cache to fall back on.
func NewService(fetcher Fetcher, responses cache.ResponseCache) *Service {
	return &Service{fetcher: fetcher, responses: responses}
}

// IsValidWord reports whether word is in the dictionary, loading it first
// if needed. It returns false if ctx is done before the load finishes; the
// load itself keeps going for later callers.
func (s *Service) IsValidWord(ctx context.Context, word string) bool {
	lex := s.Lexicon(ctx)
	if lex == nil {
		return false
	}
	return lex.HasWord(word)
}

// Lexicon waits for the word set to be loaded. It returns nil only if ctx
// is done first.
func (s *Service) Lexicon(ctx context.Context) *lexicon.WordSet {
	if ws := s.loaded(); ws != nil {
		return ws
	}
	ch := s.group.DoChan(ResourceKey, func() (any, error) {
		if ws := s.loaded(); ws != nil {
			return ws, nil
		}
		return s.load(context.WithoutCancel(ctx)), nil
	})
	select {
	case res := <-ch:
		return res.Val.(*lexicon.WordSet)
	case <-ctx.Done():
		log.Debug().Err(ctx.Err()).Msg("gave up waiting for dictionary")
		return nil
	}
}

// Preload starts loading in the background if nothing has started it yet.
func (s *Service) Preload() {
	if s.State() != Uninitialized {
		return
	}
	go s.Lexicon(context.Background())
}

func (s *Service) loaded() *lexicon.WordSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.words
}

func (s *Service) load(ctx context.Context) *lexicon.WordSet {
	s.mu.Lock()
	s.state = Loading
	s.mu.Unlock()

	ws, state, fromCache := s.populate(ctx)

	s.mu.Lock()
	s.words = ws
	s.state = state
	s.cacheUsed = fromCache
	s.mu.Unlock()
	return ws
}

func (s *Service) populate(ctx context.Context) (*lexicon.WordSet, State, bool) {
	start := time.Now()
	ws, err := s.fetch(ctx)
	if err == nil {
		log.Info().Int("words", ws.Size()).Dur("elapsed", time.Since(start)).Msg("dictionary loaded")
		return ws, Ready, false
	}
	log.Err(err).Msg("failed to fetch dictionary, trying response cache")

	ws, err = s.fromCache(ctx)
	if err == nil {
		log.Info().Int("words", ws.Size()).Msg("dictionary loaded from response cache")
		return ws, Ready, true
	}
	log.Err(err).Msg("failed to load dictionary from response cache, using fallback")
	return FallbackLexicon(), Degraded, false
}

func (s *Service) fetch(ctx context.Context) (*lexicon.WordSet, error) {
	if s.fetcher == nil {
		return nil, ErrNoFetcher
	}
	raw, err := s.fetcher.FetchWordList(ctx)
	if err != nil {
		return nil, err
	}
	words := NormalizeWordList(raw)
	if len(words) == 0 {
		return nil, ErrEmptyWordList
	}
	if s.responses != nil {
		if err := s.responses.Put(ctx, ResourceKey, raw); err != nil {
			log.Warn().Err(err).Msg("could not store word list in response cache")
		}
	}
	return lexicon.NewWordSet(ResourceKey, words), nil
}

func (s *Service) fromCache(ctx context.Context) (*lexicon.WordSet, error) {
	if s.responses == nil {
		return nil, cache.ErrNotFound
	}
	raw, err := s.responses.Get(ctx, ResourceKey)
	if err != nil {
		return nil, err
	}
	words := NormalizeWordList(raw)
	if len(words) == 0 {
		return nil, ErrEmptyWordList
	}
	return lexicon.NewWordSet(ResourceKey, words), nil
}

func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Service) IsLoaded() bool {
	st := s.State()
	return st == Ready || st == Degraded
}

func (s *Service) IsLoading() bool {
	return s.State() == Loading
}

// FallbackUsed reports whether the embedded fallback list is being served.
func (s *Service) FallbackUsed() bool {
	return s.State() == Degraded
}

// CacheUsed reports whether the word list was recovered from the response
// cache after a failed fetch.
func (s *Service) CacheUsed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cacheUsed
}

// Size is the number of words loaded, 0 before loading completes.
func (s *Service) Size() int {
	ws := s.loaded()
	if ws == nil {
		return 0
	}
	return ws.Size()
}
