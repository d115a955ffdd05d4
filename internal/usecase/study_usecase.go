package usecase

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/madpixels/lingocards/internal/entity"
	"github.com/madpixels/lingocards/internal/infrastructure/config"
	"github.com/madpixels/lingocards/internal/repository"
)

// StudyUsecase maintains the in-memory study queue. The queue is drawn from
// one subcategory of the active dictionaries and refilled reactively: when it
// shrinks below the configured threshold a debounced background refill fires,
// and a generation token discards refill results that complete after a Reset.
type StudyUsecase interface {
	// Start performs the initial synchronous fill.
	Start(ctx context.Context) error
	// Next pops the queue head, scheduling a background refill when the
	// queue runs low. An empty queue triggers a synchronous refill first.
	Next(ctx context.Context) (*entity.Word, error)
	// Answer checks a given answer against the word's back text treating
	// both sides as variant sets, records the outcome and returns the
	// updated word.
	Answer(ctx context.Context, word *entity.Word, given string) (bool, *entity.Word, error)
	// Reset clears the queue and invalidates any in-flight refill.
	Reset()
	Size() int
}

// NewStudyUsecase wires the repositories with the study configuration.
func NewStudyUsecase(words repository.WordRepository, wordUC WordUsecase, cfg config.StudyConfig, log *logrus.Logger) StudyUsecase {
	return &studyUsecase{
		words:  words,
		wordUC: wordUC,
		cfg:    cfg,
		log:    log,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

type studyUsecase struct {
	words  repository.WordRepository
	wordUC WordUsecase
	cfg    config.StudyConfig
	log    *logrus.Logger
	rng    *rand.Rand

	mu         sync.Mutex
	queue      []entity.Word
	generation uint64
	loading    bool
	refill     *time.Timer
}

func (u *studyUsecase) Start(ctx context.Context) error {
	return u.fill(ctx)
}

func (u *studyUsecase) Next(ctx context.Context) (*entity.Word, error) {
	u.mu.Lock()
	if len(u.queue) == 0 {
		u.mu.Unlock()
		if err := u.fill(ctx); err != nil {
			return nil, err
		}
		u.mu.Lock()
	}
	if len(u.queue) == 0 {
		u.mu.Unlock()
		return nil, entity.ErrWordNotFound
	}

	word := u.queue[0]
	u.queue = u.queue[1:]
	if len(u.queue) < u.cfg.RefillThreshold {
		u.scheduleRefillLocked()
	}
	u.mu.Unlock()
	return &word, nil
}

func (u *studyUsecase) Answer(ctx context.Context, word *entity.Word, given string) (bool, *entity.Word, error) {
	if word == nil {
		return false, nil, entity.ErrWordNotFound
	}
	correct := entity.AnswerMatches(word.BackText, given)
	updated, err := u.wordUC.RecordAnswer(ctx, word.ID, correct)
	if err != nil {
		return correct, nil, err
	}
	return correct, updated, nil
}

func (u *studyUsecase) Reset() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.generation++
	u.queue = nil
	u.loading = false
	if u.refill != nil {
		u.refill.Stop()
		u.refill = nil
	}
}

func (u *studyUsecase) Size() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.queue)
}

// scheduleRefillLocked debounces refill requests so a burst of removals
// coalesces into a single fetch. Caller must hold the mutex.
func (u *studyUsecase) scheduleRefillLocked() {
	if u.loading {
		return
	}
	debounce := time.Duration(u.cfg.RefillDebounce) * time.Millisecond
	if u.refill != nil {
		u.refill.Reset(debounce)
		return
	}
	u.refill = time.AfterFunc(debounce, func() {
		// Detached from any caller context: staleness is handled by the
		// generation token, not by cancellation.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := u.fill(ctx); err != nil && !errors.Is(err, entity.ErrNoActiveDictionaries) {
			u.log.WithError(err).Warn("study queue refill failed")
		}
	})
}

// fill fetches the candidate pool and replenishes the queue up to the batch
// size. The generation captured before the fetch guards against a Reset that
// happened while the query was running.
func (u *studyUsecase) fill(ctx context.Context) error {
	u.mu.Lock()
	if u.loading {
		u.mu.Unlock()
		return nil
	}
	u.loading = true
	generation := u.generation
	if u.refill != nil {
		u.refill.Stop()
		u.refill = nil
	}
	u.mu.Unlock()

	pool, err := u.words.FetchStudyPool(ctx)

	u.mu.Lock()
	defer u.mu.Unlock()
	if u.generation != generation {
		// A Reset raced the fetch; the result would clobber newer state.
		return nil
	}
	u.loading = false
	if err != nil {
		return err
	}

	queued := make(map[int64]struct{}, len(u.queue))
	for _, w := range u.queue {
		queued[w.ID] = struct{}{}
	}
	fresh := pool[:0:0]
	for _, w := range pool {
		if _, ok := queued[w.ID]; !ok {
			fresh = append(fresh, w)
		}
	}

	need := u.cfg.BatchSize - len(u.queue)
	if need <= 0 {
		return nil
	}
	u.queue = append(u.queue, u.drawBatch(fresh, need)...)
	return nil
}

// drawBatch blends two sampling strategies per slot: with probability
// RandomRatio (default 0.6) a uniform draw keeps novelty flowing, otherwise a
// draw weighted toward low-weight words serves the spaced-repetition intent.
// The ratio is a tunable, the blend itself is load-bearing: pure weighted
// sampling starves novelty, pure random ignores what needs practice.
func (u *studyUsecase) drawBatch(pool []entity.Word, count int) []entity.Word {
	if len(pool) <= count {
		batch := append([]entity.Word(nil), pool...)
		u.rng.Shuffle(len(batch), func(i, j int) { batch[i], batch[j] = batch[j], batch[i] })
		return batch
	}

	remaining := append([]entity.Word(nil), pool...)
	batch := make([]entity.Word, 0, count)
	for len(batch) < count {
		var idx int
		if u.rng.Float64() < u.cfg.RandomRatio {
			idx = u.rng.Intn(len(remaining))
		} else {
			idx = u.weightedIndex(remaining)
		}
		batch = append(batch, remaining[idx])
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	return batch
}

// weightedIndex draws an index with probability inversely proportional to
// weight, so under-practised (low-weight) words surface more often.
func (u *studyUsecase) weightedIndex(pool []entity.Word) int {
	total := 0
	for _, w := range pool {
		total += entity.WeightCeiling + 1 - w.Weight
	}
	r := u.rng.Intn(total)
	for i, w := range pool {
		r -= entity.WeightCeiling + 1 - w.Weight
		if r < 0 {
			return i
		}
	}
	return len(pool) - 1
}
