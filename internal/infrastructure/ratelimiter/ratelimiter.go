package ratelimiter

import (
	"math"
	"net/http"
	"sync"
	"time"
)

const defaultSourceKey = "X-RateLimit-Key"

type Limiter interface {
	Allow(sourceKey string) bool
	GetSourceKey(r *http.Request) string
	Remaining(sourceKey string) int
	GetMaxBurst() int
}

type bucketState struct {
	tokens   float64
	lastFill int64 // Unix milliseconds
}

type RateLimiter struct {
	maxRatePerMillisecond float64
	maxBurst              int
	sourceHeaderKey       string
	cache                 *Cache

	// Per-key locks keep refill + take atomic per source
	locks sync.Map // map[string]*sync.Mutex
}

type Options struct {
	MaxRatePerSecond int
	MaxBurst         int
	CacheTTL         time.Duration
	SourceHeaderKey  string
}

func New(options Options) Limiter {
	if options.MaxBurst <= 0 {
		options.MaxBurst = options.MaxRatePerSecond
	}
	if options.CacheTTL == 0 {
		options.CacheTTL = 10 * time.Second
	}
	if options.SourceHeaderKey == "" {
		options.SourceHeaderKey = defaultSourceKey
	}

	return &RateLimiter{
		maxRatePerMillisecond: float64(options.MaxRatePerSecond) / 1000.0,
		maxBurst:              options.MaxBurst,
		sourceHeaderKey:       options.SourceHeaderKey,
		cache:                 NewCache(options.CacheTTL),
	}
}

func (rl *RateLimiter) getLock(sourceKey string) *sync.Mutex {
	lock, _ := rl.locks.LoadOrStore(sourceKey, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

func (rl *RateLimiter) refill(state bucketState, now int64) bucketState {
	elapsed := now - state.lastFill
	if elapsed <= 0 {
		return state
	}

	tokens := state.tokens + float64(elapsed)*rl.maxRatePerMillisecond
	if tokens > float64(rl.maxBurst) {
		tokens = float64(rl.maxBurst)
	}

	return bucketState{tokens: tokens, lastFill: now}
}

func (rl *RateLimiter) Allow(sourceKey string) bool {
	lock := rl.getLock(sourceKey)
	lock.Lock()
	defer lock.Unlock()

	now := time.Now().UnixMilli()

	state, ok := rl.cache.Get(sourceKey)
	if !ok {
		state = bucketState{tokens: float64(rl.maxBurst), lastFill: now}
	}
	state = rl.refill(state, now)

	if state.tokens < 1 {
		rl.cache.Set(sourceKey, state)
		return false
	}

	state.tokens--
	rl.cache.Set(sourceKey, state)
	return true
}

func (rl *RateLimiter) Remaining(sourceKey string) int {
	lock := rl.getLock(sourceKey)
	lock.Lock()
	defer lock.Unlock()

	now := time.Now().UnixMilli()

	state, ok := rl.cache.Get(sourceKey)
	if !ok {
		return rl.maxBurst
	}
	state = rl.refill(state, now)
	rl.cache.Set(sourceKey, state)

	return int(math.Floor(state.tokens))
}

func (rl *RateLimiter) GetMaxBurst() int {
	return rl.maxBurst
}

func (rl *RateLimiter) GetSourceKey(r *http.Request) string {
	if key := r.Header.Get(rl.sourceHeaderKey); key != "" {
		return key
	}

	// Fall back to IP address
	return r.RemoteAddr
}
