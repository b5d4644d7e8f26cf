// Package memo は計算結果を store.Store にメモ化します。
//
// 計算にかかった時間をそのままコストとして Put するので、
// 高価な計算の結果ほど追い出されにくくなります。
// 同じキーの計算が同時に走った場合は 1 回だけ実行します（singleflight）。
package memo

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/amakane-hakari/scorecache/internal/store"
)

// CostFunc は計算時間からコストを求める関数です。
type CostFunc func(elapsed time.Duration) float64

// minCost は計測時間が 0 になった場合のコスト。
const minCost = 1e-9

// SecondsCost は経過秒数をコストとします。
func SecondsCost(elapsed time.Duration) float64 {
	if c := elapsed.Seconds(); c > minCost {
		return c
	}
	return minCost
}

// Option は Memo のオプションを設定する関数です。
type Option func(*config)

type config struct {
	cost CostFunc
	now  func() time.Time
}

// WithCostFunc は計算時間からコストを求める関数を設定するオプションです。
func WithCostFunc(f CostFunc) Option {
	return func(c *config) { c.cost = f }
}

// WithClock は時刻の取得関数を設定するオプションです（テスト用）。
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

// Memo は store.Store を使ったメモ化の仕組みです。
type Memo[K comparable, V any] struct {
	st    *store.Store[K, V]
	group singleflight.Group
	cfg   config

	// 計算中のキーごとに singleflight 用の一意な名前を割り当てる。
	// キーの文字列表現は衝突しうるので使わない。
	mu      sync.Mutex
	flights map[K]*flight
	next    uint64
}

type flight struct {
	name string
	refs int
}

// New は st を使う Memo を作成します。
func New[K comparable, V any](st *store.Store[K, V], opts ...Option) *Memo[K, V] {
	cfg := config{cost: SecondsCost, now: time.Now}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.cost == nil {
		cfg.cost = SecondsCost
	}
	if cfg.now == nil {
		cfg.now = time.Now
	}
	return &Memo[K, V]{st: st, cfg: cfg, flights: make(map[K]*flight)}
}

// acquire は key の計算に使う singleflight の名前を返す。
// 同じキーを待つ呼び出しが残っている間は同じ名前になる。
func (m *Memo[K, V]) acquire(key K) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.flights[key]
	if !ok {
		m.next++
		f = &flight{name: strconv.FormatUint(m.next, 10)}
		m.flights[key] = f
	}
	f.refs++
	return f.name
}

func (m *Memo[K, V]) release(key K) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f := m.flights[key]
	if f.refs--; f.refs == 0 {
		delete(m.flights, key)
	}
}

// Do は key の値を返します。格納されていなければ fn で計算して格納します。
// fn がエラーを返した場合は格納せずにそのエラーを返します。
// ctx が先に終了した場合は ctx.Err() を返します（計算自体は続行され、結果は格納されます）。
func (m *Memo[K, V]) Do(ctx context.Context, key K, fn func(ctx context.Context) (V, error)) (V, error) {
	if v, ok := m.st.Get(key); ok {
		return v, nil
	}
	var zero V
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	ch := m.group.DoChan(m.acquire(key), func() (any, error) {
		// 待っている間に他の呼び出しが格納したかもしれない。
		// ミスは最初の Get で記録済みなので、ここでは数えない。
		if v, ok := m.st.Peek(key); ok {
			return v, nil
		}
		start := m.cfg.now()
		v, err := fn(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		if _, err := m.st.Put(key, v, m.cfg.cost(m.cfg.now().Sub(start))); err != nil {
			return nil, fmt.Errorf("memo put: %w", err)
		}
		return v, nil
	})

	select {
	case <-ctx.Done():
		go func() {
			<-ch
			m.release(key)
		}()
		return zero, ctx.Err()
	case res := <-ch:
		m.release(key)
		if res.Err != nil {
			return zero, res.Err
		}
		v, _ := res.Val.(V)
		return v, nil
	}
}
