package store

import (
	"fmt"
	"sync"
)

// Store はコスト・サイズ・頻度・新しさを 1 つのスコアにまとめて追い出しを決めるキャッシュです。
//
// 全ての状態（値・スコアヒープ・旧スコア台帳・使用バイト数・tick）は 1 つのミューテックスで守られ、
// 操作は呼び出された順に 1 つずつ反映されます。
type Store[K comparable, V any] struct {
	mu  sync.Mutex
	cfg Config

	data   map[K]entry[V]
	heap   *scoreHeap[K]
	old    *ledger[K]
	misses *ledger[K]
	nbytes int64
	tick   uint64
	epoch  uint64 // スコア倍率の基準 tick（正規化のたびに進む）

	evictions  uint64
	rejections uint64

	onEvict EvictFunc[K, V]
}

// New は空の Store を作成します。
func New[K comparable, V any](opts ...Option) *Store[K, V] {
	cfg := newConfig(opts)
	return &Store[K, V]{
		cfg:    cfg,
		data:   make(map[K]entry[V]),
		heap:   newScoreHeap[K](),
		old:    newLedger[K](cfg.OldScoreLimit),
		misses: newLedger[K](cfg.OldScoreLimit),
	}
}

// Entry は NewWithEntries に渡すキーと値の組です。
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// NewWithData は data を格納済みの Store を作成します。
// 各値はサイズ関数で容量に計上され、スコア 0・コスト 0 で登録されます（最初に追い出される候補）。
// map の反復順は不定なので、容量を超えた場合にどれが追い出されるかは実行ごとに変わります。
// 再現性が必要な場合は NewWithEntries を使ってください。
func NewWithData[K comparable, V any](data map[K]V, opts ...Option) (*Store[K, V], error) {
	entries := make([]Entry[K, V], 0, len(data))
	for k, v := range data {
		entries = append(entries, Entry[K, V]{Key: k, Value: v})
	}
	return NewWithEntries(entries, opts...)
}

// NewWithEntries は entries を順に格納した Store を作成します。
// スコアは全て 0 なので、容量を超えた場合は entries の先頭から追い出されます。
// 同じキーが複数回現れた場合は後の値で置き換えます。
func NewWithEntries[K comparable, V any](entries []Entry[K, V], opts ...Option) (*Store[K, V], error) {
	s := New[K, V](opts...)
	for _, en := range entries {
		size := s.cfg.Sizer(en.Value)
		if size <= 0 {
			return nil, fmt.Errorf("preload key %v (size %d): %w", en.Key, size, ErrInvalidSize)
		}
		if prev, ok := s.data[en.Key]; ok {
			s.nbytes -= prev.size
		} else {
			s.heap.push(en.Key, 0)
		}
		s.data[en.Key] = entry[V]{val: en.Value, size: size}
		s.nbytes += size
	}
	victims := s.shrink()
	g := s.syncGaugesLocked()
	s.publish(g, victims)
	if s.cfg.Logger != nil {
		s.cfg.Logger.Info("store.preload", "items", g.items, "bytes", g.bytes, "capacity", s.cfg.Capacity)
	}
	return s, nil
}

// Contains はキーが格納されているかを返します。スコアには影響しません。
func (s *Store[K, V]) Contains(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[key]
	return ok
}

// Peek はキーに対応する値を返します。
// Get と違いミスの記録・ヒット時のスコア加算・メトリクス更新を行いません。
func (s *Store[K, V]) Peek(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.data[key]
	return e.val, ok
}

// Score は格納中のキーの現在のスコアを返します。
func (s *Store[K, V]) Score(key K) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.heap.get(key)
}

// OldScore は追い出し・拒否されたキーについて記録されているスコアを返します（無ければ 0）。
func (s *Store[K, V]) OldScore(key K) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.old.get(key)
}

// Len は格納中のアイテム数を返します。
func (s *Store[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// Bytes は格納中の値のバイト数の合計を返します。
func (s *Store[K, V]) Bytes() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nbytes
}

// Capacity は設定された容量を返します。
func (s *Store[K, V]) Capacity() int64 { return s.cfg.Capacity }

// Tick は論理時計の現在値を返します。
func (s *Store[K, V]) Tick() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick
}

// Stats はストアの状態を返します。
func (s *Store[K, V]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Items:         len(s.data),
		Bytes:         s.nbytes,
		Capacity:      s.cfg.Capacity,
		Tick:          s.tick,
		OldScores:     s.old.Len(),
		PendingMisses: s.misses.Len(),
		Evictions:     s.evictions,
		Rejections:    s.rejections,
	}
}

type gauges struct {
	items int
	bytes int64
	old   int
}

// syncGaugesLocked はゲージ系メトリクスをロック中に更新する。
// ロック外で更新すると古い値が新しい値を上書きしうる。
func (s *Store[K, V]) syncGaugesLocked() gauges {
	g := gauges{items: len(s.data), bytes: s.nbytes, old: s.old.Len()}
	s.cfg.Metrics.SetBytes(g.bytes)
	s.cfg.Metrics.SetLiveKeys(g.items)
	s.cfg.Metrics.SetOldScores(g.old)
	return g
}
