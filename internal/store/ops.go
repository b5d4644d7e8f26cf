package store

import (
	"fmt"
	"math"
)

// Put は key に value を格納します。cost は value の計算にかかったコストです。
//
// 既に格納済みのキーは値を置き換えず、新しいスコアを加算します。
// 新しいキーは過去の旧スコアを引き継ぎ、容量が足りずスコアが最小値以下なら格納せず旧スコアに加算します。
func (s *Store[K, V]) Put(key K, value V, cost float64) (Admission, error) {
	if cost < 0 || math.IsNaN(cost) || math.IsInf(cost, 0) {
		return AdmissionNone, fmt.Errorf("put key %v (cost %v): %w", key, cost, ErrInvalidCost)
	}
	size := s.cfg.Sizer(value)
	if size <= 0 {
		return AdmissionNone, fmt.Errorf("put key %v (size %d): %w", key, size, ErrInvalidSize)
	}

	s.mu.Lock()
	s.tick++
	scr, rescaled := s.scoreLocked(cost, size)
	tick := s.tick

	if e, ok := s.data[key]; ok {
		s.heap.add(key, scr)
		e.cost = cost
		s.data[key] = e
		s.mu.Unlock()

		s.cfg.Metrics.IncPutRepeat()
		s.logRescale(rescaled, tick)
		if s.cfg.Logger != nil {
			s.cfg.Logger.Debug("store.reinforce", "key", key, "score", scr, "tick", tick)
		}
		return AdmissionReinforced, nil
	}

	credit := scr
	if s.cfg.MissTracking {
		credit += scr * s.misses.take(key)
	}
	total := credit + s.old.get(key)

	if s.nbytes+size > s.cfg.Capacity {
		if _, minScore, ok := s.heap.peek(); ok && total <= minScore {
			s.old.add(key, credit)
			s.rejections++
			s.syncGaugesLocked()
			s.mu.Unlock()

			s.cfg.Metrics.IncRejected()
			s.logRescale(rescaled, tick)
			if s.cfg.Logger != nil {
				s.cfg.Logger.Debug("store.reject", "key", key, "size", size, "score", total, "min", minScore)
			}
			return AdmissionRejected, nil
		}
	}

	s.nbytes += size
	s.heap.push(key, total)
	s.data[key] = entry[V]{val: value, cost: cost, size: size}
	var victims []evicted[K, V]
	if s.nbytes > s.cfg.Capacity {
		victims = s.shrink()
	}
	g := s.syncGaugesLocked()
	s.mu.Unlock()

	s.cfg.Metrics.IncPutNew()
	s.logRescale(rescaled, tick)
	if s.cfg.Logger != nil {
		s.cfg.Logger.Debug("store.put", "key", key, "size", size, "score", total, "tick", tick)
	}
	s.publish(g, victims)
	return AdmissionAdmitted, nil
}

// Get はキーに対応する値を取得します。
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.Lock()
	e, ok := s.data[key]
	if !ok {
		if s.cfg.MissTracking {
			s.misses.add(key, 1)
		}
		s.mu.Unlock()
		s.cfg.Metrics.IncGetMiss()
		var zero V
		return zero, false
	}
	var rescaled bool
	var tick uint64
	if s.cfg.HitReinforcement {
		s.tick++
		tick = s.tick
		var scr float64
		scr, rescaled = s.scoreLocked(e.cost, e.size)
		s.heap.add(key, scr)
	}
	s.mu.Unlock()

	s.cfg.Metrics.IncGetHit()
	s.logRescale(rescaled, tick)
	return e.val, true
}

// GetOr はキーに対応する値を返し、無ければ def を返します。
func (s *Store[K, V]) GetOr(key K, def V) V {
	if v, ok := s.Get(key); ok {
		return v
	}
	return def
}

// Delete はキーに対応する値を削除します。
// 追い出しではないので旧スコアは記録されず、OnEvict も呼ばれません。
func (s *Store[K, V]) Delete(key K) bool {
	s.mu.Lock()
	if _, ok := s.data[key]; !ok {
		s.mu.Unlock()
		return false
	}
	s.heap.remove(key)
	s.retire(key)
	g := s.syncGaugesLocked()
	s.mu.Unlock()

	s.publish(g, nil)
	if s.cfg.Logger != nil {
		s.cfg.Logger.Debug("store.delete", "key", key)
	}
	return true
}

func (s *Store[K, V]) logRescale(rescaled bool, tick uint64) {
	if rescaled && s.cfg.Logger != nil {
		s.cfg.Logger.Info("store.rescale", "tick", tick)
	}
}
