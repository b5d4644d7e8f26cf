package store

// shrink は使用バイト数が容量以下になるまで最小スコアのキーを追い出す。
// 追い出したスコアは旧スコア台帳に上書きする。
// 1 つだけで容量を超える値は残す（容量超過を許す）。
func (s *Store[K, V]) shrink() []evicted[K, V] {
	var victims []evicted[K, V]
	for s.nbytes > s.cfg.Capacity && s.heap.Len() > 1 {
		key, scr, _ := s.heap.pop()
		val := s.retire(key)
		s.old.set(key, scr)
		s.evictions++
		victims = append(victims, evicted[K, V]{key: key, val: val, score: scr})
	}
	return victims
}

// retire は値を取り除いて使用バイト数を戻す。ヒープは呼び出し側で更新済みであること。
func (s *Store[K, V]) retire(key K) V {
	e := s.data[key]
	delete(s.data, key)
	s.nbytes -= e.size
	return e.val
}

// publish はロック解放後に追い出しをメトリクス・ログ・OnEvict へ反映する。
// ゲージは syncGaugesLocked で更新済みであること。
func (s *Store[K, V]) publish(g gauges, victims []evicted[K, V]) {
	if len(victims) == 0 {
		return
	}
	s.cfg.Metrics.AddEvicted(len(victims))
	if s.cfg.Logger != nil {
		keys := make([]K, len(victims))
		for i, v := range victims {
			keys[i] = v.key
		}
		s.cfg.Logger.Info("store.evict", "count", len(victims), "victims", keys, "bytes", g.bytes)
	}
	if s.onEvict != nil {
		for _, v := range victims {
			s.onEvict(v.key, v.val, v.score)
		}
	}
}
