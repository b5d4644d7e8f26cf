package store

// EvictFunc は容量超過によって追い出されたエントリを受け取ります。
// score は追い出された時点のスコアで、旧スコア台帳に記録される値と同じです。
// 明示削除（Delete）では呼ばれません。
type EvictFunc[K comparable, V any] func(key K, value V, score float64)

// OnEvict は追い出し時に呼ばれる関数を設定するメソッドです。
// ストアを共有する前に設定してください。ロック外で追い出し順に呼ばれます。
func (s *Store[K, V]) OnEvict(fn EvictFunc[K, V]) *Store[K, V] {
	s.onEvict = fn
	return s
}
