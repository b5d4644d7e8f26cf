package store

import "math"

// DefaultBase は新しい tick ほどスコアを大きくする指数の底です。
const DefaultBase = 1.001

// base^tick がこの範囲を外れたら全スコアを正規化する。
const (
	rescaleHigh = 1e100
	rescaleLow  = 1e-100
)

// Score は cost / size * base^tick を返します。
// コストが高いほど、サイズが小さいほど、tick が新しいほど大きくなります。
// size は正でなければなりません。
func Score(cost float64, size int64, tick uint64, base float64) float64 {
	return cost / float64(size) * math.Pow(base, float64(tick))
}

// scoreLocked は現在の tick でのスコアを返す。
// 倍率が float64 の範囲を外れそうな場合は保持している全スコアを割り戻し、
// epoch を現在の tick に進める（相対順序は変わらない）。
func (s *Store[K, V]) scoreLocked(cost float64, size int64) (scr float64, rescaled bool) {
	mult := math.Pow(s.cfg.Base, float64(s.tick-s.epoch))
	if mult > rescaleHigh || mult < rescaleLow {
		s.heap.scale(1 / mult)
		s.old.scale(1 / mult)
		s.epoch = s.tick
		rescaled = true
	}
	return Score(cost, size, s.tick-s.epoch, s.cfg.Base), rescaled
}
