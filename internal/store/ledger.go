package store

import "container/list"

// ledger は追い出し済み・拒否済みキーのスコア（またはミス回数）を覚えておく台帳。
// limit > 0 の場合は最後に書き込まれてから最も時間の経ったキーから忘れる。
type ledger[K comparable] struct {
	limit int
	ll    *list.List // Front = 直近に書き込み, Back = 次に忘れる
	idx   map[K]*list.Element
}

type ledgerItem[K comparable] struct {
	key K
	val float64
}

func newLedger[K comparable](limit int) *ledger[K] {
	if limit < 0 {
		limit = 0
	}
	return &ledger[K]{
		limit: limit,
		ll:    list.New(),
		idx:   make(map[K]*list.Element),
	}
}

func (l *ledger[K]) Len() int { return l.ll.Len() }

// get は記録が無ければ 0 を返す。読み取りでは順序を変えない。
func (l *ledger[K]) get(key K) float64 {
	if el, ok := l.idx[key]; ok {
		return el.Value.(*ledgerItem[K]).val
	}
	return 0
}

func (l *ledger[K]) add(key K, delta float64) {
	l.write(key, func(v float64) float64 { return v + delta })
}

func (l *ledger[K]) set(key K, val float64) {
	l.write(key, func(float64) float64 { return val })
}

// take は値を取り出して記録を消す。
func (l *ledger[K]) take(key K) float64 {
	el, ok := l.idx[key]
	if !ok {
		return 0
	}
	delete(l.idx, key)
	l.ll.Remove(el)
	return el.Value.(*ledgerItem[K]).val
}

func (l *ledger[K]) scale(f float64) {
	for el := l.ll.Front(); el != nil; el = el.Next() {
		el.Value.(*ledgerItem[K]).val *= f
	}
}

func (l *ledger[K]) write(key K, fn func(float64) float64) {
	if el, ok := l.idx[key]; ok {
		it := el.Value.(*ledgerItem[K])
		it.val = fn(it.val)
		l.ll.MoveToFront(el)
		return
	}
	l.idx[key] = l.ll.PushFront(&ledgerItem[K]{key: key, val: fn(0)})
	for l.limit > 0 && l.ll.Len() > l.limit {
		back := l.ll.Back()
		delete(l.idx, back.Value.(*ledgerItem[K]).key)
		l.ll.Remove(back)
	}
}
