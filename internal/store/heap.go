package store

// heapItem はスコアヒープの要素です。
// seq は挿入順で、スコアが等しい場合は古いものを先に取り出す。
type heapItem[K comparable] struct {
	key   K
	score float64
	seq   uint64
}

// scoreHeap はキーで更新できる最小ヒープ。
// pos はキーから items 上の位置への索引で、swap のたびに更新する。
type scoreHeap[K comparable] struct {
	items []heapItem[K]
	pos   map[K]int
	seq   uint64
}

func newScoreHeap[K comparable]() *scoreHeap[K] {
	return &scoreHeap[K]{pos: make(map[K]int)}
}

func (h *scoreHeap[K]) Len() int { return len(h.items) }

func (h *scoreHeap[K]) get(key K) (float64, bool) {
	i, ok := h.pos[key]
	if !ok {
		return 0, false
	}
	return h.items[i].score, true
}

// push は新しいキーを挿入する。既存キーなら score で置き換える。
func (h *scoreHeap[K]) push(key K, score float64) {
	if i, ok := h.pos[key]; ok {
		h.items[i].score = score
		h.fix(i)
		return
	}
	h.seq++
	h.items = append(h.items, heapItem[K]{key: key, score: score, seq: h.seq})
	i := len(h.items) - 1
	h.pos[key] = i
	h.siftUp(i)
}

// add はキーのスコアに delta を加える。キーが無ければ false。
func (h *scoreHeap[K]) add(key K, delta float64) bool {
	i, ok := h.pos[key]
	if !ok {
		return false
	}
	h.items[i].score += delta
	h.fix(i)
	return true
}

func (h *scoreHeap[K]) peek() (key K, score float64, ok bool) {
	if len(h.items) == 0 {
		return key, 0, false
	}
	return h.items[0].key, h.items[0].score, true
}

func (h *scoreHeap[K]) pop() (key K, score float64, ok bool) {
	if len(h.items) == 0 {
		return key, 0, false
	}
	top := h.items[0]
	h.removeAt(0)
	return top.key, top.score, true
}

func (h *scoreHeap[K]) remove(key K) (float64, bool) {
	i, ok := h.pos[key]
	if !ok {
		return 0, false
	}
	score := h.items[i].score
	h.removeAt(i)
	return score, true
}

// scale は全スコアに f (>0) を掛けてヒープを組み直す。
func (h *scoreHeap[K]) scale(f float64) {
	for i := range h.items {
		h.items[i].score *= f
	}
	for i := len(h.items)/2 - 1; i >= 0; i-- {
		h.siftDown(i)
	}
}

func (h *scoreHeap[K]) removeAt(i int) {
	n := len(h.items) - 1
	delete(h.pos, h.items[i].key)
	if i != n {
		h.items[i] = h.items[n]
		h.pos[h.items[i].key] = i
	}
	var zero heapItem[K]
	h.items[n] = zero
	h.items = h.items[:n]
	if i < n {
		h.fix(i)
	}
}

func (h *scoreHeap[K]) less(i, j int) bool {
	a, b := &h.items[i], &h.items[j]
	if a.score != b.score {
		return a.score < b.score
	}
	return a.seq < b.seq
}

func (h *scoreHeap[K]) swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.pos[h.items[i].key] = i
	h.pos[h.items[j].key] = j
}

func (h *scoreHeap[K]) fix(i int) {
	if !h.siftDown(i) {
		h.siftUp(i)
	}
}

func (h *scoreHeap[K]) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !h.less(i, p) {
			return
		}
		h.swap(i, p)
		i = p
	}
}

// siftDown は要素が下に移動したら true を返す。
func (h *scoreHeap[K]) siftDown(i int) bool {
	start := i
	n := len(h.items)
	for {
		l := 2*i + 1
		if l >= n {
			break
		}
		best := l
		if r := l + 1; r < n && h.less(r, l) {
			best = r
		}
		if !h.less(best, i) {
			break
		}
		h.swap(i, best)
		i = best
	}
	return i > start
}
