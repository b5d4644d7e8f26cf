package scenario

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

// Generator は 負荷試験のターゲットを生成する構造体です。
// 一部のキー（ホットキー）に 8 割のアクセスを集め、値のサイズとコストはキーごとに固定します。
type Generator struct {
	BaseURL   string
	Keys      int
	ReadRatio float64
	ValueSize int
	MaxCost   float64
	HotRatio  float64
	ReadOnly  bool

	rnd *rand.Rand
	mu  sync.Mutex
	buf []byte
}

// NewGenerator は 指定されたパラメータに基づいて新しい Generator を作成します。
func NewGenerator(base string, keys int, readRatio float64, valueSize int, maxCost, hotRatio float64, readOnly bool) *Generator {
	src := rand.NewSource(time.Now().UnixNano())
	if keys < 1 {
		keys = 1
	}
	if valueSize < 1 {
		valueSize = 1
	}
	return &Generator{
		BaseURL:   base,
		Keys:      keys,
		ReadRatio: clamp(readRatio, 0, 1),
		ValueSize: valueSize,
		MaxCost:   max(maxCost, 0),
		HotRatio:  clamp(hotRatio, 0, 1),
		ReadOnly:  readOnly,
		rnd:       rand.New(src),
		buf:       make([]byte, valueSize),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// pickKey は HotRatio の割合のキーに 80% のアクセスを割り当てる。
func (g *Generator) pickKey() int {
	hot := int(float64(g.Keys) * g.HotRatio)
	if hot > 0 && hot < g.Keys && g.rnd.Float64() < 0.8 {
		return g.rnd.Intn(hot)
	}
	return g.rnd.Intn(g.Keys)
}

// keyShape はキー番号から値のサイズとコストを決める（同じキーは常に同じ）。
func (g *Generator) keyShape(k int) (size int, cost float64) {
	r := rand.New(rand.NewSource(int64(k)))
	size = 1 + r.Intn(g.ValueSize)
	cost = r.Float64() * g.MaxCost
	return size, cost
}

// Targeter は vegeta.Targeter インターフェースを実装し、負荷試験のターゲットを生成します。
func (g *Generator) Targeter() vegeta.Targeter {
	return func(t *vegeta.Target) error {
		g.mu.Lock()
		defer g.mu.Unlock()

		k := g.pickKey()
		key := fmt.Sprintf("k%06d", k)

		isGet := g.ReadOnly
		if !g.ReadOnly {
			if g.rnd.Float64() < g.ReadRatio {
				isGet = true
			}
		}

		if isGet {
			t.Method = "GET"
			t.URL = fmt.Sprintf("%s/kvs/%s", g.BaseURL, key)
			t.Body = nil
			t.Header = nil
			return nil
		}

		size, cost := g.keyShape(k)
		fillRandomLetters(g.rnd, g.buf[:size])
		b, err := json.Marshal(map[string]any{
			"value": string(g.buf[:size]),
			"cost":  cost,
		})
		if err != nil {
			return err
		}
		t.Method = "PUT"
		t.URL = fmt.Sprintf("%s/kvs/%s", g.BaseURL, key)
		t.Body = b
		if t.Header == nil {
			t.Header = make(map[string][]string, 1)
		}
		t.Header["Content-Type"] = []string{"application/json"}
		return nil
	}
}

func fillRandomLetters(r *rand.Rand, buf []byte) {
	const letters = "abcdefghijklmnopqrstuvwxyz0123456789"
	for i := range buf {
		buf[i] = letters[r.Intn(len(letters))]
	}
}
