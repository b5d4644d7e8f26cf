package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Prom は Prometheus を使ったメトリクス実装です。
type Prom struct {
	putNew    prometheus.Counter
	putRepeat prometheus.Counter
	rejected  prometheus.Counter
	getHit    prometheus.Counter
	getMiss   prometheus.Counter
	evicted   prometheus.Counter
	bytes     prometheus.Gauge
	liveKeys  prometheus.Gauge
	oldScores prometheus.Gauge
}

// NewProm は Prometheus を使ったメトリクス実装を初期化し、reg に登録します。
// reg が nil の場合は prometheus.DefaultRegisterer を使います。
func NewProm(namespace string, reg prometheus.Registerer) *Prom {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	makeC := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		})
	}
	makeG := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		})
	}

	p := &Prom{
		putNew:    makeC("put_new_total", "Number of keys admitted"),
		putRepeat: makeC("put_repeat_total", "Number of puts on resident keys"),
		rejected:  makeC("put_rejected_total", "Number of puts rejected at admission"),
		getHit:    makeC("get_hit_total", "Number of cache hits"),
		getMiss:   makeC("get_miss_total", "Number of cache misses"),
		evicted:   makeC("evicted_total", "Number of evicted items"),
		bytes:     makeG("bytes", "Total size of resident values in bytes"),
		liveKeys:  makeG("live_keys", "Current number of resident keys"),
		oldScores: makeG("old_scores", "Current number of keys in the old score ledger"),
	}

	// 重複登録は panic するので、呼び出し側で 1 回だけ呼ぶ
	reg.MustRegister(
		p.putNew, p.putRepeat, p.rejected, p.getHit, p.getMiss, p.evicted,
		p.bytes, p.liveKeys, p.oldScores,
	)
	return p
}

// IncPutNew は新しいキーが格納されたことをカウントします。
func (p *Prom) IncPutNew() { p.putNew.Inc() }

// IncPutRepeat は格納済みのキーが再度 Put されたことをカウントします。
func (p *Prom) IncPutRepeat() { p.putRepeat.Inc() }

// IncRejected は格納を拒否したことをカウントします。
func (p *Prom) IncRejected() { p.rejected.Inc() }

// IncGetHit はキャッシュヒットをカウントします。
func (p *Prom) IncGetHit() { p.getHit.Inc() }

// IncGetMiss はキャッシュミスをカウントします。
func (p *Prom) IncGetMiss() { p.getMiss.Inc() }

// AddEvicted は追い出されたアイテムの数を加算します。
func (p *Prom) AddEvicted(n int) {
	if n > 0 {
		p.evicted.Add(float64(n))
	}
}

// SetBytes は使用バイト数を設定します。
func (p *Prom) SetBytes(n int64) { p.bytes.Set(float64(n)) }

// SetLiveKeys は格納中のキー数を設定します。
func (p *Prom) SetLiveKeys(n int) { p.liveKeys.Set(float64(n)) }

// SetOldScores は旧スコア台帳のキー数を設定します。
func (p *Prom) SetOldScores(n int) { p.oldScores.Set(float64(n)) }
