package metrics

import (
	"sync/atomic"
)

// Interface はメトリクス更新用抽象
type Interface interface {
	IncPutNew()
	IncPutRepeat()
	IncRejected()
	IncGetHit()
	IncGetMiss()
	AddEvicted(n int)
	SetBytes(n int64)
	SetLiveKeys(n int)
	SetOldScores(n int)
}

// Noop は何もしないメトリクス実装
type Noop struct{}

// IncPutNew は何もしないメトリクス実装
func (Noop) IncPutNew() {}

// IncPutRepeat は何もしないメトリクス実装
func (Noop) IncPutRepeat() {}

// IncRejected は何もしないメトリクス実装
func (Noop) IncRejected() {}

// IncGetHit は何もしないメトリクス実装
func (Noop) IncGetHit() {}

// IncGetMiss は何もしないメトリクス実装
func (Noop) IncGetMiss() {}

// AddEvicted は何もしないメトリクス実装
func (Noop) AddEvicted(_ int) {}

// SetBytes は何もしないメトリクス実装
func (Noop) SetBytes(_ int64) {}

// SetLiveKeys は何もしないメトリクス実装
func (Noop) SetLiveKeys(_ int) {}

// SetOldScores は何もしないメトリクス実装
func (Noop) SetOldScores(_ int) {}

// Simple はシンプルなメトリクス実装です。
type Simple struct {
	PutNew    atomic.Uint64
	PutRepeat atomic.Uint64
	Rejected  atomic.Uint64
	GetHit    atomic.Uint64
	GetMiss   atomic.Uint64
	Evicted   atomic.Uint64
	Bytes     atomic.Int64
	LiveKeys  atomic.Uint64
	OldScores atomic.Uint64
}

// NewSimple は新しい Simple メトリクスを作成します。
func NewSimple() *Simple { return &Simple{} }

// IncPutNew は新しいキーが格納されたことをカウントします。
func (m *Simple) IncPutNew() { m.PutNew.Add(1) }

// IncPutRepeat は格納済みのキーが再度 Put されたことをカウントします。
func (m *Simple) IncPutRepeat() { m.PutRepeat.Add(1) }

// IncRejected は格納を拒否したことをカウントします。
func (m *Simple) IncRejected() { m.Rejected.Add(1) }

// IncGetHit はキャッシュヒットをカウントします。
func (m *Simple) IncGetHit() { m.GetHit.Add(1) }

// IncGetMiss はキャッシュミスをカウントします。
func (m *Simple) IncGetMiss() { m.GetMiss.Add(1) }

// AddEvicted はエビクションされたアイテムの数を加算します。
func (m *Simple) AddEvicted(n int) {
	if n > 0 {
		m.Evicted.Add(uint64(n))
	}
}

// SetBytes は使用バイト数を設定します。
func (m *Simple) SetBytes(n int64) { m.Bytes.Store(n) }

// SetLiveKeys は格納中のキー数を設定します。
func (m *Simple) SetLiveKeys(n int) {
	if n >= 0 {
		m.LiveKeys.Store(uint64(n))
	}
}

// SetOldScores は旧スコア台帳のキー数を設定します。
func (m *Simple) SetOldScores(n int) {
	if n >= 0 {
		m.OldScores.Store(uint64(n))
	}
}
