package store

import (
	"errors"
	"fmt"
)

type entry[V any] struct {
	val  V
	cost float64 // 直近の Put で渡されたコスト
	size int64
}

// evicted は shrink で追い出されたエントリです。
type evicted[K comparable, V any] struct {
	key   K
	val   V
	score float64
}

var (
	// ErrInvalidSize はサイズ関数が 0 以下を返したことを表します。
	ErrInvalidSize = errors.New("store: value size must be positive")
	// ErrInvalidCost はコストが負数・NaN・無限大であることを表します。
	ErrInvalidCost = errors.New("store: cost must be a finite non-negative number")
)

// Admission は Put の結果を表します。
type Admission uint8

const (
	// AdmissionNone はエラーにより何も起きなかったことを表します。
	AdmissionNone Admission = iota
	// AdmissionAdmitted は新しいキーが格納されたことを表します。
	AdmissionAdmitted
	// AdmissionReinforced は格納済みのキーのスコアが加算されたことを表します。
	AdmissionReinforced
	// AdmissionRejected は容量が逼迫しておりスコアが最小値以下のため格納しなかったことを表します。
	AdmissionRejected
)

func (a Admission) String() string {
	switch a {
	case AdmissionAdmitted:
		return "admitted"
	case AdmissionReinforced:
		return "reinforced"
	case AdmissionRejected:
		return "rejected"
	case AdmissionNone:
		return "none"
	default:
		return fmt.Sprintf("admission(%d)", uint8(a))
	}
}

// Stats はストアの状態のスナップショットです。
type Stats struct {
	Items         int    `json:"items"`
	Bytes         int64  `json:"bytes"`
	Capacity      int64  `json:"capacity"`
	Tick          uint64 `json:"tick"`
	OldScores     int    `json:"old_scores"`
	PendingMisses int    `json:"pending_misses"`
	Evictions     uint64 `json:"evictions"`
	Rejections    uint64 `json:"rejections"`
}
