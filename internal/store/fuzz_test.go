package store

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/amakane-hakari/scorecache/internal/metrics"
)

/*
Fuzzで検証する性質（簡易）
1. パニックしない（並行アクセス含む）
2. Getが値を返した場合、そのキーは参照モデル上で
   - 最後に格納された値と一致する（再Putでは値は置き換わらない）
   - Deleteされていない
3. 使用バイト数は格納中の値のサイズの合計と一致し、容量を超えない
4. 格納中のキーとスコアヒープのキーは常に一致する
*/

func FuzzStoreOperations(f *testing.F) {
	seedCorpus := [][]byte{
		{0x00, 3, 3, 0}, // put
		{0x01, 3, 0, 0}, // get
		{0x02, 3, 0, 0}, // delete
		{0x00, 1, 9, 7, 0x00, 2, 9, 1, 0x00, 3, 9, 200},
	}
	for _, c := range seedCorpus {
		f.Add(c)
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) < 4 {
			t.Skip()
		}

		st := New[string, string](
			WithCapacity(256),
			WithMetrics(metrics.Noop{}),
			WithMissTracking(),
		)

		// モデル: 格納されているなら最後に admit された値
		admitted := map[string]string{}

		const (
			opPut    = 0
			opGet    = 1
			opDelete = 2
		)

		reader := bytes.NewReader(data)
		chunk := make([]byte, 4)
		opCount := 0

		for {
			if _, err := reader.Read(chunk); err != nil {
				break
			}
			op := chunk[0] % 3
			key := fmt.Sprintf("k%02d", chunk[1]%24)
			val := fmt.Sprintf("v%0*d", int(chunk[2]%40)+1, chunk[3])
			cost := float64(chunk[3])

			switch op {
			case opPut:
				ad, err := st.Put(key, val, cost)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if ad == AdmissionAdmitted {
					admitted[key] = val
				}
			case opGet:
				got, ok := st.Get(key)
				if ok {
					want, known := admitted[key]
					if !known {
						t.Fatalf("store returned value for never admitted key %s", key)
					}
					if got != want {
						t.Fatalf("value mismatch key=%s got=%s want=%s", key, got, want)
					}
				}
			case opDelete:
				st.Delete(key)
				delete(admitted, key)
			}
			opCount++
			if opCount > 20_000 { // 上限（無限ループ防止）
				break
			}
		}

		checkInvariants(t, st)
		if st.Bytes() > st.Capacity() {
			t.Fatalf("bytes %d exceed capacity %d", st.Bytes(), st.Capacity())
		}
	})
}

// 簡易並行版: fuzz 入力でキー集合を派生し複数 goroutine が操作
func FuzzStoreConcurrent(f *testing.F) {
	f.Add([]byte("concurrent-seed"))

	f.Fuzz(func(t *testing.T, data []byte) {
		// 最低2バイトあればキー数・ワーカー数を決められる
		if len(data) < 2 {
			t.Skip()
		}
		st := New[string, string](
			WithCapacity(512),
			WithMetrics(metrics.NewSimple()),
			WithHitReinforcement(),
			WithMissTracking(),
		)
		nKeys := int(data[0]%32) + 8
		keys := make([]string, nKeys)
		for i := range nKeys {
			keys[i] = fmt.Sprintf("ck%02d", i)
		}
		workers := int(data[1]%8) + 2
		var seedBuf [8]byte
		if len(data) > 2 {
			copy(seedBuf[:], data[2:])
		}
		rndSeed := binary.LittleEndian.Uint64(seedBuf[:])

		var wg sync.WaitGroup
		for w := range workers {
			wg.Add(1)
			go func(offset int64) {
				defer wg.Done()
				r := rand.New(rand.NewSource(int64(rndSeed) + offset))
				ops := 100 + int(offset%200)
				for range ops {
					k := keys[r.Intn(len(keys))]
					switch r.Intn(3) {
					case 0:
						_, _ = st.Put(k, "v", r.Float64()*5)
					case 1:
						st.Get(k)
					case 2:
						st.Delete(k)
					}
				}
			}(int64(w))
		}
		wg.Wait()

		checkInvariants(t, st)
	})
}
