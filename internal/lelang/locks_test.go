package lelang

import (
	"sync"
	"testing"

	"github.com/peterldowns/testy/check"
)

func TestKeyedMutexSerialisesPerKey(t *testing.T) {
	k := newKeyedMutex()
	var counters [3]int
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		id := uint64(i%2 + 1)
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.Lock(id)
			defer unlock()
			counters[id]++ // guarded by the per-key lock only
		}()
	}
	wg.Wait()
	check.Equal(t, 100, counters[1])
	check.Equal(t, 100, counters[2])
	check.Equal(t, 0, k.size())
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	k := newKeyedMutex()
	unlockA := k.Lock(1)
	done := make(chan struct{})
	go func() {
		unlock := k.Lock(2)
		unlock()
		close(done)
	}()
	<-done // would deadlock if key 2 waited on key 1
	check.Equal(t, 1, k.size())
	unlockA()
	check.Equal(t, 0, k.size())
}
