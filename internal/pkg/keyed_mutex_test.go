package pkg_test

import (
	"sync"
	"testing"

	"Corebank/internal/pkg"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	t.Parallel()

	km := pkg.NewKeyedMutex()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("acct-1")
			defer km.Unlock("acct-1")
			counter++
		}()
	}
	wg.Wait()

	if counter != 100 {
		t.Fatalf("expected 100 increments, got %d", counter)
	}
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	t.Parallel()

	km := pkg.NewKeyedMutex()
	km.Lock("acct-1")
	defer km.Unlock("acct-1")

	done := make(chan struct{})
	go func() {
		km.Lock("acct-2")
		km.Unlock("acct-2")
		close(done)
	}()

	// a different key must not block behind acct-1
	<-done
}

func TestLockAllOrdersAndDedupes(t *testing.T) {
	t.Parallel()

	km := pkg.NewKeyedMutex()

	keys := km.LockAll("b", "a", "b", "c")
	defer km.UnlockAll(keys)

	if len(keys) != 3 {
		t.Fatalf("expected 3 unique keys, got %d", len(keys))
	}
	for i, want := range []string{"a", "b", "c"} {
		if keys[i] != want {
			t.Fatalf("expected key %q at position %d, got %q", want, i, keys[i])
		}
	}
}

func TestLockAllOppositeOrderDoesNotDeadlock(t *testing.T) {
	t.Parallel()

	km := pkg.NewKeyedMutex()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			keys := km.LockAll("acct-1", "acct-2")
			km.UnlockAll(keys)
		}()
		go func() {
			defer wg.Done()
			keys := km.LockAll("acct-2", "acct-1")
			km.UnlockAll(keys)
		}()
	}
	wg.Wait()
}
