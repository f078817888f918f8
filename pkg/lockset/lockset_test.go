package lockset_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-pos/pkg/lockset"
)

func TestAcquire_ExclusionMutua(t *testing.T) {
	ls := lockset.New()
	release, err := ls.Acquire(context.Background(), "p1")
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		r, err := ls.Acquire(context.Background(), "p1")
		if err == nil {
			close(acquired)
			r()
		}
	}()

	select {
	case <-acquired:
		t.Fatal("la segunda adquisición no debe pasar mientras la primera está tomada")
	case <-time.After(50 * time.Millisecond):
	}

	release()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("la segunda adquisición debe pasar después de liberar")
	}
}

func TestAcquire_ClavesDisjuntasNoSeBloquean(t *testing.T) {
	ls := lockset.New()
	r1, err := ls.Acquire(context.Background(), "a")
	require.NoError(t, err)
	defer r1()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	r2, err := ls.Acquire(ctx, "b")
	require.NoError(t, err, "claves distintas deben adquirirse en paralelo")
	r2()
}

// Conjuntos solapados pedidos en órdenes distintos no producen deadlock.
func TestAcquire_OrdenDeterministaSinDeadlock(t *testing.T) {
	ls := lockset.New()
	counters := map[string]int{"a": 0, "b": 0, "c": 0}
	var mu sync.Mutex // solo para el race detector sobre el mapa

	var wg sync.WaitGroup
	orders := [][]string{{"a", "b", "c"}, {"c", "b", "a"}, {"b", "a"}, {"c", "a"}}
	for i := 0; i < 200; i++ {
		keys := orders[i%len(orders)]
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := ls.Acquire(context.Background(), keys...)
			if err != nil {
				return
			}
			defer release()
			mu.Lock()
			for _, k := range keys {
				counters[k]++
			}
			mu.Unlock()
		}()
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("posible deadlock: las adquisiciones no terminaron")
	}
	assert.Equal(t, 0, ls.Len(), "no deben quedar bloqueos registrados")
	assert.Equal(t, 200, counters["a"])
}

func TestAcquire_CancelacionLiberaLoAdquirido(t *testing.T) {
	ls := lockset.New()
	holdB, err := ls.Acquire(context.Background(), "b")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err = ls.Acquire(ctx, "a", "b")
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// "a" debe haber quedado libre tras la cancelación.
	ra, err := ls.Acquire(context.Background(), "a")
	require.NoError(t, err)
	ra()
	holdB()
	assert.Equal(t, 0, ls.Len())
}

func TestRelease_Idempotente(t *testing.T) {
	ls := lockset.New()
	release, err := ls.Acquire(context.Background(), "x", "x", "y")
	require.NoError(t, err)
	release()
	release()
	assert.Equal(t, 0, ls.Len())
}
