package sections

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAlreadyReady(t *testing.T) {
	reg := New()
	reg.MarkReady("galeria")

	found := reg.AwaitSection(context.Background(), "galeria", time.Second)
	assert.True(t, found)
}

func TestReadyWhileWaiting(t *testing.T) {
	reg := New()
	go func() {
		time.Sleep(20 * time.Millisecond)
		reg.MarkReady("horarios")
	}()

	found := reg.AwaitSection(context.Background(), "horarios", time.Second)
	assert.True(t, found)
}

func TestAbsentSectionGivesUpSilently(t *testing.T) {
	reg := New()

	start := time.Now()
	found := reg.AwaitSection(context.Background(), "no-existe", 50*time.Millisecond)
	assert.False(t, found)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestContextCancelStopsWait(t *testing.T) {
	reg := New()
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	found := reg.AwaitSection(ctx, "galeria", time.Minute)
	assert.False(t, found)
}

func TestMarkReadyTwice(t *testing.T) {
	reg := New()
	reg.MarkReady("galeria")
	reg.MarkReady("galeria")

	assert.True(t, reg.AwaitSection(context.Background(), "galeria", time.Second))
}

func TestAbandonedWaitersAreForgotten(t *testing.T) {
	reg := New()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			found := reg.AwaitSection(context.Background(), "seccion-"+strconv.Itoa(i), time.Millisecond)
			assert.False(t, found)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, reg.Waiting())
}

func TestEarlyQuitterKeepsOtherWaiters(t *testing.T) {
	reg := New()

	// first waiter gives up almost immediately
	assert.False(t, reg.AwaitSection(context.Background(), "galeria", time.Millisecond))

	done := make(chan bool)
	go func() {
		done <- reg.AwaitSection(context.Background(), "galeria", time.Second)
	}()
	time.Sleep(20 * time.Millisecond)
	reg.MarkReady("galeria")

	assert.True(t, <-done)
	assert.Equal(t, 0, reg.Waiting())
}

func TestWaitIsClampedToCeiling(t *testing.T) {
	reg := New()

	start := time.Now()
	found := reg.AwaitSection(context.Background(), "no-existe", time.Hour)
	assert.False(t, found)
	assert.Less(t, time.Since(start), 2*DefaultWait)
	assert.Equal(t, 0, reg.Waiting())
}

func TestResetForgets(t *testing.T) {
	reg := New()
	reg.MarkReady("galeria")
	reg.Reset()

	found := reg.AwaitSection(context.Background(), "galeria", 30*time.Millisecond)
	assert.False(t, found)
}
