package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"skillpath_backend/internal/util"
)

func TestLocalLock(t *testing.T) {
	lock := NewLocalLock()
	ctx := context.Background()

	release, err := lock.Acquire(ctx, "employee:1")
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if _, err := lock.Acquire(ctx, "employee:1"); !errors.Is(err, util.ErrGenerationInProgress) {
		t.Errorf("second acquire err = %v", err)
	}
	other, err := lock.Acquire(ctx, "employee:2")
	if err != nil {
		t.Fatalf("other key: %v", err)
	}
	other()

	release()
	release()
	again, err := lock.Acquire(ctx, "employee:1")
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	again()
}

func TestLocalLockConcurrent(t *testing.T) {
	lock := NewLocalLock()
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		acquired int
	)
	start := make(chan struct{})
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if _, err := lock.Acquire(context.Background(), "employee:7"); err == nil {
				mu.Lock()
				acquired++
				mu.Unlock()
			}
		}()
	}
	close(start)
	wg.Wait()
	if acquired != 1 {
		t.Errorf("acquired %d times, want exactly 1", acquired)
	}
}

func TestLocalLockCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewLocalLock().Acquire(ctx, "employee:1"); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v", err)
	}
}

func TestNewGenerationLockWithoutRedis(t *testing.T) {
	if _, ok := NewGenerationLock(nil, 0).(*LocalLock); !ok {
		t.Error("nil redis client should fall back to the in-process lock")
	}
}

func TestKeepAliveRenewsUntilStopped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var renewals atomic.Int32
	done := make(chan struct{})
	go func() {
		keepAlive(ctx, 5*time.Millisecond, func(context.Context) (bool, error) {
			renewals.Add(1)
			return true, nil
		})
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for renewals.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("renewed %d times before deadline", renewals.Load())
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("keepAlive did not stop after cancel")
	}
}

func TestKeepAliveStopsWhenLockLost(t *testing.T) {
	var renewals atomic.Int32
	done := make(chan struct{})
	go func() {
		keepAlive(context.Background(), time.Millisecond, func(context.Context) (bool, error) {
			renewals.Add(1)
			return false, nil
		})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("keepAlive kept running after the lock was lost")
	}
	if renewals.Load() != 1 {
		t.Errorf("renewals = %d, want 1", renewals.Load())
	}
}
