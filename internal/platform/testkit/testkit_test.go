package testkit

import (
	"sync/atomic"
	"testing"
	"time"
)

var seamValue = "orig"

func TestSwapRestores(t *testing.T) {
	t.Run("inner", func(t *testing.T) {
		Serial(t)
		Swap(t, &seamValue, "swapped")
		if seamValue != "swapped" {
			t.Fatal("swap not applied")
		}
	})
	if seamValue != "orig" {
		t.Fatalf("seam not restored: %q", seamValue)
	}
}

func TestMustPanicAndContain(t *testing.T) {
	MustPanic(t, func() { panic("x") })
	MustContain(t, "request done status=200", "status=200")
}

func TestEventually(t *testing.T) {
	var n atomic.Int32
	go func() {
		time.Sleep(10 * time.Millisecond)
		n.Store(1)
	}()
	Eventually(t, time.Second, func() bool { return n.Load() == 1 }, "flag set")
}
