package queue

import (
	"testing"
	"time"

	"github.com/skywatch-go/skywatch/sbs"
)

func TestQueuePutGetFIFO(t *testing.T) {
	q := New(4)
	for i := 0; i < 3; i++ {
		msg := sbs.Message{HexIdent: string(rune('A' + i))}
		if ok := q.Put(msg, time.Second); !ok {
			t.Fatalf("Put %d failed", i)
		}
	}
	for i := 0; i < 3; i++ {
		msg, ok := q.Get(time.Second)
		if !ok {
			t.Fatalf("Get %d failed", i)
		}
		want := string(rune('A' + i))
		if msg.HexIdent != want {
			t.Errorf("Get %d = %q, want %q (FIFO order)", i, msg.HexIdent, want)
		}
	}
}

func TestQueuePutTimesOutWhenFull(t *testing.T) {
	q := New(1)
	if ok := q.Put(sbs.Message{HexIdent: "A"}, time.Second); !ok {
		t.Fatalf("first Put should succeed")
	}
	start := time.Now()
	ok := q.Put(sbs.Message{HexIdent: "B"}, 50*time.Millisecond)
	elapsed := time.Since(start)
	if ok {
		t.Fatalf("second Put on a full queue should time out")
	}
	if elapsed < 50*time.Millisecond {
		t.Errorf("Put returned after %v, want at least the 50ms timeout", elapsed)
	}
}

func TestQueueGetTimesOutWhenEmpty(t *testing.T) {
	q := New(1)
	_, ok := q.Get(50 * time.Millisecond)
	if ok {
		t.Fatalf("Get on an empty queue should time out")
	}
}

func TestQueueLenAndCap(t *testing.T) {
	q := New(3)
	if q.Cap() != 3 {
		t.Errorf("Cap() = %d, want 3", q.Cap())
	}
	q.Put(sbs.Message{}, time.Second)
	q.Put(sbs.Message{}, time.Second)
	if q.Len() != 2 {
		t.Errorf("Len() = %d, want 2", q.Len())
	}
}
