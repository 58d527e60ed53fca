package entities

import (
	"errors"
	"fmt"
	"testing"

	"github.com/tunecord/tunecord/internal/domain/valueobjects"
	apperrors "github.com/tunecord/tunecord/internal/errors"
)

func yt(id string) *Track {
	return NewTrack(id, valueobjects.SourceTypeYouTube, "Track "+id)
}

func TestTracklistAddAndNext(t *testing.T) {
	tl := NewTracklist("g1", 10)
	a, b := yt("a"), yt("b")
	tl.Add(a, b)

	if tl.Size() != 2 {
		t.Fatalf("Size = %d; want 2", tl.Size())
	}
	if tl.Current() != nil {
		t.Error("nothing should be playing before Next")
	}

	if got := tl.Next(); got != a {
		t.Errorf("Next = %v; want a", got)
	}
	if tl.Current() != a {
		t.Error("a should be current after Next")
	}
	if got := tl.Next(); got != b {
		t.Errorf("Next = %v; want b", got)
	}
	if got := tl.Next(); got != nil {
		t.Errorf("Next on empty queue = %v; want nil", got)
	}
}

func TestTracklistQueueBound(t *testing.T) {
	tl := NewTracklist("g1", 2)
	if err := tl.Add(yt("a"), yt("b")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	// The whole batch is rejected once the bound is hit
	if err := tl.Add(yt("c")); !errors.Is(err, apperrors.ErrQueueFull) {
		t.Errorf("err = %v; want ErrQueueFull", err)
	}
	if tl.Size() != 2 {
		t.Errorf("Size = %d; a rejected batch must not partially apply", tl.Size())
	}
}

func TestTracklistHistory(t *testing.T) {
	tl := NewTracklist("g1", 10)
	a, b := yt("a"), yt("b")
	tl.Add(a, b)
	tl.Next()
	tl.Next()

	history := tl.History(false)
	if len(history) != 1 || history[0] != a {
		t.Errorf("History(false) = %v; want only the finished track", history)
	}

	history = tl.History(true)
	if len(history) != 2 || history[1] != b {
		t.Errorf("History(true) = %v; want the current track last", history)
	}
}

func TestTracklistHistoryBounded(t *testing.T) {
	tl := NewTracklist("g1", 0)
	for n := 0; n < 60; n++ {
		tl.Add(yt(fmt.Sprintf("t%d", n)))
	}
	for n := 0; n < 60; n++ {
		tl.Next()
	}
	tl.Next() // roll the last one into history

	history := tl.History(false)
	if len(history) != 50 {
		t.Fatalf("len(history) = %d; want the 50 most recent", len(history))
	}
	if history[len(history)-1].Identifier != "t59" {
		t.Errorf("newest = %s; want t59 last", history[len(history)-1].Identifier)
	}
	if history[0].Identifier != "t10" {
		t.Errorf("oldest = %s; want t10 after trimming", history[0].Identifier)
	}
}

func TestTracklistRemove(t *testing.T) {
	tl := NewTracklist("g1", 10)
	a, b, c := yt("a"), yt("b"), yt("c")
	tl.Add(a, b, c)

	if !tl.Remove(2) {
		t.Fatal("Remove(2) should succeed")
	}
	upcoming := tl.Upcoming(0)
	if len(upcoming) != 2 || upcoming[0] != a || upcoming[1] != c {
		t.Errorf("upcoming = %v; want a then c", upcoming)
	}

	if tl.Remove(0) || tl.Remove(5) {
		t.Error("out-of-range positions should be rejected")
	}
}

func TestTracklistClear(t *testing.T) {
	tl := NewTracklist("g1", 10)
	tl.Add(yt("a"), yt("b"))
	tl.Next()
	tl.Next()
	tl.Clear()

	if tl.Size() != 0 || tl.Current() != nil || len(tl.History(true)) != 0 {
		t.Error("Clear should drop queue, current and history")
	}
}
