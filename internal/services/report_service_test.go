package services

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	apperrors "github.com/tunecord/tunecord/internal/errors"
)

func TestReportRenderEmpty(t *testing.T) {
	svc := NewReportService(100)

	if _, err := svc.Render(); !errors.Is(err, apperrors.ErrNoReport) {
		t.Errorf("err = %v; want ErrNoReport for an empty log", err)
	}
}

func TestReportRenderGroupsByGuild(t *testing.T) {
	svc := NewReportService(100)
	svc.Record("guild-b", "second guild failure")
	svc.Record("guild-a", "first failure")
	svc.Record("guild-a", "second failure")

	body, err := svc.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := string(body)

	for _, want := range []string{
		"Guild ID: guild-a",
		"Guild ID: guild-b",
		"Error No: 1",
		"Error No: 2",
		"first failure",
		"second guild failure",
		strings.Repeat("-", 30),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}

	// Entries stay numbered in arrival order
	if strings.Index(out, "first failure") > strings.Index(out, "second failure") {
		t.Error("entries should render in arrival order")
	}
}

func TestReportBoundedPerGuild(t *testing.T) {
	svc := NewReportService(3)
	for n := 0; n < 5; n++ {
		svc.Record("g1", fmt.Sprintf("failure %d", n))
	}

	if got := svc.Len("g1"); got != 3 {
		t.Fatalf("Len = %d; want 3, oldest dropped", got)
	}

	body, _ := svc.Render()
	out := string(body)
	if strings.Contains(out, "failure 0") || strings.Contains(out, "failure 1") {
		t.Error("the oldest entries should have been dropped")
	}
	if !strings.Contains(out, "failure 4") {
		t.Error("the newest entry should survive")
	}
}

func TestReportTimestampFormat(t *testing.T) {
	svc := NewReportService(10)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	}
	svc.Record("g1", "boom")

	body, _ := svc.Render()
	if !strings.Contains(string(body), "Time: 2026-03-14 15:09:26") {
		t.Errorf("report should carry the formatted timestamp:\n%s", body)
	}
}

func TestReportClear(t *testing.T) {
	svc := NewReportService(10)
	svc.Record("g1", "boom")
	svc.Clear()

	if _, err := svc.Render(); !errors.Is(err, apperrors.ErrNoReport) {
		t.Error("a cleared log should render as empty")
	}
}
