package scheduler

import (
	"fmt"
	"testing"
	"time"
)

func TestEngineEmitsInTriggerOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	if err := engine.Reschedule(Alarm{ID: "later", TriggerAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Reschedule(Alarm{ID: "sooner", TriggerAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitAlarm(t, engine.C(), time.Second)
	second := waitAlarm(t, engine.C(), time.Second)
	if first.ID != "sooner" || second.ID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.ID, second.ID)
	}
}

func TestEngineCancelRemovesPendingAlarm(t *testing.T) {
	engine := NewEngine(4)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	if err := engine.Reschedule(Alarm{ID: "countdown", Gen: 1, TriggerAt: now.Add(40 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule countdown: %v", err)
	}
	if err := engine.Reschedule(Alarm{ID: "other", Gen: 7, TriggerAt: now.Add(60 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule other: %v", err)
	}
	if removed := engine.Cancel("countdown"); removed != 1 {
		t.Fatalf("expected 1 removed alarm, got %d", removed)
	}
	if engine.Pending() != 1 {
		t.Fatalf("expected 1 pending alarm, got %d", engine.Pending())
	}

	got := waitAlarm(t, engine.C(), time.Second)
	if got.ID != "other" || got.Gen != 7 {
		t.Fatalf("unexpected alarm after cancel: %+v", got)
	}
}

func TestEngineRescheduleReplacesPendingAlarm(t *testing.T) {
	engine := NewEngine(4)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	if err := engine.Reschedule(Alarm{ID: "countdown", Gen: 1, TriggerAt: now.Add(30 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule countdown: %v", err)
	}
	if err := engine.Reschedule(Alarm{ID: "countdown", Gen: 2, TriggerAt: now.Add(50 * time.Millisecond)}); err != nil {
		t.Fatalf("reschedule countdown: %v", err)
	}
	if engine.Pending() != 1 {
		t.Fatalf("expected a single pending alarm, got %d", engine.Pending())
	}

	got := waitAlarm(t, engine.C(), time.Second)
	if got.Gen != 2 {
		t.Fatalf("expected rescheduled generation 2, got %+v", got)
	}
	select {
	case extra := <-engine.C():
		t.Fatalf("unexpected second alarm: %+v", extra)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestEngineKeepsArmingOrderForSameInstant(t *testing.T) {
	engine := NewEngine(8)
	at := time.Now().UTC().Add(20 * time.Millisecond)
	for _, id := range []string{"a", "b", "c"} {
		if err := engine.Reschedule(Alarm{ID: id, TriggerAt: at}); err != nil {
			t.Fatalf("schedule %s: %v", id, err)
		}
	}
	engine.Start()
	defer engine.Stop()

	for _, want := range []string{"a", "b", "c"} {
		if got := waitAlarm(t, engine.C(), time.Second); got.ID != want {
			t.Fatalf("expected %s, got %s", want, got.ID)
		}
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC().Add(20 * time.Millisecond)
	for i := range 25 {
		if err := engine.Reschedule(Alarm{
			ID:        fmt.Sprintf("evt-%d", i),
			TriggerAt: now,
		}); err != nil {
			t.Fatalf("schedule alarm: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped alarms > 0, got %d", engine.Dropped())
	}
}

func TestRescheduleValidatesTriggerTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Reschedule(Alarm{ID: "bad"}); err != ErrInvalidTriggerTime {
		t.Fatalf("expected ErrInvalidTriggerTime, got %v", err)
	}
}

func TestRescheduleAfterStopFails(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	engine.Stop()
	err := engine.Reschedule(Alarm{ID: "late", TriggerAt: time.Now().Add(time.Second)})
	if err != ErrEngineStopped {
		t.Fatalf("expected ErrEngineStopped, got %v", err)
	}
	if _, open := <-engine.C(); open {
		t.Fatal("expected closed alarm channel after stop")
	}
}

func waitAlarm(t *testing.T, ch <-chan Alarm, timeout time.Duration) Alarm {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for alarm")
		return Alarm{}
	}
}
