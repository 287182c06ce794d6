package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidTriggerTime = errors.New("scheduler: invalid trigger time")
	ErrEngineStopped      = errors.New("scheduler: engine stopped")
)

// Alarm fires once at TriggerAt. Gen carries the timer generation that armed
// it so the receiver can discard alarms from a cancelled countdown.
type Alarm struct {
	ID        string
	Gen       uint64
	Label     string
	TriggerAt time.Time
}

type pending struct {
	alarm Alarm
	seq   uint64
}

// alarmQueue is a min-heap on TriggerAt; alarms due at the same instant keep
// their scheduling order.
type alarmQueue []pending

func (q alarmQueue) Len() int { return len(q) }

func (q alarmQueue) Less(i, j int) bool {
	if q[i].alarm.TriggerAt.Equal(q[j].alarm.TriggerAt) {
		return q[i].seq < q[j].seq
	}
	return q[i].alarm.TriggerAt.Before(q[j].alarm.TriggerAt)
}

func (q alarmQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *alarmQueue) Push(x any) { *q = append(*q, x.(pending)) }

func (q *alarmQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// Engine delivers alarms in trigger order on a buffered channel. Delivery
// never blocks: alarms that find the buffer full are counted as dropped.
type Engine struct {
	mu      sync.Mutex
	queue   alarmQueue
	seq     uint64
	out     chan Alarm
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped atomic.Uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		out:    make(chan Alarm, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

func (e *Engine) C() <-chan Alarm {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	go e.loop()
}

// Stop ends the delivery goroutine and closes C. Pending alarms are discarded.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

// Reschedule arms a, replacing any pending alarm with the same ID, so each ID
// has at most one alarm in the queue.
func (e *Engine) Reschedule(a Alarm) error {
	if a.TriggerAt.IsZero() {
		return ErrInvalidTriggerTime
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrEngineStopped
	}
	e.removeLocked(a.ID)
	e.pushLocked(a)
	return nil
}

// Cancel removes the pending alarm with the given id and reports how many
// were removed. Alarms already delivered to the channel are not recalled.
func (e *Engine) Cancel(id string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	removed := e.removeLocked(id)
	if removed > 0 {
		e.signalWakeup()
	}
	return removed
}

func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

func (e *Engine) Dropped() uint64 {
	return e.dropped.Load()
}

func (e *Engine) pushLocked(a Alarm) {
	e.seq++
	heap.Push(&e.queue, pending{alarm: a, seq: e.seq})
	e.signalWakeup()
}

func (e *Engine) removeLocked(id string) int {
	kept := e.queue[:0]
	for _, p := range e.queue {
		if p.alarm.ID != id {
			kept = append(kept, p)
		}
	}
	removed := len(e.queue) - len(kept)
	e.queue = kept
	if removed > 0 {
		heap.Init(&e.queue)
	}
	return removed
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	timer := time.NewTimer(time.Hour)
	defer timer.Stop()
	for {
		next, ok := e.peek()
		if !ok {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}
		timer.Reset(max(time.Until(next), 0))

		select {
		case <-timer.C:
			for _, a := range e.popDue(time.Now()) {
				select {
				case e.out <- a:
				default:
					e.dropped.Add(1)
				}
			}
		case <-e.wakeup:
		case <-e.stopCh:
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (time.Time, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return time.Time{}, false
	}
	return e.queue[0].alarm.TriggerAt, true
}

func (e *Engine) popDue(now time.Time) []Alarm {
	e.mu.Lock()
	defer e.mu.Unlock()

	var due []Alarm
	for len(e.queue) > 0 && !e.queue[0].alarm.TriggerAt.After(now) {
		due = append(due, heap.Pop(&e.queue).(pending).alarm)
	}
	return due
}
