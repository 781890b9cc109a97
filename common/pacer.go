package common

import "time"

// FramePacer holds a loop to a target rate by sleeping in slices no longer
// than its granularity. A late frame resets the schedule instead of
// bursting to catch up.
type FramePacer struct {
	period      time.Duration
	granularity time.Duration
	next        time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

func NewFramePacer(rate int, granularity time.Duration) *FramePacer {
	p := &FramePacer{
		granularity: granularity,
		now:         time.Now,
		sleep:       time.Sleep,
	}
	if rate > 0 {
		p.period = time.Second / time.Duration(rate)
	}
	return p
}

// Wait blocks until the next frame is due.
func (p *FramePacer) Wait() {
	if p == nil || p.period <= 0 {
		return
	}

	now := p.now()
	if p.next.IsZero() {
		p.next = now.Add(p.period)
		return
	}

	for remaining := p.next.Sub(now); remaining > 0; remaining = p.next.Sub(now) {
		step := remaining
		if p.granularity > 0 && step > p.granularity {
			step = p.granularity
		}
		p.sleep(step)
		now = p.now()
	}

	p.next = p.next.Add(p.period)
	if p.next.Before(now) {
		p.next = now.Add(p.period)
	}
}
