package demos

import (
	"time"
)

// Time records how long redraws take.
type Time struct {
	Redraws int
	Last    time.Duration
	Total   time.Duration

	started time.Time
	now     func() time.Time
}

type TimeModule struct {
}

func (mod TimeModule) Install(app *App) error {
	app.time = &Time{now: time.Now}
	return nil
}

func (t *Time) begin() {
	if t == nil {
		return
	}
	t.started = t.now()
}

func (t *Time) end() {
	if t == nil {
		return
	}
	t.Last = t.now().Sub(t.started)
	t.Total += t.Last
	t.Redraws++
}

// Average is the mean redraw time so far.
func (t *Time) Average() time.Duration {
	if t == nil || t.Redraws == 0 {
		return 0
	}
	return t.Total / time.Duration(t.Redraws)
}
