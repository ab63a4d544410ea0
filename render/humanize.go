package render

import (
	"github.com/kinoshitayoshihiro/haru/model"
	"github.com/kinoshitayoshihiro/haru/params"
	"github.com/kinoshitayoshihiro/haru/util"
)

// humanize jitters start times and velocities in place, using the
// renderer's seeded source. timeVar is the maximum absolute shift in
// beats, velVar the maximum absolute velocity shift. Starts never move
// before zero.
func (r *Renderer) humanize(events []model.NoteEvent, timeVar float64, velVar int) {
	if timeVar <= 0 && velVar <= 0 {
		return
	}
	for i := range events {
		if timeVar > 0 {
			shift := (r.rng.Float64()*2 - 1) * timeVar
			events[i].Start = util.Max(0, events[i].Start+shift)
		}
		if velVar > 0 {
			shift := r.rng.Intn(2*velVar+1) - velVar
			events[i].Velocity = util.ClampVelocity(int(events[i].Velocity) + shift)
		}
	}
}

// humanizeIfSet reads the block's humanize parameters and applies them.
func (r *Renderer) humanizeIfSet(acc *params.Accessor, events []model.NoteEvent) error {
	on, err := acc.Bool("humanize", false)
	if err != nil {
		return err
	}
	if !on {
		return nil
	}
	timeVar, err := acc.Float("humanize_time_var", 0.01)
	if err != nil {
		return err
	}
	velVar, err := acc.Int("humanize_vel_var", 4)
	if err != nil {
		return err
	}
	r.humanize(events, timeVar, velVar)
	return nil
}
