package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/cbass-space/n-body/internal/sim"
)

// Series is the diagnostic time series of a headless run. It records
// conserved quantities over time, not body state, and cannot be reloaded.
type Series struct {
	Scenario   string             `json:"scenario"`
	Integrator string             `json:"integrator"`
	Collisions string             `json:"collisions"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Steps      int                `json:"steps"`
	Times      []float64          `json:"times"`
	Energy     []float64          `json:"energy"`
	Momentum   []float64          `json:"momentum"`
	BodyCount  []int              `json:"body_count"`
	Metrics    map[string]float64 `json:"metrics"`
}

// NewSeries collects the series of result, labeled with the world's
// scenario and parameters.
func NewSeries(w *sim.World, cfg sim.Config, result *sim.Result) Series {
	p := w.Params()
	return Series{
		Scenario:   w.Scenario().Name,
		Integrator: p.Integrator.String(),
		Collisions: p.Collisions.String(),
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Steps:      result.StepsTaken,
		Times:      result.Times,
		Energy:     result.Energy,
		Momentum:   result.Momentum,
		BodyCount:  result.BodyCount,
		Metrics:    result.Metrics,
	}
}

func (s Series) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteCSV writes one row per sample: time, energy, momentum, bodies.
func (s Series) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "energy", "momentum", "bodies"}); err != nil {
		return err
	}
	for i := range s.Times {
		row := []string{
			strconv.FormatFloat(s.Times[i], 'g', -1, 64),
			strconv.FormatFloat(s.Energy[i], 'g', -1, 64),
			strconv.FormatFloat(s.Momentum[i], 'g', -1, 64),
			strconv.Itoa(s.BodyCount[i]),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
