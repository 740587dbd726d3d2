package power

// Latches records which threshold notifications have already fired for
// one battery. A latch is set on the first firing and stays set for the
// life of the process.
type Latches struct {
	Low    bool `json:"low"`
	High   bool `json:"high"`
	Unplug bool `json:"unplug"`
	Full   bool `json:"full"`
}

// Snapshot is the state of the last completed poll tick, as served by
// the daemon and consumed by the CLI client.
type Snapshot struct {
	Batteries    []Reading          `json:"batteries"`
	Plugged      bool               `json:"plugged"`
	MinPercent   int                `json:"minPercent"`
	NextInterval string             `json:"nextInterval"`
	Latches      map[string]Latches `json:"latches"`
}
