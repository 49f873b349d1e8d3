package space

// Response is one detected arrival of sound at a microphone.
type Response struct {
	// Time is the arrival time in seconds. Always > 0.
	Time float32 `json:"time"`
	// Loudness is a linear amplitude. Tracers report a magnitude; phase is
	// applied by the accumulator from Bounces.
	Loudness float32 `json:"loudness"`
	// Bounces is the number of wall reflections along the path.
	Bounces int `json:"bounces"`
}

// PhaseSign returns +1 for an even number of bounces and -1 for an odd one.
// Each reflection inverts the phase of the wave.
func PhaseSign(bounces int) float32 {
	if bounces%2 == 0 {
		return 1
	}
	return -1
}
