package main

// ScaledCooldown maps live progress onto the delay before the next
// attack cycle. progressRatio is the remaining-objective fraction:
// 1.0 at level start, 0.0 when the last crystal is collected. Less
// remaining means a shorter cooldown, so pressure rises as the player
// closes in on the objective. Monotonic in progressRatio.
//
// Consumed only at the Cooldown -> Idle transition, never mid-cycle.
func ScaledCooldown(progressRatio, minMs, maxMs float64) float64 {
	p := Clamp(progressRatio, 0, 1)
	if maxMs < minMs {
		maxMs = minMs
	}
	return minMs + p*(maxMs-minMs)
}
