package ir

// fitDecay fits a line to the Schroeder curve between the first samples at
// or below startDB and endDB and returns the time the fitted slope takes to
// fall 60 dB. It returns 0 when the curve never spans the range or does not
// decay.
func fitDecay(schroeder []float64, startDB, endDB, sampleRate float64) float64 {
	start, end := -1, -1
	for i, v := range schroeder {
		if start < 0 && v <= startDB {
			start = i
		}
		if start >= 0 && v <= endDB {
			end = i
			break
		}
	}
	if start < 0 || end <= start {
		return 0
	}

	var sumX, sumY, sumXX, sumXY float64
	for i := start; i <= end; i++ {
		x := float64(i - start)
		y := schroeder[i]
		sumX += x
		sumY += y
		sumXX += x * x
		sumXY += x * y
	}

	n := float64(end - start + 1)
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}

	// dB per sample
	slope := (n*sumXY - sumX*sumY) / denom
	if slope >= 0 {
		return 0
	}

	return -60 / (slope * sampleRate)
}
