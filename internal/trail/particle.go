package trail

import "math"

// Particle is one live point of the trail.
type Particle struct {
	X, Y  float64
	Alpha float64
	Size  float64
	Hue   float64
	Glyph string // empty in the dot variant
}

// Link connects two particles closer than the link distance.
type Link struct {
	A, B     int
	Distance float64
	Opacity  float64
}

// Links returns every unordered pair (A < B) closer than threshold.
// Opacity falls linearly from 1 at distance 0 to 0 at the threshold.
func Links(particles []Particle, threshold float64) []Link {
	var links []Link
	for i := 0; i < len(particles); i++ {
		for j := i + 1; j < len(particles); j++ {
			dist := math.Hypot(particles[i].X-particles[j].X, particles[i].Y-particles[j].Y)
			if dist < threshold {
				links = append(links, Link{A: i, B: j, Distance: dist, Opacity: LinkOpacity(dist, threshold)})
			}
		}
	}
	return links
}

// LinkOpacity is 1 - dist/threshold, clamped to [0, 1].
func LinkOpacity(dist, threshold float64) float64 {
	if threshold <= 0 {
		return 0
	}
	return clamp01(1 - dist/threshold)
}
