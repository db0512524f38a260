package viola

import "math"

// ClusterDetections merges overlapping detection windows whose
// intersection over union exceeds the given threshold, averaging the
// members of each cluster into a single window. The scanner itself
// never suppresses overlaps; callers apply this as a separate
// post-processing step when they want one window per object.
func ClusterDetections(dets []DetectionWindow, iouThreshold float64) []DetectionWindow {
	assigned := make([]bool, len(dets))
	clusters := []DetectionWindow{}

	for i := 0; i < len(dets); i++ {
		if assigned[i] {
			continue
		}
		var x, y, w, h, n int
		for j := 0; j < len(dets); j++ {
			if assigned[j] {
				continue
			}
			if calcIoU(dets[i], dets[j]) > iouThreshold {
				assigned[j] = true
				x += dets[j].X
				y += dets[j].Y
				w += dets[j].Width
				h += dets[j].Height
				n++
			}
		}
		if n > 0 {
			clusters = append(clusters, DetectionWindow{
				X:      x / n,
				Y:      y / n,
				Width:  w / n,
				Height: h / n,
			})
		}
	}
	return clusters
}

// calcIoU returns the intersection over union of two windows.
func calcIoU(a, b DetectionWindow) float64 {
	ax0, ay0 := float64(a.X), float64(a.Y)
	ax1, ay1 := ax0+float64(a.Width), ay0+float64(a.Height)
	bx0, by0 := float64(b.X), float64(b.Y)
	bx1, by1 := bx0+float64(b.Width), by0+float64(b.Height)

	overX := math.Max(0, math.Min(ax1, bx1)-math.Max(ax0, bx0))
	overY := math.Max(0, math.Min(ay1, by1)-math.Max(ay0, by0))
	inter := overX * overY

	union := float64(a.Width)*float64(a.Height) + float64(b.Width)*float64(b.Height) - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}
