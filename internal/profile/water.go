package profile

// MaxGlasses is the daily water goal.
const MaxGlasses = 8

// Water is the number of glasses drunk on one day, kept within [0, MaxGlasses].
type Water int

// Add returns w plus one glass, saturating at MaxGlasses.
func (w Water) Add() Water {
	if w >= MaxGlasses {
		return MaxGlasses
	}
	if w < 0 {
		return 1
	}
	return w + 1
}

// Remove returns w minus one glass, saturating at zero.
func (w Water) Remove() Water {
	if w <= 0 {
		return 0
	}
	if w > MaxGlasses {
		return MaxGlasses - 1
	}
	return w - 1
}

// Fraction is the share of the daily goal reached.
func (w Water) Fraction() float64 {
	return Progress(float64(w), MaxGlasses)
}
