package components

// Lifetime tracks how long an entity has existed and how long it may live.
type Lifetime struct {
	Age      float64 // seconds
	Lifespan float64 // seconds
}

// Expired reports whether the entity has reached the end of its lifespan.
func (l Lifetime) Expired() bool {
	return l.Age >= l.Lifespan
}

// Opacity ramps 0→1 over the first fade seconds and 1→0 over the last fade seconds.
func (l Lifetime) Opacity(fade float64) float64 {
	if fade <= 0 {
		return 1
	}
	var o float64
	switch {
	case l.Age < fade:
		o = l.Age / fade
	case l.Age > l.Lifespan-fade:
		o = (l.Lifespan - l.Age) / fade
	default:
		o = 1
	}
	if o < 0 {
		return 0
	}
	if o > 1 {
		return 1
	}
	return o
}
