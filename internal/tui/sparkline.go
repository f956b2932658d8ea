package tui

// sparkBlocks are the bar heights of a sparkline, lowest first.
var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// cpuCeiling is the full-bar value of the CPU series, in percent.
const cpuCeiling = 100

// series keeps the newest samples of one dashboard metric, oldest first.
// It never holds more samples than its width.
type series struct {
	samples []float64
	width   int
}

func newSeries(width int) *series {
	return &series{width: max(width, 1)}
}

// add appends v, dropping the oldest sample once the series is full.
func (s *series) add(v float64) {
	if len(s.samples) < s.width {
		s.samples = append(s.samples, v)
		return
	}
	copy(s.samples, s.samples[1:])
	s.samples[len(s.samples)-1] = v
}

// setWidth changes how many samples are kept, keeping the newest.
func (s *series) setWidth(w int) {
	s.width = max(w, 1)
	if n := len(s.samples); n > s.width {
		s.samples = append(s.samples[:0], s.samples[n-s.width:]...)
	}
}

func (s *series) len() int { return len(s.samples) }

// last returns the newest sample, or 0 when empty.
func (s *series) last() float64 {
	if len(s.samples) == 0 {
		return 0
	}
	return s.samples[len(s.samples)-1]
}

func (s *series) peak() float64 {
	var p float64
	for _, v := range s.samples {
		p = max(p, v)
	}
	return p
}

// render draws one bar per sample against ceiling. A ceiling of zero or
// less scales against the peak, so the fastest sample shown is a full bar.
func (s *series) render(ceiling float64) string {
	if len(s.samples) == 0 {
		return ""
	}
	if ceiling <= 0 {
		ceiling = s.peak()
	}
	bars := make([]rune, len(s.samples))
	for i, v := range s.samples {
		bars[i] = sparkBlock(v, ceiling)
	}
	return string(bars)
}

func sparkBlock(v, ceiling float64) rune {
	top := len(sparkBlocks) - 1
	if ceiling <= 0 || v <= 0 {
		return sparkBlocks[0]
	}
	idx := int(v / ceiling * float64(top))
	return sparkBlocks[min(idx, top)]
}
