package audio

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave 振荡器波形
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
)

// tone 频率线性滑动的振荡器，时长由外层 beep.Take 截断
type tone struct {
	rate     beep.SampleRate
	wave     Wave
	from, to float64 // 起止频率（Hz）
	glideN   int     // 滑动持续的采样数
	position int
	phase    float64
}

func newTone(rate beep.SampleRate, wave Wave, from, to float64, glide time.Duration) *tone {
	return &tone{rate: rate, wave: wave, from: from, to: to, glideN: max(1, rate.N(glide))}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		var v float64
		switch t.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			v = -1
			if t.phase < 0.5 {
				v = 1
			}
		case WaveTriangle:
			v = 4*math.Abs(t.phase-0.5) - 1
		}
		samples[i][0], samples[i][1] = v, v

		progress := math.Min(1, float64(t.position)/float64(t.glideN))
		freq := t.from + (t.to-t.from)*progress
		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// decay 线性淡出包络
type decay struct {
	s        beep.Streamer
	total    int
	position int
}

func (d *decay) Stream(samples [][2]float64) (int, bool) {
	n, ok := d.s.Stream(samples)
	for i := 0; i < n; i++ {
		g := 1 - float64(d.position)/float64(d.total)
		if g < 0 {
			g = 0
		}
		samples[i][0] *= g
		samples[i][1] *= g
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.s.Err() }

// note 一个音符：波形、起止频率、时长、音量
type note struct {
	wave     Wave
	from, to float64
	length   time.Duration
	gain     float64
}

func (n note) streamer(rate beep.SampleRate) beep.Streamer {
	samples := rate.N(n.length)
	s := beep.Take(samples, newTone(rate, n.wave, n.from, n.to, n.length))
	return gained(&decay{s: s, total: samples}, n.gain)
}

// gained 线性音量转为 effects.Volume 的对数音量
func gained(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// cueNotes 每个提示音依次播放的音符
var cueNotes = map[Cue][]note{
	CueShot:     {{WaveSquare, 880, 440, 60 * time.Millisecond, 0.25}},
	CueHit:      {{WaveSquare, 220, 180, 50 * time.Millisecond, 0.35}},
	CueDeath:    {{WaveTriangle, 330, 110, 180 * time.Millisecond, 0.5}},
	CuePickup:   {{WaveSine, 988, 988, 60 * time.Millisecond, 0.4}, {WaveSine, 1319, 1319, 120 * time.Millisecond, 0.4}},
	CueLevelUp:  {{WaveSine, 523, 523, 90 * time.Millisecond, 0.5}, {WaveSine, 659, 659, 90 * time.Millisecond, 0.5}, {WaveSine, 784, 784, 180 * time.Millisecond, 0.5}},
	CueGameOver: {{WaveTriangle, 392, 98, 600 * time.Millisecond, 0.6}},
}

// Synthesize 生成提示音的流
func Synthesize(cue Cue, rate beep.SampleRate) (beep.Streamer, bool) {
	notes, ok := cueNotes[cue]
	if !ok {
		return nil, false
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, n.streamer(rate))
	}
	return beep.Seq(parts...), true
}

// Render 把提示音渲染为 16 位小端立体声 PCM（ebiten 音频格式）
func Render(cue Cue, rate beep.SampleRate) []byte {
	s, ok := Synthesize(cue, rate)
	if !ok {
		return nil
	}

	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(frame[0])))
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(frame[1])))
		}
		if !ok {
			break
		}
	}
	return out
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(v * math.MaxInt16)
}
