package game

// ScoreManager 本局得分
type ScoreManager struct {
	score   int
	signals *SignalBus
}

// NewScoreManager 创建计分器
func NewScoreManager(signals *SignalBus) *ScoreManager {
	return &ScoreManager{signals: signals}
}

// Add 加分并发出 SignalScoreGain，(x, y) 为得分位置
func (m *ScoreManager) Add(points int, x, y float64) {
	if points <= 0 {
		return
	}
	m.score += points
	m.signals.Emit(Signal{Type: SignalScoreGain, X: x, Y: y, Value: points})
}

// Score 当前得分
func (m *ScoreManager) Score() int {
	return m.score
}
