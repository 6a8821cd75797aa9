package utils

import "math"

// 二维向量工具
//
// 模拟层只使用 float64 的 (x, y) 分量，不引入单独的向量类型，
// 以便与 PositionComponent / VelocityComponent 的字段直接配合。

// Length 返回向量长度
func Length(x, y float64) float64 {
	return math.Hypot(x, y)
}

// Distance 返回两点间的欧氏距离
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// Normalize 返回单位向量
// 零向量返回 (0, 0)
func Normalize(x, y float64) (float64, float64) {
	l := math.Hypot(x, y)
	if l == 0 {
		return 0, 0
	}
	return x / l, y / l
}

// Rotate 将向量逆时针旋转 degrees 度
func Rotate(x, y, degrees float64) (float64, float64) {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return x*cos - y*sin, x*sin + y*cos
}

// LerpVec 分量线性插值
func LerpVec(x1, y1, x2, y2, t float64) (float64, float64) {
	return Lerp(x1, x2, t), Lerp(y1, y2, t)
}

// MoveTowards 从 (x, y) 朝 (tx, ty) 移动最多 maxDelta，不会越过目标点
func MoveTowards(x, y, tx, ty, maxDelta float64) (float64, float64) {
	dx, dy := tx-x, ty-y
	d := math.Hypot(dx, dy)
	if d <= maxDelta || d == 0 {
		return tx, ty
	}
	return x + dx/d*maxDelta, y + dy/d*maxDelta
}

// Clamp01 将值限制在 [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Clamp 将值限制在 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
