package domain

import "math"

// Vec3 - точка в глобальных координатах мира. Y - высота.
type Vec3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// RegionID - идентификатор региона: старший байт Z-сектор, младший X-сектор
type RegionID uint16

// RegionFor вычисляет регион, в котором лежит точка
func RegionFor(v Vec3) RegionID {
	xs := sector(v.X)
	zs := sector(v.Z)
	return RegionID(uint16(zs)<<8 | uint16(xs))
}

func sector(c float32) uint8 {
	s := math.Floor(float64(c / RegionSize))
	if s < 0 {
		return 0
	}
	if s > math.MaxUint8 {
		return math.MaxUint8
	}
	return uint8(s)
}

func (r RegionID) XSector() uint8 { return uint8(r) }
func (r RegionID) ZSector() uint8 { return uint8(r >> 8) }

// Position - компонент положения сущности в мире
type Position struct {
	Location Vec3     `json:"location"`
	Region   RegionID `json:"region"`
	Heading  uint16   `json:"heading"`
}

// NewPosition создает позицию и сразу считает регион
func NewPosition(loc Vec3, heading uint16) *Position {
	return &Position{Location: loc, Region: RegionFor(loc), Heading: heading}
}

// MoveTo переносит сущность, сохраняя инвариант региона
func (p *Position) MoveTo(loc Vec3) {
	p.Location = loc
	p.Region = RegionFor(loc)
}

// DistanceTo возвращает расстояние до другой точки на плоскости XZ
func (v Vec3) DistanceTo(other Vec3) float32 {
	return float32(math.Sqrt(float64(v.DistanceSquaredTo(other))))
}

// DistanceSquaredTo возвращает квадрат расстояния для сравнения без корней
func (v Vec3) DistanceSquaredTo(other Vec3) float32 {
	dx := v.X - other.X
	dz := v.Z - other.Z
	return dx*dx + dz*dz
}

// Bounds - прямоугольник загруженной части мира на плоскости XZ
type Bounds struct {
	MinX float32 `yaml:"min_x" json:"minX"`
	MinZ float32 `yaml:"min_z" json:"minZ"`
	MaxX float32 `yaml:"max_x" json:"maxX"`
	MaxZ float32 `yaml:"max_z" json:"maxZ"`
}

func (b Bounds) Contains(v Vec3) bool {
	return v.X >= b.MinX && v.X <= b.MaxX && v.Z >= b.MinZ && v.Z <= b.MaxZ
}

// Clamp прижимает точку к границам мира
func (b Bounds) Clamp(v Vec3) Vec3 {
	v.X = clamp(v.X, b.MinX, b.MaxX)
	v.Z = clamp(v.Z, b.MinZ, b.MaxZ)
	return v
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
