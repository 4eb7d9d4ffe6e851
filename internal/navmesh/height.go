// Package navmesh отвечает на вопрос "какая высота у земли в этой точке".
package navmesh

import (
	"fmt"
	"math"

	"skrillax-agent/internal/domain"
)

// HeightProvider - сервис высот рельефа. false означает, что точка не покрыта данными.
type HeightProvider interface {
	HeightFor(loc domain.Vec3) (float32, bool)
}

// Flat - плоский мир постоянной высоты
type Flat struct {
	Height float32
	Bounds domain.Bounds
}

func (f Flat) HeightFor(loc domain.Vec3) (float32, bool) {
	if !f.Bounds.Contains(loc) {
		return 0, false
	}
	return f.Height, true
}

// Heightmap - регулярная сетка высот с билинейной интерполяцией
type Heightmap struct {
	originX, originZ float32
	cell             float32
	cols, rows       int
	heights          []float32
}

// NewHeightmap создает сетку cols x rows узлов с шагом cell, начиная с (originX, originZ).
// heights задаются построчно: heights[row*cols+col].
func NewHeightmap(originX, originZ, cell float32, cols, rows int, heights []float32) (*Heightmap, error) {
	if cols < 2 || rows < 2 {
		return nil, fmt.Errorf("heightmap needs at least 2x2 nodes, got %dx%d", cols, rows)
	}
	if cell <= 0 {
		return nil, fmt.Errorf("heightmap cell size must be positive, got %v", cell)
	}
	if len(heights) != cols*rows {
		return nil, fmt.Errorf("heightmap expects %d heights, got %d", cols*rows, len(heights))
	}
	return &Heightmap{
		originX: originX, originZ: originZ,
		cell: cell, cols: cols, rows: rows,
		heights: heights,
	}, nil
}

func (h *Heightmap) at(col, row int) float32 {
	return h.heights[row*h.cols+col]
}

func (h *Heightmap) HeightFor(loc domain.Vec3) (float32, bool) {
	fx := (loc.X - h.originX) / h.cell
	fz := (loc.Z - h.originZ) / h.cell
	maxX := float32(h.cols - 1)
	maxZ := float32(h.rows - 1)
	if fx < 0 || fz < 0 || fx > maxX || fz > maxZ {
		return 0, false
	}

	c0 := int(math.Floor(float64(fx)))
	r0 := int(math.Floor(float64(fz)))
	c1 := min(c0+1, h.cols-1)
	r1 := min(r0+1, h.rows-1)
	tx := fx - float32(c0)
	tz := fz - float32(r0)

	top := lerp(h.at(c0, r0), h.at(c1, r0), tx)
	bottom := lerp(h.at(c0, r1), h.at(c1, r1), tx)
	return lerp(top, bottom, tz), true
}

// Bounds - покрытая сеткой область
func (h *Heightmap) Bounds() domain.Bounds {
	return domain.Bounds{
		MinX: h.originX,
		MinZ: h.originZ,
		MaxX: h.originX + h.cell*float32(h.cols-1),
		MaxZ: h.originZ + h.cell*float32(h.rows-1),
	}
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
