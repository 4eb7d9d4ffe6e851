package navmesh

import (
	"encoding/json"
	"fmt"
	"os"
)

type heightmapFile struct {
	OriginX float32   `json:"originX"`
	OriginZ float32   `json:"originZ"`
	Cell    float32   `json:"cell"`
	Cols    int       `json:"cols"`
	Rows    int       `json:"rows"`
	Heights []float32 `json:"heights"`
}

// LoadHeightmap читает сетку высот из JSON-файла
func LoadHeightmap(path string) (*Heightmap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read heightmap: %w", err)
	}
	var f heightmapFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse heightmap %s: %w", path, err)
	}
	return NewHeightmap(f.OriginX, f.OriginZ, f.Cell, f.Cols, f.Rows, f.Heights)
}
