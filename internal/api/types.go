package api

import (
	"github.com/VoidMesh/strata/internal/biome"
	"github.com/VoidMesh/strata/internal/chunk"
	"github.com/VoidMesh/strata/internal/scheduler"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type BiomeResponse struct {
	X         float64       `json:"x"`
	Primary   string        `json:"primary"`
	Secondary string        `json:"secondary"`
	Factor    float64       `json:"factor"`
	Surface   string        `json:"surface"`
	Tree      string        `json:"tree"`
	Blended   biome.Blended `json:"blended"`
}

type CameraRequest struct {
	X *float64 `json:"x"`
}

type CameraResponse struct {
	X      float64      `json:"x"`
	Window chunk.Window `json:"window"`
}

type SetBlockRequest struct {
	Chunk int    `json:"chunk"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Block string `json:"block"`
}

type SetBlockResponse struct {
	Chunk int    `json:"chunk"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Block string `json:"block"`
	ID    uint16 `json:"id"`
}

type ChunkStatusResponse struct {
	Index int    `json:"index"`
	State string `json:"state"`
}

type StatsResponse struct {
	Seed      int64            `json:"seed"`
	CameraX   float64          `json:"camera_x"`
	Frames    uint64           `json:"frames"`
	Store     chunk.StoreStats `json:"store"`
	Scheduler scheduler.Stats  `json:"scheduler"`
}
