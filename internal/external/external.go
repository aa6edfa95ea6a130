// Package external declares the interfaces this engine consumes but never
// implements: vector/quaternion math, axis-aligned bounding boxes, rays,
// randomness, logging, subsystem lifecycle, and render mesh upload. Spec
// §6 treats all of these as opaque collaborators supplied by the host
// application (the game/renderer), so this package holds only the shapes
// a real implementation (e.g. github.com/go-gl/mathgl at the call site of
// an actual renderer) must satisfy — this module itself never imports a
// math or rendering library for them.
package external

import "context"

// Vec3 is a three-component vector, satisfied by any host math library's
// vector type with the same field layout.
type Vec3 struct {
	X, Y, Z float64
}

// Quat is a quaternion rotation.
type Quat struct {
	W, X, Y, Z float64
}

// AABB is an axis-aligned bounding box in world space.
type AABB struct {
	Min, Max Vec3
}

// Ray is a half-line used for raycasting against the voxel grid.
type Ray struct {
	Origin, Direction Vec3
}

// Random is the source of randomness handed to generation components that
// need it outside of deterministic, seed-derived hashing (e.g. picking
// among equally-eligible feature placements).
type Random interface {
	Float64() float64
	Int63() int64
}

// Logger is the structured logging sink every component writes warnings
// and diagnostics through. The default implementation
// (internal/telemetry.ZapLogger) wraps a *zap.SugaredLogger.
type Logger interface {
	Debugw(msg string, kv ...any)
	Infow(msg string, kv ...any)
	Warnw(msg string, kv ...any)
	Errorw(msg string, kv ...any)
}

// NopLogger discards everything; useful in tests.
type NopLogger struct{}

func (NopLogger) Debugw(string, ...any) {}
func (NopLogger) Infow(string, ...any)  {}
func (NopLogger) Warnw(string, ...any)  {}
func (NopLogger) Errorw(string, ...any) {}

// Subsystem is the lifecycle contract the host application drives engine
// components through (start on boot, stop on shutdown), mirroring the
// teacher's cmd/mini-mc setup/teardown ordering but decoupled from any
// concrete game-loop type.
type Subsystem interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// MeshUpload is the renderer-side sink a built ChunkMesh is handed to.
// This module produces the vertex/index buffers; it never calls a GPU API
// itself.
type MeshUpload interface {
	CreateFromData(vertices []uint32, indices []uint32) (handle any, err error)
}
