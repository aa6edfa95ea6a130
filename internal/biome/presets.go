package biome

// Voxel type ids used by presets, matching the well-known ids a real
// registry (internal/registry in the teacher) would assign to
// stone/dirt/grass/sand/snow/stone-mossy and similar common materials.
const (
	TypeStone    uint16 = 1
	TypeDirt     uint16 = 2
	TypeGrass    uint16 = 3
	TypeSand     uint16 = 4
	TypeSnow     uint16 = 5
	TypeGravel   uint16 = 6
	TypeClay     uint16 = 7
	TypeOre      uint16 = 9
)

// Realistic returns a 7-biome registry spanning the usual temperature x
// moisture quadrants plus a wet, low-lying ocean floor (heights up to 62),
// for general terrain generation.
func Realistic() *Registry {
	r := NewRegistry()
	biomes := []Info{
		{ID: 0, Name: "ocean", Temperature: 0.5, Moisture: 0.9, MinHeight: -64, MaxHeight: 62, SurfaceType: TypeGravel, FillerType: TypeStone},
		{ID: 1, Name: "plains", Temperature: 0.5, Moisture: 0.4, MinHeight: 60, MaxHeight: 90, SurfaceType: TypeGrass, FillerType: TypeDirt},
		{ID: 2, Name: "desert", Temperature: 0.9, Moisture: 0.1, MinHeight: 60, MaxHeight: 100, SurfaceType: TypeSand, FillerType: TypeSand},
		{ID: 3, Name: "forest", Temperature: 0.5, Moisture: 0.6, MinHeight: 60, MaxHeight: 110, SurfaceType: TypeGrass, FillerType: TypeDirt},
		{ID: 4, Name: "tundra", Temperature: 0.1, Moisture: 0.3, MinHeight: 60, MaxHeight: 110, SurfaceType: TypeSnow, FillerType: TypeDirt},
		{ID: 5, Name: "mountains", Temperature: 0.3, Moisture: 0.4, MinHeight: 110, MaxHeight: 256, SurfaceType: TypeStone, FillerType: TypeStone},
		{ID: 6, Name: "swamp", Temperature: 0.6, Moisture: 0.85, MinHeight: 58, MaxHeight: 68, SurfaceType: TypeClay, FillerType: TypeDirt},
	}
	for _, b := range biomes {
		_ = r.Register(b) // preset ids are known distinct; error impossible here
	}
	return r
}

// Fantasy returns a smaller 5-biome registry for stylized, non-realistic
// worlds (floating islands, crystal caves, and the like).
func Fantasy() *Registry {
	r := NewRegistry()
	biomes := []Info{
		{ID: 0, Name: "emerald-fields", Temperature: 0.5, Moisture: 0.5, MinHeight: 60, MaxHeight: 100, SurfaceType: TypeGrass, FillerType: TypeDirt},
		{ID: 1, Name: "ashen-wastes", Temperature: 0.9, Moisture: 0.1, MinHeight: 60, MaxHeight: 100, SurfaceType: TypeStone, FillerType: TypeStone},
		{ID: 2, Name: "frostreach", Temperature: 0.05, Moisture: 0.5, MinHeight: 60, MaxHeight: 150, SurfaceType: TypeSnow, FillerType: TypeStone},
		{ID: 3, Name: "sunken-marsh", Temperature: 0.6, Moisture: 0.95, MinHeight: 55, MaxHeight: 65, SurfaceType: TypeClay, FillerType: TypeDirt},
		{ID: 4, Name: "skyreach", Temperature: 0.4, Moisture: 0.3, MinHeight: 150, MaxHeight: 256, SurfaceType: TypeStone, FillerType: TypeStone},
	}
	for _, b := range biomes {
		_ = r.Register(b)
	}
	return r
}
