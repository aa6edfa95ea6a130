package noise

import "math"

// FractalType selects how octaves of a base Sampler are combined.
type FractalType int

const (
	FractalFBM FractalType = iota
	FractalRigid
	FractalBillow
	FractalMultiFractal
	FractalHybridMulti
	FractalDeCarpentier
)

// FractalParams controls octave combination, mirroring the teacher's
// octaveNoise2D/3D parameters (persistence, lacunarity) generalized across
// all six FractalType variants.
type FractalParams struct {
	Octaves     int
	Frequency   float64
	Persistence float64
	Lacunarity  float64
}

// DefaultFractalParams returns sensible defaults matching the teacher's
// octaveNoise2D defaults (persistence 0.5, lacunarity 2.0).
func DefaultFractalParams() FractalParams {
	return FractalParams{Octaves: 4, Frequency: 1.0, Persistence: 0.5, Lacunarity: 2.0}
}

// Fractal layers octaves of base according to FractalType/FractalParams,
// producing a single combined Sampler.
type Fractal struct {
	Base   Sampler
	Type   FractalType
	Params FractalParams
}

func NewFractal(base Sampler, typ FractalType, params FractalParams) *Fractal {
	return &Fractal{Base: base, Type: typ, Params: params}
}

func (f *Fractal) Sample3D(x, y, z float64) float64 {
	switch f.Type {
	case FractalRigid:
		return f.rigid(x, y, z)
	case FractalBillow:
		return f.billow(x, y, z)
	case FractalMultiFractal:
		return f.multiFractal(x, y, z)
	case FractalHybridMulti:
		return f.hybridMulti(x, y, z)
	case FractalDeCarpentier:
		return f.deCarpentier(x, y, z)
	default:
		return f.fbm(x, y, z)
	}
}

func (f *Fractal) fbm(x, y, z float64) float64 {
	p := f.Params
	freq, amp, sum, maxAmp := p.Frequency, 1.0, 0.0, 0.0
	for o := 0; o < p.Octaves; o++ {
		sum += f.Base.Sample3D(x*freq, y*freq, z*freq) * amp
		maxAmp += amp
		amp *= p.Persistence
		freq *= p.Lacunarity
	}
	if maxAmp == 0 {
		return 0
	}
	return clampUnit(sum / maxAmp)
}

func (f *Fractal) rigid(x, y, z float64) float64 {
	p := f.Params
	freq, amp, sum, maxAmp := p.Frequency, 1.0, 0.0, 0.0
	for o := 0; o < p.Octaves; o++ {
		n := 1 - math.Abs(f.Base.Sample3D(x*freq, y*freq, z*freq))
		sum += n * n * amp
		maxAmp += amp
		amp *= p.Persistence
		freq *= p.Lacunarity
	}
	if maxAmp == 0 {
		return 0
	}
	return clampUnit(sum/maxAmp*2 - 1)
}

func (f *Fractal) billow(x, y, z float64) float64 {
	p := f.Params
	freq, amp, sum, maxAmp := p.Frequency, 1.0, 0.0, 0.0
	for o := 0; o < p.Octaves; o++ {
		n := 2*math.Abs(f.Base.Sample3D(x*freq, y*freq, z*freq)) - 1
		sum += n * amp
		maxAmp += amp
		amp *= p.Persistence
		freq *= p.Lacunarity
	}
	if maxAmp == 0 {
		return 0
	}
	return clampUnit(sum / maxAmp)
}

// multiFractal weights each octave by the running product of prior
// octaves, so regions already "rough" accumulate roughness faster
// (Perlin's multifractal formulation).
func (f *Fractal) multiFractal(x, y, z float64) float64 {
	p := f.Params
	freq, amp, sum := p.Frequency, 1.0, 1.0
	for o := 0; o < p.Octaves; o++ {
		n := f.Base.Sample3D(x*freq, y*freq, z*freq)
		sum *= (n*amp + 1)
		amp *= p.Persistence
		freq *= p.Lacunarity
	}
	return clampUnit(sum - 1)
}

// hybridMulti blends additive FBM with the multiplicative weighting of
// multiFractal, the "hybrid multifractal" combinator: early octaves add,
// later octaves are damped by accumulated weight.
func (f *Fractal) hybridMulti(x, y, z float64) float64 {
	p := f.Params
	freq, amp := p.Frequency, 1.0
	n0 := f.Base.Sample3D(x*freq, y*freq, z*freq)
	sum := n0
	weight := n0
	freq *= p.Lacunarity
	amp *= p.Persistence
	for o := 1; o < p.Octaves; o++ {
		if weight > 1 {
			weight = 1
		}
		n := f.Base.Sample3D(x*freq, y*freq, z*freq) * amp * weight
		sum += n
		weight *= n
		freq *= p.Lacunarity
		amp *= p.Persistence
	}
	return clampUnit(sum)
}

// deCarpentier implements the "swiss"/De Carpentier erosion-flavored
// combinator: each octave's contribution is damped by how close the
// running sum already is to a ridge, giving eroded-looking mountain flanks
// without a true hydraulic erosion simulation.
func (f *Fractal) deCarpentier(x, y, z float64) float64 {
	p := f.Params
	freq, amp, sum, derivScale := p.Frequency, 1.0, 0.0, 1.0
	for o := 0; o < p.Octaves; o++ {
		n := f.Base.Sample3D(x*freq, y*freq, z*freq)
		ridge := 1 - math.Abs(n)
		damp := 1 / (1 + derivScale*ridge*ridge)
		sum += ridge * amp * damp
		derivScale += ridge * ridge
		amp *= p.Persistence
		freq *= p.Lacunarity
	}
	return clampUnit(sum*2 - 1)
}

// CombineOperation names how two noise layers merge in a layered stack.
type CombineOperation int

const (
	CombineAdd CombineOperation = iota
	CombineSubtract
	CombineMultiply
	CombineDivide
	CombineMin
	CombineMax
	CombinePower
	CombineAverage
	CombineBlend
)

// Combine merges two already-sampled values per op. blendT only matters
// for CombineBlend (linear interpolation weight in [0,1]).
func Combine(op CombineOperation, a, b, blendT float64) float64 {
	switch op {
	case CombineAdd:
		return clampUnit(a + b)
	case CombineSubtract:
		return clampUnit(a - b)
	case CombineMultiply:
		return clampUnit(a * b)
	case CombineDivide:
		if b == 0 {
			return a
		}
		return clampUnit(a / b)
	case CombineMin:
		return math.Min(a, b)
	case CombineMax:
		return math.Max(a, b)
	case CombinePower:
		return clampUnit(math.Copysign(math.Pow(math.Abs(a), math.Abs(b)+1), a))
	case CombineAverage:
		return (a + b) / 2
	case CombineBlend:
		return lerp(a, b, blendT)
	}
	return a
}

// Layer is one entry in a layered noise stack: a Sampler, the operation
// used to combine it with the accumulated result so far, and a weight
// applied before combination.
type Layer struct {
	Sampler Sampler
	Op      CombineOperation
	Weight  float64
	BlendT  float64
}

// LayeredGenerator evaluates a stack of Layers in order, folding each into
// an accumulator via its CombineOperation. BuildPreset returns one of
// these for each named Preset.
type LayeredGenerator struct {
	Layers []Layer
}

func (g *LayeredGenerator) Sample3D(x, y, z float64) float64 {
	if len(g.Layers) == 0 {
		return 0
	}
	acc := g.Layers[0].Sampler.Sample3D(x, y, z) * g.Layers[0].Weight
	for _, l := range g.Layers[1:] {
		v := l.Sampler.Sample3D(x, y, z) * l.Weight
		acc = Combine(l.Op, acc, v, l.BlendT)
	}
	return clampUnit(acc)
}
