package light

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPULightUniform is the packed light rig consumed by the viewer shader.
// Matches the WGSL Lights struct layout exactly. Size: 80 bytes (five vec4<f32>).
//
// Colors are premultiplied by intensity. The w component of DirDirection and PointColor
// is 1 when that light is present and 0 otherwise; PointPosition.w carries the range.
type GPULightUniform struct {
	Ambient       [4]float32 // offset  0: summed ambient rgb
	DirDirection  [4]float32 // offset 16: direction the light travels, w = enabled
	DirColor      [4]float32 // offset 32: rgb * intensity
	PointPosition [4]float32 // offset 48: world position, w = range (0 = unbounded)
	PointColor    [4]float32 // offset 64: rgb * intensity, w = enabled
}

// PackLights folds a light list into the fixed uniform layout. Ambient lights are summed; the
// first enabled directional and the first enabled point light are kept and the rest ignored.
//
// Parameters:
//   - lights: the scene's lights
//
// Returns:
//   - GPULightUniform: the packed uniform
func PackLights(lights []Light) GPULightUniform {
	var g GPULightUniform
	haveDir, havePoint := false, false
	for _, l := range lights {
		if l == nil || !l.Enabled() {
			continue
		}
		c := l.Color()
		k := l.Intensity()
		switch l.Type() {
		case LightTypeAmbient:
			g.Ambient[0] += c[0] * k
			g.Ambient[1] += c[1] * k
			g.Ambient[2] += c[2] * k
		case LightTypeDirectional:
			if haveDir {
				continue
			}
			haveDir = true
			d := l.Direction()
			g.DirDirection = [4]float32{d[0], d[1], d[2], 1}
			g.DirColor = [4]float32{c[0] * k, c[1] * k, c[2] * k, 0}
		case LightTypePoint:
			if havePoint {
				continue
			}
			havePoint = true
			p := l.Position()
			g.PointPosition = [4]float32{p[0], p[1], p[2], l.Range()}
			g.PointColor = [4]float32{c[0] * k, c[1] * k, c[2] * k, 1}
		}
	}
	return g
}

// Size returns the size of the GPULightUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPULightUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULightUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 80-byte buffer ready for GPU upload
func (g *GPULightUniform) Marshal() []byte {
	buf := make([]byte, 80)
	for i, v := range [5][4]float32{g.Ambient, g.DirDirection, g.DirColor, g.PointPosition, g.PointColor} {
		for j := range 4 {
			binary.LittleEndian.PutUint32(buf[i*16+j*4:], math.Float32bits(v[j]))
		}
	}
	return buf
}
