package gg3d

import "github.com/cogentcore/webgpu/wgpu"

// FilterMode selects how a texture is sampled between texels.
type FilterMode uint8

const (
	// FilterLinear blends the nearest texels.
	FilterLinear FilterMode = iota
	// FilterNearest snaps to the closest texel.
	FilterNearest
)

// AddressMode selects how texture coordinates outside [0, 1] resolve.
type AddressMode uint8

const (
	// AddressClampToEdge repeats the edge texel.
	AddressClampToEdge AddressMode = iota
	// AddressRepeat tiles the texture.
	AddressRepeat
	// AddressMirrorRepeat tiles the texture, mirroring every other tile.
	AddressMirrorRepeat
)

// Sampler describes texture sampling state. It is a comparable value so
// the context can cache one GPU sampler per distinct description.
type Sampler struct {
	MagFilter FilterMode
	MinFilter FilterMode
	AddressU  AddressMode
	AddressV  AddressMode
	AddressW  AddressMode
}

// DefaultSampler returns linear filtering with clamp-to-edge addressing.
func DefaultSampler() Sampler {
	return Sampler{
		MagFilter: FilterLinear,
		MinFilter: FilterLinear,
	}
}

// NearestSampler returns nearest-neighbor filtering with clamp-to-edge
// addressing, for pixel-art style textures.
func NearestSampler() Sampler {
	return Sampler{
		MagFilter: FilterNearest,
		MinFilter: FilterNearest,
	}
}

func (f FilterMode) wgpu() wgpu.FilterMode {
	if f == FilterNearest {
		return wgpu.FilterModeNearest
	}
	return wgpu.FilterModeLinear
}

func (a AddressMode) wgpu() wgpu.AddressMode {
	switch a {
	case AddressRepeat:
		return wgpu.AddressModeRepeat
	case AddressMirrorRepeat:
		return wgpu.AddressModeMirrorRepeat
	default:
		return wgpu.AddressModeClampToEdge
	}
}

func (s Sampler) descriptor() *wgpu.SamplerDescriptor {
	return &wgpu.SamplerDescriptor{
		Label:         "gg3d sampler",
		AddressModeU:  s.AddressU.wgpu(),
		AddressModeV:  s.AddressV.wgpu(),
		AddressModeW:  s.AddressW.wgpu(),
		MagFilter:     s.MagFilter.wgpu(),
		MinFilter:     s.MinFilter.wgpu(),
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	}
}
