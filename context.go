package gg3d

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Context wraps the GPU device this canvas renders with.
//
// Key principle: gg3d RECEIVES the device from the host, it does NOT
// create one. A host application that already owns a wgpu device and
// swapchain passes them to NewContext so canvas resources share the
// host's GPU state. NewHeadlessContext exists for programs (and tests)
// that have no host.
type Context struct {
	device *wgpu.Device
	queue  *wgpu.Queue
	format wgpu.TextureFormat

	samplers map[Sampler]*wgpu.Sampler
}

// NewContext wraps a host-provided device and queue. surfaceFormat is the
// texture format of the surface the host presents to; canvas images created
// without an explicit format use it.
func NewContext(device *wgpu.Device, queue *wgpu.Queue, surfaceFormat wgpu.TextureFormat) *Context {
	return &Context{
		device:   device,
		queue:    queue,
		format:   surfaceFormat,
		samplers: make(map[Sampler]*wgpu.Sampler),
	}
}

// NewHeadlessContext acquires a GPU device without any window surface.
// It returns an error when no usable adapter is present, which callers
// (integration tests in particular) can treat as "no GPU here".
func NewHeadlessContext() (*Context, error) {
	instance := wgpu.CreateInstance(nil)
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, fmt.Errorf("gg3d: no GPU adapter available: %w", err)
	}

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "gg3d device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gg3d: request device: %w", err)
	}

	Logger().Info("gg3d: GPU device acquired (headless)")
	return NewContext(device, device.GetQueue(), wgpu.TextureFormatRGBA8UnormSrgb), nil
}

// Device returns the underlying GPU device.
func (c *Context) Device() *wgpu.Device { return c.device }

// Queue returns the device's default queue.
func (c *Context) Queue() *wgpu.Queue { return c.queue }

// SurfaceFormat returns the texture format of the host's surface.
func (c *Context) SurfaceFormat() wgpu.TextureFormat { return c.format }

// sampler returns the cached GPU sampler for the description, creating it
// on first use. Sampler descriptions are tiny comparable values, so the
// cache stays small for any realistic workload.
func (c *Context) sampler(s Sampler) (*wgpu.Sampler, error) {
	if got, ok := c.samplers[s]; ok {
		return got, nil
	}
	created, err := c.device.CreateSampler(s.descriptor())
	if err != nil {
		return nil, fmt.Errorf("gg3d: create sampler: %w", err)
	}
	c.samplers[s] = created
	return created, nil
}

// Release frees all cached samplers. The device and queue belong to the
// host and are left untouched.
func (c *Context) Release() {
	for _, s := range c.samplers {
		s.Release()
	}
	c.samplers = make(map[Sampler]*wgpu.Sampler)
}
