package gg3d

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// drawCommand is one queued draw: the mesh, its parameters, and the
// index of the pipeline resolved when it was enqueued.
type drawCommand struct {
	mesh       *Mesh
	param      DrawParam
	pipelineID int
}

// missingResource reports the first GPU resource the command's mesh
// lacks, or nil when the command can be encoded.
func (d *drawCommand) missingResource() error {
	switch {
	case d.mesh.bindGroup == nil:
		return fmt.Errorf("%w (%d vertices)", ErrNoBindGroup, len(d.mesh.Vertices))
	case d.mesh.vertexBuffer == nil:
		return fmt.Errorf("%w (%d vertices)", ErrNoVertexBuffer, len(d.mesh.Vertices))
	case d.mesh.indexBuffer == nil:
		return fmt.Errorf("%w (%d indices)", ErrNoIndexBuffer, len(d.mesh.Indices))
	}
	return nil
}

// Canvas batches 3D draw calls and submits them as a single render pass.
//
// Usage per frame: enqueue draws with DrawMesh or Draw, then call Finish
// once. Pipelines are cached across frames keyed by shader state; the
// camera uniform is uploaded when the camera changes; per-draw transform
// and color travel in a per-frame instance buffer. Canvas is not safe
// for concurrent use.
type Canvas struct {
	ctx *Context

	target *Image // borrowed; owned by the caller
	depth  *Image // owned by the canvas

	defaultShader *Shader
	defaultImage  *Image

	state         DrawState
	originalState DrawState
	sampler       Sampler

	pipelines      pipelineCache
	textureLayout  *wgpu.BindGroupLayout
	cameraLayout   *wgpu.BindGroupLayout
	pipelineLayout *wgpu.PipelineLayout

	cameraUniform   CameraUniform
	cameraBuffer    *wgpu.Buffer
	cameraBindGroup *wgpu.BindGroup

	instanceBuffer *wgpu.Buffer

	draws      []drawCommand
	clearColor RGBA
}

// NewCanvas creates a canvas rendering into target. The camera's aspect
// ratio is set from the target dimensions and its uniform uploaded. The
// canvas creates and owns a matching depth buffer; the target itself
// stays owned by the caller.
func NewCanvas(ctx *Context, camera *Camera, target *Image, clearColor RGBA) *Canvas {
	c := &Canvas{
		ctx:        ctx,
		target:     target,
		clearColor: clearColor,
		sampler:    DefaultSampler(),
	}

	c.defaultShader = defaultShader(ctx)
	c.state = DrawState{Shader: c.defaultShader}
	c.originalState = c.state

	c.defaultImage = NewImageFromColor(ctx, 1, 1, White)
	c.depth = newDepthImage(ctx, target.width, target.height)

	c.textureLayout = newTextureBindGroupLayout(ctx)
	c.cameraLayout = newCameraBindGroupLayout(ctx)
	layout, err := ctx.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label: "gg3d pipeline layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{
			c.textureLayout,
			c.cameraLayout,
		},
	})
	if err != nil {
		panic(err)
	}
	c.pipelineLayout = layout

	camera.Projection.Resize(target.Width(), target.Height())
	c.cameraUniform = NewCameraUniform()
	c.cameraUniform.Update(camera)

	c.cameraBuffer, err = ctx.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "gg3d camera uniform buffer",
		Contents: wgpu.ToBytes([]CameraUniform{c.cameraUniform}),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		panic(err)
	}
	c.cameraBindGroup, err = ctx.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "gg3d camera bind group",
		Layout: c.cameraLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: c.cameraBuffer, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		panic(err)
	}

	// Seed the cache so it always holds the default pipeline at index 0.
	c.pipelines.resolve(c.state, c.buildPipeline)

	return c
}

// CanvasFromFrame creates a canvas rendering into the host's current
// frame, wrapped as an Image via WrapTextureView.
func CanvasFromFrame(ctx *Context, camera *Camera, frame *wgpu.TextureView, format wgpu.TextureFormat, width, height int, clearColor RGBA) *Canvas {
	return NewCanvas(ctx, camera, WrapTextureView(frame, format, width, height), clearColor)
}

// DrawMesh enqueues a mesh draw with the given parameters. The pipeline
// for the current shader state is resolved (building it on first use)
// and the mesh's bind group is created if absent. No error surfaces
// here; missing mesh buffers are reported by Finish.
func (c *Canvas) DrawMesh(mesh *Mesh, param DrawParam) {
	id := c.pipelines.resolve(c.state, c.buildPipeline)
	mesh.ensureBindGroup(c.ctx, c.textureLayout, c.defaultImage, c.sampler)
	c.draws = append(c.draws, drawCommand{mesh: mesh, param: param, pipelineID: id})
}

// Draw enqueues any Drawable.
func (c *Canvas) Draw(d Drawable, param DrawParam) {
	d.Draw(c, param)
}

// SetShader switches subsequent draws to a custom shader. Stages the
// shader lacks fall back to the default shader's.
func (c *Canvas) SetShader(s *Shader) {
	c.state.Shader = s
}

// SetDefaultShader restores the built-in shader for subsequent draws.
func (c *Canvas) SetDefaultShader() {
	c.state = c.originalState
}

// SetSampler switches the sampler used by subsequent draws. Bind groups
// of already-enqueued draws are unaffected.
func (c *Canvas) SetSampler(s Sampler) {
	c.sampler = s
}

// SetDefaultSampler restores linear clamp-to-edge sampling.
func (c *Canvas) SetDefaultSampler() {
	c.sampler = DefaultSampler()
}

// SetClearColor changes the color the next Finish clears to.
func (c *Canvas) SetClearColor(color RGBA) {
	c.clearColor = color
}

// UpdateCamera recomputes the view-projection uniform from the camera
// and uploads it in place. Call after moving the camera, before Finish.
func (c *Canvas) UpdateCamera(camera *Camera) {
	c.cameraUniform.Update(camera)
	c.ctx.queue.WriteBuffer(c.cameraBuffer, 0, wgpu.ToBytes([]CameraUniform{c.cameraUniform}))
}

// Resize updates the camera's aspect ratio for a new target size and
// re-uploads the uniform. The uniform bytes change only when the aspect
// ratio actually changed.
func (c *Canvas) Resize(width, height int, camera *Camera) {
	camera.Projection.Resize(width, height)
	c.UpdateCamera(camera)
}

// Finish submits all queued draws as one render pass and empties the
// queue. The pass clears color and depth, then encodes each draw in
// queue order with its cached pipeline and a DrawIndexed whose instance
// range selects the draw's record in the per-frame instance buffer.
//
// When a queued mesh lacks a GPU resource, encoding stops at that draw:
// the pass is closed, everything encoded so far is still submitted, and
// a resource-missing error is returned. The queue is empty afterwards
// either way.
func (c *Canvas) Finish() error {
	c.uploadInstances()

	draws := c.draws
	c.draws = nil

	encoder, err := c.ctx.device.CreateCommandEncoder(nil)
	if err != nil {
		panic(err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "gg3d render pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       c.target.view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: c.clearColor.wgpuColor(),
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            c.depth.view,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})

	var drawErr error
	for i, d := range draws {
		if drawErr = d.missingResource(); drawErr != nil {
			break
		}
		pass.SetPipeline(c.pipelines.at(d.pipelineID))
		pass.SetBindGroup(0, d.mesh.bindGroup, nil)
		pass.SetBindGroup(1, c.cameraBindGroup, nil)
		pass.SetVertexBuffer(0, d.mesh.vertexBuffer, 0, wgpu.WholeSize)
		pass.SetVertexBuffer(1, c.instanceBuffer, 0, wgpu.WholeSize)
		pass.SetIndexBuffer(d.mesh.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		pass.DrawIndexed(uint32(len(d.mesh.Indices)), 1, 0, 0, uint32(i))
	}
	pass.End()
	pass.Release()

	cmd, err := encoder.Finish(nil)
	if err != nil {
		panic(err)
	}
	c.ctx.queue.Submit(cmd)
	cmd.Release()

	return drawErr
}

// uploadInstances rebuilds the per-frame instance buffer with one record
// per queued draw, in queue order. The previous frame's buffer is
// released; with no draws queued the buffer stays nil (nothing binds it).
func (c *Canvas) uploadInstances() {
	if c.instanceBuffer != nil {
		c.instanceBuffer.Release()
		c.instanceBuffer = nil
	}

	records := instancesFor(c.draws)
	if len(records) == 0 {
		return
	}

	buf, err := c.ctx.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "gg3d instance buffer",
		Contents: wgpu.ToBytes(records),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		panic(err)
	}
	c.instanceBuffer = buf
	Logger().Debug("gg3d: instance buffer uploaded", "instances", len(records))
}

// PendingDraws reports the number of queued draws.
func (c *Canvas) PendingDraws() int { return len(c.draws) }

// PipelineCount reports the number of cached pipelines.
func (c *Canvas) PipelineCount() int { return c.pipelines.size() }

// Target returns the canvas's render target image.
func (c *Canvas) Target() *Image { return c.target }

// Release frees everything the canvas owns: cached pipelines, layouts,
// the camera buffer and bind group, the depth buffer, the default image,
// and the current instance buffer. The target is the caller's.
func (c *Canvas) Release() {
	c.pipelines.release()
	if c.instanceBuffer != nil {
		c.instanceBuffer.Release()
		c.instanceBuffer = nil
	}
	c.cameraBindGroup.Release()
	c.cameraBuffer.Release()
	c.pipelineLayout.Release()
	c.cameraLayout.Release()
	c.textureLayout.Release()
	c.depth.Release()
	c.defaultImage.Release()
}
