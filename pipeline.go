package gg3d

import "github.com/cogentcore/webgpu/wgpu"

// DrawState is the shader-affecting canvas state a pipeline is built
// for. Equality is shader identity: two states match only when they
// reference the same Shader object.
type DrawState struct {
	Shader *Shader
}

// pipelineEntry pairs a built pipeline with the state it was built for.
type pipelineEntry struct {
	pipeline *wgpu.RenderPipeline
	state    DrawState
}

// pipelineCache is an ordered, append-only pipeline list. Draw commands
// reference pipelines by index, so entries are never removed or
// reordered within a frame sequence.
type pipelineCache struct {
	entries []pipelineEntry
}

// resolve returns the index of the first cached pipeline whose state
// matches, building and appending a new one when none does. The cache
// therefore grows by at most one entry per draw.
func (pc *pipelineCache) resolve(state DrawState, build func(DrawState) *wgpu.RenderPipeline) int {
	for i, e := range pc.entries {
		if e.state == state {
			return i
		}
	}
	pc.entries = append(pc.entries, pipelineEntry{pipeline: build(state), state: state})
	Logger().Debug("gg3d: pipeline cache grew", "size", len(pc.entries))
	return len(pc.entries) - 1
}

func (pc *pipelineCache) size() int { return len(pc.entries) }

func (pc *pipelineCache) at(i int) *wgpu.RenderPipeline { return pc.entries[i].pipeline }

func (pc *pipelineCache) release() {
	for _, e := range pc.entries {
		e.pipeline.Release()
	}
	pc.entries = nil
}

// newTextureBindGroupLayout builds the group-0 layout: sampled texture
// at binding 0, sampler at binding 1, both fragment-visible.
func newTextureBindGroupLayout(ctx *Context) *wgpu.BindGroupLayout {
	layout, err := ctx.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "gg3d texture bind group layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if err != nil {
		panic(err)
	}
	return layout
}

// newCameraBindGroupLayout builds the group-1 layout: one vertex-visible
// uniform buffer at binding 0.
func newCameraBindGroupLayout(ctx *Context) *wgpu.BindGroupLayout {
	layout, err := ctx.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "gg3d camera bind group layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type: wgpu.BufferBindingTypeUniform,
				},
			},
		},
	})
	if err != nil {
		panic(err)
	}
	return layout
}

// buildPipeline creates the render pipeline for a draw state. Raster
// state is fixed: triangle list, CCW front faces, back-face culling,
// depth test Less against Depth32Float, single color target in the
// canvas target's format with standard alpha blending. Shader stages
// come from the state's shader, falling back per stage to the default.
// The shader sources were validated at build time, so creation failure
// here is a fatal device error.
func (c *Canvas) buildPipeline(state DrawState) *wgpu.RenderPipeline {
	pipeline, err := c.ctx.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "gg3d draw pipeline",
		Layout: c.pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     c.vertexModule(state),
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				vertexBufferLayout(),
				instanceBufferLayout(),
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     c.fragmentModule(state),
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format: c.target.format,
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							SrcFactor: wgpu.BlendFactorSrcAlpha,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
							Operation: wgpu.BlendOperationAdd,
						},
						Alpha: wgpu.BlendComponent{
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
							Operation: wgpu.BlendOperationAdd,
						},
					},
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth32Float,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		panic(err)
	}
	return pipeline
}

// vertexModule picks the vertex stage for a state, falling back to the
// default shader's when the state's shader lacks one.
func (c *Canvas) vertexModule(state DrawState) *wgpu.ShaderModule {
	if state.Shader != nil && state.Shader.vs != nil {
		return state.Shader.vs
	}
	return c.defaultShader.vs
}

// fragmentModule picks the fragment stage for a state, falling back to
// the default shader's when the state's shader lacks one.
func (c *Canvas) fragmentModule(state DrawState) *wgpu.ShaderModule {
	if state.Shader != nil && state.Shader.fs != nil {
		return state.Shader.fs
	}
	return c.defaultShader.fs
}
