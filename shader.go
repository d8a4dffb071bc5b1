package gg3d

import (
	_ "embed"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gogpu/naga"
)

//go:embed shaders/draw3d.wgsl
var draw3dWGSL string

// Shader holds compiled shader modules for drawing. Either stage may be
// absent; the canvas substitutes the matching stage of its default shader
// when building pipelines.
type Shader struct {
	vs *wgpu.ShaderModule
	fs *wgpu.ShaderModule
}

// VertexModule returns the vertex-stage module, or nil when absent.
func (s *Shader) VertexModule() *wgpu.ShaderModule { return s.vs }

// FragmentModule returns the fragment-stage module, or nil when absent.
func (s *Shader) FragmentModule() *wgpu.ShaderModule { return s.fs }

// NewShader compiles WGSL source containing both vs_main and fs_main
// entry points. The source is validated through naga before module
// creation, so later pipeline creation against this shader is expected
// to succeed.
func NewShader(ctx *Context, source string) (*Shader, error) {
	mod, err := compileModule(ctx, "gg3d shader", source)
	if err != nil {
		return nil, err
	}
	return &Shader{vs: mod, fs: mod}, nil
}

// NewVertexShader compiles WGSL source providing only a vs_main entry
// point. Pipelines built with it use the default fragment stage.
func NewVertexShader(ctx *Context, source string) (*Shader, error) {
	mod, err := compileModule(ctx, "gg3d vertex shader", source)
	if err != nil {
		return nil, err
	}
	return &Shader{vs: mod}, nil
}

// NewFragmentShader compiles WGSL source providing only an fs_main entry
// point. Pipelines built with it use the default vertex stage.
func NewFragmentShader(ctx *Context, source string) (*Shader, error) {
	mod, err := compileModule(ctx, "gg3d fragment shader", source)
	if err != nil {
		return nil, err
	}
	return &Shader{fs: mod}, nil
}

// compileModule validates the WGSL with naga, then creates the module.
// Validating up front turns shader bugs into errors here instead of
// pipeline-creation failures later (which are treated as fatal).
func compileModule(ctx *Context, label, source string) (*wgpu.ShaderModule, error) {
	if _, err := naga.Compile(source); err != nil {
		return nil, fmt.Errorf("gg3d: shader validation: %w", err)
	}
	mod, err := ctx.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: source},
	})
	if err != nil {
		return nil, fmt.Errorf("gg3d: create shader module: %w", err)
	}
	return mod, nil
}

// defaultShader compiles the embedded draw3d.wgsl. The embedded source is
// fixed and known-valid, so a failure here is a programming error.
func defaultShader(ctx *Context) *Shader {
	s, err := NewShader(ctx, draw3dWGSL)
	if err != nil {
		panic(fmt.Sprintf("gg3d: embedded draw3d.wgsl failed to compile: %v", err))
	}
	return s
}
