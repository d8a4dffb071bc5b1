package gg3d

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// newTestContext acquires a headless GPU context, skipping the test on
// machines without a usable adapter (CI runners in particular).
func newTestContext(t *testing.T) *Context {
	t.Helper()
	ctx, err := NewHeadlessContext()
	if err != nil {
		t.Skipf("no GPU available: %v", err)
	}
	t.Cleanup(ctx.Release)
	return ctx
}

func newTestCanvas(t *testing.T, ctx *Context) (*Canvas, *Camera) {
	t.Helper()
	camera := NewCamera(mgl32.Vec3{0, 2, 5})
	target := NewCanvasImage(ctx, 64, 64)
	t.Cleanup(target.Release)
	canvas := NewCanvas(ctx, camera, target, Black)
	t.Cleanup(canvas.Release)
	return canvas, camera
}

func TestCanvas_FinishDrainsQueue(t *testing.T) {
	ctx := newTestContext(t)
	canvas, _ := newTestCanvas(t, ctx)

	mesh := NewCubeMesh(1)
	mesh.GenerateGPUResources(ctx)
	t.Cleanup(mesh.Release)

	for i := 0; i < 3; i++ {
		canvas.DrawMesh(mesh, NewDrawParam().WithPosition(mgl32.Vec3{float32(i), 0, 0}))
	}
	if got := canvas.PendingDraws(); got != 3 {
		t.Fatalf("PendingDraws = %d before finish, want 3", got)
	}

	if err := canvas.Finish(); err != nil {
		t.Fatalf("Finish() = %v", err)
	}
	if got := canvas.PendingDraws(); got != 0 {
		t.Errorf("PendingDraws = %d after finish, want 0", got)
	}
	// Three draws with one shader share one pipeline.
	if got := canvas.PipelineCount(); got != 1 {
		t.Errorf("PipelineCount = %d, want 1", got)
	}
	if canvas.instanceBuffer == nil {
		t.Error("no instance buffer uploaded for a non-empty frame")
	}
}

func TestCanvas_EmptyFinish(t *testing.T) {
	ctx := newTestContext(t)
	canvas, _ := newTestCanvas(t, ctx)

	if err := canvas.Finish(); err != nil {
		t.Fatalf("Finish() on empty queue = %v", err)
	}
	if canvas.instanceBuffer != nil {
		t.Error("instance buffer created for an empty frame")
	}
}

func TestCanvas_MissingIndexBufferError(t *testing.T) {
	ctx := newTestContext(t)
	canvas, _ := newTestCanvas(t, ctx)

	good := NewCubeMesh(1)
	good.GenerateGPUResources(ctx)
	t.Cleanup(good.Release)

	bad := NewCubeMesh(1)
	bad.GenerateGPUResources(ctx)
	t.Cleanup(bad.Release)
	bad.indexBuffer.Release()
	bad.indexBuffer = nil

	canvas.DrawMesh(good, NewDrawParam())
	canvas.DrawMesh(bad, NewDrawParam())
	canvas.DrawMesh(good, NewDrawParam())

	err := canvas.Finish()
	if !errors.Is(err, ErrNoIndexBuffer) {
		t.Fatalf("Finish() = %v, want ErrNoIndexBuffer", err)
	}
	// The queue must be empty even on the error path.
	if got := canvas.PendingDraws(); got != 0 {
		t.Errorf("PendingDraws = %d after failed finish, want 0", got)
	}
	// The next frame with valid meshes succeeds.
	canvas.DrawMesh(good, NewDrawParam())
	if err := canvas.Finish(); err != nil {
		t.Errorf("Finish() after recovery = %v", err)
	}
}

func TestCanvas_NeverUploadedMeshError(t *testing.T) {
	ctx := newTestContext(t)
	canvas, _ := newTestCanvas(t, ctx)

	mesh := NewCubeMesh(1)
	t.Cleanup(mesh.Release)
	canvas.DrawMesh(mesh, NewDrawParam())

	err := canvas.Finish()
	if !errors.Is(err, ErrNoVertexBuffer) {
		t.Fatalf("Finish() = %v, want ErrNoVertexBuffer", err)
	}
}

func TestCanvas_ShaderStateKeysPipelines(t *testing.T) {
	ctx := newTestContext(t)
	canvas, _ := newTestCanvas(t, ctx)

	custom, err := NewShader(ctx, draw3dWGSL)
	if err != nil {
		t.Fatalf("NewShader: %v", err)
	}

	mesh := NewCubeMesh(1)
	mesh.GenerateGPUResources(ctx)
	t.Cleanup(mesh.Release)

	canvas.DrawMesh(mesh, NewDrawParam())
	canvas.SetShader(custom)
	canvas.DrawMesh(mesh, NewDrawParam())
	canvas.SetDefaultShader()
	canvas.DrawMesh(mesh, NewDrawParam())
	canvas.SetShader(custom)
	canvas.DrawMesh(mesh, NewDrawParam())

	if err := canvas.Finish(); err != nil {
		t.Fatalf("Finish() = %v", err)
	}
	// Two distinct shaders, two pipelines, draws notwithstanding.
	if got := canvas.PipelineCount(); got != 2 {
		t.Errorf("PipelineCount = %d, want 2", got)
	}
}

func TestCanvas_VertexOnlyShaderFallsBack(t *testing.T) {
	ctx := newTestContext(t)
	canvas, _ := newTestCanvas(t, ctx)

	vsOnly, err := NewVertexShader(ctx, draw3dWGSL)
	if err != nil {
		t.Fatalf("NewVertexShader: %v", err)
	}
	if vsOnly.FragmentModule() != nil {
		t.Fatal("vertex-only shader has a fragment module")
	}

	mesh := NewCubeMesh(1)
	mesh.GenerateGPUResources(ctx)
	t.Cleanup(mesh.Release)

	canvas.SetShader(vsOnly)
	canvas.DrawMesh(mesh, NewDrawParam())
	if err := canvas.Finish(); err != nil {
		t.Fatalf("Finish() with vertex-only shader = %v", err)
	}
}

func TestCanvas_CameraUpdateAndResize(t *testing.T) {
	ctx := newTestContext(t)
	canvas, camera := newTestCanvas(t, ctx)

	before := canvas.cameraUniform
	camera.Position = mgl32.Vec3{4, 4, 4}
	canvas.UpdateCamera(camera)
	if canvas.cameraUniform == before {
		t.Error("uniform unchanged after camera move")
	}

	// 64x64 and 128x128 share an aspect ratio of 1, so the resize must
	// leave the uniform bytes unchanged.
	moved := canvas.cameraUniform
	canvas.Resize(128, 128, camera)
	if canvas.cameraUniform != moved {
		t.Error("uniform changed across a same-aspect resize")
	}

	canvas.Resize(128, 64, camera)
	if canvas.cameraUniform == moved {
		t.Error("uniform unchanged although the aspect ratio changed")
	}
}

func TestContext_SamplerCache(t *testing.T) {
	ctx := newTestContext(t)

	a, err := ctx.sampler(DefaultSampler())
	if err != nil {
		t.Fatalf("sampler: %v", err)
	}
	b, err := ctx.sampler(DefaultSampler())
	if err != nil {
		t.Fatalf("sampler: %v", err)
	}
	if a != b {
		t.Error("identical descriptions produced distinct samplers")
	}

	c, err := ctx.sampler(NearestSampler())
	if err != nil {
		t.Fatalf("sampler: %v", err)
	}
	if c == a {
		t.Error("distinct descriptions shared a sampler")
	}
}

func TestNewImageFromImage(t *testing.T) {
	ctx := newTestContext(t)

	src := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			src.Set(x, y, color.NRGBA{R: uint8(x * 32), G: uint8(y * 64), A: 255})
		}
	}

	img := NewImageFromImage(ctx, src)
	t.Cleanup(img.Release)
	if img.Width() != 8 || img.Height() != 4 {
		t.Errorf("size = %dx%d, want 8x4", img.Width(), img.Height())
	}
	if img.View() == nil {
		t.Error("image has no view")
	}
}

func TestMesh_DrawableDispatch(t *testing.T) {
	ctx := newTestContext(t)
	canvas, _ := newTestCanvas(t, ctx)

	mesh := NewCubeMesh(1)
	mesh.GenerateGPUResources(ctx)
	t.Cleanup(mesh.Release)

	canvas.Draw(mesh, NewDrawParam())
	if got := canvas.PendingDraws(); got != 1 {
		t.Fatalf("PendingDraws = %d after Draw, want 1", got)
	}
	if err := canvas.Finish(); err != nil {
		t.Fatalf("Finish() = %v", err)
	}
}
