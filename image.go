package gg3d

import (
	"image"

	"github.com/cogentcore/webgpu/wgpu"
	xdraw "golang.org/x/image/draw"
)

// Image is a texture-backed image usable as a sampled mesh texture or as
// a canvas render target. Images created through the New* constructors
// own their texture; images wrapping an external view (a swapchain frame)
// do not.
type Image struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
	format  wgpu.TextureFormat
	width   uint32
	height  uint32
}

// NewCanvasImage creates an image usable both as a render target and as
// a sampled texture, in the context's surface format.
func NewCanvasImage(ctx *Context, width, height int) *Image {
	return newTexture(ctx, "gg3d canvas image", uint32(width), uint32(height), ctx.format,
		wgpu.TextureUsageRenderAttachment|wgpu.TextureUsageTextureBinding)
}

// NewImageFromColor creates a solid-color sampled texture. The canvas
// uses a 1x1 white one for meshes that have no texture.
func NewImageFromColor(ctx *Context, width, height int, c RGBA) *Image {
	img := newTexture(ctx, "gg3d color image", uint32(width), uint32(height), wgpu.TextureFormatRGBA8UnormSrgb,
		wgpu.TextureUsageTextureBinding|wgpu.TextureUsageCopyDst)

	pixels := make([]byte, width*height*4)
	for i := 0; i < len(pixels); i += 4 {
		pixels[i+0] = byte(clamp255(c.R * 255))
		pixels[i+1] = byte(clamp255(c.G * 255))
		pixels[i+2] = byte(clamp255(c.B * 255))
		pixels[i+3] = byte(clamp255(c.A * 255))
	}
	img.upload(ctx, pixels)
	return img
}

// NewImageFromImage uploads a standard image.Image as a sampled texture.
// Non-RGBA sources are converted first.
func NewImageFromImage(ctx *Context, src image.Image) *Image {
	bounds := src.Bounds()
	rgba, ok := src.(*image.RGBA)
	if !ok || bounds.Min != (image.Point{}) {
		converted := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		xdraw.Draw(converted, converted.Bounds(), src, bounds.Min, xdraw.Src)
		rgba = converted
	}

	img := newTexture(ctx, "gg3d image", uint32(bounds.Dx()), uint32(bounds.Dy()), wgpu.TextureFormatRGBA8UnormSrgb,
		wgpu.TextureUsageTextureBinding|wgpu.TextureUsageCopyDst)
	img.upload(ctx, rgba.Pix)
	return img
}

// WrapTextureView wraps an externally owned texture view (typically the
// host's current swapchain frame) as a render target. Release is a no-op
// for wrapped images; the view stays owned by the host.
func WrapTextureView(view *wgpu.TextureView, format wgpu.TextureFormat, width, height int) *Image {
	return &Image{
		view:   view,
		format: format,
		width:  uint32(width),
		height: uint32(height),
	}
}

// newDepthImage creates the canvas-owned depth attachment.
func newDepthImage(ctx *Context, width, height uint32) *Image {
	return newTexture(ctx, "gg3d depth image", width, height, wgpu.TextureFormatDepth32Float,
		wgpu.TextureUsageRenderAttachment)
}

// newTexture creates a 2D texture and its default view.
// Creation failure means the device is lost or out of memory, which the
// error model treats as fatal.
func newTexture(ctx *Context, label string, width, height uint32, format wgpu.TextureFormat, usage wgpu.TextureUsage) *Image {
	tex, err := ctx.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		panic(err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		panic(err)
	}
	return &Image{
		texture: tex,
		view:    view,
		format:  format,
		width:   width,
		height:  height,
	}
}

// upload writes tightly packed RGBA8 pixel data into the texture.
func (img *Image) upload(ctx *Context, pixels []byte) {
	ctx.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  img.texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  img.width * 4,
			RowsPerImage: img.height,
		},
		&wgpu.Extent3D{
			Width:              img.width,
			Height:             img.height,
			DepthOrArrayLayers: 1,
		},
	)
}

// Width returns the image width in pixels.
func (img *Image) Width() int { return int(img.width) }

// Height returns the image height in pixels.
func (img *Image) Height() int { return int(img.height) }

// Format returns the texture format.
func (img *Image) Format() wgpu.TextureFormat { return img.format }

// View returns the image's texture view.
func (img *Image) View() *wgpu.TextureView { return img.view }

// Release frees the texture and view for images that own them.
func (img *Image) Release() {
	if img.texture == nil {
		return
	}
	img.view.Release()
	img.texture.Release()
	img.view = nil
	img.texture = nil
}
