package renderer

import (
	"context"
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/massymassy/gosea/animation"
	"github.com/massymassy/gosea/encoder"
	"go.uber.org/zap"
)

// OffscreenRenderer is an RGBA8 color target with a depth buffer, used when
// recording.
type OffscreenRenderer struct {
	fbo               uint32
	textureID         uint32
	depthRenderbuffer uint32
	width             int
	height            int
}

const numBuffers = 3

func NewOffscreenRenderer(width, height int) (*OffscreenRenderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid offscreen size %dx%d", width, height)
	}
	or := &OffscreenRenderer{width: width, height: height}

	gl.GenFramebuffers(1, &or.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, or.fbo)
	gl.GenTextures(1, &or.textureID)
	gl.BindTexture(gl.TEXTURE_2D, or.textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, or.textureID, 0)
	gl.GenRenderbuffers(1, &or.depthRenderbuffer)
	gl.BindRenderbuffer(gl.RENDERBUFFER, or.depthRenderbuffer)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(width), int32(height))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, or.depthRenderbuffer)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		or.Destroy()
		return nil, fmt.Errorf("offscreen fbo is not complete: 0x%x", status)
	}
	return or, nil
}

func (or *OffscreenRenderer) Destroy() {
	gl.DeleteFramebuffers(1, &or.fbo)
	gl.DeleteTextures(1, &or.textureID)
	gl.DeleteRenderbuffers(1, &or.depthRenderbuffer)
}

// readPixels returns the color target bottom row first, 4 bytes per pixel.
func (or *OffscreenRenderer) readPixels() []byte {
	buf := make([]byte, or.width*or.height*4)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, or.fbo)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(or.width), int32(or.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&buf[0]))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	return buf
}

// RunOffscreen renders duration*fps frames at a fixed time step and streams them
// to enc. The first frame is at t=0.
func (r *Renderer) RunOffscreen(ctx context.Context, scene *Scene, driver *animation.Driver, enc *encoder.FFmpegEncoder) error {
	if r.offscreen == nil {
		return fmt.Errorf("renderer was not created in record mode")
	}

	totalFrames := enc.TotalFrames()
	timeStep := 1.0 / float64(enc.FPS())
	zap.S().Infof("Recording %d frames at %dx%d", totalFrames, r.width, r.height)

	frameChan := make(chan *encoder.Frame, numBuffers)
	encoderDoneChan := enc.Start(frameChan)

	for i := 0; i < totalFrames; i++ {
		dt := timeStep
		if i == 0 {
			dt = 0
		}
		frame, err := driver.Tick(dt)
		if err != nil {
			close(frameChan)
			return err
		}
		if err := r.RenderFrame(scene, frame); err != nil {
			close(frameChan)
			return err
		}
		pixels := r.offscreen.readPixels()

		select {
		case frameChan <- &encoder.Frame{Pixels: pixels, PTS: int64(i)}:
		case err := <-encoderDoneChan:
			close(frameChan)
			if err == nil {
				err = fmt.Errorf("encoder exited after %d of %d frames", i, totalFrames)
			}
			return err
		case <-ctx.Done():
			close(frameChan)
			<-encoderDoneChan
			return ctx.Err()
		}
		if (i+1)%enc.FPS() == 0 {
			zap.S().Debugf("Rendered %d/%d frames", i+1, totalFrames)
		}
	}

	close(frameChan)
	if err := <-encoderDoneChan; err != nil {
		return err
	}
	zap.S().Infof("Recorded %.2fs of animation", driver.Elapsed())
	return nil
}
