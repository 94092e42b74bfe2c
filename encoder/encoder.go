// Package encoder streams raw RGBA frames into an ffmpeg process.
package encoder

import (
	"errors"
	"fmt"
	"io"
	"math"
	"runtime"
	"strings"

	"github.com/massymassy/gosea/options"
	ffmpeg "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"
)

// Frame is one rendered frame, bottom row first, 4 bytes per pixel.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// FFmpegEncoder pipes frames to ffmpeg's stdin as rawvideo.
type FFmpegEncoder struct {
	width      int
	height     int
	fps        int
	duration   float64
	output     string
	codec      string
	ffmpegPath string
}

func NewFFmpegEncoder(opts *options.SeaOptions) (*FFmpegEncoder, error) {
	opts.Fill()
	e := &FFmpegEncoder{
		width:      *opts.Width,
		height:     *opts.Height,
		fps:        *opts.FPS,
		duration:   *opts.Duration,
		output:     *opts.OutputFile,
		codec:      *opts.Codec,
		ffmpegPath: *opts.FFMPEGPath,
	}
	switch {
	case e.width <= 0 || e.height <= 0:
		return nil, fmt.Errorf("invalid output size %dx%d", e.width, e.height)
	case e.fps <= 0:
		return nil, fmt.Errorf("invalid frame rate %d", e.fps)
	case e.duration <= 0 || math.IsNaN(e.duration) || math.IsInf(e.duration, 0):
		return nil, fmt.Errorf("invalid duration %v", e.duration)
	case e.output == "":
		return nil, errors.New("no output file")
	}
	if e.codec != "h264" && e.codec != "hevc" {
		return nil, fmt.Errorf("unsupported codec %q (want h264 or hevc)", e.codec)
	}
	return e, nil
}

func (e *FFmpegEncoder) FPS() int { return e.fps }

// TotalFrames is the number of frames covering the configured duration.
func (e *FFmpegEncoder) TotalFrames() int {
	return int(math.Round(e.duration * float64(e.fps)))
}

func (e *FFmpegEncoder) frameSize() int {
	return e.width * e.height * 4
}

func (e *FFmpegEncoder) InputArgs() ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"f":       "rawvideo",
		"pix_fmt": "rgba",
		"s":       fmt.Sprintf("%dx%d", e.width, e.height),
		"r":       e.fps,
	}
}

// OutputArgs picks the encoder for goos. Frames arrive bottom-up so they are
// flipped on the way in.
func (e *FFmpegEncoder) OutputArgs(goos string) ffmpeg.KwArgs {
	outputArgs := ffmpeg.KwArgs{
		"vf":      "vflip",
		"pix_fmt": "yuv420p",
		"c:v":     VideoCodec(e.codec, goos),
		"b:v":     "25M",
	}
	if e.codec == "hevc" && strings.HasSuffix(e.output, ".mp4") {
		outputArgs["tag:v"] = "hvc1"
	}
	return outputArgs
}

// VideoCodec maps a codec family to the ffmpeg encoder name used on goos.
func VideoCodec(codec, goos string) string {
	hevc := codec == "hevc"
	switch goos {
	case "darwin":
		if hevc {
			return "hevc_videotoolbox"
		}
		return "h264_videotoolbox"
	default:
		if hevc {
			return "libx265"
		}
		return "libx264"
	}
}

// Start launches ffmpeg and a writer goroutine consuming frames. The returned
// channel yields exactly one value once ffmpeg has exited, or earlier if writing
// to it failed. The caller must close frames when done.
func (e *FFmpegEncoder) Start(frames <-chan *Frame) <-chan error {
	done := make(chan error, 1)

	pipeReader, pipeWriter := io.Pipe()
	ffmpegCmd := ffmpeg.Input("pipe:", e.InputArgs()).
		Output(e.output, e.OutputArgs(runtime.GOOS)).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()
	if e.ffmpegPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(e.ffmpegPath)
	}
	zap.S().Infof("Encoding to %s with %s", e.output, VideoCodec(e.codec, runtime.GOOS))

	errc := make(chan error, 1)
	go func() {
		err := ffmpegCmd.Run()
		// unblock a writer stuck on a dead process
		pipeReader.CloseWithError(io.ErrClosedPipe)
		errc <- err
	}()

	go func() {
		if err := e.writeFrames(pipeWriter, frames); err != nil {
			pipeWriter.CloseWithError(err)
			if runErr := <-errc; runErr != nil {
				err = fmt.Errorf("ffmpeg failed: %w", runErr)
			}
			done <- err
			for range frames {
			}
			return
		}
		pipeWriter.Close()
		if err := <-errc; err != nil {
			done <- fmt.Errorf("ffmpeg failed: %w", err)
			return
		}
		done <- nil
	}()
	return done
}

func (e *FFmpegEncoder) writeFrames(w io.Writer, frames <-chan *Frame) error {
	size := e.frameSize()
	for frame := range frames {
		if len(frame.Pixels) != size {
			return fmt.Errorf("frame %d has %d bytes, want %d", frame.PTS, len(frame.Pixels), size)
		}
		if _, err := w.Write(frame.Pixels); err != nil {
			return fmt.Errorf("failed to write frame %d: %w", frame.PTS, err)
		}
	}
	return nil
}
