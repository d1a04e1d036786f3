package imageturbo

import (
	"context"
	"fmt"

	"github.com/ironsheep/image-turbo/internal/taskpool"
)

// Async runs the package's operations on a bounded worker pool. Each
// method offloads the identical synchronous function and blocks the
// caller until it completes; results and errors are exactly those of
// the synchronous form.
//
// The context gates only pool admission: once a task is dispatched it
// runs to completion, and a canceled context cannot stop it. Callers
// needing timeouts after dispatch abandon the pending result instead.
// Ordering between concurrent calls is unspecified.
type Async struct {
	pool *taskpool.Pool
}

// NewAsync creates an Async surface backed by a pool of the given
// size. Non-positive sizes fall back to a single worker.
func NewAsync(workers int) *Async {
	return &Async{pool: taskpool.New(workers)}
}

// Close rejects all future submissions. Tasks already running finish
// normally.
func (a *Async) Close() {
	a.pool.Close()
}

// offload runs fn on the pool and hands its result back. Admission
// failures (closed pool, canceled context) surface as ErrTask.
func offload[T any](ctx context.Context, pool *taskpool.Pool, fn func() (T, error)) (T, error) {
	var res T
	var err error
	if perr := pool.Do(ctx, func() { res, err = fn() }); perr != nil {
		var zero T
		return zero, fmt.Errorf("%w: %v", ErrTask, perr)
	}
	return res, err
}

func (a *Async) ReadMetadata(ctx context.Context, data []byte) (Metadata, error) {
	return offload(ctx, a.pool, func() (Metadata, error) { return ReadMetadata(data) })
}

func (a *Async) Resize(ctx context.Context, data []byte, opts ResizeOptions) ([]byte, error) {
	return offload(ctx, a.pool, func() ([]byte, error) { return Resize(data, opts) })
}

func (a *Async) Crop(ctx context.Context, data []byte, rect CropRect) ([]byte, error) {
	return offload(ctx, a.pool, func() ([]byte, error) { return Crop(data, rect) })
}

func (a *Async) ToJPEG(ctx context.Context, data []byte, opts JPEGOptions) ([]byte, error) {
	return offload(ctx, a.pool, func() ([]byte, error) { return ToJPEG(data, opts) })
}

func (a *Async) ToPNG(ctx context.Context, data []byte, opts PNGOptions) ([]byte, error) {
	return offload(ctx, a.pool, func() ([]byte, error) { return ToPNG(data, opts) })
}

func (a *Async) ToWebP(ctx context.Context, data []byte, opts WebPOptions) ([]byte, error) {
	return offload(ctx, a.pool, func() ([]byte, error) { return ToWebP(data, opts) })
}

func (a *Async) Thumbnail(ctx context.Context, data []byte, opts ThumbnailOptions) (ThumbnailResult, error) {
	return offload(ctx, a.pool, func() (ThumbnailResult, error) { return Thumbnail(data, opts) })
}

func (a *Async) ThumbnailBuffer(ctx context.Context, data []byte, opts ThumbnailOptions) ([]byte, error) {
	return offload(ctx, a.pool, func() ([]byte, error) { return ThumbnailBuffer(data, opts) })
}

func (a *Async) SmartCropAnalyze(ctx context.Context, data []byte, opts SmartCropOptions) (SmartCropResult, error) {
	return offload(ctx, a.pool, func() (SmartCropResult, error) { return SmartCropAnalyze(data, opts) })
}

func (a *Async) SmartCrop(ctx context.Context, data []byte, opts SmartCropOptions) ([]byte, error) {
	return offload(ctx, a.pool, func() ([]byte, error) { return SmartCrop(data, opts) })
}

func (a *Async) DominantColors(ctx context.Context, data []byte, count int) (DominantColorsResult, error) {
	return offload(ctx, a.pool, func() (DominantColorsResult, error) { return DominantColors(data, count) })
}

func (a *Async) ImageHash(ctx context.Context, data []byte, opts HashOptions) (HashResult, error) {
	return offload(ctx, a.pool, func() (HashResult, error) { return ImageHash(data, opts) })
}

func (a *Async) ImageHashDistance(ctx context.Context, hashA, hashB string) (int, error) {
	return offload(ctx, a.pool, func() (int, error) { return ImageHashDistance(hashA, hashB) })
}

func (a *Async) Blurhash(ctx context.Context, data []byte, opts BlurhashOptions) (BlurhashResult, error) {
	return offload(ctx, a.pool, func() (BlurhashResult, error) { return Blurhash(data, opts) })
}

func (a *Async) Thumbhash(ctx context.Context, data []byte) (ThumbhashResult, error) {
	return offload(ctx, a.pool, func() (ThumbhashResult, error) { return Thumbhash(data) })
}

func (a *Async) ThumbhashToRGBA(ctx context.Context, hash string) (ThumbhashImage, error) {
	return offload(ctx, a.pool, func() (ThumbhashImage, error) { return ThumbhashToRGBA(hash) })
}

func (a *Async) ToTensor(ctx context.Context, data []byte, opts TensorOptions) (TensorResult, error) {
	return offload(ctx, a.pool, func() (TensorResult, error) { return ToTensor(data, opts) })
}

func (a *Async) WriteExif(ctx context.Context, data []byte, fields ExifFields) ([]byte, error) {
	return offload(ctx, a.pool, func() ([]byte, error) { return WriteExif(data, fields) })
}

func (a *Async) StripExif(ctx context.Context, data []byte) ([]byte, error) {
	return offload(ctx, a.pool, func() ([]byte, error) { return StripExif(data) })
}
