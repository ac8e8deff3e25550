package packager

import (
	"context"

	"github.com/arthur-debert/subpack/pkg/assets"
	"github.com/arthur-debert/subpack/pkg/errors"
)

// Callback receives the outcome of an asynchronous run. Exactly one method
// is called per run.
type Callback interface {
	OnPackagingSucceeded(outputPath string)
	OnPackagingFailed(err error)
}

// CallbackFuncs adapts plain functions to Callback. Nil fields are ignored.
type CallbackFuncs struct {
	Succeeded func(outputPath string)
	Failed    func(err error)
}

func (c CallbackFuncs) OnPackagingSucceeded(outputPath string) {
	if c.Succeeded != nil {
		c.Succeeded(outputPath)
	}
}

func (c CallbackFuncs) OnPackagingFailed(err error) {
	if c.Failed != nil {
		c.Failed(err)
	}
}

// Deliver reports the outcome of a synchronous run to cb.
func Deliver(cb Callback, res *Result, err error) {
	if cb == nil {
		return
	}
	switch {
	case err != nil:
		cb.OnPackagingFailed(err)
	case res == nil:
		cb.OnPackagingFailed(errors.New(errors.ErrPipelineFault, "packaging produced no result"))
	default:
		cb.OnPackagingSucceeded(res.OutputPath)
	}
}

// DoWorkAsync runs DoWork in a goroutine and delivers the outcome to cb.
// The returned channel is closed after cb has been called.
func (p *Packager) DoWorkAsync(ctx context.Context, cb Callback) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		res, err := p.DoWork(ctx)
		Deliver(cb, res, err)
	}()
	return done
}

// ProcessPackageRequestAsync runs ProcessPackageRequest in a goroutine and
// delivers the outcome to cb. The returned channel is closed after cb has
// been called.
func (p *Packager) ProcessPackageRequestAsync(ctx context.Context, req *assets.PackageRequest, cb Callback) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		res, err := p.ProcessPackageRequest(ctx, req)
		Deliver(cb, res, err)
	}()
	return done
}
