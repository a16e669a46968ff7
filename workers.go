// workers.go

// Copyright (C) 2018  Steve Merrony

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package tello

import (
	"context"
	"sync"

	"go.viam.com/utils"
)

// workers is a group of long-lived goroutines that share one cancellation context.
// It follows the StoppableWorkers group in go.viam.com/rdk/utils.
type workers struct {
	mu         sync.Mutex
	cancelCtx  context.Context
	cancelFunc func()
	active     sync.WaitGroup
}

func newWorkers(ctx context.Context) *workers {
	cancelCtx, cancelFunc := context.WithCancel(ctx)
	return &workers{cancelCtx: cancelCtx, cancelFunc: cancelFunc}
}

// add starts each func in its own goroutine. Nothing is started once stop has been called.
func (w *workers) add(funcs ...func(context.Context)) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancelCtx.Err() != nil {
		return
	}
	w.active.Add(len(funcs))
	for _, f := range funcs {
		f := f
		utils.PanicCapturingGo(func() {
			defer w.active.Done()
			f(w.cancelCtx)
		})
	}
}

// cancel signals every worker to finish without waiting for them.
func (w *workers) cancel() {
	w.cancelFunc()
}

// wait blocks until every worker has returned.
func (w *workers) wait() {
	w.active.Wait()
}

func (w *workers) done() <-chan struct{} {
	return w.cancelCtx.Done()
}
