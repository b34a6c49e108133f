package core

// FrameContext describes the frame a callback runs in.
type FrameContext struct {
	// Monotonic frame number, starting at 1.
	Frame uint64
	// Seconds since the previous frame.
	Delta float64
	// Seconds since the scheduler ran its first frame.
	Elapsed float64
}

type FrameCallback func(frame FrameContext)

// FrameHandle identifies a pending frame request. The zero handle is never issued.
type FrameHandle uint64

// FrameScheduler runs one-shot callbacks on the next frame. A callback that
// wants to run every frame requests itself again; the latest handle must be
// kept so the loop can be cancelled.
type FrameScheduler struct {
	nextHandle FrameHandle
	pending    map[FrameHandle]FrameCallback
	order      []FrameHandle
	running    map[FrameHandle]FrameCallback
	frame      uint64
	elapsed    float64
}

func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{
		pending: make(map[FrameHandle]FrameCallback),
	}
}

// Request schedules cb for the next RunFrame.
func (fs *FrameScheduler) Request(cb FrameCallback) FrameHandle {
	fs.nextHandle++
	h := fs.nextHandle
	fs.pending[h] = cb
	fs.order = append(fs.order, h)
	return h
}

// Cancel drops a pending request. It reports whether the request was still pending.
func (fs *FrameScheduler) Cancel(h FrameHandle) bool {
	if _, ok := fs.pending[h]; ok {
		delete(fs.pending, h)
		return true
	}
	if _, ok := fs.running[h]; ok {
		delete(fs.running, h)
		return true
	}
	return false
}

// RunFrame invokes every callback requested before this call, in request order.
// Requests made while the frame runs are deferred to the next frame.
func (fs *FrameScheduler) RunFrame(delta float64) int {
	fs.frame++
	fs.elapsed += delta
	ctx := FrameContext{
		Frame:   fs.frame,
		Delta:   delta,
		Elapsed: fs.elapsed,
	}

	fs.running = fs.pending
	order := fs.order
	fs.pending = make(map[FrameHandle]FrameCallback)
	fs.order = nil

	ran := 0
	for _, h := range order {
		cb, ok := fs.running[h]
		if !ok {
			continue
		}
		delete(fs.running, h)
		cb(ctx)
		ran++
	}
	fs.running = nil
	return ran
}

// Pending returns the number of callbacks waiting for the next frame.
func (fs *FrameScheduler) Pending() int {
	return len(fs.pending)
}
