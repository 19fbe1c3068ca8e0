// Package dispatch serializes all note filesystem mutations through a
// single worker goroutine.
//
// The editor surface, the autosave ticker, and the CLI may request
// operations concurrently; funneling them through one FIFO queue
// guarantees a stable order and removes any chance of two writers racing
// on the same file. Callers block until their command has been executed
// and receive its result directly.
package dispatch

import (
	"sync"

	"github.com/google/uuid"

	"github.com/ddbaker/papyru2/internal/errors"
	"github.com/ddbaker/papyru2/internal/logging"
)

// response carries a command's outcome back to the dispatching caller.
type response struct {
	result Result
	err    error
}

// envelope pairs a queued command with its reply channel.
type envelope struct {
	id   string
	cmd  Command
	resp chan response
}

// Dispatcher owns the command queue and its worker goroutine.
// It is safe for concurrent use.
type Dispatcher struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	queue    []envelope
	shutdown bool

	// done is closed when the worker goroutine exits. Callers blocked on a
	// response select against it so a dead worker fails them fast instead
	// of hanging forever.
	done chan struct{}

	logger *logging.Logger
}

// New creates a Dispatcher and starts its worker goroutine.
func New(logger *logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.NopLogger()
	}
	d := &Dispatcher{
		done:   make(chan struct{}),
		logger: logger.WithComponent("dispatch"),
	}
	d.notEmpty = sync.NewCond(&d.mu)

	go d.workerLoop()

	return d
}

// Dispatch enqueues a command and blocks until the worker has executed it.
// There is no timeout: filesystem operations on a local disk either finish
// or the whole engine is wedged, and a timeout would only mask the latter.
func (d *Dispatcher) Dispatch(cmd Command) (Result, error) {
	env := envelope{
		id:   uuid.NewString(),
		cmd:  cmd,
		resp: make(chan response, 1),
	}

	d.mu.Lock()
	if d.shutdown {
		d.mu.Unlock()
		return Result{}, errors.NewDispatchError(string(cmd.Kind()), errors.ErrWorkerTerminated).
			WithEnvelopeID(env.id)
	}
	d.queue = append(d.queue, env)
	d.notEmpty.Signal()
	d.mu.Unlock()

	select {
	case resp := <-env.resp:
		return resp.result, resp.err
	case <-d.done:
		// The worker may have answered just before exiting.
		select {
		case resp := <-env.resp:
			return resp.result, resp.err
		default:
			return Result{}, errors.NewDispatchError(string(cmd.Kind()), errors.ErrWorkerTerminated).
				WithEnvelopeID(env.id)
		}
	}
}

// Shutdown stops accepting new commands, lets the worker drain what is
// already queued, and returns once the worker has exited. Safe to call more
// than once.
func (d *Dispatcher) Shutdown() {
	d.mu.Lock()
	d.shutdown = true
	d.notEmpty.Broadcast()
	d.mu.Unlock()

	<-d.done
}

// QueueLen returns the number of commands waiting for the worker.
func (d *Dispatcher) QueueLen() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

// workerLoop pops envelopes in FIFO order and executes them one at a time.
// On shutdown it drains the remaining queue before exiting, so every caller
// that managed to enqueue still gets an answer.
func (d *Dispatcher) workerLoop() {
	defer close(d.done)

	for {
		d.mu.Lock()
		for len(d.queue) == 0 && !d.shutdown {
			d.notEmpty.Wait()
		}
		if d.shutdown && len(d.queue) == 0 {
			d.mu.Unlock()
			d.logger.Debug("worker exiting after drain")
			return
		}
		env := d.queue[0]
		d.queue = d.queue[1:]
		d.mu.Unlock()

		result, err := execute(env.cmd)
		if err != nil {
			d.logger.Warn("command failed",
				"command", string(env.cmd.Kind()), "envelope", env.id, "error", err.Error())
		} else {
			d.logger.Debug("command executed",
				"command", string(env.cmd.Kind()), "envelope", env.id, "path", result.Path)
		}

		env.resp <- response{result: result, err: err}
	}
}
