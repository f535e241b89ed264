package worker

import (
	"bytes"
	"context"
	"errors"
	"sync"

	"github.com/criyle/go-grader/judger"
	"github.com/criyle/go-grader/reporter"
	"go.uber.org/zap"
)

const maxWaiting = 512

// ErrShutdown is returned for requests that were not run before shutdown
var ErrShutdown = errors.New("worker is shut down")

// Config defines worker configuration
type Config struct {
	// Parallelism is the number of suites running at the same time
	Parallelism int

	// Shell is the shell prefix for test commands
	Shell []string

	Logger *zap.Logger

	// TestObserver is called after each test finished
	TestObserver func(judger.TestResult)

	// ResultObserver is called after each request finished
	ResultObserver func(Response)
}

// Worker defines interface for grading worker
type Worker interface {
	Start()
	Submit(context.Context, *Request) <-chan Response
	Shutdown()
}

// worker runs suites from the queue
type worker struct {
	parallelism int
	shell       []string
	logger      *zap.Logger

	testObserver   func(judger.TestResult)
	resultObserver func(Response)

	startOnce sync.Once
	stopOnce  sync.Once
	wg        sync.WaitGroup
	workCh    chan workRequest
	done      chan struct{}

	// closed is set under the write lock, sends to workCh hold the read lock
	mu     sync.RWMutex
	closed bool
}

type workRequest struct {
	*Request
	context.Context
	resultCh chan<- Response
}

// New creates new worker
func New(conf Config) Worker {
	parallelism := conf.Parallelism
	if parallelism <= 0 {
		parallelism = 1
	}
	logger := conf.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &worker{
		parallelism:    parallelism,
		shell:          conf.Shell,
		logger:         logger,
		testObserver:   conf.TestObserver,
		resultObserver: conf.ResultObserver,
	}
}

// Start starts worker loops with given parallelism
func (w *worker) Start() {
	w.startOnce.Do(func() {
		w.workCh = make(chan workRequest, maxWaiting)
		w.done = make(chan struct{})
		w.wg.Add(w.parallelism)
		for i := 0; i < w.parallelism; i++ {
			go w.loop()
		}
	})
}

// Submit submits a single request
func (w *worker) Submit(ctx context.Context, req *Request) <-chan Response {
	ch := make(chan Response, 1)
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		ch <- Response{RequestID: req.RequestID, Error: ErrShutdown}
		return ch
	}
	select {
	case w.workCh <- workRequest{
		Request:  req,
		Context:  ctx,
		resultCh: ch,
	}:
	case <-ctx.Done():
		ch <- Response{RequestID: req.RequestID, Error: ctx.Err()}
	}
	return ch
}

// Shutdown waits running suites to finish, queued requests fail with
// ErrShutdown
func (w *worker) Shutdown() {
	w.stopOnce.Do(func() {
		// no request is queued after this point
		w.mu.Lock()
		w.closed = true
		w.mu.Unlock()

		close(w.done)
		w.wg.Wait()
		for {
			select {
			case req := <-w.workCh:
				req.resultCh <- Response{RequestID: req.RequestID, Error: ErrShutdown}
			default:
				return
			}
		}
	})
}

func (w *worker) loop() {
	defer w.wg.Done()
	for {
		select {
		case req, ok := <-w.workCh:
			if !ok {
				return
			}
			w.workDoSuite(req)
		case <-w.done:
			return
		}
	}
}

func (w *worker) workDoSuite(req workRequest) {
	rt := Response{RequestID: req.RequestID}
	if err := req.Context.Err(); err != nil {
		rt.Error = err
		req.resultCh <- rt
		return
	}

	var (
		log bytes.Buffer
		rec reporter.Recorder
	)
	j := judger.New(judger.Config{
		Shell:    w.shell,
		Stdout:   &log,
		Stderr:   &log,
		Reporter: &rec,
		Logger:   w.logger.With(zap.String("requestId", req.RequestID)),
		Observer: w.testObserver,
		NoColor:  true,
	})
	rt.Result = j.Run(req.Context, req.WorkDir, req.Tests)
	rt.Warnings = rec.Warnings()
	rt.Failures = rec.Failures()
	rt.Outputs = rec.Outputs()
	rt.Log = log.String()

	if w.resultObserver != nil {
		w.resultObserver(rt)
	}
	req.resultCh <- rt
}
