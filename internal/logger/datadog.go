package logger

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"
)

const (
	defaultDataDogBufferSize    = 1024
	defaultDataDogBatchSize     = 50
	defaultDataDogFlushInterval = 2 * time.Second
	defaultDataDogTimeout       = 5 * time.Second
)

type submitFunc func(ctx context.Context, items []datadogV2.HTTPLogItem) error

// DataDogWriter ships log lines to the datadog log intake.
// Lines are queued and sent in batches from a single goroutine, a full queue drops lines.
type DataDogWriter struct {
	cfg     DataDog
	service string
	submit  submitFunc

	queue     chan []byte
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewDataDogWriter returns a started writer using the datadog v2 logs api.
func NewDataDogWriter(cfg DataDog, service string) *DataDogWriter {
	api := datadogV2.NewLogsApi(datadog.NewAPIClient(datadog.NewConfiguration()))

	submit := func(ctx context.Context, items []datadogV2.HTTPLogItem) error {
		ctx = context.WithValue(ctx, datadog.ContextAPIKeys, map[string]datadog.APIKey{
			"apiKeyAuth": {Key: cfg.APIKey},
		})

		if cfg.Site != "" {
			ctx = context.WithValue(ctx, datadog.ContextServerVariables, map[string]string{
				"site": cfg.Site,
			})
		}

		_, resp, err := api.SubmitLog(ctx, items)
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}

		return err //nolint:wrapcheck
	}

	return newDataDogWriter(cfg, service, submit)
}

func newDataDogWriter(cfg DataDog, service string, submit submitFunc) *DataDogWriter {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = defaultDataDogBufferSize
	}

	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultDataDogBatchSize
	}

	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = defaultDataDogFlushInterval
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultDataDogTimeout
	}

	w := &DataDogWriter{
		cfg:     cfg,
		service: service,
		submit:  submit,
		queue:   make(chan []byte, cfg.BufferSize),
		done:    make(chan struct{}),
	}

	w.wg.Add(1)

	go w.run()

	return w
}

// Write implements io.Writer. It never blocks the caller.
func (w *DataDogWriter) Write(p []byte) (int, error) {
	// zerolog reuses its buffer
	line := make([]byte, len(p))
	copy(line, p)

	select {
	case <-w.done:
	case w.queue <- line:
	default:
	}

	return len(p), nil
}

// Close stops accepting lines and flushes what is queued.
func (w *DataDogWriter) Close() error {
	w.closeOnce.Do(func() {
		close(w.done)
		w.wg.Wait()
	})

	return nil
}

func (w *DataDogWriter) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.cfg.FlushInterval)
	defer ticker.Stop()

	batch := make([]datadogV2.HTTPLogItem, 0, w.cfg.BatchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}

		w.send(batch)
		batch = make([]datadogV2.HTTPLogItem, 0, w.cfg.BatchSize)
	}

	for {
		select {
		case line := <-w.queue:
			batch = append(batch, w.item(line))
			if len(batch) >= w.cfg.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-w.done:
			for {
				select {
				case line := <-w.queue:
					batch = append(batch, w.item(line))
					if len(batch) >= w.cfg.BatchSize {
						flush()
					}
				default:
					flush()

					return
				}
			}
		}
	}
}

func (w *DataDogWriter) item(line []byte) datadogV2.HTTPLogItem {
	item := datadogV2.HTTPLogItem{
		Message: strings.TrimRight(string(line), "\n"),
		Service: datadog.PtrString(w.service),
	}

	if w.cfg.Source != "" {
		item.Ddsource = datadog.PtrString(w.cfg.Source)
	}

	return item
}

func (w *DataDogWriter) send(batch []datadogV2.HTTPLogItem) {
	ctx, cancel := context.WithTimeout(context.Background(), w.cfg.Timeout)
	defer cancel()

	// the global logger writes here, so report on stderr only
	if err := w.submit(ctx, batch); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "datadog: could not ship %d log lines: %v\n", len(batch), err)
	}
}
