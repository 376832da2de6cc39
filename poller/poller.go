// Package poller keeps an observable value in step with a counter service by
// issuing conditional reads on a fixed interval.
package poller

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/weegigs/wee-poll-go/connectors/wphttp"
	"github.com/weegigs/wee-poll-go/wp"
)

const (
	DefaultEndpoint = "http://localhost:3000/count"
	DefaultInterval = time.Second
)

const tracerName = "wee-poll-poller"

type Option func(*Poller)

func Logger(log *zerolog.Logger) Option {
	return func(p *Poller) {
		p.log = log
	}
}

func Client(client *http.Client) Option {
	return func(p *Poller) {
		p.client = client
	}
}

func Interval(interval time.Duration) Option {
	return func(p *Poller) {
		p.interval = interval
	}
}

// Poller mirrors the counter at endpoint into an observable value.
type Poller struct {
	endpoint string
	interval time.Duration
	client   *http.Client
	log      *zerolog.Logger
	value    *wp.Observable[uint64]

	mu        sync.Mutex
	validator string
}

func New(endpoint string, value *wp.Observable[uint64], options ...Option) *Poller {
	p := &Poller{endpoint: endpoint, value: value}
	for _, option := range options {
		option(p)
	}

	if p.endpoint == "" {
		p.endpoint = DefaultEndpoint
	}
	if p.interval <= 0 {
		p.interval = DefaultInterval
	}
	if p.client == nil {
		p.client = &http.Client{Transport: wphttp.Transport(nil)}
	}
	if p.log == nil {
		p.log = &log.Logger
	}

	return p
}

func (p *Poller) Value() *wp.Observable[uint64] {
	return p.value
}

func (p *Poller) Validator() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.validator
}

// Poll issues one conditional read. A changed value is published and its
// validator kept for the next read. On any failure the previous validator and
// value are left untouched.
func (p *Poller) Poll(ctx context.Context) (changed bool, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "poll counter")
	defer span.End()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint, nil)
	if err != nil {
		return false, errors.Wrap(err, "failed to create request")
	}
	request.Header.Set("If-None-Match", p.Validator())

	response, err := p.client.Do(request)
	if err != nil {
		return false, errors.Wrap(err, "failed to fetch counter")
	}
	defer response.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", response.StatusCode))

	switch response.StatusCode {
	case http.StatusNotModified:
		return false, nil
	case http.StatusOK:
	default:
		return false, wp.UnexpectedStatus(response.StatusCode)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return false, errors.Wrap(err, "failed to read counter")
	}

	text := strings.TrimSpace(string(body))
	value, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return false, wp.MalformedValue(text)
	}

	p.mu.Lock()
	p.validator = response.Header.Get("ETag")
	p.mu.Unlock()

	return p.value.Publish(value), nil
}

// Start polls every interval until the returned stop function is called or ctx
// is done. Stopping prevents further polls but lets an outstanding poll finish
// and apply its result; cancelling ctx aborts it. A tick that arrives while a
// poll is outstanding is dropped, so polls never overlap.
func (p *Poller) Start(ctx context.Context) (stop func()) {
	stopped := make(chan struct{})
	var once sync.Once

	go p.run(ctx, stopped)

	return func() {
		once.Do(func() { close(stopped) })
	}
}

func (p *Poller) run(ctx context.Context, stopped <-chan struct{}) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopped:
			return
		case <-ticker.C:
		}

		// a stop that raced the tick wins
		select {
		case <-stopped:
			return
		default:
		}

		id := ulid.Make()
		changed, err := p.Poll(ctx)
		if err != nil {
			p.log.Warn().Err(err).Str("poll", id.String()).Str("endpoint", p.endpoint).Msg("poll failed")
			continue
		}

		if changed {
			p.log.Debug().Str("poll", id.String()).Uint64("value", p.value.Value()).Msg("counter changed")
		}
	}
}
