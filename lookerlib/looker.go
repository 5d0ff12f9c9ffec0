package lookerlib

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
)

const (
	DefaultWorkerPoolSize = 16

	workerPoolExpireTime = time.Minute
)

type sourceRequest struct {
	ctx           context.Context
	ip            string
	index         int
	source        Source
	resultChannel chan<- sourceOutcome
	wg            *sync.WaitGroup
}

type sourceOutcome struct {
	index  int
	name   string
	record *Record
}

type Looker struct {
	logger     Logger
	querier    Querier
	sources    map[string]Source
	order      []string
	stats      map[string]*UsageStats
	rwmutex    sync.RWMutex
	closeOnce  sync.Once
	workerPool *ants.PoolWithFunc
	closed     bool
}

// Lookup queries given sources (all of them if names are empty) and
// builds a report. Sources which have failed or returned nothing are
// listed in Report.MissingSources; this is not an error. If ctx is
// closed during the lookup, a partial report comes together with
// ErrContextIsClosed.
func (l *Looker) Lookup(ctx context.Context, ip string, names []string) (Report, error) {
	l.rwmutex.RLock()
	defer l.rwmutex.RUnlock()

	rv := Report{
		IP:             ip,
		Results:        []Result{},
		MissingSources: []string{},
		Groups:         []DisplayGroup{},
	}

	if l.closed {
		return rv, ErrLookerShutdown
	}

	sourcesToUse, err := l.getSourcesToUse(names)
	if err != nil {
		return rv, err
	}

	resultChannel := make(chan sourceOutcome, len(sourcesToUse))
	wg := &sync.WaitGroup{}

	for i, v := range sourcesToUse {
		if l.schedule(ctx, ip, i, v, resultChannel, wg) != nil {
			resultChannel <- sourceOutcome{index: i, name: v.Name}
		}
	}

	go func() {
		wg.Wait()
		close(resultChannel)
	}()

	outcomes := make([]sourceOutcome, 0, len(sourcesToUse))

	for res := range resultChannel {
		outcomes = append(outcomes, res)
	}

	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].index < outcomes[j].index
	})

	records := make([]Record, 0, len(outcomes))

	for _, v := range outcomes {
		if v.record == nil {
			rv.MissingSources = append(rv.MissingSources, v.name)

			continue
		}

		records = append(records, *v.record)
		rv.Results = append(rv.Results, FormatRecord(*v.record))
	}

	rv.Groups = Consolidate(rv.Results)
	rv.Verdict = ComputeVerdict(records)

	if err := ctx.Err(); err != nil {
		return rv, fmt.Errorf("%w: %v", ErrContextIsClosed, err)
	}

	return rv, nil
}

func (l *Looker) schedule(ctx context.Context,
	ip string,
	index int,
	source Source,
	resultChannel chan<- sourceOutcome,
	wg *sync.WaitGroup) error {
	select {
	case <-ctx.Done():
		return ErrContextIsClosed
	default:
	}

	wg.Add(1)

	req := &sourceRequest{
		ctx:           ctx,
		ip:            ip,
		index:         index,
		source:        source,
		resultChannel: resultChannel,
		wg:            wg,
	}

	if err := l.workerPool.Invoke(req); err != nil {
		wg.Done()

		return fmt.Errorf("cannot schedule a task: %w", err)
	}

	return nil
}

func (l *Looker) querySource(args interface{}) {
	params := args.(*sourceRequest)
	defer params.wg.Done()

	started := time.Now()
	rv := sourceOutcome{
		index: params.index,
		name:  params.source.Name,
	}

	payload, err := l.querier.Query(params.ctx, params.ip, params.source)

	switch {
	case err != nil:
		l.logger.LookupError(params.ip, params.source.Name, err)
	case payload == nil:
		l.logger.LookupError(params.ip, params.source.Name, ErrNoPayload)
	default:
		if data, ok := DataAt(payload, params.source.DataPath); ok {
			rec := ExtractFields(data, params.source.Fields).Record(params.source.Name)
			rec.Security = ExtractSecurity(data, params.source.Security)
			rv.record = &rec
		}
	}

	l.stats[params.source.Name].Used(rv.record != nil, time.Since(started))

	params.resultChannel <- rv
}

func (l *Looker) getSourcesToUse(names []string) ([]Source, error) {
	if len(names) == 0 {
		names = l.order
	}

	rv := make([]Source, 0, len(names))
	seen := map[string]bool{}

	for _, v := range names {
		if seen[v] {
			continue
		}

		vv, ok := l.sources[v]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSource, v)
		}

		seen[v] = true
		rv = append(rv, vv)
	}

	return rv, nil
}

// Sources returns configured sources in the order they are queried.
func (l *Looker) Sources() []Source {
	rv := make([]Source, 0, len(l.order))

	for _, v := range l.order {
		rv = append(rv, l.sources[v])
	}

	return rv
}

// UsageStats returns statistics for each source.
func (l *Looker) UsageStats() []*UsageStats {
	rv := make([]*UsageStats, 0, len(l.order))

	for _, v := range l.order {
		rv = append(rv, l.stats[v])
	}

	return rv
}

func (l *Looker) Shutdown() {
	l.rwmutex.Lock()
	defer l.rwmutex.Unlock()

	l.closed = true

	l.closeOnce.Do(func() {
		l.workerPool.Release()
	})
}

// NewLooker creates a new Looker. If workerPoolSize is not positive,
// DefaultWorkerPoolSize is used. Logger can be nil.
func NewLooker(querier Querier, sources []Source, logger Logger, workerPoolSize int) (*Looker, error) {
	if len(sources) == 0 {
		return nil, ErrNoSourcesRequired
	}

	if logger == nil {
		logger = nopLogger{}
	}

	rv := &Looker{
		logger:  logger,
		querier: querier,
		sources: map[string]Source{},
		order:   make([]string, 0, len(sources)),
		stats:   map[string]*UsageStats{},
	}

	for _, v := range sources {
		if _, ok := rv.sources[v.Name]; ok {
			return nil, fmt.Errorf("source %s is duplicated", v.Name)
		}

		rv.sources[v.Name] = v
		rv.order = append(rv.order, v.Name)
		rv.stats[v.Name] = &UsageStats{Name: v.Name}
	}

	poolSize := workerPoolSize
	if poolSize <= 0 {
		poolSize = DefaultWorkerPoolSize
	}

	pool, err := ants.NewPoolWithFunc(poolSize, rv.querySource,
		ants.WithExpiryDuration(workerPoolExpireTime))
	if err != nil {
		return nil, fmt.Errorf("cannot create a worker pool: %w", err)
	}

	rv.workerPool = pool

	return rv, nil
}
