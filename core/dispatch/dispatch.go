package dispatch

import (
	"context"
	"fmt"
	"sync"

	"github.com/leofalp/multichat/internal/utils"
	"github.com/leofalp/multichat/providers/ai"
	"github.com/leofalp/multichat/providers/observability"
)

// Dispatch fans request.Input out to every selected adapter concurrently and
// returns one Result per selected provider, in selection order. It returns
// only after every adapter call has finished; total latency is bounded by
// the slowest provider, not the sum.
//
// A failure inside one adapter (including a panic) is converted into an
// error Result for that provider and never affects its siblings. The only
// error Dispatch itself returns is the programming invariant violation of a
// selected provider with no registered adapter.
func Dispatch(ctx context.Context, request Request, adapters map[string]Adapter) (ResultSet, error) {
	for _, id := range request.Selected {
		if _, ok := adapters[id]; !ok {
			return nil, fmt.Errorf("no adapter registered for selected provider %q", id)
		}
	}

	observer := observability.ObserverFromContext(ctx)
	if observer != nil {
		observer.Debug(ctx, "dispatching request",
			observability.Int(observability.AttrDispatchProviders, len(request.Selected)),
			observability.Int(observability.AttrRequestMessagesCount, len(request.History)),
		)
	}

	timer := utils.NewTimer()
	results := make(ResultSet, len(request.Selected))

	var wg sync.WaitGroup
	for i, id := range request.Selected {
		wg.Add(1)
		go func(slot int, adapter Adapter) {
			defer wg.Done()
			results[slot] = safeQuery(ctx, adapter, request.Input, request.History)
		}(i, adapters[id])
	}
	wg.Wait()
	timer.Stop()

	if observer != nil {
		for _, result := range results {
			observer.Info(ctx, "provider call finished",
				observability.String(observability.AttrLLMProvider, result.ProviderID),
				observability.String(observability.AttrResultStatus, string(result.Status)),
				observability.Duration("provider.duration", result.Elapsed),
			)
		}
		observer.Info(ctx, "dispatch finished",
			observability.Int(observability.AttrDispatchProviders, len(results)),
			observability.Duration(observability.AttrDispatchDuration, timer.GetDuration()),
		)
	}

	return results, nil
}

// safeQuery runs one adapter call and converts a panic into an error Result,
// so a defective adapter cannot take down the whole dispatch.
func safeQuery(ctx context.Context, adapter Adapter, input string, history []ai.Message) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = Result{
				ProviderID:   adapter.ID(),
				Status:       StatusError,
				ErrorMessage: fmt.Sprintf("internal error: adapter panicked: %v", r),
			}
		}
	}()
	return adapter.Query(ctx, input, history)
}
