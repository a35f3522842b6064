// Package watch provides polling change subscriptions over the store.
//
// A Poller refetches a Source every interval (2s by default) and hands the
// full snapshot to a Listener, together with a Guarantee telling whether the
// snapshot is in canonical order. When the ordered fetch fails the poller
// retries without ordering. Connection state moves from unknown to online or
// offline and the listener is told only when it changes.
//
//	p := watch.NewPoller[[]menu.Item](src, watch.Funcs[[]menu.Item]{
//	    Snapshot: func(items []menu.Item, g watch.Guarantee) { ... },
//	}, cfg.Watch, log)
//	if err := p.Start(ctx); err != nil { ... }
//	defer p.Stop()
package watch
