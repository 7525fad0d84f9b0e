package connectivity

import "projekt/connectivity/lib/platform"

// receiver adapts the connectivity broadcast of the oldest platforms.
// The broadcast does not say what changed, so only Available
// and Unavailable can be reported.
type receiver struct {
	o   *Observer
	reg *registration
}

func (r *receiver) OnReceive(intent platform.Intent) {
	if intent.Action != platform.ActionConnectivityChange || !r.o.isCurrent(r.reg) {
		return
	}
	typ, err := CurrentType(r.o.manager)
	if err != nil {
		r.o.onError(err)
		return
	}
	if typ == None {
		r.o.handler.OnChange(Unavailable, None)
	} else {
		r.o.handler.OnChange(Available, typ)
	}
}
