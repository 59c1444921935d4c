package hotelcore

import "sync"

// Observers is the callback surface the session publishes events through.
// All setters are safe to call concurrently with dispatch; a nil callback
// is simply skipped.
type Observers struct {
	mu sync.RWMutex

	onStatus    func(State, string)
	onMute      func(secondsRemaining int32, formatted string)
	onNavigator func(NavigatorResults)
}

// SetOnStatus registers the status-change callback, fired whenever the
// session transitions to a new State. reason is empty except on the
// transition to Disconnected or Banned.
func (o *Observers) SetOnStatus(fn func(State, string)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onStatus = fn
}

// SetOnMute registers the flood-control (mute) callback.
func (o *Observers) SetOnMute(fn func(secondsRemaining int32, formatted string)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onMute = fn
}

// SetOnNavigatorResults registers the navigator-results callback.
func (o *Observers) SetOnNavigatorResults(fn func(NavigatorResults)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onNavigator = fn
}

func (o *Observers) fireStatus(s State, reason string) {
	o.mu.RLock()
	fn := o.onStatus
	o.mu.RUnlock()
	if fn != nil {
		fn(s, reason)
	}
}

func (o *Observers) fireMute(seconds int32, formatted string) {
	o.mu.RLock()
	fn := o.onMute
	o.mu.RUnlock()
	if fn != nil {
		fn(seconds, formatted)
	}
}

func (o *Observers) fireNavigator(r NavigatorResults) {
	o.mu.RLock()
	fn := o.onNavigator
	o.mu.RUnlock()
	if fn != nil {
		fn(r)
	}
}
