package suggest

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Default timings of the engine.
const (
	DefaultDebounce      = 200 * time.Millisecond
	DefaultBlurDelay     = 100 * time.Millisecond
	DefaultFollowUpDelay = 100 * time.Millisecond
)

// AcceptKey is the key that accepts a visible suggestion.
const AcceptKey = "Tab"

// Field is a snapshot of a form field.
type Field struct {
	Key        FieldKey
	Value      string
	Cursor     int
	Suggestion string
}

// Option configures an Engine.
type Option func(*Engine)

// WithDebounce sets the quiet period after the last edit before a
// prediction is requested.
func WithDebounce(d time.Duration) Option {
	return func(e *Engine) { e.debounce = d }
}

// WithBlurDelay sets how long a blurred field stays active.
func WithBlurDelay(d time.Duration) Option {
	return func(e *Engine) { e.blurDelay = d }
}

// WithFollowUpDelay sets the pause before the prediction that follows an
// accepted suggestion is scheduled.
func WithFollowUpDelay(d time.Duration) Option {
	return func(e *Engine) { e.followUp = d }
}

// WithLogger sets the logger used for prediction failures.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithOnChange registers a listener called whenever a field's value or
// suggestion changes. It is never called with the engine lock held.
func WithOnChange(fn func(Field)) Option {
	return func(e *Engine) { e.onChange = fn }
}

type fieldState struct {
	value      string
	cursor     int
	cursorSet  bool
	suggestion string

	// gen is bumped on every scheduled request; results for older
	// generations are dropped.
	gen    uint64
	timer  *time.Timer
	cancel context.CancelFunc
}

func (st *fieldState) effectiveCursor() int {
	if st.cursorSet {
		return st.cursor
	}
	return utf8.RuneCountInString(st.value)
}

// stop cancels any pending timer and in-flight request.
func (st *fieldState) stop() {
	if st.timer != nil {
		st.timer.Stop()
		st.timer = nil
	}
	if st.cancel != nil {
		st.cancel()
		st.cancel = nil
	}
}

// Engine tracks form fields and fetches completions for the word being
// typed. It is safe for concurrent use.
type Engine struct {
	predictor Predictor
	debounce  time.Duration
	blurDelay time.Duration
	followUp  time.Duration
	logger    *zap.Logger
	onChange  func(Field)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	fields    map[FieldKey]*fieldState
	active    FieldKey
	hasActive bool
	blurGen   uint64
	blurTimer *time.Timer
	closed    bool
}

// NewEngine creates an engine that asks p for completions.
func NewEngine(p Predictor, opts ...Option) *Engine {
	ctx, cancel := context.WithCancel(context.Background())
	e := &Engine{
		predictor: p,
		debounce:  DefaultDebounce,
		blurDelay: DefaultBlurDelay,
		followUp:  DefaultFollowUpDelay,
		logger:    zap.NewNop(),
		ctx:       ctx,
		cancel:    cancel,
		fields:    make(map[FieldKey]*fieldState),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) state(key FieldKey) *fieldState {
	st, ok := e.fields[key]
	if !ok {
		st = &fieldState{}
		e.fields[key] = st
	}
	return st
}

func (e *Engine) snapshot(key FieldKey, st *fieldState) Field {
	return Field{Key: key, Value: st.value, Cursor: st.effectiveCursor(), Suggestion: st.suggestion}
}

func (e *Engine) notify(f Field) {
	if e.onChange != nil {
		e.onChange(f)
	}
}

// activate makes key the active field and cancels any pending blur.
func (e *Engine) activate(key FieldKey) {
	e.active = key
	e.hasActive = true
	e.blurGen++
	if e.blurTimer != nil {
		e.blurTimer.Stop()
		e.blurTimer = nil
	}
}

// schedule arms the field's timer. Must be called with e.mu held.
func (e *Engine) schedule(key FieldKey, st *fieldState, delay time.Duration) {
	st.stop()
	st.gen++
	gen := st.gen
	st.timer = time.AfterFunc(delay, func() { e.fire(key, gen) })
}

// Edit records new text and cursor for a field, makes it active and
// schedules a prediction. Empty text clears the suggestion without a request.
func (e *Engine) Edit(key FieldKey, value string, cursor int) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	st := e.state(key)
	st.value = value
	st.cursor = clampCursor([]rune(value), cursor)
	st.cursorSet = true
	e.activate(key)

	if value == "" {
		st.stop()
		st.gen++
		st.suggestion = ""
		f := e.snapshot(key, st)
		e.mu.Unlock()
		e.notify(f)
		return
	}

	e.schedule(key, st, e.debounce)
	f := e.snapshot(key, st)
	e.mu.Unlock()
	e.notify(f)
}

// Set stores a value without making the field active or requesting a
// prediction. The tracked cursor is reset to the end of the text.
func (e *Engine) Set(key FieldKey, value string) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	st := e.state(key)
	st.stop()
	st.gen++
	st.value = value
	st.cursorSet = false
	st.suggestion = ""
	f := e.snapshot(key, st)
	e.mu.Unlock()
	e.notify(f)
}

// Remove forgets a field.
func (e *Engine) Remove(key FieldKey) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if st, ok := e.fields[key]; ok {
		st.stop()
		delete(e.fields, key)
	}
	if e.hasActive && e.active == key {
		e.hasActive = false
	}
}

// Focus makes key the active field. A field holding text re-requests a
// prediction at its tracked cursor.
func (e *Engine) Focus(key FieldKey) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.activate(key)
	st := e.state(key)
	if st.value != "" {
		e.schedule(key, st, e.debounce)
	}
}

// Blur clears the active field after the blur delay, unless another field
// is activated first.
func (e *Engine) Blur() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || !e.hasActive {
		return
	}
	e.blurGen++
	gen := e.blurGen
	if e.blurTimer != nil {
		e.blurTimer.Stop()
	}
	e.blurTimer = time.AfterFunc(e.blurDelay, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.blurGen == gen {
			e.hasActive = false
			e.blurTimer = nil
		}
	})
}

// Active returns the active field, if any.
func (e *Engine) Active() (FieldKey, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active, e.hasActive
}

// Field returns a snapshot of a field.
func (e *Engine) Field(key FieldKey) (Field, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, ok := e.fields[key]
	if !ok {
		return Field{Key: key}, false
	}
	return e.snapshot(key, st), true
}

// Value returns the current text of a field.
func (e *Engine) Value(key FieldKey) string {
	f, _ := e.Field(key)
	return f.Value
}

// Suggestion returns the visible suggestion for key. Suggestions are only
// visible while their field is active.
func (e *Engine) Suggestion(key FieldKey) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.hasActive || e.active != key {
		return ""
	}
	if st, ok := e.fields[key]; ok {
		return st.suggestion
	}
	return ""
}

// KeyDown handles a key press in a field. It reports whether the key was
// consumed, which is only the case for the accept key while a suggestion is
// visible.
func (e *Engine) KeyDown(key FieldKey, k string) bool {
	if k != AcceptKey || e.Suggestion(key) == "" {
		return false
	}
	_, ok := e.Accept(key)
	return ok
}

// Click accepts the suggestion of a field, as when it is clicked. Only a
// visible suggestion can be clicked.
func (e *Engine) Click(key FieldKey) (Field, bool) {
	if e.Suggestion(key) == "" {
		f, _ := e.Field(key)
		return f, false
	}
	return e.Accept(key)
}

// Accept replaces the word before the cursor with the pending suggestion,
// moves the cursor past it and schedules a follow-up prediction.
func (e *Engine) Accept(key FieldKey) (Field, bool) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return Field{Key: key}, false
	}
	st, ok := e.fields[key]
	if !ok || st.suggestion == "" {
		e.mu.Unlock()
		return Field{Key: key}, false
	}

	value, cursor := ApplySuggestion(st.value, st.effectiveCursor(), st.suggestion)
	st.value = value
	st.cursor = cursor
	st.cursorSet = true
	st.suggestion = ""
	e.schedule(key, st, e.followUp+e.debounce)

	f := e.snapshot(key, st)
	e.mu.Unlock()
	e.notify(f)
	return f, true
}

// fire sends the request for generation gen of a field.
func (e *Engine) fire(key FieldKey, gen uint64) {
	e.mu.Lock()
	st, ok := e.fields[key]
	if e.closed || !ok || st.gen != gen {
		e.mu.Unlock()
		return
	}
	st.timer = nil
	text := st.value
	fragment := LastWord(text, st.effectiveCursor())
	ctx, cancel := context.WithCancel(e.ctx)
	st.cancel = cancel
	e.wg.Add(1)
	e.mu.Unlock()

	go func() {
		defer e.wg.Done()
		defer cancel()

		suggestion, err := e.predictor.Predict(ctx, key.Name, fragment)
		if err != nil {
			if ctx.Err() == nil {
				e.logger.Debug("prediction failed",
					zap.String("field", key.String()),
					zap.Error(err))
			}
			suggestion = ""
		}
		if strings.EqualFold(suggestion, fragment) {
			suggestion = ""
		}
		e.apply(key, gen, text, suggestion)
	}()
}

// apply stores a prediction result unless it is stale.
func (e *Engine) apply(key FieldKey, gen uint64, text, suggestion string) {
	e.mu.Lock()
	st, ok := e.fields[key]
	if e.closed || !ok || st.gen != gen || st.value != text {
		e.mu.Unlock()
		return
	}
	st.cancel = nil
	if st.suggestion == suggestion {
		e.mu.Unlock()
		return
	}
	st.suggestion = suggestion
	f := e.snapshot(key, st)
	e.mu.Unlock()
	e.notify(f)
}

// Close stops all timers, cancels in-flight requests and waits for them to
// return.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	for _, st := range e.fields {
		st.stop()
	}
	if e.blurTimer != nil {
		e.blurTimer.Stop()
	}
	e.cancel()
	e.mu.Unlock()
	e.wg.Wait()
}
