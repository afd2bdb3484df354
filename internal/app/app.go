// Package app contains the root application model.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/signup/internal/config"
	"github.com/zjrosen/signup/internal/keys"
	"github.com/zjrosen/signup/internal/log"
	"github.com/zjrosen/signup/internal/pubsub"
	"github.com/zjrosen/signup/internal/registration"
	"github.com/zjrosen/signup/internal/submission"
	"github.com/zjrosen/signup/internal/ui/form"
	"github.com/zjrosen/signup/internal/ui/logoverlay"
	"github.com/zjrosen/signup/internal/ui/terms"
	"github.com/zjrosen/signup/internal/ui/toaster"
	"github.com/zjrosen/signup/internal/watcher"
)

const maxFormWidth = 60

// Options configures a new application model.
type Options struct {
	Config config.Config

	// ConfigPath is watched for live reloads when non-empty.
	ConfigPath string

	// Tracer wraps submissions in spans. Defaults to a no-op tracer.
	Tracer trace.Tracer

	// HTTPClient overrides the registration client's transport.
	HTTPClient *http.Client

	// Debug enables the log overlay (ctrl+x).
	Debug bool
}

// Model is the root application state.
type Model struct {
	cfg        config.Config
	tracer     trace.Tracer
	httpClient *http.Client
	debug      bool

	form    *registration.Form
	gate    *registration.Gate
	handler *submission.Handler

	fields     form.Model
	help       help.Model
	logOverlay logoverlay.Model
	terms      terms.Model
	toaster    toaster.Model
	submitting bool

	width  int
	height int

	ctx            context.Context
	cancel         context.CancelFunc
	gateListener   *pubsub.ContinuousListener[registration.FormState]
	logListener    *log.LogListener
	watcherHandle  *watcher.Watcher
	configListener *pubsub.ContinuousListener[config.Config]
}

// New wires the form, the gate, the submission handler and the overlays.
func New(opts Options) (Model, error) {
	cfg := opts.Config
	tracer := opts.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("signup")
	}

	schema := registration.DefaultSchema()
	gate, err := registration.NewGate(schema)
	if err != nil {
		return Model{}, fmt.Errorf("building submit gate: %w", err)
	}
	cacheOpt := registration.WithCacheTTL(cfg.Cache.TTL)
	if cfg.Cache.TTL <= 0 {
		cacheOpt = registration.WithoutCache()
	}
	regForm := registration.NewForm(registration.NewValidator(schema, cacheOpt))

	ctx, cancel := context.WithCancel(context.Background())
	m := Model{
		cfg:          cfg,
		tracer:       tracer,
		httpClient:   opts.HTTPClient,
		debug:        opts.Debug,
		form:         regForm,
		gate:         gate,
		fields:       form.New(formConfig()),
		help:         help.New(),
		logOverlay:   logoverlay.New(),
		terms:        terms.New(cfg.UI.MarkdownStyle),
		toaster:      toaster.New(),
		ctx:          ctx,
		cancel:       cancel,
		gateListener: pubsub.NewLatestListener(ctx, regForm.Broker()),
	}
	m.handler = submission.NewHandler(m.newClient(cfg), tracer)

	if opts.Debug {
		m.logListener = log.NewListener(ctx)
	}

	if opts.ConfigPath != "" {
		w, err := watcher.New(opts.ConfigPath, watcher.DefaultDebounce)
		if err == nil {
			err = w.Start()
		}
		if err != nil {
			// The form works without live reload.
			log.Warn(log.CatWatcher, "config watcher disabled", "path", opts.ConfigPath, "error", err)
			if w != nil {
				_ = w.Stop()
			}
		} else {
			m.watcherHandle = w
			m.configListener = pubsub.NewContinuousListener(ctx, w.Broker())
		}
	}

	return m, nil
}

func (m Model) newClient(cfg config.Config) *submission.Client {
	opts := []submission.Option{
		submission.WithTimeout(cfg.Timeout),
		submission.WithTracer(m.tracer),
	}
	if m.httpClient != nil {
		opts = append(opts, submission.WithHTTPClient(m.httpClient))
	}
	return submission.NewClient(cfg.Endpoint, opts...)
}

// Form exposes the registration form state.
func (m Model) Form() *registration.Form {
	return m.form
}

// Init starts the listeners and evaluates the gate for the empty form.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.fields.Init(),
		m.gateListener.Listen(),
		m.validateGateCmd(m.form.State()),
	}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	if m.configListener != nil {
		cmds = append(cmds, m.configListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.fields = m.fields.SetWidth(min(msg.Width-4, maxFormWidth))
		m.help.Width = msg.Width
		m.logOverlay.SetSize(msg.Width, msg.Height)
		m.terms.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		if m.terms.Visible() || m.logOverlay.Visible() {
			return m, nil
		}

	case pubsub.Event[registration.FormState]:
		return m, tea.Batch(m.validateGateCmd(msg.Payload), m.gateListener.Listen())

	case GateMsg:
		return m.handleGate(msg), nil

	case form.SubmitMsg:
		return m.handleSubmit()

	case SubmitResultMsg:
		return m.handleResult(msg), nil

	case log.LogEvent:
		if m.logOverlay.Visible() {
			m.logOverlay.Refresh()
		}
		if m.logListener == nil {
			return m, nil
		}
		return m, m.logListener.Listen()

	case pubsub.Event[config.Config]:
		var toast tea.Cmd
		m, toast = m.applyConfig(msg.Payload)
		if m.configListener == nil {
			return m, toast
		}
		return m, tea.Batch(toast, m.configListener.Listen())

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case logoverlay.CloseMsg, terms.CloseMsg:
		return m, nil
	}

	return m.updateFields(msg)
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Form.Quit) {
		return m, tea.Quit
	}

	if m.terms.Visible() {
		var cmd tea.Cmd
		m.terms, cmd = m.terms.Update(msg)
		return m, cmd
	}
	if m.logOverlay.Visible() {
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.Form.Terms):
		m.terms.Show()
		return m, nil
	case m.debug && key.Matches(msg, keys.Form.DebugLog):
		m.logOverlay.Show()
		return m, nil
	}

	return m.updateFields(msg)
}

// updateFields forwards msg to the form widgets and applies their edits to
// the registration form before returning, so FormState never lags the
// visible inputs.
func (m Model) updateFields(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.fields, cmd = m.fields.Update(msg)

	var edits []form.Change
	m.fields, edits = m.fields.TakeChanges()
	for _, c := range edits {
		m = m.handleChange(c)
	}
	return m, cmd
}

// handleChange applies one input change to the form and mirrors the field's
// inline error. The gate follows through the published snapshot.
func (m Model) handleChange(msg form.Change) Model {
	field, err := registration.ParseField(msg.Key)
	if err != nil {
		log.Warn(log.CatForm, "change for unknown field", "key", msg.Key)
		return m
	}
	if _, err := m.form.Change(m.ctx, field, msg.Value); err != nil {
		log.ErrorErr(log.CatForm, "rejected change", err, "field", field)
		return m
	}
	m.fields = m.fields.SetErrors(errorStrings(m.form.Errors()))
	return m
}

// handleGate stores a verdict. Verdicts for snapshots that are no longer
// current are dropped so a slow evaluation cannot overwrite a newer one.
func (m Model) handleGate(msg GateMsg) Model {
	if msg.State != m.form.State() {
		log.Debug(log.CatGate, "stale gate verdict dropped")
		return m
	}
	m.form.SetGate(msg.Valid)
	m.fields = m.fields.SetSubmitEnabled(msg.Valid && !m.submitting)
	return m
}

func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	if m.submitting || !m.form.Gate() {
		return m, nil
	}
	m.submitting = true
	m.fields = m.fields.SetSubmitEnabled(false)
	state := m.form.BeginSubmit()
	log.Info(log.CatSubmit, "submitting registration", "username", state.Username)
	return m, m.submitCmd(state)
}

func (m Model) handleResult(msg SubmitResultMsg) Model {
	m.submitting = false
	m.form.Finish(msg.Result)
	if msg.Result.OK() {
		// The reset snapshot re-enables the button once its verdict lands.
		m.fields = m.fields.SetValues(stateValues(m.form.State()))
		m.fields = m.fields.SetSubmitEnabled(false)
		return m
	}
	m.fields = m.fields.SetSubmitEnabled(m.form.Gate())
	return m
}

// applyConfig swaps in a reloaded configuration. Endpoint and timeout take
// effect on the next submission.
func (m Model) applyConfig(cfg config.Config) (Model, tea.Cmd) {
	message := "Config reloaded"
	if cfg.Endpoint != m.cfg.Endpoint || cfg.Timeout != m.cfg.Timeout {
		m.handler.SetRegistrar(m.newClient(cfg))
		log.Info(log.CatConfig, "registration endpoint updated", "endpoint", cfg.Endpoint, "timeout", cfg.Timeout)
		message = "Registering with " + cfg.Endpoint
	}
	m.terms.SetStyle(cfg.UI.MarkdownStyle)
	m.cfg = cfg

	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show(message, toaster.StyleInfo)
	return m, cmd
}

// Close releases listeners, the config watcher and the form broker.
func (m *Model) Close() error {
	m.cancel()
	m.form.Close()
	if m.watcherHandle != nil {
		return m.watcherHandle.Stop()
	}
	return nil
}
