package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/pokedex/internal/activation"
	"github.com/mmcdole/pokedex/internal/domain"
	"github.com/mmcdole/pokedex/internal/pager"
	"github.com/mmcdole/pokedex/internal/tui/components"
	"github.com/mmcdole/pokedex/internal/tui/styles"
)

const (
	tickInterval        = 100 * time.Millisecond
	defaultFetchTimeout = 30 * time.Second
	defaultTransition   = 350 * time.Millisecond
)

// Options configures the model
type Options struct {
	// Transition is the detail transition duration; row activations closer
	// together than this are dropped
	Transition time.Duration

	ToastTTL      time.Duration
	FetchTimeout  time.Duration
	MarkdownStyle string
	Logger        *slog.Logger

	// Clock overrides time.Now (tests)
	Clock func() time.Time
}

// Model is the main Bubble Tea model for the application
type Model struct {
	Ready bool

	// Data
	Repo  domain.PokedexRepository
	Pager *pager.Controller[domain.Pokemon]

	// UI Components
	List   *components.PokemonList
	Detail *components.Detail
	Toasts *components.Toasts
	Help   help.Model

	// Dimensions
	Width  int
	Height int

	// UI state
	SpinnerFrame int
	ShowHelp     bool

	fetcher      *repositoryFetcher
	debounce     *activation.Debouncer
	keys         KeyMap
	layout       columnLayout
	fetchTimeout time.Duration
	logger       *slog.Logger
}

// NewModel creates a new application model
func NewModel(repo domain.PokedexRepository, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Transition <= 0 {
		opts.Transition = defaultTransition
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = defaultFetchTimeout
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	fetcher := newRepositoryFetcher(repo, opts.FetchTimeout)
	controller := pager.New[domain.Pokemon](fetcher, pager.WithLogger(opts.Logger))

	list := components.NewPokemonList("Pokédex", opts.Transition)
	list.SetClock(opts.Clock)
	toasts := components.NewToasts(opts.ToastTTL)
	toasts.SetClock(opts.Clock)

	controller.Subscribe(newListObserver(list, toasts).OnState)

	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle

	return Model{
		Repo:         repo,
		Pager:        controller,
		List:         list,
		Detail:       components.NewDetail(opts.MarkdownStyle),
		Toasts:       toasts,
		Help:         h,
		fetcher:      fetcher,
		debounce:     activation.New(opts.Transition, activation.WithClock(opts.Clock)),
		keys:         Keys,
		fetchTimeout: opts.FetchTimeout,
		logger:       opts.Logger,
	}
}

// Init starts the first page fetch and the animation tick
func (m Model) Init() tea.Cmd {
	m.Pager.Start()
	return tea.Batch(
		m.fetcher.Flush(),
		TickCmd(tickInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.Help.Width = msg.Width
		m.updateLayout(0)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		m.List.SetSpinnerFrame(m.SpinnerFrame)
		m.List.PruneHighlights()
		m.Toasts.Tick()
		return m, TickCmd(tickInterval)

	case FetchStepMsg:
		msg.Apply()
		return m, tea.Batch(msg.NextCmd, m.fetcher.Flush())

	case DetailRequestedMsg:
		m.logger.Debug("detail requested", "name", msg.Pokemon.Name)
		m.Detail.Show(msg.Pokemon)
		return m, LoadInfoCmd(m.Repo, msg.Pokemon, m.fetchTimeout)

	case InfoLoadedMsg:
		m.Detail.SetInfo(msg.Info)
		return m, nil

	case InfoFailedMsg:
		m.logger.Warn("detail load failed", "name", msg.Name, "error", msg.Err.Err)
		if m.Detail.SetError(msg.Name, msg.Err.Err) {
			m.Toasts.Add(msg.Err.Error(), components.ToastError)
		}
		return m, nil

	case ErrMsg:
		m.Toasts.Add(msg.Error(), components.ToastError)
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Typing into the filter owns every key but ctrl+c
	if m.List.IsFilterTyping() {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, m.List.Update(msg)
	}

	if m.ShowHelp {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.ShowHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.ShowHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.List.ToggleFilter()
		m.updateLayout(0)
		return m, nil

	case key.Matches(msg, m.keys.Open):
		p, ok := m.List.Selected()
		if !ok {
			return m, nil
		}
		if !m.debounce.Allow() {
			m.logger.Debug("activation dropped", "name", p.Name)
			return m, nil
		}
		return m, RequestDetailCmd(p)

	case key.Matches(msg, m.keys.Next):
		m.Pager.Advance()
		return m, m.fetcher.Flush()

	case key.Matches(msg, m.keys.Reload):
		m.Pager.Reload()
		return m, m.fetcher.Flush()

	case key.Matches(msg, m.keys.ReloadAll):
		m.Repo.Invalidate()
		m.Toasts.Add("Cache cleared", components.ToastInfo)
		m.Pager.Reload()
		return m, m.fetcher.Flush()
	}

	cmd := m.List.Update(msg)

	// Reaching the last row asks for the next page; ignored while busy
	if m.List.AtLastRow() {
		m.Pager.Advance()
	}

	return m, tea.Batch(cmd, m.fetcher.Flush())
}
