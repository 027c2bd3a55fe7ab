package preview

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/huangsam/motionchart/core"
	"github.com/huangsam/motionchart/internal/contract"
	"github.com/huangsam/motionchart/internal/dataset"
	"github.com/huangsam/motionchart/schema"
)

// Execute opens the interactive preview on an empty engine and fetches the
// configured dataset once the program is running. A failed fetch stays on
// screen instead of ending the session.
func Execute(ctx context.Context, cfg *contract.Config) error {
	opts := core.OptionsFromConfig(cfg)
	opts.Scheduler = core.TimerScheduler{}
	e, err := core.New(opts)
	if err != nil {
		return err
	}
	defer e.Close()

	provider, err := dataset.NewProvider(cfg)
	if err != nil {
		return err
	}
	return Run(ctx, e, loadCmd(ctx, e, provider, cfg), cfg.ResizeDebounce)
}

// loadedMsg reports the end of a dataset fetch and the selection after it.
type loadedMsg struct {
	err error
}

// loadCmd fetches the dataset into the engine and applies the configured
// time key, highlight and hover.
func loadCmd(ctx context.Context, e *core.Engine, provider contract.DatasetProvider, cfg *contract.Config) tea.Cmd {
	return func() tea.Msg {
		err := <-e.LoadAsync(ctx, provider)
		if err == nil {
			err = core.ApplySelection(e, cfg)
		}
		return loadedMsg{err: err}
	}
}

// Run shows the engine in the terminal until the user quits or ctx is done.
// load runs once the program has started; it may be nil when the engine
// already holds its dataset. Run does not close the engine.
func Run(ctx context.Context, e *core.Engine, load tea.Cmd, debounce time.Duration) error {
	sizer := core.NewResizeAdapter(e, core.TimerScheduler{}, debounce)
	defer sizer.Stop()

	p := tea.NewProgram(New(e, sizer, load),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)

	// Ticks fire on timer goroutines; Send must not block the engine.
	unsubscribe := e.Subscribe(func(f schema.Frame) {
		go p.Send(frameMsg(f))
	})
	defer unsubscribe()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
