package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/cpstamp/audio"
	"github.com/lixenwraith/cpstamp/catalog"
	"github.com/lixenwraith/cpstamp/config"
	"github.com/lixenwraith/cpstamp/parameter"
	"github.com/lixenwraith/cpstamp/registry"
	"github.com/lixenwraith/cpstamp/render"
	"github.com/lixenwraith/cpstamp/service"
	"github.com/lixenwraith/cpstamp/stamp"
	"github.com/lixenwraith/cpstamp/status"
)

// listTop is the first row below the popup panel
const listTop = (parameter.PanelImageHeight+parameter.CellPixelHeight-1)/parameter.CellPixelHeight + 1

func newDemoCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the stamp popup in the terminal; number keys earn stamps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDemo(cmd.Context())
		},
	}
	defaults := config.NewViper()
	cmd.Flags().Int("fps", defaults.GetInt(config.KeyDemoFPS), "Popup ticks per second")
	cmd.Flags().Bool("sound", defaults.GetBool(config.KeySound), "Play the earn chime")
	cmd.Flags().String("overflow", defaults.GetString(config.KeyOverflow), "Earn queue overflow policy (drop-oldest, reject)")
	bindFlag(a.v, cmd, config.KeyDemoFPS, "fps")
	bindFlag(a.v, cmd, config.KeySound, "sound")
	bindFlag(a.v, cmd, config.KeyOverflow, "overflow")
	return cmd
}

func (a *app) runDemo(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := a.loadCatalog()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	defer func() {
		if r := recover(); r != nil {
			handleCrash(screen, r)
		}
	}()

	var services service.Group
	defer func() {
		if err := services.Stop(); err != nil {
			a.logger.Warn("service shutdown", zap.Error(err))
		}
	}()

	player := audio.NewPlayer(audio.WithPlayerLogger(a.logger))
	if err := services.Start(player); err != nil {
		return err
	}

	var updates <-chan *catalog.Catalog
	if w, err := catalog.NewWatcher(a.cfg.Catalog, a.logger); err != nil {
		a.logger.Warn("catalog watcher unavailable", zap.Error(err))
	} else if err := services.StartOptional(w); err != nil {
		a.logger.Warn("catalog watcher not started", zap.Error(err))
	} else {
		updates = w.Updates
	}

	d, err := newDemo(screen, render.NewBundle(player), a.cfg, a.logger)
	if err != nil {
		return err
	}
	defer d.shutdown()

	if err := d.load(c); err != nil {
		return err
	}

	events := make(chan tcell.Event, 16)
	goSafe(screen, func() {
		defer close(events)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	})

	return d.run(ctx, events, updates, a.cfg.DemoFPS)
}

// stampRef points the number keys at a stamp
type stampRef struct {
	cat *registry.Category
	id  uint32
}

// demo is the terminal host driving one stamp system
type demo struct {
	screen tcell.Screen
	host   *render.Screen
	sys    *stamp.System
	logger *zap.Logger

	stamps []stampRef
	sound  bool
	status string
	done   bool
}

func newDemo(screen tcell.Screen, bundle *render.Bundle, cfg config.Config, logger *zap.Logger) (*demo, error) {
	sys, err := stamp.New(bundle,
		stamp.WithDataDir(cfg.DataDir),
		stamp.WithLogger(logger),
		stamp.WithOverflowPolicy(cfg.Overflow),
		stamp.WithSoundEnabled(cfg.Sound),
	)
	if err != nil {
		return nil, err
	}
	return &demo{
		screen: screen,
		host:   render.NewScreen(screen, bundle, logger),
		sys:    sys,
		logger: logger,
		sound:  cfg.Sound,
		status: "ready",
	}, nil
}

// load opens and seeds every catalog category not yet open
func (d *demo) load(c *catalog.Catalog) error {
	open := make(map[string]*registry.Category)
	for _, cat := range d.sys.Categories() {
		open[cat.Name()] = cat
	}

	for _, def := range c.Categories {
		cat, ok := open[def.Name]
		if !ok {
			var err error
			if cat, err = d.sys.Open(def.Kind, def.Name, def.Key); err != nil {
				return err
			}
		}
		catalog.Seed(cat, def)
	}

	d.stamps = d.stamps[:0]
	for _, cat := range d.sys.Categories() {
		for _, r := range cat.Records() {
			d.stamps = append(d.stamps, stampRef{cat: cat, id: r.ID})
		}
	}
	d.drawBackground()
	return nil
}

func (d *demo) run(ctx context.Context, events <-chan tcell.Event, updates <-chan *catalog.Catalog, fps int) error {
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	d.drawBackground()
	for !d.done {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			d.handleEvent(ev)
		case c, ok := <-updates:
			if !ok {
				updates = nil
				continue
			}
			if err := d.load(c); err != nil {
				d.logger.Warn("catalog reload not applied", zap.Error(err))
				d.status = "catalog reload failed"
			} else {
				d.status = "catalog reloaded"
			}
		case <-ticker.C:
			d.frame()
		}
	}
	return nil
}

// frame erases last tick's panel, draws this tick's, and flushes once
func (d *demo) frame() {
	d.host.Execute(d.sys.Restore())
	d.host.Execute(d.sys.Tick(true))
	d.drawStatus()
	d.screen.Show()
}

func (d *demo) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		d.screen.Sync()
		d.drawBackground()
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q':
			d.done = true
		case ev.Rune() >= '1' && ev.Rune() <= '9':
			d.earn(int(ev.Rune() - '1'))
		case ev.Rune() == 'c':
			for _, cat := range d.sys.Categories() {
				cat.ClearAll()
			}
			d.status = "cleared all stamps"
			d.drawList()
		case ev.Rune() == 's':
			d.sound = !d.sound
			d.sys.SetSoundEnabled(d.sound)
			d.status = fmt.Sprintf("sound %v", d.sound)
		}
	}
}

func (d *demo) earn(i int) {
	if i < 0 || i >= len(d.stamps) {
		d.status = "no stamp on that key"
		return
	}
	ref := d.stamps[i]
	rec, _ := ref.cat.Lookup(ref.id)
	if d.sys.Earn(ref.cat, ref.id) {
		d.status = fmt.Sprintf("earned %q", rec.Title)
	} else {
		d.status = fmt.Sprintf("%q already earned", rec.Title)
	}
	d.drawList()
}

func (d *demo) shutdown() {
	if err := d.sys.Shutdown(); err != nil {
		d.logger.Error("stamp shutdown", zap.Error(err))
	}
}

func (d *demo) drawBackground() {
	w, h := d.screen.Size()
	style := tcell.StyleDefault.Foreground(tcell.ColorDimGray)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			ch := ' '
			if (x+y)%4 == 0 {
				ch = '·'
			}
			d.screen.SetContent(x, y, ch, nil, style)
		}
	}
	d.drawList()
	d.drawStatus()
}

func (d *demo) drawList() {
	style := tcell.StyleDefault.Foreground(tcell.ColorSilver)
	for i, ref := range d.stamps {
		rec, ok := ref.cat.Lookup(ref.id)
		if !ok {
			continue
		}
		mark := ' '
		if rec.Earned {
			mark = 'x'
		}
		key := ' '
		if i < 9 {
			key = rune('1' + i)
		}
		d.text(1, listTop+i, style, fmt.Sprintf("%c [%c] %-10s %s", key, mark, ref.cat.Name(), rec.Title))
	}
}

func (d *demo) drawStatus() {
	_, h := d.screen.Size()
	ints := d.sys.Metrics().IntSnapshot()
	last := d.sys.Metrics().Strings.Get(status.KeyLastEarned).Load()
	line := fmt.Sprintf(" 1-9 earn  c clear  s sound  q quit | earned %d dropped %d shown %d last %q | %s",
		ints[status.KeyStampsEarned], ints[status.KeyQueueDropped], ints[status.KeyAnimatorCycles], last, d.status)
	style := tcell.StyleDefault.Reverse(true)
	d.clearRow(h-1, style)
	d.text(0, h-1, style, line)
}

func (d *demo) clearRow(y int, style tcell.Style) {
	w, _ := d.screen.Size()
	for x := 0; x < w; x++ {
		d.screen.SetContent(x, y, ' ', nil, style)
	}
}

func (d *demo) text(x, y int, style tcell.Style, s string) {
	w, h := d.screen.Size()
	if y < 0 || y >= h {
		return
	}
	for _, r := range s {
		if x >= w {
			return
		}
		d.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
