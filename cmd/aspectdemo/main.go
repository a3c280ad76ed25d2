// Command aspectdemo builds a small widget tree, runs a few frames mutating
// it in between, and saves the last frame as a PNG.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gg"
	"github.com/mattn/go-isatty"

	"github.com/AnatoleLucet/aspect"
	"github.com/AnatoleLucet/aspect/theme"
	"github.com/AnatoleLucet/aspect/widget"
)

func main() {
	var (
		width     = flag.Int("width", 480, "image width")
		height    = flag.Int("height", 320, "image height")
		output    = flag.String("output", "aspect.png", "output file")
		themePath = flag.String("theme", "", "YAML style sheet")
		verbose   = flag.Bool("v", false, "log validation passes")
	)
	flag.Parse()

	aspect.SetLogger(newLogger(*verbose))

	t := theme.Default()
	if *themePath != "" {
		var err error
		if t, err = theme.LoadFile(*themePath); err != nil {
			log.Fatal(err)
		}
	}

	stage := widget.NewStage(*width, *height,
		widget.WithTheme(t),
		widget.WithBackground(gg.Hex("#f5f5f5")),
	)
	defer stage.Close()

	title := widget.NewLabel("aspect", widget.WithName("title"), widget.WithStyle("title"))
	body := widget.NewLabel("Aspects are recomputed lazily, dependencies first.",
		widget.WithName("body"))
	body.SetWrap(true)

	toolbar := widget.NewBox(widget.WithName("toolbar"), widget.WithStyle("toolbar"))
	counter := widget.NewLabel("frame 0", widget.WithName("counter"))
	hidden := widget.NewLabel("toggled", widget.WithName("hidden"))
	toolbar.Add(counter, hidden)

	stage.Frame(func() {
		stage.Root().Add(title, body, toolbar)
	})

	for i := 1; i <= 3; i++ {
		stage.Frame(func() {
			counter.SetText(fmt.Sprintf("frame %d", i))
			hidden.SetVisible(i%2 == 0)
			toolbar.SetAlpha(1 - float64(i)*0.2)
		})
	}

	if err := stage.SavePNG(*output); err != nil {
		log.Fatal(err)
	}

	slog.Info("saved", "output", *output, "frames", aspect.Frames(), "renders", stage.Renders())
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if isatty.IsTerminal(os.Stderr.Fd()) {
		h = slog.NewTextHandler(os.Stderr, opts)
	} else {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}

	l := slog.New(h)
	slog.SetDefault(l)
	return l
}
