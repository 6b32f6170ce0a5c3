// Command ringview animates a ring of dots in a window
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lixenwraith/ringmotion/animation"
	"github.com/lixenwraith/ringmotion/audio"
	"github.com/lixenwraith/ringmotion/config"
	"github.com/lixenwraith/ringmotion/core"
	"github.com/lixenwraith/ringmotion/engine"
	"github.com/lixenwraith/ringmotion/event"
	"github.com/lixenwraith/ringmotion/parameter"
	"github.com/lixenwraith/ringmotion/playback"
	"github.com/lixenwraith/ringmotion/render/window"
	"github.com/lixenwraith/ringmotion/status"
)

var (
	configFlag   = flag.String("config", "", "Settings file (YAML); defaults when empty")
	elementsFlag = flag.Int("elements", -1, "Override element count")
	audioFlag    = flag.Bool("audio", false, "Play lifecycle cues")
	widthFlag    = flag.Int("width", parameter.WindowWidth, "Window width in pixels")
	heightFlag   = flag.Int("height", parameter.WindowHeight, "Window height in pixels")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	settings := config.Default()
	if *configFlag != "" {
		var err error
		if settings, err = config.Load(*configFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Settings: %v\n", err)
			os.Exit(1)
		}
	}
	if *elementsFlag >= 0 {
		settings.Elements = min(*elementsFlag, parameter.MaxElements)
	}
	if *audioFlag {
		settings.Audio = true
	}
	if err := settings.Verify(); err != nil {
		fmt.Fprintf(os.Stderr, "Settings: %v\n", err)
		os.Exit(1)
	}

	level, _ := config.ParseLevel(settings.Log)
	logger := config.NewLogger("RingView", level, nil)
	logger.Debug(settings.String())

	clock := engine.NewPausableClock(nil)
	reg := status.NewRegistry()
	events := event.NewQueue()
	sched := engine.NewScheduler(clock, reg)
	stage := playback.NewStage[int](clock, reg)

	cfg, err := settings.AnimatorConfig(&logger, reg, events)
	if err != nil {
		logger.Fatalf("animator config: %v", err)
	}
	anim, err := animation.New[int](cfg, stage, sched)
	if err != nil {
		logger.Fatalf("animator: %v", err)
	}

	elements := make([]int, settings.Elements)
	for i := range elements {
		elements[i] = i
	}

	p := window.Pipeline{
		Clock:    clock,
		Sched:    sched,
		Stage:    stage,
		Anim:     anim,
		Events:   events,
		Status:   reg,
		Circle:   settings.CircleValue(),
		Source:   settings.Angles.Source,
		Elements: elements,
	}

	if settings.Audio {
		sound := audio.NewSoundManager()
		if err := sound.Initialize(); err != nil {
			logger.Warningf("audio unavailable: %v", err)
		} else {
			defer sound.Cleanup()
			p.OnEvent = sound.HandleEvent
		}
	}

	game := window.NewGame(p, cfg.Defaults, *widthFlag, *heightFlag)
	if err := game.Run("ringview"); err != nil {
		logger.Errorf("window: %v", err)
		os.Exit(1)
	}
}
