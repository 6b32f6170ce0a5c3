// Command ringdemo animates a ring of glyphs in the terminal
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ringmotion/audio"
	"github.com/lixenwraith/ringmotion/config"
	"github.com/lixenwraith/ringmotion/core"
	"github.com/lixenwraith/ringmotion/engine"
)

var (
	configFlag   = flag.String("config", "", "Settings file (YAML); defaults when empty")
	logFlag      = flag.Bool("log", false, "Write logs to "+logDir+"/"+logFileName)
	elementsFlag = flag.Int("elements", -1, "Override element count")
	curveFlag    = flag.String("curve", "", "Override timing curve by name")
	audioFlag    = flag.Bool("audio", false, "Play lifecycle cues")
	aspectFlag   = flag.Float64("aspect", 0.5, "Cell width to height ratio of the terminal font")
	dumpFlag     = flag.Bool("dump-config", false, "Print the effective settings as YAML and exit")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	settings, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Settings: %v\n", err)
		os.Exit(1)
	}

	if *dumpFlag {
		data, err := settings.Marshal()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Encode settings: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		return
	}

	// Logger output must never reach the terminal while tcell owns it
	logFile := setupLogging(*logFlag)
	if logFile == nil {
		logFile, err = os.OpenFile(os.DevNull, os.O_WRONLY, 0)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Open %s: %v\n", os.DevNull, err)
			os.Exit(1)
		}
	}
	defer logFile.Close()

	level, _ := config.ParseLevel(settings.Log)
	logger := config.NewLogger("RingDemo", level, logFile)
	logger.Debug(settings.String())

	var sound *audio.SoundManager
	if settings.Audio {
		sound = audio.NewSoundManager()
		if err := sound.Initialize(); err != nil {
			logger.Warningf("audio unavailable: %v", err)
			sound = nil
		} else {
			defer sound.Cleanup()
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		logger.Errorf("create screen: %v", err)
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		logger.Errorf("init screen: %v", err)
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	core.SetCrashHook(screen.Fini)
	defer screen.Fini()

	d, err := newDemo(screen, settings, engine.NewMonotonicTimeProvider(), logger, sound)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}

	d.renderer.SetAspect(*aspectFlag)

	logger.Infof("started with %d element(s)", settings.Elements)
	d.run()
	logger.Info("exiting")
}

// loadSettings reads the settings file and applies flag overrides
func loadSettings() (config.Settings, error) {
	settings := config.Default()
	if *configFlag != "" {
		var err error
		if settings, err = config.Load(*configFlag); err != nil {
			return config.Settings{}, err
		}
	}
	if *elementsFlag >= 0 {
		settings.Elements = *elementsFlag
	}
	if *curveFlag != "" {
		settings.Curve = config.CurveSpec{Name: *curveFlag}
	}
	if *audioFlag {
		settings.Audio = true
	}
	return settings, settings.Verify()
}
