package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"

	"github.com/lox/skycast/internal/api"
	"github.com/lox/skycast/internal/imagegen"
	"github.com/lox/skycast/internal/locate"
	"github.com/lox/skycast/internal/logger"
	"github.com/lox/skycast/internal/openweather"
	"github.com/lox/skycast/internal/render"
	"github.com/lox/skycast/internal/state"
	"github.com/lox/skycast/internal/store"
)

type Globals struct {
	LogLevel string `help:"Log level." default:"info" env:"LOG_LEVEL" enum:"debug,info,warn,error"`
	LogFile  string `help:"Also write logs to this file, rotated." env:"LOG_FILE" type:"path"`
	APIKey   string `name:"api-key" help:"OpenWeatherMap API key." env:"OPENWEATHER_API_KEY"`
}

func (g *Globals) logger() (zerolog.Logger, error) {
	return logger.New(g.LogLevel, g.LogFile)
}

// A missing key is not fatal; provider calls fail authentication.
func (g *Globals) weatherClient(log zerolog.Logger) *openweather.Client {
	if g.APIKey == "" {
		log.Warn().Msg("OPENWEATHER_API_KEY is not set; weather requests will be rejected")
	}
	return openweather.NewClient(g.APIKey, openweather.WithLogger(log))
}

type CLI struct {
	Globals

	EnvFile kongdotenv.ENVFileConfig `name:"env-file" help:"Path to a .env file." default:".env"`

	Serve ServeCmd `cmd:"" default:"withargs" help:"Run the web server."`
	Show  ShowCmd  `cmd:"" help:"Print the weather for a place and exit."`
}

type ServeCmd struct {
	Addr           string        `help:"Listen address." default:":8080" env:"ADDR"`
	DB             string        `help:"SQLite database for session preferences; empty disables persistence." default:"data/skycast.db" env:"SKYCAST_DB" type:"path"`
	ImageDir       string        `help:"Directory for generated banner images." default:"data/images" env:"IMAGE_DIR" type:"path"`
	OpenAIKey      string        `name:"openai-api-key" help:"Enables AI banner images." env:"OPENAI_API_KEY"`
	MapZoom        int           `help:"Map zoom level." default:"12"`
	SessionIdle    time.Duration `help:"Drop in-memory sessions idle this long." default:"24h"`
	PrefsRetention time.Duration `help:"Delete saved preferences untouched this long." default:"720h"`
}

func (c *ServeCmd) Run(g *Globals) error {
	log, err := g.logger()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	owm := g.weatherClient(log)

	var prefs state.PrefStore
	if c.DB != "" {
		if err := os.MkdirAll(filepath.Dir(c.DB), 0o755); err != nil {
			return fmt.Errorf("create db dir: %w", err)
		}
		st, err := store.Open(ctx, c.DB, log)
		if err != nil {
			return err
		}
		defer st.Close()
		prefs = st
		go st.RunPruner(ctx, time.Hour, c.PrefsRetention)
		log.Info().Str("path", c.DB).Msg("session preferences enabled")
	}

	sessions := state.NewRegistry(func() *state.Controller {
		return state.NewController(owm, owm, log)
	}, prefs, log)
	go sessions.RunSweeper(ctx, time.Minute, c.SessionIdle)

	var banners *imagegen.Banners
	if cache, err := imagegen.NewCache(c.ImageDir); err != nil {
		log.Warn().Err(err).Msg("banner images disabled")
	} else {
		var gen imagegen.BannerGenerator
		if generator, err := imagegen.NewGenerator(c.OpenAIKey, log); err != nil {
			log.Info().Err(err).Msg("banner generation disabled")
		} else {
			gen = generator
		}
		banners = imagegen.NewBanners(cache, gen, log)
	}

	srv := api.NewServer(sessions, banners, api.Config{Addr: c.Addr, MapZoom: c.MapZoom}, log)
	return srv.Run(ctx)
}

type ShowCmd struct {
	City string   `help:"City to look up." xor:"place"`
	Lat  *float64 `help:"Latitude." xor:"place" and:"coords"`
	Lon  *float64 `help:"Longitude." and:"coords"`
	Dark bool     `help:"Use the dark palette for the share card."`
	Card string   `help:"Also write a share card PNG to this path." type:"path"`
}

var errWeather = errors.New("no weather")

func (c *ShowCmd) Run(g *Globals) error {
	log, err := g.logger()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	owm := g.weatherClient(log)
	ctrl := state.NewController(owm, owm, log)
	if c.Dark {
		ctrl.ToggleDarkMode()
	}

	switch {
	case c.City != "":
		ctrl.Search(ctx, c.City)
	case c.Lat != nil && c.Lon != nil:
		ctrl.Startup(ctx, locate.Fixed{Lat: *c.Lat, Lon: *c.Lon})
	default:
		ctrl.Startup(ctx, locate.NewIPSource(""))
	}

	snap := ctrl.Snapshot()
	page := render.BuildPage(snap, render.Options{})
	text, err := render.NewRenderer().Text(page)
	if err != nil {
		return err
	}
	fmt.Println(text)

	if c.Card != "" && page.Current != nil {
		data, err := imagegen.RenderCard(imagegen.CardData{
			City:        page.Current.City,
			Temp:        page.Current.Temp,
			Description: page.Current.Description,
			Palette:     page.Palette,
		})
		if err != nil {
			return err
		}
		if err := os.WriteFile(c.Card, data, 0o644); err != nil {
			return fmt.Errorf("write card: %w", err)
		}
	}

	if msg := snap.Error(); msg != "" {
		return fmt.Errorf("%w: %s", errWeather, msg)
	}
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("skycast"),
		kong.Description("Current weather and a five-day forecast for your location or any city."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run(&cli.Globals))
}
