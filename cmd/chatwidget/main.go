package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	clay "github.com/go-go-golems/clay/pkg"
	"github.com/go-go-golems/glazed/pkg/cmds/logging"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/go-go-golems/chatwidget/pkg/client"
	"github.com/go-go-golems/chatwidget/pkg/config"
	"github.com/go-go-golems/chatwidget/pkg/linemode"
	"github.com/go-go-golems/chatwidget/pkg/ui"
	"github.com/go-go-golems/chatwidget/pkg/widget"
)

type app struct {
	settings *config.Settings
	mode     string
}

func newRootCmd() (*cobra.Command, error) {
	a := &app{}
	cmd := &cobra.Command{
		Use:           "chatwidget",
		Short:         "chatwidget talks to a chat server's /get_response endpoint",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), os.Stdin, cmd.OutOrStdout())
		},
	}
	config.AddFlags(cmd.PersistentFlags())
	// adds --config and the logging flags, reads $HOME/.chatwidget/config.yaml and CHATWIDGET_* env
	if err := clay.InitViper(config.AppName, cmd); err != nil {
		return nil, err
	}
	return cmd, nil
}

func (a *app) init() error {
	if err := logging.InitLoggerFromViper(); err != nil {
		return err
	}
	s, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	a.settings = s
	a.mode = resolveMode(s.Mode, isatty.IsTerminal(os.Stdin.Fd()), isatty.IsTerminal(os.Stdout.Fd()))

	// the TUI owns the screen: without a log file, log lines would paint over it
	if a.mode == config.ModeTUI && viper.GetString("log-file") == "" {
		log.Logger = zerolog.Nop()
	}
	return nil
}

// resolveMode picks the surface: auto means the TUI only when both ends are terminals.
func resolveMode(mode string, stdinTTY, stdoutTTY bool) string {
	if mode != config.ModeAuto {
		return mode
	}
	if stdinTTY && stdoutTTY {
		return config.ModeTUI
	}
	return config.ModeLine
}

func (a *app) run(ctx context.Context, in io.Reader, out io.Writer) error {
	s := a.settings
	c, err := client.New(s.BaseURL,
		client.WithEndpoint(s.Endpoint),
		client.WithHTTPClient(client.NewHTTPClient(s.RequestTimeout)),
	)
	if err != nil {
		return errors.Wrap(err, "create client")
	}
	log.Info().Str("component", "cmd").Str("url", c.URL()).Str("mode", a.mode).Msg("chatwidget starting")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		surface widget.Surface
		input   widget.InputField
		runUI   func(context.Context, *widget.Controller) error
	)
	revealInterval := s.RevealInterval

	switch a.mode {
	case config.ModeTUI:
		transcript := ui.NewTranscript()
		tuiInput := ui.NewInput("Type your message...")
		surface, input = transcript, tuiInput
		runUI = func(ctx context.Context, controller *widget.Controller) error {
			m := ui.NewModel(controller, transcript, tuiInput,
				ui.WithTitle(s.Title),
				ui.WithSuggestions(s.Suggestions),
			)
			return ui.Run(ctx, m, tea.WithAltScreen(), tea.WithInput(in), tea.WithOutput(out))
		}
	default:
		lineInput := &linemode.Input{}
		surface, input = linemode.NewSurface(out), lineInput
		revealInterval = 0
		runUI = func(ctx context.Context, controller *widget.Controller) error {
			return linemode.Run(ctx, controller, lineInput, in)
		}
	}

	controller, err := widget.NewController(surface, input, c,
		widget.WithRevealInterval(revealInterval),
		widget.WithDiscardSuperseded(s.DiscardSuperseded),
	)
	if err != nil {
		return err
	}
	controller.Start(ctx)

	eg := errgroup.Group{}
	eg.Go(func() error {
		defer cancel()
		return runUI(ctx, controller)
	})
	eg.Go(func() error {
		<-ctx.Done()
		controller.Close()
		return nil
	})

	err = eg.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func main() {
	root, err := newRootCmd()
	cobra.CheckErr(err)
	cobra.CheckErr(root.Execute())
}
