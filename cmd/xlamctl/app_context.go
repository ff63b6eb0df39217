package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/xlamctl/internal/application/activation"
	cfgpkg "github.com/alexisbeaulieu97/xlamctl/internal/config"
	"github.com/alexisbeaulieu97/xlamctl/internal/domain/addin"
	"github.com/alexisbeaulieu97/xlamctl/internal/infrastructure/automation"
	infraconfig "github.com/alexisbeaulieu97/xlamctl/internal/infrastructure/config"
	"github.com/alexisbeaulieu97/xlamctl/internal/infrastructure/events"
	"github.com/alexisbeaulieu97/xlamctl/internal/infrastructure/locator"
	"github.com/alexisbeaulieu97/xlamctl/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/xlamctl/internal/ports"
	"github.com/alexisbeaulieu97/xlamctl/internal/report"
)

// dependencies are the host-facing seams replaced in tests.
type dependencies struct {
	env           locator.Environment
	creationTime  locator.CreationTimeFunc
	newAutomation func(addin.Platform, ports.Logger) (ports.Automation, error)
	isTerminal    func(io.Writer) bool
}

func hostDependencies() dependencies {
	return dependencies{
		env:           locator.HostEnvironment(),
		creationTime:  locator.CreationTime,
		newAutomation: automation.New,
		isTerminal:    writerIsTerminal,
	}
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// AppContext bundles the services created for one command invocation.
type AppContext struct {
	Config   *cfgpkg.Config
	Logger   ports.Logger
	Events   ports.EventPublisher
	Reporter *report.Reporter
	Notices  *report.Reporter // stderr
	Locate   *activation.LocateUseCase
	Enable   *activation.EnableUseCase
}

// buildAppContext loads configuration and wires the use cases. Log entries
// emitted before the level is known are buffered and replayed.
func buildAppContext(cmd *cobra.Command, flags *rootFlags, deps dependencies) (*AppContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = ports.WithCorrelationID(ctx, ports.GenerateCorrelationID())
	cmd.SetContext(ctx)

	stderr := cmd.ErrOrStderr()
	startup := logging.NewStartupBuffer(0)

	var loader ports.ConfigLoader = infraconfig.NewYAMLLoader(startup.Logger())
	cfg, err := loader.Load(ctx, flags.configPath)
	if err != nil {
		startup.Flush(fallbackLogger(stderr))
		return nil, &exitError{code: ExitConfiguration, err: err}
	}

	langValue := cfg.Language
	if flags.lang != "" {
		langValue = flags.lang
	}
	lang, err := report.ParseLanguage(langValue)
	if err != nil {
		return nil, usageError(err)
	}

	level := cfg.LogLevel
	if flags.verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Options{
		Writer:        stderr,
		Level:         level,
		HumanReadable: deps.isTerminal(stderr),
		Layer:         "cli",
		Component:     "xlamctl",
	})
	if err != nil {
		return nil, &exitError{code: ExitConfiguration, err: fmt.Errorf("create logger: %w", err)}
	}
	startup.Flush(logger)

	publisher := events.NewLoggingPublisher(logger.With("component", "events"))
	notices := report.New(lang, stderr)
	if _, err := publisher.Subscribe(ports.EventAddinRegistered, func(_ context.Context, event ports.DomainEvent) error {
		payload, _ := event.Payload().(map[string]interface{})
		name, _ := payload["name"].(string)
		_, err := fmt.Fprintln(stderr, notices.Registering(name))
		return err
	}); err != nil {
		return nil, err
	}

	loc := locator.New(locator.Options{
		Env:          deps.env,
		Dir:          cfg.AddinsDir,
		Policy:       cfg.MatchPolicy(),
		CreationTime: deps.creationTime,
		Logger:       logger,
	})

	platform := deps.env.Platform()
	var auto ports.Automation
	if platform.Supported() {
		auto, err = deps.newAutomation(platform, logger)
		if err != nil {
			logger.Warn(ctx, "automation channel unavailable", "platform", string(platform), "error", err)
			auto = nil
		}
	}

	locate := activation.NewLocateUseCase(loc, logger.With("component", "locate_usecase"), publisher)
	activate := activation.NewActivateUseCase(activation.ActivateOptions{
		Platform:     platform,
		Automation:   auto,
		Policy:       cfg.MatchPolicy(),
		PollInterval: cfg.PollInterval.Std(),
		PollTimeout:  cfg.PollTimeout.Std(),
		Logger:       logger.With("component", "activate_usecase"),
		Events:       publisher,
	})

	return &AppContext{
		Config:   cfg,
		Logger:   logger,
		Events:   publisher,
		Reporter: report.New(lang, cmd.OutOrStdout()),
		Notices:  notices,
		Locate:   locate,
		Enable:   activation.NewEnableUseCase(locate, activate),
	}, nil
}

// fallbackLogger receives buffered entries when configuration fails before
// the real logger exists.
func fallbackLogger(w io.Writer) ports.Logger {
	logger, err := logging.New(logging.Options{Writer: w, Level: cfgpkg.DefaultLogLevel, Layer: "cli", Component: "xlamctl"})
	if err != nil {
		return logging.NewNoOpLogger()
	}
	return logger
}
