package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/kelindar/event"
	"github.com/rs/zerolog/log"

	"github.com/thiefmaster/aorura/apis"
	"github.com/thiefmaster/aorura/comm"
	"github.com/thiefmaster/aorura/emu"
	"github.com/thiefmaster/aorura/pty"
	"github.com/thiefmaster/aorura/store"
)

// run emulates the LED on a pty at cfg.Path until ctx is done or a transport
// fails.
func run(ctx context.Context, cfg *appConfig) error {
	initial, err := cfg.initialState()
	if err != nil {
		return err
	}

	bus := event.NewDispatcher()

	if cfg.StateDB != "" {
		st, err := store.Open(cfg.StateDB)
		if err != nil {
			return err
		}
		defer st.Close()

		initial, err = restoreState(st, cfg.Path, initial)
		if err != nil {
			return err
		}
		unsubscribe := persistState(bus, st, cfg.Path)
		defer unsubscribe()
	}

	srv := emu.New(emu.WithInitialState(initial), emu.WithEvents(bus))
	log.Info().Stringer("state", initial).Bool("read_only", cfg.ReadOnly).Msg("emulator starting")

	p, err := pty.Open(cfg.Path)
	if err != nil {
		return err
	}
	defer p.Close()

	errc := make(chan error, 2)
	go func() {
		errc <- fmt.Errorf("pty transport: %w", srv.Serve(p.Master(), !cfg.ReadOnly))
	}()

	if cfg.Listen != "" {
		monitor := apis.NewMonitor(srv, bus, !cfg.ReadOnly)
		defer monitor.Close()

		httpSrv := &http.Server{Addr: cfg.Listen, Handler: monitor}
		defer httpSrv.Close()
		go func() {
			log.Info().Str("listen", cfg.Listen).Msg("monitor listening")
			if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				errc <- fmt.Errorf("monitor: %w", err)
			}
		}()
	}

	notifyReady()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		return nil
	case err := <-errc:
		return err
	}
}

func restoreState(st *store.Store, id string, fallback comm.State) (comm.State, error) {
	saved, ok, err := st.Load(id)
	if err != nil {
		return comm.State{}, err
	}
	if !ok {
		return fallback, nil
	}
	log.Info().Stringer("state", saved).Msg("restored saved state")
	return saved, nil
}

func persistState(bus *event.Dispatcher, st *store.Store, id string) func() {
	return event.Subscribe(bus, func(e emu.StateChanged) {
		if err := st.Save(id, e.Current); err != nil {
			log.Error().Err(err).Stringer("state", e.Current).Msg("could not save state")
		}
	})
}

func notifyReady() {
	sent, err := daemon.SdNotify(false, daemon.SdNotifyReady)
	if err != nil {
		log.Warn().Err(err).Msg("systemd notification failed")
		return
	}
	if sent {
		log.Debug().Msg("notified systemd")
	}
}
