package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Luismorlan/newsdash/engine"
	"github.com/Luismorlan/newsdash/engine/modules"
	"github.com/Luismorlan/newsdash/server"
	"github.com/Luismorlan/newsdash/utils"
	Logger "github.com/Luismorlan/newsdash/utils/log"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the api server and background modules until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := buildServices(AppConfig)
		if err != nil {
			return err
		}
		if utils.IsProdEnv() {
			gin.SetMode(gin.ReleaseMode)
		}

		eventbus := gochannel.NewGoChannel(
			gochannel.Config{
				OutputChannelBuffer:            100,
				BlockPublishUntilSubscriberAck: false,
			},
			watermill.NewStdLogger(false, false),
		)

		deps := svc.dependencies()
		deps.Publisher = eventbus
		api := server.New(deps)

		// Initialize all engine modules here.
		mods := []engine.Module{
			// ApiServer serves the http api.
			modules.NewApiServer(
				modules.ApiServerConfig{Name: "api_server", Addr: AppConfig.SERVER_ADDR},
				api.Router(),
			),
			// CacheSweeper deletes expired enriched articles.
			modules.NewCacheSweeper(
				modules.CacheSweeperConfig{Name: "cache_sweeper", Interval: AppConfig.SweepInterval()},
				svc.store,
			),
			// ReadCounter counts article read events published by the api.
			modules.NewReadCounter(
				modules.ReadCounterConfig{Name: "read_counter"},
				eventbus,
			),
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		e := engine.NewEngine(ctx, mods, eventbus)

		shutdown := make(chan struct{})
		go func() {
			<-ctx.Done()
			e.Shutdown()
			close(shutdown)
		}()

		// blocking call.
		e.Run()
		stop()
		<-shutdown

		Logger.Log.Infoln("engine stopped execution")
		return nil
	},
}
