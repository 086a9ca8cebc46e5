package engine

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	Logger "github.com/Luismorlan/newsdash/utils/log"
)

// Engine manages shared resources and execution lifecycle of each module. It
// maintains a shared event bus
type Engine struct {
	// A list of modules that will be run in this Engine. Module's lifetime is
	// bound to Engine's lifetime. Each Module will be ran in a separate routine.
	Modules []Module

	// Root context the modules run on
	ctx context.Context

	// Cancel function for root context, used for graceful shutdown
	cancel context.CancelFunc

	// In process event bus shared by the modules, e.g. article read events
	// flowing from the api server to the history recorder.
	EventBus *gochannel.GoChannel
}

// Create a new Engine given the provided modules and event bus. The engine
// derives its own cancellable context from ctx.
func NewEngine(ctx context.Context, ms []Module, e *gochannel.GoChannel) *Engine {
	ctx, cancel := context.WithCancel(ctx)
	return &Engine{
		Modules:  ms,
		ctx:      ctx,
		cancel:   cancel,
		EventBus: e,
	}
}

// Execute all Engine modules and wait until all modules finish execution.
func (e *Engine) Run() {
	var wg sync.WaitGroup

	for idx := range e.Modules {
		wg.Add(1)
		go func(module Module) {
			defer wg.Done()
			Logger.Log.Infof("start engine module %s", module.Name())
			RunModuleWithGracefulRestart(e.ctx, module)
			Logger.Log.Infof("module %s finished execution", module.Name())
		}(e.Modules[idx])
	}

	// Block until all goroutine finished execution.
	wg.Wait()
}

// Shutdown cancels the modules' context, shuts every module down and closes
// the event bus.
func (e *Engine) Shutdown() {
	Logger.Log.Infoln("starting graceful shutdown process")
	e.cancel()

	var wg sync.WaitGroup
	for idx := range e.Modules {
		wg.Add(1)
		go func(module Module) {
			defer wg.Done()
			module.Shutdown()
			Logger.Log.Infof("module %s shut down", module.Name())
		}(e.Modules[idx])
	}
	wg.Wait()

	if e.EventBus != nil {
		if err := e.EventBus.Close(); err != nil {
			Logger.Log.Errorln("fail to close event bus: ", err)
		}
	}
}
