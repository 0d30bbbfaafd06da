package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/TestingSDK2/marketplace-notifier/api"
	"github.com/TestingSDK2/marketplace-notifier/app"
	"github.com/TestingSDK2/marketplace-notifier/model"
	"github.com/TestingSDK2/marketplace-notifier/mongodatabase"
	"github.com/TestingSDK2/marketplace-notifier/queue"
	"github.com/TestingSDK2/marketplace-notifier/util"
)

func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "watches for created documents and notifies sellers",
		RunE:  run,
	}
}

func SetLogs() {
	now := time.Now()
	logFileName := now.Format("2006-01-02") + ".log"
	logFilePath := path.Join("./storage/logs", logFileName)

	if err := os.MkdirAll("./storage/logs", 0755); err != nil {
		logrus.Error("error creating log directory:", err)
		return
	}

	file, err := os.OpenFile(logFilePath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		logrus.Error("error opening log file:", err)
		return
	}

	// logs go to both file and terminal
	mw := io.MultiWriter(os.Stdout, file)
	logrus.SetOutput(mw)

	logrus.SetFormatter(&logrus.JSONFormatter{
		DisableHTMLEscape: true,
		TimestampFormat:   "2006-01-02 15:04:05",
	})
	logrus.SetReportCaller(true)
}

func run(cmd *cobra.Command, args []string) error {

	SetLogs()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := app.New(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	api, err := api.New(app)
	if err != nil {
		return err
	}

	sqsConf, err := queue.InitConfig()
	if err != nil {
		return err
	}

	go func() {
		defer util.RecoverGoroutinePanic(nil)
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
		<-ch
		logrus.Info("signal caught. shutting down...")
		cancel()
	}()

	handle := func(ctx context.Context, event model.Event) {
		app.HandleEvent(ctx, event)
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer util.RecoverGoroutinePanic(nil)
		defer wg.Done()
		defer cancel()
		serveAPI(ctx, api)
	}()

	if !app.Config.DisableChangeStreams {
		wg.Add(1)
		go func() {
			defer util.RecoverGoroutinePanic(nil)
			defer wg.Done()
			mongodatabase.NewWatcher(app.Repos.MongoDB, app.Repos.Cache, handle).Run(ctx, mongodatabase.DefaultBindings)
		}()
	}

	if sqsConf != nil {
		wg.Add(1)
		go func() {
			defer util.RecoverGoroutinePanic(nil)
			defer wg.Done()
			queue.New(sqsConf, handle).Run(ctx)
		}()
	}

	wg.Wait()
	return nil
}

func serveAPI(ctx context.Context, api *api.API) {
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "HEAD", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Origin", "X-Requested-With"}),
	)

	router := mux.NewRouter()
	router.Use(cors)
	router.HandleFunc("/healthz", api.Healthz)
	api.Init(router.PathPrefix("/api").Subrouter().StrictSlash(true))

	s := &http.Server{
		Addr:         fmt.Sprintf(":%d", api.Config.Port),
		Handler:      router,
		ReadTimeout:  api.Config.ReadTimeout * time.Second,
		WriteTimeout: api.Config.WriteTimeout * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer util.RecoverGoroutinePanic(nil)
		<-ctx.Done()
		if err := s.Shutdown(context.Background()); err != nil {
			logrus.Error(err)
		}
		close(done)
	}()

	logrus.Infof("serving api at http://127.0.0.1:%d", api.Config.Port)
	if err := s.ListenAndServe(); err != http.ErrServerClosed {
		logrus.Error(err)
		return
	}
	<-done
}
