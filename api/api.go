package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/TestingSDK2/marketplace-notifier/api/common"
	"github.com/TestingSDK2/marketplace-notifier/api/debug"
	"github.com/TestingSDK2/marketplace-notifier/app"
)

// API notifier api
type API struct {
	App    *app.App
	Config *common.Config
}

// New creates a new api
func New(a *app.App) (api *API, err error) {
	api = &API{App: a}
	api.Config, err = common.InitConfig()
	if err != nil {
		return nil, err
	}
	return api, nil
}

// Healthz reports that the process is up.
func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"OK","timestamp":"%s"}`, time.Now().Format(time.RFC3339))
}

// Init initializes the api
func (a *API) Init(r *mux.Router) {
	/* ****************** DEBUG ****************** */
	if a.Config.DebugEndpoints {
		debugAPI := debug.New(a.App.TriggerService)
		r.Handle("/debug/review-notification", a.handler(debugAPI.ReplayReviewNotification)).Methods(http.MethodPost)
	}
}
