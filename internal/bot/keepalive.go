package bot

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

// KeepAliveHandler serves the liveness acknowledgment for the hosting platform
func KeepAliveHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "Bot is running!")
	})
	return mux
}

// StartKeepAlive serves the liveness endpoint in the background. A listen
// failure only disables the endpoint, the bot keeps running.
func StartKeepAlive(port string) {
	go func() {
		addr := ":" + port
		logrus.WithField("addr", addr).Info("Keep-alive endpoint started")
		if err := http.ListenAndServe(addr, KeepAliveHandler()); err != nil {
			logrus.WithError(err).Error("Keep-alive endpoint failed")
		}
	}()
}
