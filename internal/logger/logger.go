package logger

import (
	"os"

	"go.uber.org/zap"
)

// L is the process-wide logger. It defaults to a nop logger so packages can
// log before Init runs (and so tests stay quiet unless they opt in).
var L = zap.NewNop()

// Init builds the real logger. APP_ENV=production switches to the JSON
// production config; anything else gets the console development config.
func Init() {
	var (
		l   *zap.Logger
		err error
	)
	if os.Getenv("APP_ENV") == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	L = l
}
