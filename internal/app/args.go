package app

import (
	"log/slog"
	"strings"
)

// Version of the framekit runtime.
const Version = "1.0.0"

// ArgPrefix marks program arguments addressed to framekit itself.
const ArgPrefix = "framekit-"

// CheckArguments logs how the program was launched and handles framekit
// program arguments. Unknown ones are reported and otherwise ignored.
func CheckArguments(args []string, log *slog.Logger) {
	if len(args) == 0 {
		log.Info("[LAUNCHED SUCCESSFULLY] Program launched with no arguments.")
	} else {
		log.Info("[LAUNCHED SUCCESSFULLY] Program launched with arguments.", "args", args)
	}
	for _, arg := range args {
		switch arg {
		case ArgPrefix + "version":
			log.Info("framekit " + Version)
		default:
			if strings.HasPrefix(arg, ArgPrefix) {
				log.Warn("[ARGUMENT ERROR] Program launched with unknown program arguments.", "arg", arg)
			}
		}
	}
}
