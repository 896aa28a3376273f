//go:build !js && !wasip1

package runmode

import (
	"os"
	"os/signal"
)

func subscribeInterrupt(ch chan<- os.Signal) (func(), error) {
	signal.Notify(ch, os.Interrupt)
	return func() { signal.Stop(ch) }, nil
}
