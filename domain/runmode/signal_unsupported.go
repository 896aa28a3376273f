//go:build js || wasip1

package runmode

import "os"

func subscribeInterrupt(chan<- os.Signal) (func(), error) {
	return nil, ErrSignalsUnsupported
}
