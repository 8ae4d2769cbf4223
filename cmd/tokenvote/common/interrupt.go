package common

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

var ErrInterrupted = errors.New("interrupted")

func Interrupt(cancel <-chan struct{}) error {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(c)

	select {
	case sig := <-c:
		return fmt.Errorf("%w: received signal %s", ErrInterrupted, sig)
	case <-cancel:
		return nil
	}
}
