package goroutine

import (
	"runtime/debug"

	"github.com/x-xyz/gameanalytics/base/log"
)

type PanicEvent struct {
	Panic interface{}
	Stack []byte
}

type options struct {
	name           string
	afterEnded     func()
	afterRecovered func(panic interface{}, stack []byte)
}

type Option func(*options)

// WithName tags the panic log with the goroutine's purpose.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

func WithAfterEnded(f func()) Option {
	return func(o *options) {
		o.afterEnded = f
	}
}

func WithAfterRecovered(f func(panic interface{}, stack []byte)) Option {
	return func(o *options) {
		o.afterRecovered = f
	}
}

// RecoverableGo runs f in a goroutine. The returned channel yields the panic if f panicked
// and is closed without a value otherwise.
func RecoverableGo(f func(), opts ...Option) <-chan *PanicEvent {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	panicChan := make(chan *PanicEvent, 1)
	go func() {
		defer func() {
			if o.afterEnded != nil {
				o.afterEnded()
			}
			if p := recover(); p != nil {
				stack := debug.Stack()
				log.Log().WithFields(log.Fields{
					"err":   p,
					"name":  o.name,
					"stack": string(stack),
				}).Error("panic")
				if o.afterRecovered != nil {
					o.afterRecovered(p, stack)
				}
				panicChan <- &PanicEvent{p, stack}
			}
			close(panicChan)
		}()
		f()
	}()
	return panicChan
}
