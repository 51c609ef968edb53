package llm

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// reply returns a Generator that answers every prompt with text.
func reply(text string) Generator {
	return GeneratorFunc(func(context.Context, Request) (string, error) {
		return text, nil
	})
}

// fail returns a Generator that fails every call with err.
func fail(err error) Generator {
	return GeneratorFunc(func(context.Context, Request) (string, error) {
		return "", err
	})
}

// hang returns a Generator that blocks until its deadline passes.
func hang() Generator {
	return GeneratorFunc(func(ctx context.Context, _ Request) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
}

// counting wraps a Generator and records how many times it was called.
type counting struct {
	next  Generator
	calls atomic.Int32
	last  atomic.Value
}

func (c *counting) Generate(ctx context.Context, req Request) (string, error) {
	c.calls.Add(1)
	c.last.Store(req)
	return c.next.Generate(ctx, req)
}

func (c *counting) lastRequest() Request {
	req, _ := c.last.Load().(Request)
	return req
}
