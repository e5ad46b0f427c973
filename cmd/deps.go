package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/abhisek/mcqgenie/internal/config"
	"github.com/abhisek/mcqgenie/internal/events"
	"github.com/abhisek/mcqgenie/internal/llm"
	"github.com/abhisek/mcqgenie/internal/mcqgen"
	"github.com/abhisek/mcqgenie/internal/service"
	"github.com/abhisek/mcqgenie/internal/store"
	"github.com/spf13/cobra"
)

// backend holds the long-lived dependencies shared by the commands.
type backend struct {
	cfg       config.Config
	store     *store.Store
	sessions  store.SessionRepo
	provider  llm.Provider
	publisher events.Publisher
	closers   []io.Closer
}

// backendOpts selects the optional parts of a backend.
type backendOpts struct {
	// LLM builds a provider. Commands that never call the model skip it.
	LLM bool
	// Events connects the RabbitMQ publisher when MCQGENIE_AMQP_URL is set.
	Events bool
}

func openBackend(ctx context.Context, cmd *cobra.Command, opts backendOpts) (*backend, error) {
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	st, err := openStore(cmd, cfg)
	if err != nil {
		return nil, err
	}
	b := &backend{cfg: cfg, store: st, sessions: st.SessionRepo(), publisher: events.Nop{}}
	b.closers = append(b.closers, st)

	if cfg.SessionBackend == config.SessionBackendRedis {
		repo, err := store.NewRedisSessionRepo(ctx, store.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			b.Close()
			return nil, err
		}
		b.sessions = repo
		b.closers = append(b.closers, repo)
	}

	if opts.LLM {
		p, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("configure LLM provider: %w", err)
		}
		b.provider = p
	}

	if opts.Events && cfg.AMQPURL != "" {
		pub, err := events.NewRabbitMQPublisher(cfg.AMQPURL)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.publisher = pub
		b.closers = append(b.closers, pub)
	}

	return b, nil
}

// tests builds the test service. Generation is only available when the
// backend was opened with an LLM provider.
func (b *backend) tests() *service.TestService {
	var gen mcqgen.Generator
	if b.provider != nil {
		gen = mcqgen.New(b.provider, mcqgen.DefaultConfig())
	}
	return service.NewTestService(service.TestConfig{
		Sessions:         b.sessions,
		Generator:        gen,
		Publisher:        b.publisher,
		MaxQuestions:     b.cfg.MaxMCQCount,
		TimeLimitMinutes: b.cfg.TestTimeLimitMinutes,
	})
}

func (b *backend) chat() *service.ChatService {
	return service.NewChatService(service.ChatConfig{
		Chats:    b.store.ChatRepo(),
		Provider: b.provider,
	})
}

// ping checks every backing store.
func (b *backend) ping(ctx context.Context) error {
	if err := b.store.Ping(ctx); err != nil {
		return err
	}
	if r, ok := b.sessions.(*store.RedisSessionRepo); ok {
		return r.Ping(ctx)
	}
	return nil
}

// Close releases resources in reverse order of acquisition.
func (b *backend) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		errs = append(errs, b.closers[i].Close())
	}
	return errors.Join(errs...)
}
