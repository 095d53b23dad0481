// Command arsip is a terminal client for the document archive backend.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/arsipkita/arsip-cli/internal/adapters/driven/archive"
	configfile "github.com/arsipkita/arsip-cli/internal/adapters/driven/config/file"
	"github.com/arsipkita/arsip-cli/internal/adapters/driven/feed"
	"github.com/arsipkita/arsip-cli/internal/adapters/driven/storage/sqlite"
	"github.com/arsipkita/arsip-cli/internal/adapters/driving/cli"
	"github.com/arsipkita/arsip-cli/internal/core/domain"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driving"
	"github.com/arsipkita/arsip-cli/internal/core/services"
	"github.com/arsipkita/arsip-cli/internal/logger"
)

// defaultBaseURL is used when neither ARSIP_BASE_URL nor the config
// file names a backend.
const defaultBaseURL = "http://localhost:8000"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for development setups.
	_ = godotenv.Load()

	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}

	tokens, err := configfile.NewTokenStore("")
	if err != nil {
		return fmt.Errorf("opening token store: %w", err)
	}

	baseURL := os.Getenv("ARSIP_BASE_URL")
	if baseURL == "" {
		baseURL = configStore.GetString(driven.ConfigKeyBaseURL)
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	client := archive.NewClient(baseURL, tokens, archive.WithUnauthorizedHook(func() {
		// A rejected token is useless; drop it so the next command
		// prompts for a fresh sign-in.
		if err := tokens.Clear(); err != nil {
			logger.Debug("clearing rejected token: %v", err)
		}
	}))

	// Cache failures degrade to online-only operation.
	var archiveCache driven.ArchiveCache
	if cache, err := sqlite.NewCache(""); err != nil {
		logger.Debug("offline cache unavailable: %v", err)
	} else {
		archiveCache = cache
	}

	documents := archive.NewDocumentGateway(client)
	staffDocs := archive.NewStaffDocumentGateway(client)
	resolver := services.NewResolverService(documents, staffDocs)

	notificationGateway := archive.NewNotificationGateway(client)
	notifications := func(session domain.Session) driving.NotificationCenter {
		var opts []services.NotificationOption
		if archiveCache != nil {
			opts = append(opts, services.WithNotificationCache(archiveCache))
		}
		if interval := configStore.GetInt(driven.ConfigKeyPollInterval); interval > 0 {
			opts = append(opts, services.WithPollInterval(time.Duration(interval)*time.Second))
		}
		if feedEnabled(configStore) {
			opts = append(opts, services.WithFeed(feed.NewWebsocketFeed(baseURL)))
		}
		return services.NewNotificationService(notificationGateway, resolver, session, opts...)
	}

	cli.SetServices(&cli.Services{
		Auth:          services.NewAuthService(archive.NewAuthGateway(client), tokens),
		Archive:       services.NewArchiveService(documents, staffDocs, archiveCache),
		Resolver:      resolver,
		Orders:        services.NewOrderService(archive.NewOrderGateway(client), documents),
		Users:         services.NewUserService(archive.NewUserGateway(client)),
		Notifications: notifications,
		Config:        configStore,
		TokenWatch:    tokens,
	})

	return cli.Execute()
}

// feedEnabled reports whether the live push channel should be used.
// The feed is on unless the config explicitly disables it.
func feedEnabled(store driven.ConfigStore) bool {
	if _, ok := store.Get(driven.ConfigKeyFeedEnabled); !ok {
		return true
	}
	return store.GetBool(driven.ConfigKeyFeedEnabled)
}
