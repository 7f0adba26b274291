package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/ChukaCSTD/Macys-Clone/internal/app"
	"github.com/ChukaCSTD/Macys-Clone/internal/config"
	"github.com/ChukaCSTD/Macys-Clone/internal/domain"
	apperrors "github.com/ChukaCSTD/Macys-Clone/pkg/errors"
	"github.com/ChukaCSTD/Macys-Clone/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	var (
		cmd       = flag.String("cmd", "status", "command: status | login | logout | refresh | cart | like")
		email     = flag.String("email", "", "merchant email (login)")
		password  = flag.String("password", "", "merchant password (login)")
		productID = flag.String("product", "", "product id (like)")
	)
	flag.Parse()

	// Optional .env overlay; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New("storefront", cfg.LogLevel)
	log.Info("starting storefront client",
		slog.String("environment", cfg.Environment),
		slog.String("api", cfg.APIBaseURL),
	)

	ctx := context.Background()
	application, err := app.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}
	defer func() { _ = application.Close() }()

	// Downstream log lines pick the restored principal up via WithContext.
	if id := application.Session.PrincipalID(); id != "" {
		ctx = logger.WithPrincipalID(ctx, id)
	}

	switch *cmd {
	case "status":
		return status(ctx, application, log)
	case "login":
		return login(ctx, application, log, *email, *password)
	case "logout":
		application.Session.Clear(ctx)
		return nil
	case "refresh":
		if application.Session.PrincipalID() == "" {
			return apperrors.SessionMissing("refresh")
		}
		return application.Catalog.Refresh(ctx)
	case "cart":
		if application.Session.PrincipalID() == "" {
			return apperrors.SessionMissing("cart")
		}
		return cart(ctx, application, log)
	case "like":
		if *productID == "" {
			return fmt.Errorf("like requires -product")
		}
		liked := application.Likes.Toggle(ctx, *productID)
		log.Info("like toggled", slog.String("product_id", *productID), slog.Bool("liked", liked))
		return nil
	default:
		return fmt.Errorf("unknown command: %q", *cmd)
	}
}

func status(ctx context.Context, a *app.App, log *slog.Logger) error {
	if sess, ok := a.Session.Current(); ok {
		log.Info("session",
			slog.String("principal_id", sess.PrincipalID),
			slog.String("kind", string(sess.Kind)),
		)
	} else {
		log.Info("session", slog.String("state", "unauthenticated"))
	}
	log.Info("catalog", slog.Int("products", len(a.Catalog.Products())))
	log.Info("cart", slog.Int("items", a.Cart.ItemCount()))
	return nil
}

func login(ctx context.Context, a *app.App, log *slog.Logger, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("login requires -email and -password")
	}

	merchant, err := a.API.LoginMerchant(ctx, email, password)
	if err != nil {
		return fmt.Errorf("merchant login: %w", err)
	}

	err = a.Session.Establish(ctx, domain.Session{
		PrincipalID: merchant.ID,
		Token:       merchant.Token,
		Kind:        domain.KindMerchant,
	})
	if err != nil {
		return fmt.Errorf("establish session: %w", err)
	}

	ctx = logger.WithPrincipalID(ctx, merchant.ID)
	return a.Catalog.Refresh(ctx)
}

func cart(ctx context.Context, a *app.App, log *slog.Logger) error {
	if err := a.Cart.Fetch(ctx); err != nil {
		return err
	}

	total, unresolved := a.Cart.Total(a.Catalog.Get)
	log.Info("cart fetched",
		slog.Int("lines", len(a.Cart.Lines())),
		slog.Float64("total", total),
		slog.Int("unresolved_lines", len(unresolved)),
	)
	for _, l := range unresolved {
		log.Warn("cart line has no resolvable product",
			slog.String("product_id", l.ProductID),
			slog.String("selected_size", l.SelectedSize),
		)
	}
	return nil
}
