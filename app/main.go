package main

import (
	"html/template"
	"log/slog"
	"os"
	"time"

	"github.com/marrowstone/inkpress/internal/blogservice"
	"github.com/marrowstone/inkpress/internal/common"
	"github.com/marrowstone/inkpress/internal/mailservice"
	"github.com/marrowstone/inkpress/internal/userservice"
)

type application struct {
	config      *Config
	logger      *slog.Logger
	userService *userservice.UserService
	blogService *blogservice.BlogService
	mailService *mailservice.MailService
	templates   map[string]*template.Template
	limiters    *common.Cache
}

func main() {
	// Initialize the logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load the configuration
	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize the database
	db, err := common.ConnectDB(cfg.DSN(), 10, 5, 15*time.Minute)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	// Parse the page templates
	templates, err := newTemplateCache()
	if err != nil {
		logger.Error("failed to parse templates", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize the services
	app := &application{
		config:      cfg,
		logger:      logger,
		userService: userservice.NewUserService(db, cfg.SessionSecret, cfg.SessionExpiry),
		blogService: blogservice.NewBlogService(db),
		mailService: mailservice.NewMailService(cfg.Mail.Host, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.Sender, cfg.Mail.Port, logger),
		templates:   templates,
		limiters:    common.NewCache(3*time.Minute, 10*time.Minute),
	}

	// Start the HTTP server
	err = app.serve(":" + cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
