// main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"wanderlust/config"
	"wanderlust/content"
	"wanderlust/controllers"
	"wanderlust/logger"
	"wanderlust/metrics"
	"wanderlust/middleware"
	"wanderlust/repository"
	"wanderlust/services"
	"wanderlust/session"
	"wanderlust/websocket"
)

const sessionName = "wanderlust"

// app is everything the router needs.
type app struct {
	cfg       *config.Config
	repos     repository.Manager
	content   content.Content
	publisher metrics.Publisher
	hub       *websocket.Hub
	admins    *services.AdminSessions
	tokens    *session.TokenIssuer
	mailer    services.Mailer
}

func main() {
	os.Exit(start(os.Args[1:]))
}

// start runs the command and returns the process exit code. Deferred cleanup, including the
// log file, completes before main exits.
func start(args []string) int {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return 1
	}

	closer, err := logger.InitLogger(cfg.LogDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		return 1
	}
	defer closer.Close()
	logger.SetLogLevel(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, args); err != nil {
		logger.Error.Printf("wanderlust: %v", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg *config.Config, args []string) error {
	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := repos.Close(closeCtx); err != nil {
			logger.Warn.Printf("closing repositories: %v", err)
		}
	}()

	if len(args) > 0 && args[0] == "seed-admin" {
		return seedAdmin(ctx, cfg, repos, args[1:])
	}

	if cfg.AdminPassword != "" {
		if err := services.SeedAdmin(ctx, repos.Users(), cfg.AdminUsername, cfg.AdminPassword); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
	}

	pageContent, err := content.Load(cfg.ContentFile)
	if err != nil {
		return err
	}

	var publisher metrics.Publisher = metrics.Noop{}
	if cfg.MetricsEnabled {
		cw, err := metrics.NewCloudWatch()
		if err != nil {
			return fmt.Errorf("cloudwatch: %w", err)
		}
		publisher = cw
	}

	a := &app{
		cfg:       cfg,
		repos:     repos,
		content:   pageContent,
		publisher: publisher,
		hub:       websocket.NewHub(),
		admins:    services.NewAdminSessions(repos, cfg.AdminSessionIdle),
		tokens:    session.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		mailer:    services.LogMailer{Delay: cfg.ContactDelay},
	}
	go a.hub.HandleMessages(ctx)
	go a.admins.Run(ctx, time.Minute)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := setupRouter(a)
	router.LoadHTMLGlob(filepath.Join(cfg.TemplatesDir, "*.html"))
	router.Static("/static", cfg.StaticDir)

	var handler http.Handler = router
	if cfg.XRayEnabled {
		handler = xray.Handler(xray.NewFixedSegmentNamer("wanderlust"), router)
	}
	return serve(ctx, ":"+cfg.Port, handler)
}

func openRepositories(ctx context.Context, cfg *config.Config) (repository.Manager, error) {
	if cfg.MongoURI == "" {
		logger.Warn.Println("MONGO_URI not set, using the in-memory store; data is lost on restart")
		return repository.NewInMemoryManager(), nil
	}
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	m, err := repository.NewMongoManager(connectCtx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}
	logger.Info.Printf("Connected to MongoDB database %s", cfg.MongoDatabase)
	return m, nil
}

// seedAdmin implements `wanderlust seed-admin [-username name] [-password secret]`.
func seedAdmin(ctx context.Context, cfg *config.Config, repos repository.Manager, args []string) error {
	fs := flag.NewFlagSet("seed-admin", flag.ContinueOnError)
	username := fs.String("username", cfg.AdminUsername, "admin username")
	password := fs.String("password", cfg.AdminPassword, "admin password (defaults to ADMIN_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := services.SeedAdmin(ctx, repos.Users(), *username, *password); err != nil {
		return err
	}
	logger.Info.Printf("seed-admin: admin %s is ready", *username)
	return nil
}

// setupRouter registers every route. Templates and static files are loaded by the caller.
func setupRouter(a *app) *gin.Engine {
	router := gin.Default()

	store := cookie.NewStore([]byte(a.cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(a.cfg.TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   a.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions(sessionName, store))

	users := a.repos.Users()
	destinations := a.repos.Destinations()

	pageController := controllers.NewPageController(a.content, destinations)
	destinationController := controllers.NewDestinationController(destinations, services.NewReviewService(destinations), a.cfg.ApplicationURL)
	contactController := controllers.NewContactController(services.NewContactService(a.mailer, a.publisher))
	authController := controllers.NewAuthController(
		services.NewAuthService(users, a.publisher), session.Store{Secure: a.cfg.CookieSecure}, a.tokens, users, a.admins)
	adminController := controllers.NewAdminController(a.admins, a.hub)

	authRequired := middleware.AuthRequired(a.tokens, users)

	// public pages
	router.GET("/health", controllers.Health)
	router.GET("/", pageController.Home)
	router.GET("/about", pageController.About)
	router.GET("/contact", pageController.Contact)
	router.GET("/destinations", destinationController.Page)
	router.GET("/destinations/:id", destinationController.Detail)
	router.GET("/destinations/:id/qrcode", destinationController.QRCode)
	router.GET("/login", authController.LoginPage)
	router.POST("/login", authController.Login)
	router.GET("/profile", authRequired, authController.Profile)

	api := router.Group("/api")
	{
		api.POST("/auth/login", authController.Login)
		api.POST("/auth/logout", authController.Logout)
		api.GET("/auth/session", authController.SessionInfo)
		api.GET("/destinations", destinationController.List)
		api.POST("/destinations/:id/reviews", authRequired, destinationController.AddReview)
		api.POST("/contact", contactController.Submit)
	}

	router.GET("/admin", authRequired, middleware.AdminRequired(), adminController.AdminPanel)
	admin := router.Group("/api/admin", authRequired, middleware.AdminRequired())
	{
		admin.GET("/dashboard", adminController.Dashboard)
		admin.GET("/updates", adminController.Updates)
		admin.POST("/tabs/:tab", adminController.SwitchTab)
		admin.GET("/:collection", adminController.Refresh)

		admin.POST("/destinations", adminController.CreateDestination)
		admin.PUT("/destinations/:id", adminController.UpdateDestination)
		admin.DELETE("/destinations/:id", adminController.DeleteDestination)

		admin.POST("/users", adminController.CreateUser)
		admin.PUT("/users/:id", adminController.UpdateUser)
		admin.DELETE("/users/:id", adminController.DeleteUser)

		admin.PUT("/bookings/:id", adminController.UpdateBooking)
		admin.DELETE("/bookings/:id", adminController.DeleteBooking)
	}

	return router
}

// serve runs the server until ctx is done and then drains in-flight requests.
func serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info.Printf("Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
