package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	database "github.com/jchung150/Expense-Classification/db"
	"github.com/jchung150/Expense-Classification/internal/auth"
	"github.com/jchung150/Expense-Classification/internal/expense/application"
	"github.com/jchung150/Expense-Classification/internal/expense/infrastructure"
	"github.com/jchung150/Expense-Classification/internal/expense/interfaces"
	"github.com/jchung150/Expense-Classification/internal/storage"
	"github.com/jchung150/Expense-Classification/internal/user"
)

const uploadRetention = 90 * 24 * time.Hour

type Response struct {
	Message string `json:"message"`
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("Started %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("Completed %s in %v", r.URL.Path, time.Since(start))
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string, errs ...[]string) {
	payload := map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	}
	if len(errs) > 0 && len(errs[0]) > 0 {
		payload["errors"] = errs[0]
	}
	respondJSON(w, status, payload)
}

type Server struct {
	router             *http.ServeMux
	dbService          *database.DBService
	authHandler        *auth.Handler
	authService        auth.Service
	userHandler        *user.Handler
	bucketHandler      *interfaces.BucketHandler
	transactionHandler *interfaces.TransactionHandler
	importHandler      *interfaces.ImportHandler
	reportHandler      *interfaces.ReportHandler
}

func NewServer(
	dbService *database.DBService,
	authHandler *auth.Handler,
	authService auth.Service,
	userHandler *user.Handler,
	bucketHandler *interfaces.BucketHandler,
	transactionHandler *interfaces.TransactionHandler,
	importHandler *interfaces.ImportHandler,
	reportHandler *interfaces.ReportHandler,
) *Server {
	return &Server{
		router:             http.NewServeMux(),
		dbService:          dbService,
		authHandler:        authHandler,
		authService:        authService,
		userHandler:        userHandler,
		bucketHandler:      bucketHandler,
		transactionHandler: transactionHandler,
		importHandler:      importHandler,
		reportHandler:      reportHandler,
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func checkConfiguration() error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		return errors.New("no JWT_SECRET provided")
	}
	if os.Getenv("DB_CONNECTION_STRING") == "" {
		return errors.New("no DB_CONNECTION_STRING provided")
	}
	return nil
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.dbService.Health())
}

func (s *Server) RegisterRoutes() {
	authn := s.authService.JWTAccessTokenMiddleware()
	admin := s.authService.RequireRole(user.RoleAdmin)

	// Public routes
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("POST /api/register", http.HandlerFunc(s.userHandler.HandleRegister))
	publicRoutes.Handle("POST /api/auth/login", http.HandlerFunc(s.authHandler.HandleLogin))
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// Protected routes (valid access token required; admin routes also pass
	// the role guard before the handler runs)
	protectedRoutes := http.NewServeMux()

	// Bucket catalog
	protectedRoutes.Handle("GET /api/protected/buckets",
		authn(admin(http.HandlerFunc(s.bucketHandler.ListBuckets))))
	protectedRoutes.Handle("POST /api/protected/buckets",
		authn(admin(http.HandlerFunc(s.bucketHandler.CreateBucket))))
	protectedRoutes.Handle("PUT /api/protected/buckets/{bucketID}",
		authn(admin(http.HandlerFunc(s.bucketHandler.UpdateBucket))))
	protectedRoutes.Handle("DELETE /api/protected/buckets/{bucketID}",
		authn(admin(http.HandlerFunc(s.bucketHandler.DeleteBucket))))
	protectedRoutes.Handle("GET /api/protected/buckets/vendors",
		authn(http.HandlerFunc(s.bucketHandler.GetVendors)))

	// Transactions
	protectedRoutes.Handle("GET /api/protected/transactions",
		authn(http.HandlerFunc(s.transactionHandler.GetUserTransactions)))
	protectedRoutes.Handle("POST /api/protected/transactions",
		authn(http.HandlerFunc(s.transactionHandler.CreateTransaction)))
	protectedRoutes.Handle("PUT /api/protected/transactions/{transactionID}",
		authn(http.HandlerFunc(s.transactionHandler.UpdateTransaction)))
	protectedRoutes.Handle("DELETE /api/protected/transactions/{transactionID}",
		authn(http.HandlerFunc(s.transactionHandler.DeleteTransaction)))
	protectedRoutes.Handle("POST /api/protected/transactions/upload",
		authn(http.HandlerFunc(s.importHandler.HandleUpload)))

	// Reports
	protectedRoutes.Handle("GET /api/protected/reports",
		authn(http.HandlerFunc(s.reportHandler.GenerateYearlyReport)))

	// Admin
	protectedRoutes.Handle("GET /api/protected/admin/users",
		authn(admin(http.HandlerFunc(s.userHandler.HandleListUsers))))
	protectedRoutes.Handle("POST /api/protected/admin/users/{userID}/toggle-approval",
		authn(admin(http.HandlerFunc(s.userHandler.HandleToggleApproval))))
	protectedRoutes.Handle("DELETE /api/protected/admin/transactions",
		authn(admin(http.HandlerFunc(s.transactionHandler.DeleteAllTransactions))))

	// Main router
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/", publicRoutes)
	mainRouter.Handle("/api/protected/", protectedRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func main() {
	if err := checkConfiguration(); err != nil {
		log.Fatalf("Missing configuration, update to start server: %v", err)
	}

	dbService, err := database.NewDBService()
	if err != nil {
		log.Fatalf("Could not initialize database: %v", err)
	}
	defer dbService.Close()

	if err := dbService.Migrate(); err != nil {
		log.Fatalf("Could not migrate database: %v", err)
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	uploadStore := storage.NewUploadStore(uploadDir)

	userRepo := user.NewUserRepository(dbService.DB)
	userService := user.NewUserService(userRepo)
	userHandler := user.NewHandler(userService)

	if err := user.Seed(userRepo); err != nil {
		log.Fatalf("Could not seed users: %v", err)
	}

	jwtManager := auth.NewJWTManager()
	authService := auth.NewAuthService(userService, jwtManager)
	authHandler := auth.NewHandler(authService)

	bucketRepo := infrastructure.NewBucketRepository(dbService.DB)
	bucketService := application.NewBucketService(bucketRepo)
	bucketHandler := interfaces.NewBucketHandler(bucketService, respondJSON, respondError)

	transactionRepo := infrastructure.NewTransactionRepository(dbService.DB)
	transactionService := application.NewTransactionService(transactionRepo)
	transactionHandler := interfaces.NewTransactionHandler(transactionService, respondJSON, respondError)

	unitOfWorkFactory := infrastructure.NewSQLUnitOfWorkFactory(dbService.DB)
	importService := application.NewImportService(bucketRepo, unitOfWorkFactory, uploadStore)
	importHandler := interfaces.NewImportHandler(importService, respondJSON, respondError)

	reportService := application.NewReportService(transactionRepo)
	reportHandler := interfaces.NewReportHandler(reportService, respondJSON, respondError)

	server := NewServer(dbService, authHandler, authService, userHandler,
		bucketHandler, transactionHandler, importHandler, reportHandler)
	server.RegisterRoutes()

	if err := StartUploadPruneScheduler(uploadStore); err != nil {
		log.Fatalf("Scheduler didn't start, stopping the app ...")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	handler := loggingMiddleware(server.router)
	log.Printf("Server starting on port %s...", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// StartUploadPruneScheduler removes consumed statement files past the
// retention window once a day.
func StartUploadPruneScheduler(uploadStore *storage.UploadStore) error {
	c := cron.New()
	_, err := c.AddFunc("@daily", func() {
		removed, err := uploadStore.PruneImported(uploadRetention)
		if err != nil {
			log.Printf("Error pruning imported uploads: %v", err)
		} else if removed > 0 {
			log.Printf("Pruned %d imported upload files", removed)
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	return nil
}
