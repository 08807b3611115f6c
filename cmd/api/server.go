package main

import (
	"crypto/tls"
	"log"
	"net/http"
	"os"

	"finly/internal/api/handlers/advisor"
	"finly/internal/api/handlers/auth"
	"finly/internal/api/handlers/budgets"
	"finly/internal/api/handlers/goals"
	"finly/internal/api/handlers/ledger"
	mw "finly/internal/api/middlewares"
	"finly/internal/api/routers"
	"finly/internal/repositories/sqlconnect"
	"finly/internal/services"
	"finly/internal/store/mysql"
	"finly/pkg/cron"
	"finly/pkg/utils"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	utils.InitLogger()

	db, err := sqlconnect.ConnectDb()
	if err != nil {
		utils.Logger.Fatal("DB connection failed: ", err)
	}

	st, err := mysql.New(db)
	if err != nil {
		utils.Logger.Fatal("store initialization failed: ", err)
	}

	balanceService := services.NewBalanceService(st)
	goalService := services.NewSavingsGoalService(st)
	alertService := services.NewBudgetAlertService(st)
	advisorService := services.NewAdvisorService(st)

	router := routers.MainRouter(routers.Handlers{
		Auth:    auth.NewHandler(st),
		Ledger:  ledger.NewHandler(st, balanceService),
		Budgets: budgets.NewHandler(st, alertService),
		Goals:   goals.NewHandler(goalService),
		Advisor: advisor.NewHandler(advisorService),
	})

	jwtMiddleware := mw.MiddlewaresExcludePaths(mw.JWTMiddleware, "/users/signup", "/users/login")
	secureMux := jwtMiddleware(mw.SecurityHeaders(router))

	scheduler := cron.StartCronJob(st, alertService)
	defer scheduler.Stop()

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = ":8080"
	}

	server := &http.Server{
		Addr:    port,
		Handler: secureMux,
		TLSConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}

	cert := os.Getenv("CERT_FILE")
	key := os.Getenv("KEY_FILE")

	utils.Logger.Infof("Server is running on port %s", port)
	if cert != "" && key != "" {
		err = server.ListenAndServeTLS(cert, key)
	} else {
		err = server.ListenAndServe()
	}
	if err != nil {
		log.Fatalln("Error starting the server", err)
	}
}
