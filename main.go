package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"wasl_server/routes"
	"wasl_server/services"
	"wasl_server/socket"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load environment variables from .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on environment variables")
	}

	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Initialize Services
	userService := &services.UserService{Dynamo: dynamoService}
	notificationService := &services.NotificationService{Dynamo: dynamoService}
	seekerService := &services.SeekerService{Dynamo: dynamoService, Users: userService, Notifications: notificationService}
	ansarService := &services.AnsarService{Dynamo: dynamoService, Users: userService, Notifications: notificationService}
	partnerService := &services.PartnerService{Dynamo: dynamoService, Users: userService}
	pairingService := &services.PairingService{
		Dynamo:        dynamoService,
		Seekers:       seekerService,
		Ansars:        ansarService,
		Partners:      partnerService,
		Notifications: notificationService,
	}
	s3Service := services.NewS3Service()
	inboxService := &services.InboxService{
		Dynamo:   dynamoService,
		Users:    userService,
		Seekers:  seekerService,
		Ansars:   ansarService,
		Pairings: pairingService,
	}

	// Start the notification dispatcher
	dispatcher := services.NewDispatcher(
		notificationService,
		services.NewTwilioSenderFromEnv(),
		services.NewSendGridSenderFromEnv(),
	)
	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	defer stopDispatcher()
	go dispatcher.Run(dispatcherCtx)

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to Wasl")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	// Register routes
	routes.RegisterSessionRoutes(r, userService)
	routes.RegisterSeekerRoutes(r, seekerService)
	routes.RegisterAnsarRoutes(r, ansarService)
	routes.RegisterPartnerRoutes(r, partnerService)
	routes.RegisterPairingRoutes(r, pairingService)
	routes.RegisterInboxRoutes(r, inboxService)
	routes.RegisterNotificationRoutes(r, notificationService)
	routes.RegisterS3Routes(r, s3Service)

	// Socket.IO server for live inbox updates
	socketServer := socket.NewSocketServer()
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Printf("❌ Socket.IO server error: %v\n", err)
		}
	}()
	defer socketServer.Close()
	r.Handle("/socket.io/", socketServer)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
