package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"socialsound_server/routes"
	"socialsound_server/services"
	"socialsound_server/socket"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env if present; real deployments set env vars directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Initialize Services
	userProfileService := &services.UserProfileService{Dynamo: dynamoService}
	broadcastService := &services.BroadcastService{Dynamo: dynamoService}
	likeService := &services.LikeService{
		Dynamo:     dynamoService,
		Profiles:   userProfileService,
		Broadcasts: broadcastService,
	}
	conversationService := &services.ConversationService{Dynamo: dynamoService}
	workflowService := services.NewWorkflowService(likeService, conversationService)
	chatService := &services.ChatService{Dynamo: dynamoService, Conversations: conversationService}
	followService := &services.FollowService{Dynamo: dynamoService}

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
		fmt.Fprintln(w, "Welcome to SocialSound")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"status":"healthy"}`)
	}).Methods("GET")

	// Realtime chat channel
	socketServer := socket.NewSocketServer()
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Fatalf("Socket.IO server error: %v", err)
		}
	}()
	defer socketServer.Close()
	r.Handle("/socket.io/", socketServer)

	// Register routes
	routes.RegisterUserProfileRoutes(r, userProfileService)
	routes.RegisterBroadcastRoutes(r, broadcastService)
	routes.RegisterLikeRoutes(r, likeService, workflowService)
	routes.RegisterChatRoutes(r, chatService, conversationService)
	routes.RegisterFollowRoutes(r, followService)
	routes.RegisterS3Routes(r)

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
