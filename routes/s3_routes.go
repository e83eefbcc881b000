package routes

import (
	"socialsound_server/controllers"

	"github.com/gorilla/mux"
)

// RegisterS3Routes sets up routes for presigned upload/read URLs
func RegisterS3Routes(r *mux.Router) {
	r.HandleFunc("/api/s3/presigned-url", controllers.GeneratePresignedURL).Methods("POST")
	r.HandleFunc("/api/s3/read-url", controllers.GetPresignedReadURL).Methods("POST")
}
