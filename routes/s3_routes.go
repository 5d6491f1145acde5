package routes

import (
	"wasl_server/controllers"
	"wasl_server/services"

	"github.com/gorilla/mux"
)

// RegisterS3Routes sets up routes for intake document uploads
func RegisterS3Routes(r *mux.Router, s3Service *services.S3Service) {
	controller := controllers.NewS3Controller(s3Service)

	r.HandleFunc("/generate-presigned-url", controller.HandleGenerateUploadURL).Methods("POST")
	r.HandleFunc("/get-presigned-read-url", controller.HandleGenerateReadURL).Methods("POST")
}
