package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"socialsound_server/services"
)

// GeneratePresignedURL generates a presigned URL for avatar uploads
func GeneratePresignedURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Printf("Error decoding request body: %v", err)
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request payload"})
		return
	}
	if payload.FileName == "" || payload.FileType == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "fileName and fileType are required"})
		return
	}

	url, key, err := services.GenerateAvatarUploadURL(payload.FileName, payload.FileType)
	if err != nil {
		log.Printf("Error generating pre-signed URL: %v", err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to generate pre-signed URL"})
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"url": url, "key": key})
}

// GetPresignedReadURL generates a presigned URL for reading stored objects
func GetPresignedReadURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Key == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request payload"})
		return
	}

	url, err := services.GenerateReadURL(payload.Key)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to generate read pre-signed URL"})
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"url": url})
}
