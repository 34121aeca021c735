package handlers

import (
	"net/http"

	"gorm.io/gorm"
)

type healthCheckResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// HealthCheckHandler checks API health and database connectivity
func HealthCheckHandler(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := healthCheckResponse{Status: "API is running"}

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			response.Database = "Database connection failed"
			respondWithJSON(w, http.StatusInternalServerError, response)
			return
		}

		response.Database = "Database connection is healthy"
		respondWithJSON(w, http.StatusOK, response)
	}
}
