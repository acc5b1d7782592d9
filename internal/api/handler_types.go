package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/keerthireddymada/plan-her-new/internal/db"
	"github.com/keerthireddymada/plan-her-new/internal/services"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const (
	authTokenTTL   = 30 * time.Minute
	contextUserKey = "current_user"
)

type Handler struct {
	db        *gorm.DB
	secretKey []byte
	location  *time.Location
	logger    zerolog.Logger

	repositories *db.Repositories

	authService       *services.AuthService
	cycleCalculator   *services.CycleCalculator
	predictionService *services.PredictionService
	retrainService    *services.RetrainService
	planner           *services.Planner
}

type authClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}
