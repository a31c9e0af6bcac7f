package utils

import (
	"github.com/google/uuid"
)

// ==================== UUID & TOKEN ====================

func GenerateUUIDString() string {
	return uuid.New().String()
}

func GenerateSessionToken() string {
	return uuid.New().String()
}
