package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func errorResponse(c *gin.Context, statusCode int, message string) {
	log.Error().Msg(message)
	c.JSON(statusCode, gin.H{"error": message})
}

func parsePositiveIntWithDefault(c *gin.Context, name string, def int) int {
	if v, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(def))); err == nil && v > 0 {
		return v
	}
	return def
}

func parseNonNegativeIntWithDefault(c *gin.Context, name string, def int) int {
	if v, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(def))); err == nil && v >= 0 {
		return v
	}
	return def
}
