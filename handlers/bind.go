package handlers

import (
	"errors"
	"net/http"
	"strings"

	"matrimonial/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindJSON decodes the body into dst and reports failures as field errors.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		utils.JSONFieldError(c, "Invalid request", fieldErrors(verrs))
		return false
	}
	utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
	return false
}

func fieldErrors(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		switch fe.Tag() {
		case "required":
			out[name] = "is required"
		case "min":
			out[name] = "must be at least " + fe.Param()
		case "max":
			out[name] = "must be at most " + fe.Param()
		default:
			out[name] = "failed on " + fe.Tag()
		}
	}
	return out
}
