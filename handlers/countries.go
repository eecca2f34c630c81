package handlers

import (
	"net/http"
	"strconv"

	"matrimonial/services/countries"

	"github.com/gin-gonic/gin"
)

type CountryHandler struct {
	Lookup *countries.Lookup
}

func NewCountryHandler(lookup *countries.Lookup) *CountryHandler {
	return &CountryHandler{Lookup: lookup}
}

// SuggestCountriesHandler returns countries matching ?q=, home country first.
func (h *CountryHandler) SuggestCountriesHandler(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(countries.DefaultLimit)))
	if err != nil || limit <= 0 {
		limit = countries.DefaultLimit
	}
	c.JSON(http.StatusOK, gin.H{"countries": h.Lookup.Suggest(c.Query("q"), limit)})
}

func (h *CountryHandler) GetCountryHandler(c *gin.Context) {
	country, ok := h.Lookup.ByCode(c.Param("code"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Unknown country code"})
		return
	}
	c.JSON(http.StatusOK, country)
}
