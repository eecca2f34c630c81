// File: matrimonial/handlers/bundle.go
package handlers

import (
	"matrimonial/middleware"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Sessions middleware.SessionLoader

	// Wizard endpoints
	OpenWizardSession  gin.HandlerFunc
	GetWizardSession   gin.HandlerFunc
	GetWizardStatus    gin.HandlerFunc
	CloseWizardSession gin.HandlerFunc
	UpdateWizardField  gin.HandlerFunc
	ToggleWizardItem   gin.HandlerFunc
	NextWizardStep     gin.HandlerFunc
	PreviousWizardStep gin.HandlerFunc
	JumpToWizardStep   gin.HandlerFunc
	AddWizardPhotos    gin.HandlerFunc
	RemoveWizardPhoto  gin.HandlerFunc
	SetPrimaryPhoto    gin.HandlerFunc
	SubmitWizard       gin.HandlerFunc
	GetWizardSteps     gin.HandlerFunc

	// Preview endpoints
	GetPreview gin.HandlerFunc

	// Country endpoints
	SuggestCountries gin.HandlerFunc
	GetCountry       gin.HandlerFunc

	Health gin.HandlerFunc
}

// NewHandlerBundle wires the handlers into a bundle.
func NewHandlerBundle(sessions middleware.SessionLoader, w *WizardHandler, p *PreviewHandler, ch *CountryHandler) *HandlerBundle {
	return &HandlerBundle{
		Sessions: sessions,

		OpenWizardSession:  w.OpenSessionHandler,
		GetWizardSession:   w.GetSessionHandler,
		GetWizardStatus:    w.StatusHandler,
		CloseWizardSession: w.CloseSessionHandler,
		UpdateWizardField:  w.UpdateFieldHandler,
		ToggleWizardItem:   w.ToggleItemHandler,
		NextWizardStep:     w.NextStepHandler,
		PreviousWizardStep: w.PreviousStepHandler,
		JumpToWizardStep:   w.JumpToStepHandler,
		AddWizardPhotos:    w.AddPhotosHandler,
		RemoveWizardPhoto:  w.RemovePhotoHandler,
		SetPrimaryPhoto:    w.SetPrimaryPhotoHandler,
		SubmitWizard:       w.SubmitHandler,
		GetWizardSteps:     w.StepsHandler,

		GetPreview: p.GetPreviewHandler,

		SuggestCountries: ch.SuggestCountriesHandler,
		GetCountry:       ch.GetCountryHandler,

		Health: HealthHandler,
	}
}
